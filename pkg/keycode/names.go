package keycode

import (
	"codeberg.org/miketth/plancktl/pkg/layer"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownName = errors.New("unknown key code name")

var codeNames = map[Code]string{
	No:          "KC_NO",
	Transparent: "KC_TRNS",

	A: "KC_A", B: "KC_B", C: "KC_C", D: "KC_D", E: "KC_E", F: "KC_F", G: "KC_G",
	H: "KC_H", I: "KC_I", J: "KC_J", K: "KC_K", L: "KC_L", M: "KC_M", N: "KC_N",
	O: "KC_O", P: "KC_P", Q: "KC_Q", R: "KC_R", S: "KC_S", T: "KC_T", U: "KC_U",
	V: "KC_V", W: "KC_W", X: "KC_X", Y: "KC_Y", Z: "KC_Z",

	N1: "KC_1", N2: "KC_2", N3: "KC_3", N4: "KC_4", N5: "KC_5",
	N6: "KC_6", N7: "KC_7", N8: "KC_8", N9: "KC_9", N0: "KC_0",

	Enter:          "KC_ENT",
	Escape:         "KC_ESC",
	Backspace:      "KC_BSPC",
	Tab:            "KC_TAB",
	Space:          "KC_SPC",
	Minus:          "KC_MINS",
	Equal:          "KC_EQL",
	LeftBracket:    "KC_LBRC",
	RightBracket:   "KC_RBRC",
	Backslash:      "KC_BSLS",
	NonUSHash:      "KC_NUHS",
	Semicolon:      "KC_SCLN",
	Quote:          "KC_QUOT",
	Grave:          "KC_GRV",
	Comma:          "KC_COMM",
	Dot:            "KC_DOT",
	Slash:          "KC_SLSH",
	CapsLock:       "KC_CAPS",
	Delete:         "KC_DEL",
	Right:          "KC_RGHT",
	Left:           "KC_LEFT",
	Down:           "KC_DOWN",
	Up:             "KC_UP",
	NonUSBackslash: "KC_NUBS",

	F1: "KC_F1", F2: "KC_F2", F3: "KC_F3", F4: "KC_F4", F5: "KC_F5", F6: "KC_F6",
	F7: "KC_F7", F8: "KC_F8", F9: "KC_F9", F10: "KC_F10", F11: "KC_F11", F12: "KC_F12",

	VolumeUp:   "KC_VOLU",
	VolumeDown: "KC_VOLD",
	MediaNext:  "KC_MNXT",
	MediaPrev:  "KC_MPRV",
	MediaStop:  "KC_MSTP",
	MediaPlay:  "KC_MPLY",

	LeftCtrl:   "KC_LCTL",
	LeftShift:  "KC_LSFT",
	LeftAlt:    "KC_LALT",
	LeftGUI:    "KC_LGUI",
	RightCtrl:  "KC_RCTL",
	RightShift: "KC_RSFT",
	RightAlt:   "KC_RALT",
	RightGUI:   "KC_RGUI",

	Tilde:      "KC_TILD",
	Exclaim:    "KC_EXLM",
	At:         "KC_AT",
	Hash:       "KC_HASH",
	Dollar:     "KC_DLR",
	Percent:    "KC_PERC",
	Circumflex: "KC_CIRC",
	Ampersand:  "KC_AMPR",
	Asterisk:   "KC_ASTR",
	LeftParen:  "KC_LPRN",
	RightParen: "KC_RPRN",
	Underscore: "KC_UNDS",
	Plus:       "KC_PLUS",
	LeftBrace:  "KC_LCBR",
	RightBrace: "KC_RCBR",
	Pipe:       "KC_PIPE",

	Reset:              "RESET",
	AudioOn:            "AU_ON",
	AudioOff:           "AU_OFF",
	AltGUINormal:       "AG_NORM",
	AltGUISwap:         "AG_SWAP",
	MusicVoiceDecrease: "MUV_DE",
	MusicVoiceIncrease: "MUV_IN",
	MusicOn:            "MU_ON",
	MusicOff:           "MU_OFF",
	MIDIOn:             "MI_ON",
	MIDIOff:            "MI_OFF",

	Leader:     "KC_LEAD",
	Qwerty:     "QWERTY",
	Plover:     "PLOVER",
	Lower:      "LOWER",
	Raise:      "RAISE",
	ExitPlover: "EXT_PLV",
}

var nameCodes = func() map[string]Code {
	m := make(map[string]Code, len(codeNames))
	for c, n := range codeNames {
		m[n] = c
	}
	// aliases
	m["_______"] = Transparent
	m["XXXXXXX"] = No
	return m
}()

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	if id, ok := c.MacroID(); ok {
		return fmt.Sprintf("M(%d)", id)
	}
	if l, ok := c.MomentaryLayer(); ok {
		return fmt.Sprintf("MO(%s)", l)
	}
	if c.IsShifted() {
		return fmt.Sprintf("S(%s)", c.Unshifted())
	}
	return fmt.Sprintf("0x%04X", uint16(c))
}

// Parse accepts the names produced by Code.String, the fill aliases
// "_______" and "XXXXXXX", and raw hexadecimal codes.
func Parse(name string) (Code, error) {
	name = strings.TrimSpace(name)
	if c, ok := nameCodes[name]; ok {
		return c, nil
	}

	if inner, ok := call(name, "M"); ok {
		id, err := strconv.ParseUint(inner, 10, 8)
		if err != nil {
			return No, fmt.Errorf("macro id %q: %w", inner, err)
		}
		return Macro(uint8(id)), nil
	}

	if inner, ok := call(name, "MO"); ok {
		l, err := layer.Parse(inner)
		if err != nil {
			return No, fmt.Errorf("momentary layer: %w", err)
		}
		return Momentary(l), nil
	}

	if inner, ok := call(name, "S"); ok {
		c, err := Parse(inner)
		if err != nil {
			return No, err
		}
		return Shift(c), nil
	}

	if strings.HasPrefix(name, "0x") {
		v, err := strconv.ParseUint(name[2:], 16, 16)
		if err != nil {
			return No, fmt.Errorf("raw code %q: %w", name, err)
		}
		return Code(v), nil
	}

	return No, fmt.Errorf("%w: %q", ErrUnknownName, name)
}

func call(s, fn string) (string, bool) {
	if !strings.HasPrefix(s, fn+"(") || !strings.HasSuffix(s, ")") {
		return "", false
	}
	return strings.TrimSpace(s[len(fn)+1 : len(s)-1]), true
}
