package terminal

import (
	"codeberg.org/miketth/plancktl/pkg/keycode"
	"codeberg.org/miketth/plancktl/pkg/layer"
	"github.com/gdamore/tcell/v2"
	"unicode"
)

var runeCodes = map[rune]keycode.Code{
	' ':  keycode.Space,
	';':  keycode.Semicolon,
	'\'': keycode.Quote,
	',':  keycode.Comma,
	'.':  keycode.Dot,
	'/':  keycode.Slash,
}

var specialCodes = map[tcell.Key]keycode.Code{
	tcell.KeyEnter:      keycode.Enter,
	tcell.KeyTab:        keycode.Tab,
	tcell.KeyBackspace:  keycode.Backspace,
	tcell.KeyBackspace2: keycode.Backspace,
	tcell.KeyEscape:     keycode.Escape,
}

// codeFor maps a terminal key to the base layer code typed by it.
func codeFor(ev *tcell.EventKey) (keycode.Code, bool) {
	if ev.Key() != tcell.KeyRune {
		code, ok := specialCodes[ev.Key()]
		return code, ok
	}

	r := unicode.ToLower(ev.Rune())
	if r >= 'a' && r <= 'z' {
		return keycode.A + keycode.Code(r-'a'), true
	}
	code, ok := runeCodes[r]
	return code, ok
}

// heldCodes are toggled by a function key: the first hit presses the key,
// the second releases it.
var heldCodes = map[tcell.Key]keycode.Code{
	tcell.KeyF1: keycode.Lower,
	tcell.KeyF2: keycode.Raise,
	tcell.KeyF3: keycode.Momentary(layer.Navigation),
	tcell.KeyF4: keycode.LeftShift,
	tcell.KeyF5: keycode.LeftCtrl,
}

var tappedCodes = map[tcell.Key]keycode.Code{
	tcell.KeyF6: keycode.Leader,
}
