package keymap

// The layout table reads as a QMK keymap grid with unqualified code names.
import (
	. "codeberg.org/miketth/plancktl/pkg/keycode"
	"codeberg.org/miketth/plancktl/pkg/layer"
)

const (
	_______ = Transparent
	XXXXXXX = No
)

// Planck returns the built-in 4x12 layout.
func Planck() Keymap {
	return Keymap{
		/* Qwerty
		 * | Tab  |   Q  |   W  |   E  |   R  |   T  |   Y  |   U  |   I  |   O  |   P  | Bksp |
		 * | Ctrl |   A  |   S  |   D  |   F  |   G  |   H  |   J  |   K  |   L  |   ;  |  "   |
		 * | Shift|   Z  |   X  |   C  |   V  |   B  |   N  |   M  |   ,  |   .  |   /  |Enter |
		 * | Esc  | Caps | GUI  | Alt  |Lower |    Space    |Raise |Leader|      |      | Nav  |
		 */
		layer.Qwerty: {
			{Tab, Q, W, E, R, T, Y, U, I, O, P, Backspace},
			{LeftCtrl, A, S, D, F, G, H, J, K, L, Semicolon, Quote},
			{LeftShift, Z, X, C, V, B, N, M, Comma, Dot, Slash, Enter},
			{Escape, CapsLock, LeftGUI, LeftAlt, Lower, Space, Space, Raise, Leader, _______, _______, Momentary(layer.Navigation)},
		},

		layer.Lower: {
			{Tilde, Exclaim, At, Hash, Dollar, Percent, Circumflex, Ampersand, Asterisk, LeftParen, RightParen, Backspace},
			{Delete, F1, F2, F3, F4, F5, F6, Underscore, Plus, LeftBrace, RightBrace, Pipe},
			{_______, F7, F8, F9, F10, F11, F12, Shift(NonUSHash), Shift(NonUSBackslash), _______, _______, Enter},
			{_______, _______, _______, _______, _______, _______, _______, _______, MediaNext, VolumeDown, VolumeUp, MediaPlay},
		},

		layer.Raise: {
			{Grave, N1, N2, N3, N4, N5, N6, N7, N8, N9, N0, Backspace},
			{Delete, F1, F2, F3, F4, F5, F6, Minus, Equal, LeftBracket, RightBracket, Backslash},
			{_______, F7, F8, F9, F10, F11, F12, NonUSHash, NonUSBackslash, _______, _______, Enter},
			{_______, _______, _______, _______, _______, _______, _______, _______, MediaNext, VolumeDown, VolumeUp, MediaPlay},
		},

		/* Adjust (Lower + Raise) */
		layer.Adjust: {
			{Reset, _______, _______, _______, _______, _______, _______, _______, _______, _______, _______, Delete},
			{AudioOn, AudioOff, AltGUINormal, AltGUISwap, Qwerty, Plover, Left, Down, Up, Right, _______, _______},
			{MusicVoiceDecrease, MusicVoiceIncrease, MusicOn, MusicOff, MIDIOn, MIDIOff, _______, _______, _______, _______, _______, _______},
			{_______, _______, _______, _______, _______, _______, _______, _______, _______, _______, _______, _______},
		},

		/* Navigation: go to, move to and broadcast to desktops 1-9 */
		layer.Navigation: {
			{_______, Macro(1), Macro(2), Macro(3), Macro(4), Macro(5), Macro(6), Macro(7), Macro(8), Macro(9), _______, _______},
			{_______, Macro(11), Macro(12), Macro(13), Macro(14), Macro(15), Macro(16), Macro(17), Macro(18), Macro(19), _______, _______},
			{_______, Macro(21), Macro(22), Macro(23), Macro(24), Macro(25), Macro(26), Macro(27), _______, _______, _______, _______},
			{_______, _______, _______, _______, _______, _______, _______, _______, _______, _______, _______, _______},
		},

		/* Plover steno, http://opensteno.org */
		layer.Plover: {
			{N1, N1, N1, N1, N1, N1, N1, N1, N1, N1, N1, N1},
			{XXXXXXX, Q, W, E, R, T, Y, U, I, O, P, LeftBracket},
			{XXXXXXX, A, S, D, F, G, H, J, K, L, Semicolon, Quote},
			{ExitPlover, XXXXXXX, XXXXXXX, C, V, XXXXXXX, XXXXXXX, N, M, XXXXXXX, XXXXXXX, XXXXXXX},
		},
	}
}
