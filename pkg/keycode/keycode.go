// Package keycode defines the 16-bit key code vocabulary used by keymaps,
// macros and the leader dictionary. Basic codes are HID keyboard usages;
// the upper ranges carry layer, macro and board actions.
package keycode

import "codeberg.org/miketth/plancktl/pkg/layer"

type Code uint16

const (
	No          Code = 0x00
	Transparent Code = 0x01

	A Code = 0x04 + iota - 2
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z
	N1
	N2
	N3
	N4
	N5
	N6
	N7
	N8
	N9
	N0
	Enter
	Escape
	Backspace
	Tab
	Space
	Minus
	Equal
	LeftBracket
	RightBracket
	Backslash
	NonUSHash
	Semicolon
	Quote
	Grave
	Comma
	Dot
	Slash
	CapsLock
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
)

const (
	Delete         Code = 0x4C
	Right          Code = 0x4F
	Left           Code = 0x50
	Down           Code = 0x51
	Up             Code = 0x52
	NonUSBackslash Code = 0x64

	VolumeUp   Code = 0xA9
	VolumeDown Code = 0xAA
	MediaNext  Code = 0xAB
	MediaPrev  Code = 0xAC
	MediaStop  Code = 0xAD
	MediaPlay  Code = 0xAE

	LeftCtrl   Code = 0xE0
	LeftShift  Code = 0xE1
	LeftAlt    Code = 0xE2
	LeftGUI    Code = 0xE3
	RightCtrl  Code = 0xE4
	RightShift Code = 0xE5
	RightAlt   Code = 0xE6
	RightGUI   Code = 0xE7
)

// Shifted codes.
var (
	Tilde      = Shift(Grave)
	Exclaim    = Shift(N1)
	At         = Shift(N2)
	Hash       = Shift(N3)
	Dollar     = Shift(N4)
	Percent    = Shift(N5)
	Circumflex = Shift(N6)
	Ampersand  = Shift(N7)
	Asterisk   = Shift(N8)
	LeftParen  = Shift(N9)
	RightParen = Shift(N0)
	Underscore = Shift(Minus)
	Plus       = Shift(Equal)
	LeftBrace  = Shift(LeftBracket)
	RightBrace = Shift(RightBracket)
	Pipe       = Shift(Backslash)
)

const (
	basicMax   Code = 0x00FF
	shiftFlag  Code = 0x0200
	macroBase  Code = 0x3000
	macroMax   Code = 0x30FF
	momentBase Code = 0x5100
	momentMax  Code = 0x511F
	boardBase  Code = 0x5C00
	customBase Code = 0x7E00
)

// Board codes are forwarded to the board glue untouched.
const (
	Reset Code = boardBase + iota
	AudioOn
	AudioOff
	AltGUINormal
	AltGUISwap
	MusicVoiceDecrease
	MusicVoiceIncrease
	MusicOn
	MusicOff
	MIDIOn
	MIDIOff
)

const (
	Leader Code = customBase + iota
	Qwerty
	Plover
	Lower
	Raise
	ExitPlover
)

// Shift returns c with left shift held.
func Shift(c Code) Code {
	return shiftFlag | (c & basicMax)
}

// Macro returns the code triggering macro id.
func Macro(id uint8) Code {
	return macroBase | Code(id)
}

// Momentary returns the code holding layer l while pressed.
func Momentary(l layer.ID) Code {
	return momentBase | Code(l&0x1F)
}

// Kind is the action tag of a code.
type Kind int

const (
	KindNone Kind = iota
	KindTransparent
	KindBasic
	KindBoard
	KindLayer
	KindMacro
	KindLeader
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTransparent:
		return "transparent"
	case KindBasic:
		return "basic"
	case KindBoard:
		return "board"
	case KindLayer:
		return "layer"
	case KindMacro:
		return "macro"
	case KindLeader:
		return "leader"
	}
	return "unknown"
}

func Classify(c Code) Kind {
	switch {
	case c == No:
		return KindNone
	case c == Transparent:
		return KindTransparent
	case c <= basicMax, c.IsShifted():
		return KindBasic
	case c >= macroBase && c <= macroMax:
		return KindMacro
	case c >= momentBase && c <= momentMax:
		return KindLayer
	case c >= Reset && c <= MIDIOff:
		return KindBoard
	case c == Leader:
		return KindLeader
	case c >= Qwerty && c <= ExitPlover:
		return KindLayer
	}
	return KindNone
}

func (c Code) Kind() Kind {
	return Classify(c)
}

func (c Code) IsShifted() bool {
	return c&0xFF00 == shiftFlag
}

// Unshifted strips the shift flag from a shifted code.
func (c Code) Unshifted() Code {
	if c.IsShifted() {
		return c & basicMax
	}
	return c
}

func (c Code) IsModifier() bool {
	return c >= LeftCtrl && c <= RightGUI
}

// MacroID returns the macro id of a Macro code.
func (c Code) MacroID() (uint8, bool) {
	if c.Kind() != KindMacro {
		return 0, false
	}
	return uint8(c - macroBase), true
}

// MomentaryLayer returns the layer held by a Momentary code.
func (c Code) MomentaryLayer() (layer.ID, bool) {
	if c < momentBase || c > momentMax {
		return 0, false
	}
	return layer.ID(c - momentBase), true
}

// Digit returns the number row key for n in 0-9.
func Digit(n uint8) Code {
	if n == 0 {
		return N0
	}
	return N1 + Code(n-1)
}
