package macro

import (
	"codeberg.org/miketth/plancktl/pkg/keycode"
	"fmt"
	"time"
)

// Desktop macros drive a window manager bound to alt+N (go to desktop N)
// and alt+shift+N (move the focused window to desktop N).
const (
	GoToFirst      uint8 = 1
	GoToLast       uint8 = 9
	MoveToFirst    uint8 = 11
	MoveToLast     uint8 = 19
	BroadcastFirst uint8 = 21
	BroadcastLast  uint8 = 27

	// ScratchDesktop and SecondScratchDesktop hold windows while a
	// broadcast shuffles them around.
	ScratchDesktop       uint8 = 8
	SecondScratchDesktop uint8 = 9

	// BroadcastRepeat is how many times each move is sent in a row.
	BroadcastRepeat = 5

	SettleDelay = 100 * time.Millisecond
)

var (
	desktopModifier = keycode.LeftAlt
	moveModifier    = keycode.LeftShift
)

// Registry maps macro ids to descriptors.
type Registry map[uint8]Descriptor

// Lookup returns the descriptor for id. Unknown ids are not an error; the
// caller treats them as a no-op.
func (r Registry) Lookup(id uint8) (Descriptor, bool) {
	d, ok := r[id]
	return d, ok
}

// Desktops returns the go-to (1-9), move-to (11-19) and broadcast (21-27)
// macros.
func Desktops() Registry {
	r := make(Registry)
	for id := GoToFirst; id <= GoToLast; id++ {
		r[id] = GoToDesktop(id - GoToFirst + 1)
	}
	for id := MoveToFirst; id <= MoveToLast; id++ {
		r[id] = MoveToDesktop(id - MoveToFirst + 1)
	}
	for id := BroadcastFirst; id <= BroadcastLast; id++ {
		r[id] = BroadcastToDesktop(id - BroadcastFirst + 1)
	}
	return r
}

func GoToDesktop(n uint8) Descriptor {
	return New(fmt.Sprintf("go to desktop %d", n),
		Down(desktopModifier),
		Tap(keycode.Digit(n)),
		Up(desktopModifier),
	)
}

func MoveToDesktop(n uint8) Descriptor {
	return New(fmt.Sprintf("move to desktop %d", n),
		Down(desktopModifier),
		Down(moveModifier),
		Tap(keycode.Digit(n)),
		Up(moveModifier),
		Up(desktopModifier),
	)
}

// BroadcastToDesktop makes every window on the current desktop show up on
// desktop n using only single-desktop moves: park the current windows on the
// first scratch desktop, park n's windows on the second, bring the parked
// windows to n and finish on the second scratch desktop.
func BroadcastToDesktop(n uint8) Descriptor {
	target := keycode.Digit(n)
	scratch := keycode.Digit(ScratchDesktop)
	second := keycode.Digit(SecondScratchDesktop)

	moveAll := func(to keycode.Code) []Step {
		return []Step{
			Down(moveModifier),
			TapN(to, BroadcastRepeat),
			Up(moveModifier),
		}
	}

	steps := []Step{Wait(SettleDelay), Down(desktopModifier)}
	steps = append(steps, moveAll(scratch)...)
	steps = append(steps, Tap(target))
	steps = append(steps, moveAll(second)...)
	steps = append(steps, Tap(scratch))
	steps = append(steps, moveAll(target)...)
	steps = append(steps, Tap(target), Tap(second), Up(desktopModifier))

	return New(fmt.Sprintf("broadcast to desktop %d", n), steps...)
}
