package macro

import (
	"codeberg.org/miketth/plancktl/pkg/keycode"
	"fmt"
	"time"
)

type StepKind int

const (
	StepDown StepKind = iota
	StepUp
	StepTap
	StepTapN
	StepWait
)

func (k StepKind) String() string {
	switch k {
	case StepDown:
		return "down"
	case StepUp:
		return "up"
	case StepTap:
		return "tap"
	case StepTapN:
		return "tapn"
	case StepWait:
		return "wait"
	}
	return fmt.Sprintf("step(%d)", int(k))
}

// Step is one instruction of a macro. Code is unused by StepWait, Count only
// by StepTapN and Delay only by StepWait.
type Step struct {
	Kind  StepKind
	Code  keycode.Code
	Count int
	Delay time.Duration
}

func Down(c keycode.Code) Step { return Step{Kind: StepDown, Code: c} }
func Up(c keycode.Code) Step   { return Step{Kind: StepUp, Code: c} }
func Tap(c keycode.Code) Step  { return Step{Kind: StepTap, Code: c} }

func TapN(c keycode.Code, n int) Step {
	return Step{Kind: StepTapN, Code: c, Count: n}
}

func Wait(d time.Duration) Step {
	return Step{Kind: StepWait, Delay: d}
}

func (s Step) String() string {
	switch s.Kind {
	case StepTapN:
		return fmt.Sprintf("tap(%s)x%d", s.Code, s.Count)
	case StepWait:
		return fmt.Sprintf("wait(%s)", s.Delay)
	}
	return fmt.Sprintf("%s(%s)", s.Kind, s.Code)
}

// Descriptor is an immutable, named sequence of steps.
type Descriptor struct {
	name  string
	steps []Step
}

func New(name string, steps ...Step) Descriptor {
	return Descriptor{
		name:  name,
		steps: append([]Step(nil), steps...),
	}
}

func (d Descriptor) Name() string {
	return d.name
}

func (d Descriptor) Len() int {
	return len(d.steps)
}

// Steps returns a copy of the descriptor's steps.
func (d Descriptor) Steps() []Step {
	return append([]Step(nil), d.steps...)
}

// Expand flattens the descriptor into down, up and wait steps. Taps become a
// down followed by an up and StepTapN repeats that Count times.
func (d Descriptor) Expand() []Step {
	out := make([]Step, 0, len(d.steps)*2)
	for _, s := range d.steps {
		switch s.Kind {
		case StepDown, StepUp, StepWait:
			out = append(out, s)
		case StepTap:
			out = append(out, Down(s.Code), Up(s.Code))
		case StepTapN:
			for i := 0; i < s.Count; i++ {
				out = append(out, Down(s.Code), Up(s.Code))
			}
		}
	}
	return out
}
