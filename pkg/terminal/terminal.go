// Package terminal simulates the keyboard in a terminal. Typed keys become
// press and release events at the matching matrix positions, function keys
// hold the layer and modifier keys, and key codes sent back are listed on
// screen.
package terminal

import (
	"codeberg.org/miketth/plancktl/pkg/keycode"
	"codeberg.org/miketth/plancktl/pkg/keymap"
	"codeberg.org/miketth/plancktl/pkg/layer"
	"codeberg.org/miketth/plancktl/pkg/planck"
	"errors"
	"fmt"
	"github.com/gdamore/tcell/v2"
	"strings"
	"sync"
)

var (
	ErrQuit   = errors.New("quit requested")
	ErrClosed = errors.New("screen closed")
)

const (
	maxLines = 200
	help     = "F1 lower  F2 raise  F3 nav  F4 shift  F5 ctrl  F6 leader  ^C quit"
)

type Terminal struct {
	screen    tcell.Screen
	positions map[keycode.Code]keymap.Position

	// touched only by ReadEvent
	pending []planck.KeyEvent
	held    map[keymap.Position]bool

	lock  sync.Mutex
	lines []string
}

func New(km keymap.Keymap) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}

	return NewWithScreen(km, screen)
}

// NewWithScreen initialises screen and maps terminal keys onto the base
// layer of km.
func NewWithScreen(km keymap.Keymap, screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	t := &Terminal{
		screen:    screen,
		positions: make(map[keycode.Code]keymap.Position),
		held:      make(map[keymap.Position]bool),
	}

	codes := []keycode.Code{keycode.Space}
	for c := keycode.A; c <= keycode.Z; c++ {
		codes = append(codes, c)
	}
	for _, c := range runeCodes {
		codes = append(codes, c)
	}
	for _, c := range specialCodes {
		codes = append(codes, c)
	}
	for _, c := range heldCodes {
		codes = append(codes, c)
	}
	for _, c := range tappedCodes {
		codes = append(codes, c)
	}
	for _, c := range codes {
		if pos, ok := km.Find(layer.Qwerty, c); ok {
			t.positions[c] = pos
		}
	}

	t.draw()
	return t, nil
}

func (t *Terminal) Close() error {
	t.screen.Fini()
	return nil
}

// ReadEvent blocks until the next simulated switch transition.
func (t *Terminal) ReadEvent() (planck.KeyEvent, error) {
	for {
		if len(t.pending) > 0 {
			ev := t.pending[0]
			t.pending = t.pending[1:]
			return ev, nil
		}

		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return planck.KeyEvent{}, ErrClosed
		case *tcell.EventResize:
			t.lock.Lock()
			t.screen.Sync()
			t.lock.Unlock()
			t.draw()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyCtrlQ {
				return planck.KeyEvent{}, ErrQuit
			}
			t.queue(ev)
		}
	}
}

func (t *Terminal) queue(ev *tcell.EventKey) {
	if code, ok := heldCodes[ev.Key()]; ok {
		if pos, ok := t.positions[code]; ok {
			t.held[pos] = !t.held[pos]
			t.pending = append(t.pending, planck.KeyEvent{Pos: pos, Pressed: t.held[pos]})
		}
		return
	}

	code, ok := tappedCodes[ev.Key()]
	if !ok {
		code, ok = codeFor(ev)
	}
	if !ok {
		return
	}

	pos, ok := t.positions[code]
	if !ok {
		return
	}
	t.pending = append(t.pending,
		planck.KeyEvent{Pos: pos, Pressed: true},
		planck.KeyEvent{Pos: pos, Pressed: false},
	)
}

// SendKey lists a key transition on screen.
func (t *Terminal) SendKey(code keycode.Code, pressed bool) error {
	arrow := "↑"
	if pressed {
		arrow = "↓"
	}
	t.println(fmt.Sprintf("%s %s", arrow, code))
	return nil
}

func (t *Terminal) OnStartup()                { t.chime("hello") }
func (t *Terminal) OnShutdown()               { t.chime("goodbye") }
func (t *Terminal) OnLayerSwitchedToDefault() { t.chime("qwerty") }
func (t *Terminal) OnPloverEnter()            { t.chime("plover") }
func (t *Terminal) OnPloverExit()             { t.chime("plover goodbye") }

func (t *Terminal) chime(name string) {
	_ = t.screen.Beep() // best-effort; terminal may not support beep
	t.println("♪ " + name)
}

// Lines returns the listed output, oldest first.
func (t *Terminal) Lines() []string {
	t.lock.Lock()
	defer t.lock.Unlock()
	return append([]string(nil), t.lines...)
}

func (t *Terminal) println(line string) {
	t.lock.Lock()
	t.lines = append(t.lines, line)
	if len(t.lines) > maxLines {
		t.lines = t.lines[len(t.lines)-maxLines:]
	}
	t.lock.Unlock()

	t.draw()
}

func (t *Terminal) draw() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.screen.Clear()
	width, height := t.screen.Size()

	drawString(t.screen, 0, 0, width, help, tcell.StyleDefault.Reverse(true))

	visible := max(height-1, 0)
	start := 0
	if len(t.lines) > visible {
		start = len(t.lines) - visible
	}
	for i, line := range t.lines[start:] {
		drawString(t.screen, 0, i+1, width, line, tcell.StyleDefault)
	}

	t.screen.Show()
}

func drawString(screen tcell.Screen, x, y, width int, s string, style tcell.Style) {
	s = strings.TrimRight(s, "\n")
	for _, r := range s {
		if x >= width {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
