package macro

import (
	"codeberg.org/miketth/plancktl/pkg/keycode"
	"go.uber.org/zap"
	"time"
)

// Emitter sends synthetic key transitions downstream.
type Emitter interface {
	SendKey(code keycode.Code, pressed bool) error
}

type Sleeper interface {
	Sleep(d time.Duration)
}

type realSleeper struct{}

func (realSleeper) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Engine plays macros synchronously. A macro always runs to completion before
// Run returns; emission errors are logged and the remaining steps still run so
// held modifiers get released.
type Engine struct {
	registry Registry
	out      Emitter
	sleeper  Sleeper
	interval time.Duration
	log      *zap.SugaredLogger
}

// NewEngine returns an engine playing macros from registry into out. interval
// is an extra pause after every key transition; a nil sleeper uses time.Sleep.
func NewEngine(
	registry Registry,
	out Emitter,
	sleeper Sleeper,
	interval time.Duration,
	log *zap.SugaredLogger,
) *Engine {
	if sleeper == nil {
		sleeper = realSleeper{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Engine{
		registry: registry,
		out:      out,
		sleeper:  sleeper,
		interval: interval,
		log:      log,
	}
}

// Run plays the macro registered under id and reports whether one exists.
func (e *Engine) Run(id uint8) bool {
	d, ok := e.registry.Lookup(id)
	if !ok {
		e.log.Debugw("no macro for id", "id", id)
		return false
	}

	e.Play(d)
	return true
}

// Play emits the steps of d in order.
func (e *Engine) Play(d Descriptor) {
	e.log.Debugw("macro start", "macro", d.Name())

	for _, s := range d.Expand() {
		switch s.Kind {
		case StepWait:
			e.sleeper.Sleep(s.Delay)
			continue
		case StepDown:
			e.send(d, s.Code, true)
		case StepUp:
			e.send(d, s.Code, false)
		}

		if e.interval > 0 {
			e.sleeper.Sleep(e.interval)
		}
	}

	e.log.Debugw("macro done", "macro", d.Name())
}

func (e *Engine) send(d Descriptor, code keycode.Code, pressed bool) {
	if err := e.out.SendKey(code, pressed); err != nil {
		e.log.Warnw("send macro key", "macro", d.Name(), "code", code, "pressed", pressed, "error", err)
	}
}
