package planck

import (
	"codeberg.org/miketth/plancktl/pkg/keymap"
	"codeberg.org/miketth/plancktl/pkg/layer"
	"time"
)

// KeyEvent is one physical switch transition.
type KeyEvent struct {
	Pos     keymap.Position
	Pressed bool
}

// EventSource delivers key transitions from the matrix scanner. ReadEvent
// blocks until an event is available.
type EventSource interface {
	ReadEvent() (KeyEvent, error)
}

// SettingsStore persists settings that outlive a session.
type SettingsStore interface {
	layer.DefaultLayerStore
	GetNKRO() (bool, error)
	SetNKRO(enabled bool) error
}

// AudioHooks are fire-and-forget notifications for sound feedback.
type AudioHooks interface {
	OnStartup()
	OnShutdown()
	OnLayerSwitchedToDefault()
	OnPloverEnter()
	OnPloverExit()
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

type noAudio struct{}

func (noAudio) OnStartup()                {}
func (noAudio) OnShutdown()               {}
func (noAudio) OnLayerSwitchedToDefault() {}
func (noAudio) OnPloverEnter()            {}
func (noAudio) OnPloverExit()             {}
