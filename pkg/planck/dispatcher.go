package planck

import (
	"codeberg.org/miketth/plancktl/pkg/keycode"
	"codeberg.org/miketth/plancktl/pkg/keymap"
	"codeberg.org/miketth/plancktl/pkg/layer"
	"codeberg.org/miketth/plancktl/pkg/leader"
	"codeberg.org/miketth/plancktl/pkg/macro"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"time"
)

type Config struct {
	// Keymap defaults to keymap.Planck().
	Keymap   keymap.Keymap
	Settings SettingsStore
	// Output receives synthetic and forwarded key transitions.
	Output macro.Emitter
	Audio  AudioHooks
	Clock  Clock

	// Macros defaults to macro.Desktops().
	Macros        macro.Registry
	MacroInterval time.Duration
	Sleeper       macro.Sleeper

	// LeaderEntries defaults to leader.Dictionary().
	LeaderEntries []leader.Entry
	LeaderTimeout time.Duration

	Log *zap.SugaredLogger
}

// Dispatcher turns physical key transitions into layer changes, macros,
// leader sequences and forwarded key codes. It is driven by a single event
// loop and is not safe for concurrent use.
type Dispatcher struct {
	keymap   keymap.Keymap
	layers   *layer.Stack
	macros   *macro.Engine
	leader   *leader.Recognizer
	settings SettingsStore
	audio    AudioHooks
	clock    Clock
	out      macro.Emitter

	// held remembers what each pressed position resolved to, so its release
	// undoes the same action even if the layers changed meanwhile.
	held map[keymap.Position]keycode.Code
	// swallowed marks positions whose press went to the leader recognizer.
	swallowed map[keymap.Position]bool

	log *zap.SugaredLogger
}

func NewDispatcher(cfg Config) (*Dispatcher, error) {
	if cfg.Output == nil {
		return nil, errors.New("no output configured")
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop().Sugar()
	}
	if cfg.Keymap == nil {
		cfg.Keymap = keymap.Planck()
	}
	if cfg.Macros == nil {
		cfg.Macros = macro.Desktops()
	}
	if cfg.LeaderEntries == nil {
		cfg.LeaderEntries = leader.Dictionary()
	}
	if cfg.Audio == nil {
		cfg.Audio = noAudio{}
	}
	if cfg.Clock == nil {
		cfg.Clock = realClock{}
	}

	if err := cfg.Keymap.Validate(); err != nil {
		return nil, fmt.Errorf("validate keymap: %w", err)
	}

	var store layer.DefaultLayerStore
	if cfg.Settings != nil {
		store = cfg.Settings
	}
	layers, err := layer.NewStack(store, cfg.Log.Named("layers"))
	if err != nil {
		return nil, fmt.Errorf("create layer stack: %w", err)
	}

	engine := macro.NewEngine(cfg.Macros, cfg.Output, cfg.Sleeper, cfg.MacroInterval, cfg.Log.Named("macro"))

	return &Dispatcher{
		keymap:    cfg.Keymap,
		layers:    layers,
		macros:    engine,
		leader:    leader.NewRecognizer(cfg.LeaderEntries, cfg.LeaderTimeout, engine, cfg.Log.Named("leader")),
		settings:  cfg.Settings,
		audio:     cfg.Audio,
		clock:     cfg.Clock,
		out:       cfg.Output,
		held:      make(map[keymap.Position]keycode.Code),
		swallowed: make(map[keymap.Position]bool),
		log:       cfg.Log,
	}, nil
}

func (d *Dispatcher) Layers() *layer.Stack {
	return d.layers
}

func (d *Dispatcher) LeaderState() leader.State {
	return d.leader.State()
}

// Start plays the startup notification.
func (d *Dispatcher) Start() {
	d.audio.OnStartup()
}

// Shutdown releases every forwarded key still held and plays the shutdown
// notification.
func (d *Dispatcher) Shutdown() {
	for pos, code := range d.held {
		if forwardable(code) {
			d.send(code, false)
		}
		delete(d.held, pos)
	}
	d.audio.OnShutdown()
}

// OnKeyEvent handles one transition and reports whether the original key
// code should still be transmitted.
func (d *Dispatcher) OnKeyEvent(pos keymap.Position, pressed bool) bool {
	_, forward := d.handle(pos, pressed)
	return forward
}

// Process handles ev and transmits its key code if it was not consumed.
func (d *Dispatcher) Process(ev KeyEvent) {
	code, forward := d.handle(ev.Pos, ev.Pressed)
	if forward && code != keycode.No {
		d.send(code, ev.Pressed)
	}
}

// Poll expires a leader session whose timeout has passed. Call it once per
// scan cycle.
func (d *Dispatcher) Poll() {
	d.leader.Poll(d.clock.Now())
}

func (d *Dispatcher) handle(pos keymap.Position, pressed bool) (keycode.Code, bool) {
	code, ok := d.lookup(pos, pressed)
	if !ok {
		return keycode.No, false
	}

	switch code.Kind() {
	case keycode.KindLayer:
		d.handleLayer(code, pressed)
		return code, false

	case keycode.KindMacro:
		if pressed {
			id, _ := code.MacroID()
			d.macros.Run(id)
		}
		return code, false

	case keycode.KindLeader:
		if pressed {
			d.leader.Start(d.clock.Now())
		}
		return code, false
	}

	return code, true
}

// lookup resolves the code for a transition. It returns false when the
// transition is consumed before any action applies.
func (d *Dispatcher) lookup(pos keymap.Position, pressed bool) (keycode.Code, bool) {
	if !pressed {
		if d.swallowed[pos] {
			delete(d.swallowed, pos)
			return keycode.No, false
		}
		if code, ok := d.held[pos]; ok {
			delete(d.held, pos)
			return code, true
		}
	}

	code, err := d.keymap.Resolve(pos, d.layers)
	if err != nil {
		d.log.Warnw("ignoring key event", "pos", pos, "pressed", pressed, "error", err)
		return keycode.No, false
	}
	if !pressed {
		return code, true
	}

	if code.Kind() != keycode.KindLeader && d.leader.Feed(code, d.clock.Now()) {
		d.swallowed[pos] = true
		return keycode.No, false
	}

	d.held[pos] = code
	return code, true
}

func (d *Dispatcher) handleLayer(code keycode.Code, pressed bool) {
	switch code {
	case keycode.Qwerty:
		if pressed {
			d.audio.OnLayerSwitchedToDefault()
			d.layers.SetDefault(layer.Qwerty)
		}

	case keycode.Lower:
		d.toggle(layer.Lower, pressed)

	case keycode.Raise:
		d.toggle(layer.Raise, pressed)

	case keycode.Plover:
		if pressed {
			d.enterExclusive(layer.Plover)
		}

	case keycode.ExitPlover:
		if pressed {
			d.exitExclusive(layer.Plover)
		}

	default:
		l, ok := code.MomentaryLayer()
		switch {
		case !ok:
		case l.IsExclusive() && pressed:
			d.enterExclusive(l)
		case l.IsExclusive():
			d.exitExclusive(l)
		default:
			d.toggle(l, pressed)
		}
	}
}

func (d *Dispatcher) enterExclusive(l layer.ID) {
	if cur, ok := d.layers.Exclusive(); ok && cur == l {
		return
	}
	d.audio.OnPloverEnter()
	d.layers.EnterExclusive(l)
	d.enableNKRO()
}

func (d *Dispatcher) exitExclusive(l layer.ID) {
	if cur, ok := d.layers.Exclusive(); !ok || cur != l {
		return
	}
	d.audio.OnPloverExit()
	d.layers.ExitExclusive(l)
}

func (d *Dispatcher) toggle(l layer.ID, on bool) {
	if on {
		d.layers.Activate(l)
	} else {
		d.layers.Deactivate(l)
	}
}

// enableNKRO turns on n-key rollover, which steno input needs.
func (d *Dispatcher) enableNKRO() {
	if d.settings == nil {
		return
	}

	enabled, err := d.settings.GetNKRO()
	if err != nil {
		d.log.Warnw("read nkro setting", "error", err)
	}
	if enabled {
		return
	}

	if err := d.settings.SetNKRO(true); err != nil {
		d.log.Warnw("persist nkro setting", "error", err)
	}
}

func (d *Dispatcher) send(code keycode.Code, pressed bool) {
	if err := d.out.SendKey(code, pressed); err != nil {
		d.log.Warnw("send key", "code", code, "pressed", pressed, "error", err)
	}
}

func forwardable(code keycode.Code) bool {
	switch code.Kind() {
	case keycode.KindBasic, keycode.KindBoard:
		return true
	}
	return false
}
