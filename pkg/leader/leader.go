// Package leader recognises short key sequences typed after a leader key.
package leader

import (
	"codeberg.org/miketth/plancktl/pkg/keycode"
	"codeberg.org/miketth/plancktl/pkg/macro"
	"go.uber.org/zap"
	"slices"
	"time"
)

const DefaultTimeout = 300 * time.Millisecond

type State int

const (
	Idle State = iota
	Collecting
)

func (s State) String() string {
	if s == Collecting {
		return "collecting"
	}
	return "idle"
}

// Entry binds a key sequence to the macro played when it is typed.
type Entry struct {
	Sequence []keycode.Code
	Action   macro.Descriptor
}

// Player plays the action of a matched entry.
type Player interface {
	Play(d macro.Descriptor)
}

// Dictionary returns the built-in sequences.
func Dictionary() []Entry {
	return []Entry{
		{
			Sequence: []keycode.Code{keycode.F},
			Action:   macro.New("leader f", macro.Tap(keycode.S)),
		},
	}
}

// Recognizer collects keys after the leader key until they match an entry,
// can no longer match one, or the timeout passes without a key. The timeout
// restarts with every collected key.
type Recognizer struct {
	entries []Entry
	timeout time.Duration
	player  Player
	log     *zap.SugaredLogger

	state  State
	buffer []keycode.Code
	last   time.Time
}

// NewRecognizer drops entries with an empty sequence.
func NewRecognizer(entries []Entry, timeout time.Duration, player Player, log *zap.SugaredLogger) *Recognizer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	valid := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if len(e.Sequence) == 0 {
			log.Warnw("ignoring leader entry without keys", "action", e.Action.Name())
			continue
		}
		valid = append(valid, e)
	}

	return &Recognizer{
		entries: valid,
		timeout: timeout,
		player:  player,
		log:     log,
	}
}

func (r *Recognizer) State() State {
	return r.state
}

// Buffer returns a copy of the keys collected in the current session.
func (r *Recognizer) Buffer() []keycode.Code {
	return slices.Clone(r.buffer)
}

// Start begins a new session, dropping any session in progress.
func (r *Recognizer) Start(now time.Time) {
	if r.state == Collecting {
		r.log.Debugw("leader restarted", "abandoned", r.buffer)
	}
	r.state = Collecting
	r.buffer = r.buffer[:0]
	r.last = now
}

// Feed offers a pressed key to the recognizer and reports whether it was
// consumed by the session. Keys arriving while idle or after the timeout are
// not consumed.
func (r *Recognizer) Feed(code keycode.Code, now time.Time) bool {
	if r.state != Collecting {
		return false
	}
	if r.expired(now) {
		r.log.Debugw("leader timed out", "buffer", r.buffer)
		r.reset()
		return false
	}

	r.buffer = append(r.buffer, code)
	r.last = now

	matched, prefix := r.match()
	switch {
	case matched != nil:
		r.log.Debugw("leader sequence matched", "buffer", r.buffer, "action", matched.Action.Name())
		r.reset()
		if r.player != nil {
			r.player.Play(matched.Action)
		}
	case !prefix:
		r.log.Debugw("leader sequence abandoned", "buffer", r.buffer)
		r.reset()
	}

	return true
}

// Poll ends a session whose timeout has passed. It is meant to be called once
// per scan cycle.
func (r *Recognizer) Poll(now time.Time) {
	if r.state == Collecting && r.expired(now) {
		r.log.Debugw("leader timed out", "buffer", r.buffer)
		r.reset()
	}
}

func (r *Recognizer) expired(now time.Time) bool {
	return now.Sub(r.last) > r.timeout
}

// match returns the entry equal to the buffer, if any, and whether the buffer
// is a proper prefix of at least one entry.
func (r *Recognizer) match() (*Entry, bool) {
	prefix := false
	for i := range r.entries {
		seq := r.entries[i].Sequence
		switch {
		case slices.Equal(seq, r.buffer):
			return &r.entries[i], false
		case len(seq) > len(r.buffer) && slices.Equal(seq[:len(r.buffer)], r.buffer):
			prefix = true
		}
	}
	return nil, prefix
}

func (r *Recognizer) reset() {
	r.state = Idle
	r.buffer = r.buffer[:0]
}
