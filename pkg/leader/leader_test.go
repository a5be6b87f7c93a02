package leader

import (
	"codeberg.org/miketth/plancktl/pkg/keycode"
	"codeberg.org/miketth/plancktl/pkg/macro"
	"testing"
	"time"
)

type fakePlayer struct {
	played []string
}

func (f *fakePlayer) Play(d macro.Descriptor) {
	f.played = append(f.played, d.Name())
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func newTestRecognizer(t *testing.T, entries []Entry) (*Recognizer, *fakePlayer) {
	t.Helper()

	p := &fakePlayer{}
	return NewRecognizer(entries, DefaultTimeout, p, nil), p
}

func TestMatchSingleKey(t *testing.T) {
	r, p := newTestRecognizer(t, Dictionary())

	r.Start(at(0))
	if !r.Feed(keycode.F, at(50)) {
		t.Fatal("F was not consumed")
	}

	if len(p.played) != 1 || p.played[0] != "leader f" {
		t.Errorf("played = %v, want [leader f]", p.played)
	}
	if r.State() != Idle {
		t.Errorf("state = %v, want idle", r.State())
	}

	d := Dictionary()[0].Action
	want := []macro.Step{macro.Down(keycode.S), macro.Up(keycode.S)}
	got := d.Expand()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("leader f expands to %v, want %v", got, want)
	}
}

func TestUnknownKeyAbandons(t *testing.T) {
	r, p := newTestRecognizer(t, Dictionary())

	r.Start(at(0))
	if !r.Feed(keycode.Q, at(10)) {
		t.Error("Q was not consumed by the session")
	}
	if len(p.played) != 0 {
		t.Errorf("played = %v, want nothing", p.played)
	}
	if r.State() != Idle {
		t.Errorf("state = %v, want idle", r.State())
	}

	if r.Feed(keycode.F, at(20)) {
		t.Error("key consumed after the session ended")
	}
}

func TestTimeout(t *testing.T) {
	r, p := newTestRecognizer(t, Dictionary())

	r.Start(at(0))
	r.Poll(at(300))
	if r.State() != Collecting {
		t.Fatal("session ended at the timeout")
	}

	r.Poll(at(301))
	if r.State() != Idle {
		t.Fatal("session survived the timeout")
	}
	if len(p.played) != 0 {
		t.Errorf("played = %v, want nothing", p.played)
	}
}

func TestKeyAtTimeoutIsCollected(t *testing.T) {
	r, p := newTestRecognizer(t, Dictionary())

	r.Start(at(0))
	if !r.Feed(keycode.F, at(300)) {
		t.Fatal("key at the timeout was not consumed")
	}
	if len(p.played) != 1 {
		t.Errorf("played = %v, want one action", p.played)
	}
}

func TestLateKeyIsNotConsumed(t *testing.T) {
	r, p := newTestRecognizer(t, Dictionary())

	r.Start(at(0))
	if r.Feed(keycode.F, at(400)) {
		t.Error("key after timeout was consumed")
	}
	if len(p.played) != 0 {
		t.Errorf("played = %v, want nothing", p.played)
	}
	if r.State() != Idle {
		t.Errorf("state = %v, want idle", r.State())
	}
}

func TestMultiKeySequence(t *testing.T) {
	entries := []Entry{
		{Sequence: []keycode.Code{keycode.D, keycode.D}, Action: macro.New("dd")},
		{Sequence: []keycode.Code{keycode.D, keycode.F, keycode.G}, Action: macro.New("dfg")},
		{Sequence: nil, Action: macro.New("broken")},
	}
	r, p := newTestRecognizer(t, entries)

	r.Start(at(0))
	r.Feed(keycode.D, at(200))
	r.Feed(keycode.F, at(400))
	if r.State() != Collecting {
		t.Fatalf("state = %v after a prefix, want collecting", r.State())
	}
	if got := r.Buffer(); len(got) != 2 {
		t.Errorf("buffer = %v, want two keys", got)
	}

	// each key restarts the timeout
	r.Poll(at(650))
	r.Feed(keycode.G, at(650))
	if len(p.played) != 1 || p.played[0] != "dfg" {
		t.Errorf("played = %v, want [dfg]", p.played)
	}

	r.Start(at(1000))
	r.Feed(keycode.D, at(1010))
	r.Feed(keycode.D, at(1020))
	if len(p.played) != 2 || p.played[1] != "dd" {
		t.Errorf("played = %v, want dd second", p.played)
	}
}

func TestRestart(t *testing.T) {
	r, p := newTestRecognizer(t, Dictionary())

	r.Start(at(0))
	r.Start(at(250))
	r.Poll(at(400))
	if r.State() != Collecting {
		t.Fatal("restart did not refresh the timeout")
	}
	r.Feed(keycode.F, at(500))
	if len(p.played) != 1 {
		t.Errorf("played = %v, want one action", p.played)
	}
}

func TestIdleFeed(t *testing.T) {
	r, _ := newTestRecognizer(t, Dictionary())
	if r.Feed(keycode.F, at(0)) {
		t.Error("idle recognizer consumed a key")
	}
}
