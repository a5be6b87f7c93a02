package layer

import (
	"errors"
	"slices"
	"testing"
)

type fakeStore struct {
	layer   ID
	getErr  error
	setErr  error
	written []ID
}

func (f *fakeStore) GetDefaultLayer() (ID, error) {
	return f.layer, f.getErr
}

func (f *fakeStore) SetDefaultLayer(l ID) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.layer = l
	f.written = append(f.written, l)
	return nil
}

func newTestStack(t *testing.T) *Stack {
	t.Helper()

	s, err := NewStack(&fakeStore{}, nil)
	if err != nil {
		t.Fatalf("new stack: %v", err)
	}
	return s
}

func TestNewStackLoadsDefault(t *testing.T) {
	s, err := NewStack(&fakeStore{layer: Plover}, nil)
	if err != nil {
		t.Fatalf("new stack: %v", err)
	}
	if s.Default() != Plover {
		t.Errorf("Default() = %v, want %v", s.Default(), Plover)
	}

	s, err = NewStack(&fakeStore{layer: ID(99)}, nil)
	if err != nil {
		t.Fatalf("new stack: %v", err)
	}
	if s.Default() != Qwerty {
		t.Errorf("Default() with unknown stored layer = %v, want %v", s.Default(), Qwerty)
	}

	if _, err := NewStack(&fakeStore{getErr: errors.New("boom")}, nil); err == nil {
		t.Error("expected error from failing store")
	}
}

func TestTriLayer(t *testing.T) {
	type op struct {
		layer ID
		on    bool
	}

	tests := []struct {
		name string
		ops  []op
	}{
		{"lower only", []op{{Lower, true}}},
		{"raise only", []op{{Raise, true}}},
		{"lower then raise", []op{{Lower, true}, {Raise, true}}},
		{"raise then lower", []op{{Raise, true}, {Lower, true}}},
		{"release lower", []op{{Lower, true}, {Raise, true}, {Lower, false}}},
		{"release raise", []op{{Lower, true}, {Raise, true}, {Raise, false}}},
		{"release both", []op{{Lower, true}, {Raise, true}, {Raise, false}, {Lower, false}}},
		{"re-press", []op{{Lower, true}, {Raise, true}, {Raise, false}, {Raise, true}}},
		{"spurious release", []op{{Raise, false}, {Lower, true}, {Lower, false}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStack(t)
			for i, o := range tt.ops {
				if o.on {
					s.Activate(o.layer)
				} else {
					s.Deactivate(o.layer)
				}

				want := s.IsActive(Lower) && s.IsActive(Raise)
				if got := s.IsActive(Adjust); got != want {
					t.Fatalf("after op %d: adjust active = %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestPriorityOrder(t *testing.T) {
	s := newTestStack(t)
	s.Activate(Navigation)
	s.Activate(Lower)
	s.Activate(Raise)

	want := []ID{Adjust, Raise, Lower, Navigation, Qwerty}
	if got := s.Priority(); !slices.Equal(got, want) {
		t.Errorf("Priority() = %v, want %v", got, want)
	}
}

func TestToggleIsIdempotent(t *testing.T) {
	tests := []struct {
		name string
		held []ID
		key  ID
	}{
		{"lower from empty", nil, Lower},
		{"raise while lower held", []ID{Lower}, Raise},
		{"lower while raise held", []ID{Raise}, Lower},
		{"navigation while adjust", []ID{Lower, Raise}, Navigation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStack(t)
			for _, l := range tt.held {
				s.Activate(l)
			}
			before := s.Snapshot()

			s.Activate(tt.key)
			s.Deactivate(tt.key)

			if after := s.Snapshot(); !after.Equal(before) {
				t.Errorf("snapshot %+v, want %+v", after, before)
			}
		})
	}
}

func TestExclusive(t *testing.T) {
	s := newTestStack(t)
	s.Activate(Lower)
	s.Activate(Raise)

	s.EnterExclusive(Plover)
	for _, l := range []ID{Lower, Raise, Adjust} {
		if s.IsActive(l) {
			t.Errorf("%v still active after entering plover", l)
		}
	}
	if !s.IsActive(Plover) {
		t.Fatal("plover not active")
	}

	for _, l := range []ID{Lower, Raise, Adjust, Navigation} {
		if s.Activate(l) {
			t.Errorf("Activate(%v) accepted while plover is active", l)
		}
		if s.IsActive(l) {
			t.Errorf("%v active while plover is active", l)
		}
	}

	s.ExitExclusive(Lower)
	if !s.IsActive(Plover) {
		t.Fatal("exiting a non-exclusive layer left plover")
	}

	s.ExitExclusive(Plover)
	if got := s.Priority(); !slices.Equal(got, []ID{Qwerty}) {
		t.Errorf("Priority() after exit = %v, want only default", got)
	}
	if _, ok := s.Exclusive(); ok {
		t.Error("still exclusive after exit")
	}
	if !s.Activate(Lower) {
		t.Error("toggles still ignored after exit")
	}
}

func TestActivateExclusiveLayer(t *testing.T) {
	s := newTestStack(t)
	s.Activate(Lower)
	s.Activate(Raise)

	if !s.Activate(Plover) {
		t.Fatal("Activate(plover) refused")
	}
	for _, l := range []ID{Lower, Raise, Adjust} {
		if s.IsActive(l) {
			t.Errorf("%v still active after activating plover", l)
		}
	}
	if l, ok := s.Exclusive(); !ok || l != Plover {
		t.Fatalf("Exclusive() = %v, %v, want plover, true", l, ok)
	}
	if s.Activate(Raise) {
		t.Error("Activate(raise) accepted after activating plover")
	}

	s.Deactivate(Plover)
	if _, ok := s.Exclusive(); ok {
		t.Error("still exclusive after deactivating plover")
	}
	if got := s.Priority(); !slices.Equal(got, []ID{Qwerty}) {
		t.Errorf("Priority() after deactivate = %v, want only default", got)
	}
}

func TestSetDefaultPersists(t *testing.T) {
	store := &fakeStore{layer: Plover}
	s, err := NewStack(store, nil)
	if err != nil {
		t.Fatalf("new stack: %v", err)
	}

	s.SetDefault(Qwerty)
	if s.Default() != Qwerty {
		t.Errorf("Default() = %v, want %v", s.Default(), Qwerty)
	}
	if !slices.Equal(store.written, []ID{Qwerty}) {
		t.Errorf("store writes = %v, want [%v]", store.written, Qwerty)
	}

	store.setErr = errors.New("disk full")
	s.SetDefault(Plover)
	if s.Default() != Plover {
		t.Errorf("Default() after failed persist = %v, want %v", s.Default(), Plover)
	}
}

func TestParse(t *testing.T) {
	for _, l := range All {
		got, err := Parse(l.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", l.String(), err)
		}
		if got != l {
			t.Errorf("Parse(%q) = %v, want %v", l.String(), got, l)
		}
	}
	if _, err := Parse("colemak"); err == nil {
		t.Error("expected error for unknown layer")
	}
}

func TestTextMarshaling(t *testing.T) {
	text, err := Navigation.MarshalText()
	if err != nil || string(text) != "navigation" {
		t.Fatalf("MarshalText() = %q, %v", text, err)
	}

	var l ID
	if err := l.UnmarshalText([]byte("adjust")); err != nil || l != Adjust {
		t.Errorf("UnmarshalText(adjust) = %v, %v", l, err)
	}
	if err := l.UnmarshalText([]byte("dvorak")); err == nil {
		t.Error("expected error for unknown layer")
	}
	if _, err := ID(42).MarshalText(); err == nil {
		t.Error("expected error marshaling unknown layer")
	}
}
