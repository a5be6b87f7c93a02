package layer

import (
	"fmt"
	"go.uber.org/zap"
	"slices"
)

// Stack holds the active layers on top of the default layer.
//
// Lower and Raise together force Adjust on (the tri-layer rule), and an
// exclusive layer (Plover) suppresses every other layer toggle while active.
// A Stack is owned by a single event loop and is not safe for concurrent use.
type Stack struct {
	// active is kept in activation order, oldest first.
	active    []ID
	def       ID
	exclusive ID
	inExcl    bool

	store DefaultLayerStore
	log   *zap.SugaredLogger
}

// NewStack loads the persisted default layer from store and returns a stack
// with no other layer active.
func NewStack(store DefaultLayerStore, log *zap.SugaredLogger) (*Stack, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	def := Qwerty
	if store != nil {
		stored, err := store.GetDefaultLayer()
		if err != nil {
			return nil, fmt.Errorf("get default layer: %w", err)
		}
		if stored.Valid() {
			def = stored
		} else {
			log.Warnw("ignoring unknown persisted default layer", "layer", stored)
		}
	}

	return &Stack{
		def:   def,
		store: store,
		log:   log,
	}, nil
}

// Default returns the default layer.
func (s *Stack) Default() ID {
	return s.def
}

// IsActive reports whether l is active. The default layer is always active.
func (s *Stack) IsActive(l ID) bool {
	return l == s.def || slices.Contains(s.active, l)
}

// Exclusive returns the exclusive layer, if one is entered.
func (s *Stack) Exclusive() (ID, bool) {
	return s.exclusive, s.inExcl
}

// Priority returns the layers to search when resolving a key: the most
// recently activated layer first and the default layer last.
func (s *Stack) Priority() []ID {
	out := make([]ID, 0, len(s.active)+1)
	for i := len(s.active) - 1; i >= 0; i-- {
		out = append(out, s.active[i])
	}
	return append(out, s.def)
}

// Activate turns l on. While an exclusive layer is entered every other
// activation is ignored and Activate returns false. Activating an exclusive
// layer enters it as with EnterExclusive.
func (s *Stack) Activate(l ID) bool {
	if s.inExcl && l != s.exclusive {
		s.log.Debugw("layer toggle ignored in exclusive mode", "layer", l, "exclusive", s.exclusive)
		return false
	}
	if l.IsExclusive() {
		if !s.inExcl {
			s.EnterExclusive(l)
		}
		return true
	}

	s.on(l)
	if l == Lower || l == Raise {
		s.updateTriLayer()
	}
	return true
}

// Deactivate turns l off. Deactivating the entered exclusive layer leaves it
// as with ExitExclusive.
func (s *Stack) Deactivate(l ID) {
	if s.inExcl && l == s.exclusive {
		s.ExitExclusive(l)
		return
	}
	s.off(l)
	if l == Lower || l == Raise {
		s.updateTriLayer()
	}
}

// SetDefault replaces the default layer and persists it. A failing store is
// logged; the in-memory default still changes.
func (s *Stack) SetDefault(l ID) {
	s.def = l
	s.off(l)
	s.log.Infow("default layer set", "layer", l)

	if s.store == nil {
		return
	}
	if err := s.store.SetDefaultLayer(l); err != nil {
		s.log.Warnw("persist default layer", "layer", l, "error", err)
	}
}

// EnterExclusive turns Lower, Raise and Adjust off and activates l as the
// exclusive layer.
func (s *Stack) EnterExclusive(l ID) {
	s.off(Raise)
	s.off(Lower)
	s.off(Adjust)
	s.on(l)
	s.exclusive = l
	s.inExcl = true
	s.log.Debugw("entered exclusive layer", "layer", l)
}

// ExitExclusive leaves the exclusive layer l and returns to the plain default
// layer. It does nothing if l is not the entered exclusive layer.
func (s *Stack) ExitExclusive(l ID) {
	if !s.inExcl || s.exclusive != l {
		return
	}
	s.active = s.active[:0]
	s.inExcl = false
	s.exclusive = 0
	s.log.Debugw("left exclusive layer", "layer", l)
}

// Snapshot is a comparable copy of the stack membership.
type Snapshot struct {
	Default ID
	Active  []ID
}

func (s *Stack) Snapshot() Snapshot {
	return Snapshot{
		Default: s.def,
		Active:  slices.Clone(s.active),
	}
}

func (s Snapshot) Equal(o Snapshot) bool {
	return s.Default == o.Default && slices.Equal(s.Active, o.Active)
}

func (s *Stack) updateTriLayer() {
	if s.IsActive(Lower) && s.IsActive(Raise) {
		s.on(Adjust)
	} else {
		s.off(Adjust)
	}
}

func (s *Stack) on(l ID) {
	if l == s.def || slices.Contains(s.active, l) {
		return
	}
	s.active = append(s.active, l)
	s.log.Debugw("layer on", "layer", l)
}

func (s *Stack) off(l ID) {
	idx := slices.Index(s.active, l)
	if idx < 0 {
		return
	}
	s.active = slices.Delete(s.active, idx, idx+1)
	s.log.Debugw("layer off", "layer", l)
}
