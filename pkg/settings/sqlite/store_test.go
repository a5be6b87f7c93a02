package sqlite

import (
	"codeberg.org/miketth/plancktl/pkg/layer"
	"go.uber.org/zap"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T, path string) *SettingsStore {
	t.Helper()

	s, err := NewSettingsStore(path, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewSettingsStore: %v", err)
	}
	return s
}

func TestDefaults(t *testing.T) {
	s := newTestStore(t, filepath.Join(t.TempDir(), "settings.db"))
	defer s.Close()

	l, err := s.GetDefaultLayer()
	if err != nil || l != layer.Qwerty {
		t.Errorf("GetDefaultLayer() = %v, %v", l, err)
	}
	nkro, err := s.GetNKRO()
	if err != nil || nkro {
		t.Errorf("GetNKRO() = %v, %v", nkro, err)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")

	s := newTestStore(t, path)
	if err := s.SetDefaultLayer(layer.Plover); err != nil {
		t.Fatalf("SetDefaultLayer: %v", err)
	}
	if err := s.SetNKRO(true); err != nil {
		t.Fatalf("SetNKRO: %v", err)
	}
	s.Close()

	// migrations are a no-op the second time
	s = newTestStore(t, path)
	defer s.Close()

	if l, _ := s.GetDefaultLayer(); l != layer.Plover {
		t.Errorf("GetDefaultLayer() = %v, want plover", l)
	}
	if nkro, _ := s.GetNKRO(); !nkro {
		t.Error("GetNKRO() = false after reopen")
	}
}
