package json

import (
	"codeberg.org/miketth/plancktl/pkg/layer"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewStoreDefaults(t *testing.T) {
	s, err := NewSettingsStore(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatalf("NewSettingsStore: %v", err)
	}
	defer s.Close()

	l, err := s.GetDefaultLayer()
	if err != nil || l != layer.Qwerty {
		t.Errorf("GetDefaultLayer() = %v, %v", l, err)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s, err := NewSettingsStore(path)
	if err != nil {
		t.Fatalf("NewSettingsStore: %v", err)
	}
	if err := s.SetDefaultLayer(layer.Plover); err != nil {
		t.Fatalf("SetDefaultLayer: %v", err)
	}
	if err := s.SetNKRO(true); err != nil {
		t.Fatalf("SetNKRO: %v", err)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.Close()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !strings.Contains(string(raw), `"default_layer":"plover"`) {
		t.Errorf("file contents = %s", raw)
	}

	s, err = NewSettingsStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	if l, _ := s.GetDefaultLayer(); l != layer.Plover {
		t.Errorf("GetDefaultLayer() = %v, want plover", l)
	}
	if nkro, _ := s.GetNKRO(); !nkro {
		t.Error("GetNKRO() = false after reload")
	}
}

func TestCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"default_layer":"dvorak"}`), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := NewSettingsStore(path); err == nil {
		t.Error("expected error for unknown layer in file")
	}
}

func TestSaveLooperSavesOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s, err := NewSettingsStore(path)
	if err != nil {
		t.Fatalf("NewSettingsStore: %v", err)
	}
	if err := s.SetDefaultLayer(layer.Plover); err != nil {
		t.Fatalf("SetDefaultLayer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.SaveLooper(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("SaveLooper error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !strings.Contains(string(raw), "plover") {
		t.Errorf("file contents = %s", raw)
	}
}
