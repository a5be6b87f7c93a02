package json

import (
	"codeberg.org/miketth/plancktl/pkg/layer"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

type settings struct {
	DefaultLayer layer.ID `json:"default_layer"`
	NKRO         bool     `json:"nkro"`
}

// SettingsStore keeps settings in memory and writes them to a JSON file from
// SaveLooper.
type SettingsStore struct {
	settings settings
	file     *os.File
	lock     sync.Mutex
	dirty    bool
}

func NewSettingsStore(filename string) (*SettingsStore, error) {
	fileExists := true
	info, err := os.Stat(filename)
	if os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		fileExists = false
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	store := &SettingsStore{
		settings: settings{DefaultLayer: layer.Qwerty},
		file:     file,
		dirty:    true,
	}

	if fileExists {
		err = store.load()
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("load: %w", err)
		}

		store.dirty = false
	}

	return store, nil
}

func (s *SettingsStore) Close() error {
	return s.file.Close()
}

func (s *SettingsStore) load() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	_, err := s.file.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	dec := json.NewDecoder(s.file)
	err = dec.Decode(&s.settings)
	if err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	return nil
}

// Save writes the settings if they changed since the last save.
func (s *SettingsStore) Save() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.dirty {
		return nil
	}

	_, err := s.file.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	err = s.file.Truncate(0)
	if err != nil {
		return fmt.Errorf("truncate file: %w", err)
	}

	enc := json.NewEncoder(s.file)
	err = enc.Encode(s.settings)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	s.dirty = false

	return nil
}

// SaveLooper saves every interval and once more when ctx is done, then closes
// the file.
func (s *SettingsStore) SaveLooper(ctx context.Context, interval time.Duration) error {
	defer s.file.Close()

	for {
		select {
		case <-ctx.Done():
			err := s.Save()
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}

			return ctx.Err()
		case <-time.After(interval):
			err := s.Save()
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}
		}
	}
}

func (s *SettingsStore) GetDefaultLayer() (layer.ID, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.settings.DefaultLayer, nil
}

func (s *SettingsStore) SetDefaultLayer(l layer.ID) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.settings.DefaultLayer = l
	s.dirty = true
	return nil
}

func (s *SettingsStore) GetNKRO() (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.settings.NKRO, nil
}

func (s *SettingsStore) SetNKRO(enabled bool) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.settings.NKRO = enabled
	s.dirty = true
	return nil
}
