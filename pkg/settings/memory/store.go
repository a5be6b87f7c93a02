package memory

import (
	"codeberg.org/miketth/plancktl/pkg/layer"
	"sync"
)

type SettingsStore struct {
	defaultLayer layer.ID
	nkro         bool
	lock         sync.Mutex
}

func NewSettingsStore() *SettingsStore {
	return &SettingsStore{
		defaultLayer: layer.Qwerty,
	}
}

func (s *SettingsStore) GetDefaultLayer() (layer.ID, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.defaultLayer, nil
}

func (s *SettingsStore) SetDefaultLayer(l layer.ID) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.defaultLayer = l
	return nil
}

func (s *SettingsStore) GetNKRO() (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.nkro, nil
}

func (s *SettingsStore) SetNKRO(enabled bool) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.nkro = enabled
	return nil
}
