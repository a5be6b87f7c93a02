package sqlite

import (
	"codeberg.org/miketth/plancktl/pkg/layer"
	"codeberg.org/miketth/plancktl/pkg/settings/sqlite/migrations"
	"context"
	"database/sql"
	"fmt"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

type SettingsStore struct {
	db      *sql.DB
	querier *Queries
}

func NewSettingsStore(filename string, log *zap.SugaredLogger) (*SettingsStore, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := migrations.Migrate(db, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	querier := New(db)

	return &SettingsStore{
		db:      db,
		querier: querier,
	}, nil
}

func (s *SettingsStore) Close() error {
	return s.db.Close()
}

func (s *SettingsStore) GetDefaultLayer() (layer.ID, error) {
	settings, err := s.querier.GetSettings(context.Background())
	if err != nil {
		return 0, fmt.Errorf("sqlite select: %w", err)
	}

	return layer.ID(settings.DefaultLayer), nil
}

func (s *SettingsStore) SetDefaultLayer(l layer.ID) error {
	if err := s.querier.SetDefaultLayer(context.Background(), int64(l)); err != nil {
		return fmt.Errorf("sqlite update: %w", err)
	}

	return nil
}

func (s *SettingsStore) GetNKRO() (bool, error) {
	settings, err := s.querier.GetSettings(context.Background())
	if err != nil {
		return false, fmt.Errorf("sqlite select: %w", err)
	}

	return settings.Nkro, nil
}

func (s *SettingsStore) SetNKRO(enabled bool) error {
	if err := s.querier.SetNKRO(context.Background(), enabled); err != nil {
		return fmt.Errorf("sqlite update: %w", err)
	}

	return nil
}
