package main

import (
	"codeberg.org/miketth/plancktl/pkg/settings/sqlite"
	"codeberg.org/miketth/plancktl/pkg/settings/sqlite/migrations"
	"context"
	"database/sql"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"path/filepath"
	"strings"
	"testing"
)

func TestDumpSchema(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "dump.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := migrations.Migrate(db, zap.NewNop().Sugar()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	var out strings.Builder
	if err := dumpSchema(context.Background(), sqlite.New(db), &out); err != nil {
		t.Fatalf("dumpSchema: %v", err)
	}

	dump := strings.ToLower(out.String())
	for _, want := range []string{"create table settings", "schema_migrations", "create table sqlite_master"} {
		if !strings.Contains(dump, want) {
			t.Errorf("schema dump missing %q:\n%s", want, dump)
		}
	}
}
