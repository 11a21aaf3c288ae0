package repo

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestOpenSQLite_CreatesAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "juzgado.db")
	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	// Running it twice must be a no-op.
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("second automigrate: %v", err)
	}

	if _, err := GetTypeTrial(context.Background(), db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty schema, got %v", err)
	}
}

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "juzgado.db")
	if _, err := OpenSQLite(path); err == nil {
		t.Fatal("expected error for missing parent directory")
	}
}
