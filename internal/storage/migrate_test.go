package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Rows written under the original two-column schema must survive the note
// migration with note unset.
func TestNoteColumnMigrationPreservesRows(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lifescore.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		t.Fatalf("create sqlite driver: %v", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("create iofs source: %v", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		t.Fatalf("create migrate instance: %v", err)
	}

	if err := m.Migrate(1); err != nil {
		t.Fatalf("migrate to version 1: %v", err)
	}
	if _, err := db.Exec(
		`INSERT INTO score_records (date, score) VALUES (?, ?)`, "2025-08-21", 4); err != nil {
		t.Fatalf("insert two-column row: %v", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		t.Fatalf("migrate up: %v", err)
	}

	var score int
	var note sql.NullString
	err = db.QueryRow(
		`SELECT score, note FROM score_records WHERE date = ?`, "2025-08-21").Scan(&score, &note)
	if err != nil {
		t.Fatalf("read migrated row: %v", err)
	}
	if score != 4 {
		t.Fatalf("score = %d, want 4", score)
	}
	if note.Valid {
		t.Fatalf("pre-existing row note = %q, want NULL", note.String)
	}
	m.Close()

	// The store opens the migrated file and reads the old row back with
	// no note.
	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	got, err := store.FindByDate(context.Background(), "2025-08-21")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got == nil || got.Score != 4 || got.Note != "" {
		t.Fatalf("got %+v, want score 4 with no note", got)
	}
}
