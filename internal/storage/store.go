// Package storage provides the SQLite-backed record store. One relation
// keyed by canonical date string, whole-row upsert semantics.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"lifescore/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// FindByDate returns the record for date, or nil when none exists.
func (s *SQLiteStore) FindByDate(ctx context.Context, date string) (*core.ScoreRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT date, score, note FROM score_records WHERE date = ? LIMIT 1`, date)

	var rec core.ScoreRecord
	var note sql.NullString
	if err := row.Scan(&rec.Date, &rec.Score, &note); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find record by date: %w", err)
	}
	rec.Note = note.String
	return &rec, nil
}

// Upsert inserts or fully replaces the row sharing the record's date. The
// write is atomic per record; a blank note is stored as NULL.
func (s *SQLiteStore) Upsert(ctx context.Context, rec core.ScoreRecord) error {
	var note sql.NullString
	if rec.Note != "" {
		note = sql.NullString{String: rec.Note, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO score_records (date, score, note) VALUES (?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET score = excluded.score, note = excluded.note`,
		rec.Date, rec.Score, note)
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}

	slog.DebugContext(ctx, "Record saved to SQLite",
		"date", rec.Date,
		"score", rec.Score,
		"has_note", rec.Note != "")

	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, date string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM score_records WHERE date = ?`, date); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// ListAll returns every record ordered by date descending.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]core.ScoreRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, score, note FROM score_records ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []core.ScoreRecord
	for rows.Next() {
		var rec core.ScoreRecord
		var note sql.NullString
		if err := rows.Scan(&rec.Date, &rec.Score, &note); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Note = note.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// AggregateMonth sums scores and counts rows whose date starts with the
// given "YYYY-MM" prefix. TotalScore is nil when the month has no rows.
func (s *SQLiteStore) AggregateMonth(ctx context.Context, prefix string) (core.MonthAggregate, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT SUM(score), COUNT(date) FROM score_records WHERE date LIKE ? || '%'`, prefix)

	var total sql.NullInt64
	var count int
	if err := row.Scan(&total, &count); err != nil {
		return core.MonthAggregate{}, fmt.Errorf("aggregate month %s: %w", prefix, err)
	}

	agg := core.MonthAggregate{RecordCount: count}
	if total.Valid {
		agg.TotalScore = &total.Int64
	}
	return agg, nil
}
