// Package services orchestrates the record store: validation, note
// carry-forward, clock-resolved saves, monthly aggregates, and the live
// record stream consumed by the timeline view-state.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"lifescore/internal/core"
)

// ScoreService owns the write path to the store and fans record changes
// out to watchers.
type ScoreService struct {
	store  Store
	clock  Clock
	events EventPublisher // may be nil

	watchers watcherSet
}

func NewScoreService(store Store, clock Clock, events EventPublisher) *ScoreService {
	return &ScoreService{store: store, clock: clock, events: events}
}

// Save records a score for the given canonical date. An existing note on
// that date is carried forward: the store only knows whole-row upserts, so
// the merge is an explicit read-modify-write here.
func (s *ScoreService) Save(ctx context.Context, score int, date string) (core.ScoreRecord, error) {
	if err := core.ValidateScore(score); err != nil {
		return core.ScoreRecord{}, err
	}
	if err := core.ValidateDate(date); err != nil {
		return core.ScoreRecord{}, err
	}

	existing, err := s.store.FindByDate(ctx, date)
	if err != nil {
		return core.ScoreRecord{}, fmt.Errorf("find existing record: %w", err)
	}
	rec := core.ScoreRecord{Date: date, Score: score}
	if existing != nil {
		rec.Note = existing.Note
	}

	if err := s.store.Upsert(ctx, rec); err != nil {
		return core.ScoreRecord{}, fmt.Errorf("save record: %w", err)
	}

	slog.InfoContext(ctx, "Score saved",
		"date", rec.Date, "score", rec.Score, "kept_note", rec.Note != "")

	s.notify(ctx)
	s.publishSaved(ctx, rec)
	return rec, nil
}

// SaveToday records a score for the injected clock's current day.
func (s *ScoreService) SaveToday(ctx context.Context, score int) (core.ScoreRecord, error) {
	return s.Save(ctx, score, core.FormatDate(s.clock.Today()))
}

// UpdateNote replaces the note on an existing record. A blank note is
// normalized to "no note".
func (s *ScoreService) UpdateNote(ctx context.Context, rec core.ScoreRecord, note string) error {
	updated := rec
	updated.Note = core.NormalizeNote(note)
	if err := updated.Validate(); err != nil {
		return err
	}

	if err := s.store.Upsert(ctx, updated); err != nil {
		return fmt.Errorf("update note: %w", err)
	}

	slog.InfoContext(ctx, "Note updated", "date", rec.Date, "has_note", updated.Note != "")

	s.notify(ctx)
	s.publishSaved(ctx, updated)
	return nil
}

// Delete removes the record. Not part of the default flow but kept for
// explicit removal.
func (s *ScoreService) Delete(ctx context.Context, rec core.ScoreRecord) error {
	if err := s.store.Delete(ctx, rec.Date); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	s.notify(ctx)
	if s.events != nil {
		if err := s.events.PublishScoreDeleted(ctx, rec.Date); err != nil {
			slog.ErrorContext(ctx, "Failed to publish delete event",
				"date", rec.Date, "error", err)
		}
	}
	return nil
}

// Find returns the record for date, or nil when none exists.
func (s *ScoreService) Find(ctx context.Context, date string) (*core.ScoreRecord, error) {
	if err := core.ValidateDate(date); err != nil {
		return nil, err
	}
	return s.store.FindByDate(ctx, date)
}

// ListAll returns every record, newest date first.
func (s *ScoreService) ListAll(ctx context.Context) ([]core.ScoreRecord, error) {
	return s.store.ListAll(ctx)
}

// MonthlySummary runs a single aggregate query filtered by the month's
// date prefix. A month with no rows yields the zero summary.
func (s *ScoreService) MonthlySummary(ctx context.Context, ym core.YearMonth) (core.MonthlySummary, error) {
	agg, err := s.store.AggregateMonth(ctx, ym.Prefix())
	if err != nil {
		return core.MonthlySummary{}, fmt.Errorf("monthly summary %s: %w", ym, err)
	}
	return agg.Summary(), nil
}

func (s *ScoreService) publishSaved(ctx context.Context, rec core.ScoreRecord) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishScoreSaved(ctx, rec.Date, rec.Score); err != nil {
		// The record is saved locally; the event stream is best effort.
		slog.ErrorContext(ctx, "Failed to publish save event",
			"date", rec.Date, "error", err)
	}
}
