package services

import (
	"context"
	"time"

	"lifescore/internal/core"
)

// Store is the durable record store capability. Upsert replaces the whole
// row sharing the same date key.
type Store interface {
	FindByDate(ctx context.Context, date string) (*core.ScoreRecord, error)
	Upsert(ctx context.Context, rec core.ScoreRecord) error
	Delete(ctx context.Context, date string) error
	ListAll(ctx context.Context) ([]core.ScoreRecord, error)
	AggregateMonth(ctx context.Context, prefix string) (core.MonthAggregate, error)
}

// Clock resolves "today" so tests can fix the current day.
type Clock interface {
	Today() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Today() time.Time { return time.Now() }

// EventPublisher receives post-write notifications. Publish failures are
// never fatal to the write that triggered them.
type EventPublisher interface {
	PublishScoreSaved(ctx context.Context, date string, score int) error
	PublishScoreDeleted(ctx context.Context, date string) error
}
