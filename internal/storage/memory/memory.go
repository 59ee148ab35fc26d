// Package memory provides an in-memory record store with the same
// semantics as the SQLite backend. It is the default backend for local
// development and the workhorse for service tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"lifescore/internal/core"
)

type Store struct {
	mu      sync.Mutex
	records map[string]core.ScoreRecord
}

func New() *Store {
	return &Store{records: make(map[string]core.ScoreRecord)}
}

func (s *Store) FindByDate(_ context.Context, date string) (*core.ScoreRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[date]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *Store) Upsert(_ context.Context, rec core.ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Date] = rec
	return nil
}

func (s *Store) Delete(_ context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, date)
	return nil
}

// ListAll returns every record ordered by date descending.
func (s *Store) ListAll(_ context.Context) ([]core.ScoreRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.ScoreRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *Store) AggregateMonth(_ context.Context, prefix string) (core.MonthAggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var agg core.MonthAggregate
	for date, rec := range s.records {
		if !strings.HasPrefix(date, prefix) {
			continue
		}
		if agg.TotalScore == nil {
			agg.TotalScore = new(int64)
		}
		*agg.TotalScore += int64(rec.Score)
		agg.RecordCount++
	}
	return agg, nil
}
