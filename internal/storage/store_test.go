package storage

import (
	"context"
	"path/filepath"
	"testing"

	"lifescore/internal/core"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "lifescore.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUpsertAndFindByDate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := core.ScoreRecord{Date: "2025-08-21", Score: 5, Note: "good run"}
	if err := store.Upsert(ctx, rec); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := store.FindByDate(ctx, "2025-08-21")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got == nil || *got != rec {
		t.Fatalf("got %+v, want %+v", got, rec)
	}

	missing, err := store.FindByDate(ctx, "2025-08-22")
	if err != nil {
		t.Fatalf("find missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for absent date, got %+v", missing)
	}
}

func TestUpsertReplacesWholeRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, core.ScoreRecord{Date: "2025-08-21", Score: 4, Note: "tired"}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	// The store has no partial updates; replacing with an empty note
	// clears it. Note carry-forward is the service's job.
	if err := store.Upsert(ctx, core.ScoreRecord{Date: "2025-08-21", Score: 5}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := store.FindByDate(ctx, "2025-08-21")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Score != 5 || got.Note != "" {
		t.Fatalf("got %+v, want score 5 with no note", got)
	}
}

func TestListAllNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, rec := range []core.ScoreRecord{
		{Date: "2025-08-19", Score: 4},
		{Date: "2025-08-21", Score: 5},
		{Date: "2025-07-31", Score: 2},
		{Date: "2025-08-20", Score: 3},
	} {
		if err := store.Upsert(ctx, rec); err != nil {
			t.Fatalf("upsert %s: %v", rec.Date, err)
		}
	}

	records, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"2025-08-21", "2025-08-20", "2025-08-19", "2025-07-31"}
	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d", len(records), len(want))
	}
	for i, date := range want {
		if records[i].Date != date {
			t.Fatalf("record %d date = %s, want %s", i, records[i].Date, date)
		}
	}
}

func TestAggregateMonth(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, rec := range []core.ScoreRecord{
		{Date: "2025-08-19", Score: 4},
		{Date: "2025-08-20", Score: 3},
		{Date: "2025-08-21", Score: 5},
		{Date: "2025-07-31", Score: 1},
	} {
		if err := store.Upsert(ctx, rec); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	agg, err := store.AggregateMonth(ctx, "2025-08")
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if agg.TotalScore == nil || *agg.TotalScore != 12 {
		t.Fatalf("total = %v, want 12", agg.TotalScore)
	}
	if agg.RecordCount != 3 {
		t.Fatalf("count = %d, want 3", agg.RecordCount)
	}
}

func TestAggregateMonthEmpty(t *testing.T) {
	store := newTestStore(t)

	agg, err := store.AggregateMonth(context.Background(), "2025-09")
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	// SUM over no rows is NULL, surfaced as a nil total.
	if agg.TotalScore != nil {
		t.Fatalf("total = %v, want nil", agg.TotalScore)
	}
	if agg.RecordCount != 0 {
		t.Fatalf("count = %d, want 0", agg.RecordCount)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, core.ScoreRecord{Date: "2025-08-21", Score: 5}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := store.Delete(ctx, "2025-08-21"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := store.FindByDate(ctx, "2025-08-21")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != nil {
		t.Fatalf("expected record gone, got %+v", got)
	}
}
