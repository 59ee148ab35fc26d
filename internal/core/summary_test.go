package core

import "testing"

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil)
	if got.TotalScore != 0 || got.RecordCount != 0 || got.AverageScore != 0.0 {
		t.Fatalf("Summarize(nil) = %+v, want zero summary", got)
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize([]ScoreRecord{
		{Date: "2025-08-21", Score: 5},
		{Date: "2025-08-20", Score: 3},
	})
	if got.TotalScore != 8 {
		t.Errorf("TotalScore = %d, want 8", got.TotalScore)
	}
	if got.RecordCount != 2 {
		t.Errorf("RecordCount = %d, want 2", got.RecordCount)
	}
	if got.AverageScore != 4.0 {
		t.Errorf("AverageScore = %v, want 4.0", got.AverageScore)
	}
}

func TestSummarizeNoRounding(t *testing.T) {
	got := Summarize([]ScoreRecord{
		{Date: "2025-08-01", Score: 5},
		{Date: "2025-08-02", Score: 5},
		{Date: "2025-08-03", Score: 4},
	})
	want := 14.0 / 3.0
	if got.AverageScore != want {
		t.Fatalf("AverageScore = %v, want unrounded %v", got.AverageScore, want)
	}
}

func TestMonthAggregateSummary(t *testing.T) {
	// SUM over an empty month is null; the summary defaults it to zero.
	empty := MonthAggregate{TotalScore: nil, RecordCount: 0}
	if got := empty.Summary(); got != (MonthlySummary{}) {
		t.Fatalf("empty aggregate = %+v, want zero summary", got)
	}

	total := int64(12)
	got := (MonthAggregate{TotalScore: &total, RecordCount: 3}).Summary()
	if got.TotalScore != 12 || got.RecordCount != 3 || got.AverageScore != 4.0 {
		t.Fatalf("aggregate summary = %+v", got)
	}
}
