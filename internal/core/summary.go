package core

// MonthlySummary is derived, never persisted. AverageScore carries no
// rounding; formatting for display is the caller's concern.
type MonthlySummary struct {
	TotalScore   int
	RecordCount  int
	AverageScore float64
}

// MonthAggregate mirrors the raw store aggregate for one month. TotalScore
// is nil when the month has no rows (SUM over an empty set).
type MonthAggregate struct {
	TotalScore  *int64
	RecordCount int
}

// Summary resolves the aggregate into a MonthlySummary, defaulting a nil
// total to zero.
func (a MonthAggregate) Summary() MonthlySummary {
	total := 0
	if a.TotalScore != nil {
		total = int(*a.TotalScore)
	}
	s := MonthlySummary{TotalScore: total, RecordCount: a.RecordCount}
	if a.RecordCount > 0 {
		s.AverageScore = float64(total) / float64(a.RecordCount)
	}
	return s
}

// Summarize computes the monthly summary from raw records.
func Summarize(records []ScoreRecord) MonthlySummary {
	var s MonthlySummary
	for _, r := range records {
		s.TotalScore += r.Score
		s.RecordCount++
	}
	if s.RecordCount > 0 {
		s.AverageScore = float64(s.TotalScore) / float64(s.RecordCount)
	}
	return s
}
