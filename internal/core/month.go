package core

import (
	"fmt"
	"strings"
	"time"
)

// YearMonth is a (year, month) pair with no day component. Navigation is
// unbounded in both directions.
type YearMonth struct {
	Year  int
	Month int // 1-12
}

func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: int(t.Month())}
}

// ParseYearMonth parses a "YYYY-MM" string.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil || t.Format("2006-01") != s {
		return YearMonth{}, fmt.Errorf("parse year-month %q: %w", s, ErrMalformedDate)
	}
	return YearMonthOf(t), nil
}

func (ym YearMonth) Validate() error {
	if ym.Month < 1 || ym.Month > 12 {
		return fmt.Errorf("invalid month %d", ym.Month)
	}
	return nil
}

// Prefix returns the "YYYY-MM" form used for date-string prefix queries.
func (ym YearMonth) Prefix() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

func (ym YearMonth) String() string {
	return ym.Prefix()
}

// Label returns a human-readable month name for display.
func (ym YearMonth) Label() string {
	return fmt.Sprintf("%s %04d", time.Month(ym.Month), ym.Year)
}

// AddMonths shifts the month by delta, carrying across year boundaries.
func (ym YearMonth) AddMonths(delta int) YearMonth {
	months := ym.Year*12 + (ym.Month - 1) + delta
	year := months / 12
	month := months % 12
	if month < 0 {
		month += 12
		year--
	}
	return YearMonth{Year: year, Month: month + 1}
}

// DaysInMonth returns the calendar length of the month.
func (ym YearMonth) DaysInMonth() int {
	return time.Date(ym.Year, time.Month(ym.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Contains reports whether the canonical date string falls in this month.
func (ym YearMonth) Contains(date string) bool {
	return strings.HasPrefix(date, ym.Prefix())
}

// FilterMonth returns the records whose date falls in ym, preserving the
// order of the input.
func FilterMonth(records []ScoreRecord, ym YearMonth) []ScoreRecord {
	var out []ScoreRecord
	for _, r := range records {
		if ym.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out
}
