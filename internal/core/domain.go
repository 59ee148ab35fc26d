package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// Score bounds are fixed: 1 is the worst day, 5 the best.
	MinScore = 1
	MaxScore = 5

	// DateLayout is the canonical zero-padded ISO form. Records are keyed
	// by this string and monthly queries prefix-match against it, so the
	// padding is load-bearing: "2025-8-3" must never reach the store.
	DateLayout = "2006-01-02"
)

var (
	ErrInvalidScore  = errors.New("score must be between 1 and 5")
	ErrMalformedDate = errors.New("malformed date")
)

type ScoreRecord struct {
	Date  string // canonical ISO date, the unique record key
	Score int
	Note  string // empty means no note
}

// HasNote reports whether a note string counts as a note. The blank-note
// policy lives here; NormalizeNote and the hit tester both follow it.
func HasNote(note string) bool {
	return strings.TrimSpace(note) != ""
}

// HasNote reports whether the record carries a non-blank note.
func (r ScoreRecord) HasNote() bool {
	return HasNote(r.Note)
}

func (r ScoreRecord) Validate() error {
	if err := ValidateScore(r.Score); err != nil {
		return err
	}
	return ValidateDate(r.Date)
}

func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return ErrInvalidScore
	}
	return nil
}

// ParseDate parses a canonical date string. time.Parse alone is lenient
// about digit widths, so the round-trip check rejects unpadded input.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrMalformedDate
	}
	if t.Format(DateLayout) != s {
		return time.Time{}, ErrMalformedDate
	}
	return t, nil
}

func ValidateDate(s string) error {
	_, err := ParseDate(s)
	return err
}

// FormatDate renders t in the canonical form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// NewDate builds a canonical date string from its parts.
func NewDate(year, month, day int) string {
	return FormatDate(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC))
}

// NormalizeNote maps blank notes to "no note".
func NormalizeNote(note string) string {
	if !HasNote(note) {
		return ""
	}
	return note
}
