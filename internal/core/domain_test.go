package core

import (
	"errors"
	"testing"
)

func TestValidateScore(t *testing.T) {
	for score := MinScore; score <= MaxScore; score++ {
		if err := ValidateScore(score); err != nil {
			t.Fatalf("score %d expected valid, got %v", score, err)
		}
	}
	for _, score := range []int{0, 6, -1, 100} {
		if err := ValidateScore(score); !errors.Is(err, ErrInvalidScore) {
			t.Fatalf("score %d expected ErrInvalidScore, got %v", score, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2025-08-31", true},
		{"2024-02-29", true},  // leap day
		{"2025-02-29", false}, // not a leap year
		{"2025-8-31", false},  // unpadded month breaks prefix queries
		{"2025-08-3", false},  // unpadded day
		{"2025-13-01", false},
		{"garbage", false},
		{"", false},
	}
	for _, tc := range cases {
		_, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Errorf("ParseDate(%q) expected ok, got %v", tc.in, err)
		}
		if !tc.ok && !errors.Is(err, ErrMalformedDate) {
			t.Errorf("ParseDate(%q) expected ErrMalformedDate, got %v", tc.in, err)
		}
	}
}

func TestNewDateIsZeroPadded(t *testing.T) {
	if got := NewDate(2025, 8, 3); got != "2025-08-03" {
		t.Fatalf("NewDate = %q, want 2025-08-03", got)
	}
}

func TestRecordValidate(t *testing.T) {
	good := ScoreRecord{Date: "2025-08-21", Score: 5, Note: "great day"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	bads := []ScoreRecord{
		{Date: "2025-08-21", Score: 0},
		{Date: "2025-08-21", Score: 6},
		{Date: "2025-8-21", Score: 3},
		{Date: "", Score: 3},
	}
	for i, rec := range bads {
		if err := rec.Validate(); err == nil {
			t.Errorf("case %d expected error", i)
		}
	}
}

func TestNormalizeNote(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"\t\n", ""},
		{"tired", "tired"},
		{" spaced out ", " spaced out "}, // non-blank notes are kept verbatim
	}
	for _, tc := range cases {
		if got := NormalizeNote(tc.in); got != tc.want {
			t.Errorf("NormalizeNote(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHasNote(t *testing.T) {
	if HasNote("  ") {
		t.Fatal("blank note should not count as a note")
	}
	if !HasNote("ok") {
		t.Fatal("expected HasNote for non-blank note")
	}
	if (ScoreRecord{Note: "  "}).HasNote() {
		t.Fatal("blank note should not count as a note")
	}
	if !(ScoreRecord{Note: "ok"}).HasNote() {
		t.Fatal("expected HasNote for non-blank note")
	}
}
