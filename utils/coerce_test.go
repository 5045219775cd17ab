package utils

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFlexibleInt(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
		want  int
	}{
		{`42`, true, 42},
		{`"42"`, true, 42},
		{`" 15 "`, true, 15},
		{`""`, false, 0},
		{`null`, false, 0},
		{`19.9`, true, 19},
	}

	for _, tc := range cases {
		var f FlexibleInt
		if err := json.Unmarshal([]byte(tc.in), &f); err != nil {
			t.Errorf("input %s: unexpected error %v", tc.in, err)
			continue
		}
		if f.Valid != tc.valid || (f.Valid && f.Int != tc.want) {
			t.Errorf("input %s: got valid=%v int=%d, want valid=%v int=%d",
				tc.in, f.Valid, f.Int, tc.valid, tc.want)
		}
	}

	var f FlexibleInt
	if err := json.Unmarshal([]byte(`"abc"`), &f); err == nil {
		t.Error("Non-numeric string should be rejected")
	}
}

func TestFlexibleIntDefaults(t *testing.T) {
	var absent FlexibleInt
	if absent.Or(5) != 5 {
		t.Errorf("Or(5) on absent value: got %d", absent.Or(5))
	}
	if absent.Ptr() != nil {
		t.Error("Ptr on absent value should be nil")
	}

	present := FlexibleInt{Valid: true, Int: 3}
	if present.Or(5) != 3 {
		t.Errorf("Or(5) on present value: got %d", present.Or(5))
	}
}

func TestNormalizeDate(t *testing.T) {
	got := NormalizeDate("2026-03-01 10:30:00")
	if got == nil {
		t.Fatal("Expected parseable date")
	}
	want := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Got %v, want %v", got, want)
	}

	if NormalizeDate("2026-03-01") == nil {
		t.Error("Date-only input should parse")
	}
	if NormalizeDate("not a date") != nil {
		t.Error("Invalid input should be treated as absent")
	}
	if NormalizeDate("") != nil {
		t.Error("Empty input should be treated as absent")
	}
}
