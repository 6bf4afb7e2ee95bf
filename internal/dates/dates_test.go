package dates

import (
	"testing"
	"time"
)

const (
	dueHour   = 17
	deferHour = 8
)

// A Tuesday at 12:00 local time.
var tue = time.Date(2025, 6, 10, 12, 0, 0, 0, time.Local)

func mustResolve(t *testing.T, input string, now time.Time, hour int) time.Time {
	t.Helper()
	got, err := Resolve(input, now, hour)
	if err != nil {
		t.Fatalf("Resolve(%q) error: %v", input, err)
	}
	if got == nil {
		t.Fatalf("Resolve(%q) = nil, want a timestamp", input)
	}
	return *got
}

func TestResolveEmptyClearsField(t *testing.T) {
	for _, input := range []string{"", "-", "   "} {
		got, err := Resolve(input, tue, dueHour)
		if err != nil {
			t.Errorf("Resolve(%q) error: %v, want nil", input, err)
		}
		if got != nil {
			t.Errorf("Resolve(%q) = %v, want nil (cleared)", input, got)
		}
	}
}

func TestResolveKeywords(t *testing.T) {
	cases := []struct {
		input string
		hour  int
		want  time.Time
	}{
		{"today", dueHour, time.Date(2025, 6, 10, 17, 0, 0, 0, time.Local)},
		{"tomorrow", dueHour, time.Date(2025, 6, 11, 17, 0, 0, 0, time.Local)},
		{"tomorrow", deferHour, time.Date(2025, 6, 11, 8, 0, 0, 0, time.Local)},
		{"Tomorrow", dueHour, time.Date(2025, 6, 11, 17, 0, 0, 0, time.Local)},
		{"yesterday", dueHour, time.Date(2025, 6, 9, 17, 0, 0, 0, time.Local)},
	}

	for _, tc := range cases {
		got := mustResolve(t, tc.input, tue, tc.hour)
		if !got.Equal(tc.want) {
			t.Errorf("Resolve(%q, hour=%d) = %v, want %v", tc.input, tc.hour, got, tc.want)
		}
	}
}

func TestResolveWeekday(t *testing.T) {
	// From a Tuesday, friday is 3 days out.
	got := mustResolve(t, "friday", tue, dueHour)
	want := time.Date(2025, 6, 13, 17, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("friday = %v, want %v", got, want)
	}

	// Abbreviations resolve the same.
	if abbr := mustResolve(t, "fri", tue, dueHour); !abbr.Equal(want) {
		t.Errorf("fri = %v, want %v", abbr, want)
	}
}

func TestResolveWeekdayToday(t *testing.T) {
	// At noon the 17:00 slot is still ahead, so "tuesday" means today.
	got := mustResolve(t, "tuesday", tue, dueHour)
	want := time.Date(2025, 6, 10, 17, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("tuesday at noon = %v, want %v", got, want)
	}

	// By noon the 08:00 slot has passed, so it skips to next week.
	got = mustResolve(t, "tuesday", tue, deferHour)
	want = time.Date(2025, 6, 17, 8, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("tuesday past default hour = %v, want %v", got, want)
	}
}

func TestResolveNextWeekday(t *testing.T) {
	// "next friday" lands on the Friday after the upcoming one.
	got := mustResolve(t, "next friday", tue, dueHour)
	want := time.Date(2025, 6, 20, 17, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("next friday = %v, want %v", got, want)
	}

	// From a Tuesday, "next tuesday" is never today: at least a week out.
	got = mustResolve(t, "next tuesday", tue, dueHour)
	if got.Sub(tue) < 6*24*time.Hour {
		t.Errorf("next tuesday = %v, resolved within the current week", got)
	}
}

func TestResolveRelativeOffsets(t *testing.T) {
	cases := []struct {
		input string
		want  time.Time
	}{
		{"2d", tue.Add(48 * time.Hour)},
		{"3h", tue.Add(3 * time.Hour)},
		{"45m", tue.Add(45 * time.Minute)},
		{"1w", tue.Add(7 * 24 * time.Hour)},
		{"-3h", tue.Add(-3 * time.Hour)},
	}

	for _, tc := range cases {
		got := mustResolve(t, tc.input, tue, dueHour)
		if !got.Equal(tc.want) {
			t.Errorf("Resolve(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}

	// Offsets keep the time-of-day from now instead of the default hour.
	got := mustResolve(t, "2d", tue, dueHour)
	if got.Hour() != tue.Hour() {
		t.Errorf("2d landed on hour %d, want %d", got.Hour(), tue.Hour())
	}
}

func TestResolveAbsoluteDates(t *testing.T) {
	got := mustResolve(t, "2025-12-25", tue, dueHour)
	want := time.Date(2025, 12, 25, 17, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("2025-12-25 = %v, want %v", got, want)
	}

	got = mustResolve(t, "12-25", tue, deferHour)
	want = time.Date(2025, 12, 25, 8, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("12-25 = %v, want %v", got, want)
	}

	// A month-day already behind us stays in the current year.
	got = mustResolve(t, "01-15", tue, dueHour)
	want = time.Date(2025, 1, 15, 17, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("01-15 = %v, want %v (no roll-forward)", got, want)
	}
}

func TestResolveUnrecognized(t *testing.T) {
	for _, input := range []string{"soonish", "2x", "13-45", "next", "next blursday"} {
		got, err := Resolve(input, tue, dueHour)
		if err == nil {
			t.Errorf("Resolve(%q) = %v, want error", input, got)
		}
	}
}

func TestFormatRelative(t *testing.T) {
	cases := []struct {
		at   *time.Time
		want string
	}{
		{nil, ""},
		{ptr(tue.Add(49 * time.Hour)), "2d"},
		{ptr(tue.Add(3 * time.Hour)), "3h"},
		{ptr(tue.Add(20 * time.Minute)), "20m"},
		{ptr(tue.Add(-26 * time.Hour)), "-1d"},
		{ptr(tue.Add(-90 * time.Minute)), "-1h"},
	}

	for _, tc := range cases {
		if got := FormatRelative(tc.at, tue); got != tc.want {
			t.Errorf("FormatRelative(%v) = %q, want %q", tc.at, got, tc.want)
		}
	}
}

func TestFormatRelativeRoundTrips(t *testing.T) {
	// A past due date rendered into the editor must resolve back to a
	// timestamp instead of failing the commit.
	due := tue.Add(-30 * time.Hour)
	raw := FormatRelative(&due, tue)

	got, err := Resolve(raw, tue, dueHour)
	if err != nil {
		t.Fatalf("Resolve(%q) error: %v", raw, err)
	}
	if got == nil || !got.Before(tue) {
		t.Errorf("Resolve(%q) = %v, want a past timestamp", raw, got)
	}
}

func ptr(t time.Time) *time.Time { return &t }
