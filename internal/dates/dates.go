// Package dates resolves the shorthand date expressions accepted by the
// task editor: keywords (today, friday, next friday), relative offsets
// (2d, -3h) and absolute dates (2025-01-15, 01-15).
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Resolve turns user input into a timestamp. A nil result with a nil
// error means the field was cleared. Keyword and absolute forms land on
// defaultHour (e.g. 17 for due dates, 8 for defer dates); relative
// offsets keep the time-of-day implied by now.
func Resolve(input string, now time.Time, defaultHour int) (*time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" || s == "-" {
		return nil, nil
	}

	switch s {
	case "today":
		t := atHour(now, 0, defaultHour)
		return &t, nil
	case "tomorrow", "tom":
		t := atHour(now, 1, defaultHour)
		return &t, nil
	case "yesterday":
		t := atHour(now, -1, defaultHour)
		return &t, nil
	}

	if wd, ok := parseWeekday(s); ok {
		t := nextOccurrence(now, wd, defaultHour)
		return &t, nil
	}

	if rest, found := strings.CutPrefix(s, "next "); found {
		if wd, ok := parseWeekday(strings.TrimSpace(rest)); ok {
			// Always the following week, 8-14 days out. "next friday"
			// on a Friday skips both today and the upcoming Friday.
			days := int(wd-now.Weekday()+7) % 7
			if days == 0 {
				days = 7
			}
			t := atHour(now, days+7, defaultHour)
			return &t, nil
		}
	}

	if t, ok := parseOffset(s, now); ok {
		return &t, nil
	}

	if t, err := time.ParseInLocation("2006-01-02", s, now.Location()); err == nil {
		t = time.Date(t.Year(), t.Month(), t.Day(), defaultHour, 0, 0, 0, now.Location())
		return &t, nil
	}

	// MM-DD defaults to the current year. A date already behind us stays
	// in the past rather than rolling over to next year.
	if t, err := time.ParseInLocation("01-02", s, now.Location()); err == nil {
		t = time.Date(now.Year(), t.Month(), t.Day(), defaultHour, 0, 0, 0, now.Location())
		return &t, nil
	}

	return nil, fmt.Errorf("unrecognized date %q", input)
}

// FormatRelative renders a timestamp the way the editor expects to read
// it back: a coarse offset from now such as "2d", "3h" or "-1d" for past
// dates. A nil timestamp renders as the empty string (no date set).
func FormatRelative(t *time.Time, now time.Time) string {
	if t == nil {
		return ""
	}

	d := t.Sub(now)
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}

	switch {
	case d >= 24*time.Hour:
		return fmt.Sprintf("%s%dd", sign, int(d.Hours())/24)
	case d >= time.Hour:
		return fmt.Sprintf("%s%dh", sign, int(d.Hours()))
	default:
		return fmt.Sprintf("%s%dm", sign, int(d.Minutes()))
	}
}

// atHour returns the day offset from now at the given hour, local time.
func atHour(now time.Time, dayOffset, hour int) time.Time {
	d := now.AddDate(0, 0, dayOffset)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, now.Location())
}

// nextOccurrence finds the next occurrence of a weekday at the default
// hour. Today counts only while the default hour is still ahead;
// otherwise the same weekday next week is used.
func nextOccurrence(now time.Time, wd time.Weekday, defaultHour int) time.Time {
	days := int(wd-now.Weekday()+7) % 7
	if days == 0 && !atHour(now, 0, defaultHour).After(now) {
		days = 7
	}
	return atHour(now, days, defaultHour)
}

// parseOffset handles <n><unit> offsets like "2d", "90m" or "-3h".
// Negative offsets round-trip the editor's rendering of past dates.
func parseOffset(s string, now time.Time) (time.Time, bool) {
	if len(s) < 2 {
		return time.Time{}, false
	}

	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return time.Time{}, false
	}

	var unit time.Duration
	switch s[len(s)-1] {
	case 'm':
		unit = time.Minute
	case 'h':
		unit = time.Hour
	case 'd':
		unit = 24 * time.Hour
	case 'w':
		unit = 7 * 24 * time.Hour
	default:
		return time.Time{}, false
	}

	return now.Add(time.Duration(n) * unit), true
}

func parseWeekday(s string) (time.Weekday, bool) {
	switch s {
	case "monday", "mon":
		return time.Monday, true
	case "tuesday", "tue":
		return time.Tuesday, true
	case "wednesday", "wed":
		return time.Wednesday, true
	case "thursday", "thu":
		return time.Thursday, true
	case "friday", "fri":
		return time.Friday, true
	case "saturday", "sat":
		return time.Saturday, true
	case "sunday", "sun":
		return time.Sunday, true
	}
	return time.Sunday, false
}
