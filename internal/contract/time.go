package contract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the calendar date representation used on the command line.
const DateFormat = "2006-01-02"

// ScheduleDateFormat is the date representation expected by the schedule endpoint.
const ScheduleDateFormat = "01/02/2006"

// relativeTimeRe captures "N [units] ago", e.g. "3 days ago" or "2 weeks ago".
var relativeTimeRe = regexp.MustCompile(`^(\d+)\s+(year|month|week|day)s?\s+ago$`)

// ParseRelativeTime converts strings like "2 weeks ago" into a time in the past.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	matches := relativeTimeRe.FindStringSubmatch(s)
	if len(matches) == 0 {
		return time.Time{}, fmt.Errorf("invalid relative time format: %s", s)
	}

	value, _ := strconv.Atoi(matches[1])
	switch matches[2] {
	case "year":
		return now.AddDate(-value, 0, 0), nil
	case "month":
		return now.AddDate(0, -value, 0), nil
	case "week":
		return now.AddDate(0, 0, -7*value), nil
	default: // day
		return now.AddDate(0, 0, -value), nil
	}
}

// ParseDate parses a calendar date in YYYY-MM-DD, RFC3339, or "N [units] ago" form.
// The result is truncated to midnight UTC.
func ParseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "today":
		return TruncateDay(now), nil
	case "yesterday":
		return TruncateDay(now.AddDate(0, 0, -1)), nil
	}
	if t, err := time.Parse(DateFormat, s); err == nil {
		return TruncateDay(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return TruncateDay(t), nil
	}
	t, err := ParseRelativeTime(s, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q. Expected YYYY-MM-DD or 'N [units] ago'", s)
	}
	return TruncateDay(t), nil
}

// TruncateDay returns midnight UTC of the calendar day of t.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DatesInRange returns every calendar day from start to end inclusive.
// It returns nil when start is after end.
func DatesInRange(start, end time.Time) []time.Time {
	start, end = TruncateDay(start), TruncateDay(end)
	if start.After(end) {
		return nil
	}
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
