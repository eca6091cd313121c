package contract

import (
	"testing"
	"time"
)

// FuzzParseDate fuzzes ParseDate with arbitrary user input.
func FuzzParseDate(f *testing.F) {
	seeds := []string{
		"2024-04-01",
		"2024-04-01T13:05:00Z",
		"3 days ago",
		"2 weeks ago",
		"today",
		"yesterday",
		"",
		"99999999999999999999 years ago",
		"04/01/2024",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	now := time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)
	f.Fuzz(func(t *testing.T, s string) {
		d, err := ParseDate(s, now)
		if err != nil {
			return
		}
		if !d.Equal(TruncateDay(d)) {
			t.Errorf("ParseDate(%q) = %v, want midnight UTC", s, d)
		}
	})
}
