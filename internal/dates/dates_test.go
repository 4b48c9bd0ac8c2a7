package dates

import (
	"testing"
	"time"
)

func TestCanonicalDayRoundTrip(t *testing.T) {
	// Plain calendar days must never shift, whatever timezone the test
	// host runs in.
	days := []string{"2025-11-04", "2025-01-01", "2024-02-29", "2025-12-31"}
	for _, d := range days {
		if got := CanonicalDay(d); got != d {
			t.Errorf("CanonicalDay(%q) = %q, want round-trip", d, got)
		}
	}
}

func TestCanonicalDayDatetime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// June: Santiago is UTC-4. 02:00 UTC is still the previous day.
		{"utc rolls back a day", "2025-06-10T02:00:00Z", "2025-06-09"},
		{"utc same day", "2025-06-10T23:30:00Z", "2025-06-10"},
		// November: Santiago observes DST (UTC-3).
		{"dst offset", "2025-11-04T02:59:00Z", "2025-11-03"},
		{"with fraction", "2025-06-10T12:00:00.000Z", "2025-06-10"},
		{"explicit offset", "2025-06-10T01:00:00-04:00", "2025-06-10"},
		{"no timezone", "2025-06-10T15:04:05", "2025-06-10"},
		{"space separator", "2025-06-10 15:04:05", "2025-06-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalDay(tt.input); got != tt.want {
				t.Errorf("CanonicalDay(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanonicalDayUnparsable(t *testing.T) {
	for _, input := range []string{"", "   ", "mañana", "2025-13-01", "04/11/2025"} {
		if got := CanonicalDay(input); got != "" {
			t.Errorf("CanonicalDay(%q) = %q, want empty", input, got)
		}
	}
}

func TestFromTime(t *testing.T) {
	// 02:00 UTC on June 10 is 22:00 June 9 in Santiago.
	ts := time.Date(2025, 6, 10, 2, 0, 0, 0, time.UTC)
	if got := FromTime(ts); got != "2025-06-09" {
		t.Errorf("FromTime = %q, want 2025-06-09", got)
	}
	if got := FromTime(time.Time{}); got != "" {
		t.Errorf("FromTime(zero) = %q, want empty", got)
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2025-11-04", "4 de noviembre de 2025"},
		{"2025-01-15", "15 de enero de 2025"},
		{"2025-09-01", "1 de septiembre de 2025"},
		{"", "Sin fecha"},
		{"no es una fecha", "Sin fecha"},
	}

	for _, tt := range tests {
		if got := Display(tt.input); got != tt.want {
			t.Errorf("Display(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestToday(t *testing.T) {
	got := Today()
	if _, err := time.Parse(DayFormat, got); err != nil {
		t.Errorf("Today() = %q, not a calendar day: %v", got, err)
	}
}
