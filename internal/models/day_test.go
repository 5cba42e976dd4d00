package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "valid date", input: "2026-03-16", want: "2026-03-16"},
		{name: "leap day", input: "2024-02-29", want: "2024-02-29"},
		{name: "invalid month", input: "2026-13-01", wantErr: true},
		{name: "wrong format", input: "16/03/2026", wantErr: true},
		{name: "timestamp rejected", input: "2026-03-16T09:00:00Z", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDay(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDay(%q) error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseDay(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestDayAddDays(t *testing.T) {
	tests := []struct {
		name string
		day  Day
		n    int
		want string
	}{
		{name: "forward within month", day: NewDay(2026, time.March, 10), n: 5, want: "2026-03-15"},
		{name: "backward across month", day: NewDay(2026, time.March, 2), n: -5, want: "2026-02-25"},
		{name: "across year boundary", day: NewDay(2025, time.December, 30), n: 3, want: "2026-01-02"},
		{name: "across leap day", day: NewDay(2024, time.February, 28), n: 2, want: "2024-03-01"},
		{name: "zero offset", day: NewDay(2026, time.March, 10), n: 0, want: "2026-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.day.AddDays(tt.n).String(); got != tt.want {
				t.Errorf("AddDays(%d) = %s, want %s", tt.n, got, tt.want)
			}
		})
	}
}

func TestDayDaysUntil(t *testing.T) {
	tests := []struct {
		name string
		from Day
		to   Day
		want int
	}{
		{name: "same day", from: NewDay(2026, time.March, 16), to: NewDay(2026, time.March, 16), want: 0},
		{name: "next day", from: NewDay(2026, time.March, 16), to: NewDay(2026, time.March, 17), want: 1},
		{name: "earlier is negative", from: NewDay(2026, time.March, 16), to: NewDay(2026, time.March, 14), want: -2},
		// Spans the US spring-forward transition; the rounded quotient
		// keeps the count in whole calendar days despite the 23-hour day.
		{name: "across spring DST", from: NewDay(2026, time.March, 7), to: NewDay(2026, time.March, 9), want: 2},
		{name: "across fall DST", from: NewDay(2026, time.October, 31), to: NewDay(2026, time.November, 2), want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.DaysUntil(tt.to); got != tt.want {
				t.Errorf("DaysUntil = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDayDaysUntilInDSTZone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	restore := time.Local
	time.Local = loc
	defer func() { time.Local = restore }()

	tests := []struct {
		name string
		from Day
		to   Day
		want int
	}{
		// 2026-03-08 is only 23 hours long in this zone; consecutive
		// dates around it must still count as exactly one day apart.
		{name: "into spring-forward day", from: NewDay(2026, time.March, 7), to: NewDay(2026, time.March, 8), want: 1},
		{name: "out of spring-forward day", from: NewDay(2026, time.March, 8), to: NewDay(2026, time.March, 9), want: 1},
		{name: "week spanning spring forward", from: NewDay(2026, time.March, 5), to: NewDay(2026, time.March, 12), want: 7},
		// 2026-11-01 is 25 hours long.
		{name: "out of fall-back day", from: NewDay(2026, time.November, 1), to: NewDay(2026, time.November, 2), want: 1},
		{name: "week spanning fall back", from: NewDay(2026, time.October, 29), to: NewDay(2026, time.November, 5), want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.DaysUntil(tt.to); got != tt.want {
				t.Errorf("DaysUntil = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDayWeekStart(t *testing.T) {
	tests := []struct {
		name string
		day  Day
		want string
	}{
		{name: "monday is its own week start", day: NewDay(2026, time.March, 16), want: "2026-03-16"},
		{name: "wednesday", day: NewDay(2026, time.March, 18), want: "2026-03-16"},
		{name: "sunday belongs to preceding monday", day: NewDay(2026, time.March, 22), want: "2026-03-16"},
		{name: "week spanning month boundary", day: NewDay(2026, time.April, 1), want: "2026-03-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.day.WeekStart().String(); got != tt.want {
				t.Errorf("WeekStart() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDayJSONRoundTrip(t *testing.T) {
	d := NewDay(2026, time.March, 16)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `"2026-03-16"` {
		t.Errorf("Marshal = %s, want %q", data, "2026-03-16")
	}

	var back Day
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip = %s, want %s", back, d)
	}

	var bad Day
	if err := json.Unmarshal([]byte(`"not-a-date"`), &bad); err == nil {
		t.Error("Unmarshal accepted a malformed date")
	}
}

func TestDayScan(t *testing.T) {
	var d Day
	if err := d.Scan("2026-03-16"); err != nil {
		t.Fatalf("Scan(string) error: %v", err)
	}
	if d.String() != "2026-03-16" {
		t.Errorf("Scan(string) = %s, want 2026-03-16", d)
	}

	if err := d.Scan(time.Date(2026, time.March, 17, 23, 15, 0, 0, time.Local)); err != nil {
		t.Fatalf("Scan(time.Time) error: %v", err)
	}
	if d.String() != "2026-03-17" {
		t.Errorf("Scan(time.Time) = %s, want 2026-03-17", d)
	}

	if err := d.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) error: %v", err)
	}
	if !d.IsZero() {
		t.Error("Scan(nil) should reset to zero Day")
	}

	if err := d.Scan(42); err == nil {
		t.Error("Scan(int) should fail")
	}
}
