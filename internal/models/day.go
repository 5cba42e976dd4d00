package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"
)

// DayFormat is the wire and storage format for calendar dates.
const DayFormat = "2006-01-02"

// Day is a naive local calendar date. All date handling in the analytics
// core uses this type: no timezone conversion, no time-of-day component.
// Week starts, streak adjacency, and lagged pairing all operate on the
// same local calendar.
type Day struct {
	t time.Time
}

// NewDay constructs a Day from a year, month, and day in local time.
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

// DayOf truncates a time.Time to its local calendar date.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return NewDay(y, m, d)
}

// ParseDay parses a "2006-01-02" string into a Day.
func ParseDay(s string) (Day, error) {
	t, err := time.ParseInLocation(DayFormat, s, time.Local)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Day{t: t}, nil
}

// String returns the date in "2006-01-02" format.
func (d Day) String() string {
	return d.t.Format(DayFormat)
}

// Time returns the underlying midnight-local time.Time.
func (d Day) Time() time.Time {
	return d.t
}

// IsZero reports whether the Day is the zero value.
func (d Day) IsZero() bool {
	return d.t.IsZero()
}

// AddDays returns the calendar date n days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return DayOf(d.t.AddDate(0, 0, n))
}

// Next returns the following calendar date.
func (d Day) Next() Day {
	return d.AddDays(1)
}

// Before reports whether d is earlier than other.
func (d Day) Before(other Day) bool {
	return d.t.Before(other.t)
}

// Equal reports whether d and other are the same calendar date.
func (d Day) Equal(other Day) bool {
	return d.String() == other.String()
}

// DaysUntil returns the number of calendar days from d to other
// (positive when other is later).
func (d Day) DaysUntil(other Day) int {
	// A calendar day spanning a DST switch is 23 or 25 hours long, so the
	// quotient is rounded rather than truncated.
	return int(math.Round(other.t.Sub(d.t).Hours() / 24))
}

// WeekStart returns the Monday on or before d, in local calendar time.
func (d Day) WeekStart() Day {
	offset := (int(d.t.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

// MonthKey returns the "2006-01" year-month key for d.
func (d Day) MonthKey() string {
	return d.t.Format("2006-01")
}

// MarshalJSON implements json.Marshaler using the "2006-01-02" format.
func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler for "2006-01-02" strings.
func (d *Day) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so Day can be stored as a date string.
func (d Day) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner for date strings and time values.
func (d *Day) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseDay(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	case time.Time:
		*d = DayOf(v)
		return nil
	case nil:
		*d = Day{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Day", src)
	}
}

// SortDaysAscending sorts a slice of days in place, earliest first.
func SortDaysAscending(days []Day) {
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
}
