package model

import (
    "fmt"
    "strings"
    "time"
)

// TimeOfDay is a clock time expressed as whole minutes since
// midnight.  Keeping plain minutes makes window arithmetic
// (start + duration, overlap comparisons) ordinary integer math
// and sidesteps wrap-around surprises near midnight: a window end
// past 24:00 simply compares greater than any closing time.
type TimeOfDay int

// MinutesPerDay is the number of minutes in a calendar day.
const MinutesPerDay = 24 * 60

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" into a TimeOfDay.
// Seconds, when present, must be zero padded and are discarded.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
    parts := strings.Split(s, ":")
    if len(parts) != 2 && len(parts) != 3 {
        return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
    }
    var h, m int
    if _, err := fmt.Sscanf(parts[0]+":"+parts[1], "%d:%d", &h, &m); err != nil {
        return 0, fmt.Errorf("invalid time %q: %w", s, err)
    }
    if h < 0 || h > 23 || m < 0 || m > 59 {
        return 0, fmt.Errorf("invalid time %q: out of range", s)
    }
    return TimeOfDay(h*60 + m), nil
}

// Add returns the time shifted forward by the given number of
// minutes.  The result is not clamped to the day.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
    return t + TimeOfDay(minutes)
}

// InDay reports whether t falls inside a single calendar day.
func (t TimeOfDay) InDay() bool {
    return t >= 0 && t < MinutesPerDay
}

// String renders the time as "HH:MM".  Values past the end of the
// day keep counting upward (25:30) so logs stay unambiguous.
func (t TimeOfDay) String() string {
    return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// MarshalJSON renders the time as a quoted "HH:MM" string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
    return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON accepts a quoted "HH:MM" or "HH:MM:SS" string.
func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
    s := strings.Trim(string(b), `"`)
    v, err := ParseTimeOfDay(s)
    if err != nil {
        return err
    }
    *t = v
    return nil
}

// DateLayout is the wire and column format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" string into a date normalised
// to midnight UTC.  All date fields in the model are normalised
// this way so dates compare with == and work as map keys.
func ParseDate(s string) (time.Time, error) {
    d, err := time.ParseInLocation(DateLayout, s, time.UTC)
    if err != nil {
        return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
    }
    return d, nil
}

// DateOnly strips the clock portion from an instant, returning
// the containing date at midnight UTC.
func DateOnly(t time.Time) time.Time {
    y, m, d := t.UTC().Date()
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date as "YYYY-MM-DD".
func FormatDate(t time.Time) string {
    return t.UTC().Format(DateLayout)
}
