// Package schedule provides hour blocks, time-of-day values and the
// sequential time adjustment applied when a block is re-timed.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// TimeOfDay is a local wall-clock time with second precision,
// stored as seconds since midnight.
type TimeOfDay int

const (
	// Midnight is 00:00:00.
	Midnight TimeOfDay = 0
	// EndOfDay is 23:59:59, the last valid time of day.
	EndOfDay TimeOfDay = 24*60*60 - 1
)

// NewTimeOfDay builds a time of day from its components.
func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, errors.Newf("invalid time of day %02d:%02d:%02d", hour, minute, second)
	}
	return TimeOfDay(hour*3600 + minute*60 + second), nil
}

// MustTimeOfDay is NewTimeOfDay for constants; it panics on invalid input.
func MustTimeOfDay(hour, minute, second int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute, second)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTimeOfDay parses "HH:mm" or "HH:mm:ss".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, errors.Newf("invalid time of day %q", s)
	}

	values := make([]int, 3)
	for i, p := range parts {
		if len(p) != 2 {
			return 0, errors.Newf("invalid time of day %q", s)
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid time of day %q", s)
		}
		values[i] = v
	}

	return NewTimeOfDay(values[0], values[1], values[2])
}

// Hour returns the hour component.
func (t TimeOfDay) Hour() int { return int(t) / 3600 }

// Minute returns the minute component.
func (t TimeOfDay) Minute() int { return int(t) % 3600 / 60 }

// Second returns the second component.
func (t TimeOfDay) Second() int { return int(t) % 60 }

// String formats the time as HH:mm:ss.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// Short formats the time as HH:mm.
func (t TimeOfDay) Short() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Add returns t shifted by d. The result may fall outside the day;
// callers check Valid.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d/time.Second)
}

// Sub returns the duration t-u.
func (t TimeOfDay) Sub(u TimeOfDay) time.Duration {
	return time.Duration(t-u) * time.Second
}

// Valid reports whether t lies within a single day.
func (t TimeOfDay) Valid() bool {
	return t >= Midnight && t <= EndOfDay
}

// On returns the instant of t on the given date in the date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, date.Location())
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
