package model

import (
	"fmt"
	"time"
)

// Clock is a time of day in minutes since midnight.
type Clock int

const clockLayout = "15:04"

func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock reads a 24-hour "HH:mm" value.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil || len(s) != len(clockLayout) {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return NewClock(t.Hour(), t.Minute()), nil
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

// String renders the 24-hour form used for matching and storage.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Label renders the 12-hour form shown to the operator, e.g. "01:30 PM".
func (c Clock) Label() string {
	return time.Date(0, 1, 1, c.Hour(), c.Minute(), 0, 0, time.UTC).Format("03:04 PM")
}

func (c Clock) Add(d time.Duration) Clock {
	return c + Clock(d/time.Minute)
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	v, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
