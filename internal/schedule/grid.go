// Package schedule derives the calendar grid from a set of appointments:
// week days, half-hour slots, free slots per doctor and the occupant of each
// grid cell. Everything here is a pure function of its arguments.
package schedule

import (
	"fmt"
	"strings"
	"time"

	"clinic-scheduler/internal/model"
)

const (
	DaysPerWeek  = 7
	SlotDuration = 30 * time.Minute
)

var (
	DayStart = model.NewClock(8, 0)
	DayEnd   = model.NewClock(18, 0)
)

// TimeSlots returns the start of every slot in the working window,
// 08:00 through 17:30.
func TimeSlots() []model.Clock {
	var slots []model.Clock
	for t := DayStart; t < DayEnd; t = t.Add(SlotDuration) {
		slots = append(slots, t)
	}
	return slots
}

// OnGrid reports whether c is a slot boundary inside the working window.
// DayEnd itself counts, so it can close the last slot.
func OnGrid(c model.Clock) bool {
	step := model.Clock(SlotDuration / time.Minute)
	return c >= DayStart && c <= DayEnd && (c-DayStart)%step == 0
}

// WeekDays returns the seven dates of the week containing now shifted by
// offset whole weeks, starting on weekStart.
func WeekDays(now time.Time, offset int, weekStart time.Weekday) []time.Time {
	day := model.DateOf(now).AddDate(0, 0, 7*offset)
	back := (int(day.Weekday()) - int(weekStart) + DaysPerWeek) % DaysPerWeek
	first := day.AddDate(0, 0, -back)

	days := make([]time.Time, DaysPerWeek)
	for i := range days {
		days[i] = first.AddDate(0, 0, i)
	}
	return days
}

// ParseWeekday accepts an English weekday name in any case.
func ParseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

func IsToday(day, now time.Time) bool {
	return model.SameDay(day, now)
}

// DayLabel is the column header, e.g. "Monday 10".
func DayLabel(day time.Time) string {
	return day.Format("Monday 02")
}

// FormatDateRange renders the week title, e.g. "10 Jun - 16 Jun 2024".
func FormatDateRange(first, last time.Time) string {
	return fmt.Sprintf("%s - %s", first.Format("02 Jan"), last.Format("02 Jan 2006"))
}
