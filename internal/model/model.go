package model

import (
	"fmt"
	"slices"
	"time"
)

// All is the filter sentinel meaning "no restriction".
const All = "All"

type Appointment struct {
	ID        string
	Patient   string
	Doctor    string
	Treatment string
	Purpose   string
	Date      time.Time
	Start     Clock
	End       Clock
}

// Overlaps reports whether [start, end) intersects the appointment's own
// interval. Doctor and date are not compared.
func (a Appointment) Overlaps(start, end Clock) bool {
	return a.Start < end && start < a.End
}

// Covers reports whether slot falls inside [start, end).
func (a Appointment) Covers(slot Clock) bool {
	return a.Start <= slot && slot < a.End
}

// Catalog holds the enumerations supplied at startup.
type Catalog struct {
	Doctors    []string
	Treatments []string
}

func DefaultCatalog() Catalog {
	return Catalog{
		Doctors:    []string{"Dr. Ali", "Dr. Asma", "Dr. Madiha"},
		Treatments: []string{"Eye Checkup", "Ear Checkup", "Regular Checkup", "Skin Treatment", "Other"},
	}
}

func (c Catalog) HasDoctor(name string) bool    { return slices.Contains(c.Doctors, name) }
func (c Catalog) HasTreatment(name string) bool { return slices.Contains(c.Treatments, name) }

// DateOf strips the time of day from t, keeping the calendar date as seen in
// t's own location. The result is midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay compares calendar dates only.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseDate accepts a full ISO-8601 date-time or a bare YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return DateOf(t), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}
