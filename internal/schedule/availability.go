package schedule

import (
	"time"

	"clinic-scheduler/internal/model"
)

// AvailableSlots returns the slots on date that no appointment of doctor
// occupies. The appointment with id excludeID is ignored so an edit never
// conflicts with itself. With no date or no doctor chosen yet every slot is
// returned.
func AvailableSlots(appts []model.Appointment, date time.Time, doctor, excludeID string) []model.Clock {
	all := TimeSlots()
	if date.IsZero() || doctor == "" {
		return all
	}

	booked := DoctorDay(appts, doctor, date, excludeID)
	free := make([]model.Clock, 0, len(all))
	for _, slot := range all {
		if !covered(booked, slot) {
			free = append(free, slot)
		}
	}
	return free
}

// EndSlots narrows available to the slots strictly after start, the choices
// for an appointment's end.
func EndSlots(available []model.Clock, start model.Clock) []model.Clock {
	var out []model.Clock
	for _, slot := range available {
		if slot > start {
			out = append(out, slot)
		}
	}
	return out
}

// DoctorDay lists the appointments of doctor on date, skipping excludeID.
func DoctorDay(appts []model.Appointment, doctor string, date time.Time, excludeID string) []model.Appointment {
	var out []model.Appointment
	for _, a := range appts {
		if a.Doctor == doctor && model.SameDay(a.Date, date) && a.ID != excludeID {
			out = append(out, a)
		}
	}
	return out
}

// Conflicts returns the appointments of doctor on date whose interval
// overlaps [start, end), skipping excludeID.
func Conflicts(appts []model.Appointment, doctor string, date time.Time, start, end model.Clock, excludeID string) []model.Appointment {
	var out []model.Appointment
	for _, a := range DoctorDay(appts, doctor, date, excludeID) {
		if a.Overlaps(start, end) {
			out = append(out, a)
		}
	}
	return out
}

func covered(appts []model.Appointment, slot model.Clock) bool {
	for _, a := range appts {
		if a.Covers(slot) {
			return true
		}
	}
	return false
}
