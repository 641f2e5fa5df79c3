package schedule

import (
	"time"

	"clinic-scheduler/internal/model"
)

// FindAppointmentAtSlot returns the first appointment on day whose interval
// contains slot. When stored data overlaps, list order decides.
func FindAppointmentAtSlot(appts []model.Appointment, day time.Time, slot model.Clock) (model.Appointment, bool) {
	for _, a := range appts {
		if model.SameDay(a.Date, day) && a.Covers(slot) {
			return a, true
		}
	}
	return model.Appointment{}, false
}

// IsStartOfAppointment reports whether slot is where a's label is drawn.
func IsStartOfAppointment(a model.Appointment, slot model.Clock) bool {
	return slot == a.Start
}

type Cell struct {
	Day         time.Time
	Appointment *model.Appointment
	IsStart     bool
}

type Row struct {
	Slot  model.Clock
	Cells []Cell
}

// BuildWeek lays appts over the days x slots grid, one row per slot and one
// cell per day.
func BuildWeek(appts []model.Appointment, days []time.Time, slots []model.Clock) []Row {
	rows := make([]Row, 0, len(slots))
	for _, slot := range slots {
		row := Row{Slot: slot, Cells: make([]Cell, 0, len(days))}
		for _, day := range days {
			cell := Cell{Day: day}
			if a, ok := FindAppointmentAtSlot(appts, day, slot); ok {
				cell.Appointment = &a
				cell.IsStart = IsStartOfAppointment(a, slot)
			}
			row.Cells = append(row.Cells, cell)
		}
		rows = append(rows, row)
	}
	return rows
}
