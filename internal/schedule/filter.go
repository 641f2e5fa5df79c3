package schedule

import "clinic-scheduler/internal/model"

// Selection is the operator's current doctor/treatment narrowing. An empty
// field behaves like model.All.
type Selection struct {
	Treatment string
	Doctor    string
}

func (s Selection) matches(a model.Appointment) bool {
	return selected(s.Treatment, a.Treatment) && selected(s.Doctor, a.Doctor)
}

func selected(choice, value string) bool {
	return choice == "" || choice == model.All || choice == value
}

// Filter keeps the appointments matching sel, preserving order.
func Filter(appts []model.Appointment, sel Selection) []model.Appointment {
	out := make([]model.Appointment, 0, len(appts))
	for _, a := range appts {
		if sel.matches(a) {
			out = append(out, a)
		}
	}
	return out
}
