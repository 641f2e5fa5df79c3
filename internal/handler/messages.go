package handler

import (
	"time"

	"clinic-scheduler/internal/booking"
	"clinic-scheduler/internal/model"
)

type Appointment struct {
	ID        string `json:"id"`
	Patient   string `json:"patient"`
	Doctor    string `json:"doctor"`
	Treatment string `json:"treatment"`
	Purpose   string `json:"purpose"`
	Date      string `json:"date"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

type Slot struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Day struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Today bool   `json:"today"`
}

type Cell struct {
	Date        string       `json:"date"`
	Appointment *Appointment `json:"appointment,omitempty"`
	IsStart     bool         `json:"is_start"`
}

type Row struct {
	Slot  Slot   `json:"slot"`
	Cells []Cell `json:"cells"`
}

type GetCatalogRequest struct{}

type GetCatalogResponse struct {
	Doctors    []string `json:"doctors"`
	Treatments []string `json:"treatments"`
}

type GetWeekRequest struct {
	WeekOffset int    `json:"week_offset"`
	Treatment  string `json:"treatment"`
	Doctor     string `json:"doctor"`
}

type GetWeekResponse struct {
	Range string `json:"range"`
	Days  []Day  `json:"days"`
	Slots []Slot `json:"slots"`
	Rows  []Row  `json:"rows"`
}

type ListAppointmentsRequest struct {
	Treatment string `json:"treatment"`
	Doctor    string `json:"doctor"`
}

type ListAppointmentsResponse struct {
	Appointments []Appointment `json:"appointments"`
}

type GetAppointmentRequest struct {
	ID string `json:"id"`
}

type GetAppointmentResponse struct {
	Appointment Appointment `json:"appointment"`
}

type AvailableSlotsRequest struct {
	Date      string `json:"date"`
	Doctor    string `json:"doctor"`
	ExcludeID string `json:"exclude_id"`
	Start     string `json:"start"`
}

type AvailableSlotsResponse struct {
	StartSlots []Slot `json:"start_slots"`
	EndSlots   []Slot `json:"end_slots"`
}

type CreateAppointmentRequest struct {
	Draft booking.Draft `json:"draft"`
}

type CreateAppointmentResponse struct {
	Appointment Appointment `json:"appointment"`
}

type UpdateAppointmentRequest struct {
	Draft booking.Draft `json:"draft"`
}

type UpdateAppointmentResponse struct {
	Appointment *Appointment `json:"appointment,omitempty"`
	Found       bool         `json:"found"`
}

type DeleteAppointmentRequest struct {
	ID string `json:"id"`
}

type DeleteAppointmentResponse struct{}

func toWire(a model.Appointment) Appointment {
	return Appointment{
		ID:        a.ID,
		Patient:   a.Patient,
		Doctor:    a.Doctor,
		Treatment: a.Treatment,
		Purpose:   a.Purpose,
		Date:      a.Date.Format(time.DateOnly),
		Start:     a.Start.String(),
		End:       a.End.String(),
	}
}

func toSlots(cs []model.Clock) []Slot {
	out := make([]Slot, len(cs))
	for i, c := range cs {
		out[i] = Slot{Value: c.String(), Label: c.Label()}
	}
	return out
}
