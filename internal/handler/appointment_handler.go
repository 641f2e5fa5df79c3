package handler

import (
	"context"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"clinic-scheduler/internal/schedule"
)

func (h *Handler) GetCatalog(ctx context.Context, req *GetCatalogRequest) (*GetCatalogResponse, error) {
	cat := h.bookings.Catalog()
	return &GetCatalogResponse{Doctors: cat.Doctors, Treatments: cat.Treatments}, nil
}

func (h *Handler) GetWeek(ctx context.Context, req *GetWeekRequest) (*GetWeekResponse, error) {
	now := h.now()
	days := schedule.WeekDays(now, req.WeekOffset, h.weekStart)
	slots := schedule.TimeSlots()
	appts := schedule.Filter(h.repo.List(), schedule.Selection{Treatment: req.Treatment, Doctor: req.Doctor})

	resp := &GetWeekResponse{
		Range: schedule.FormatDateRange(days[0], days[len(days)-1]),
		Days:  make([]Day, len(days)),
		Slots: toSlots(slots),
	}
	for i, d := range days {
		resp.Days[i] = Day{
			Date:  d.Format(time.DateOnly),
			Label: schedule.DayLabel(d),
			Today: schedule.IsToday(d, now),
		}
	}
	for _, row := range schedule.BuildWeek(appts, days, slots) {
		out := Row{
			Slot:  Slot{Value: row.Slot.String(), Label: row.Slot.Label()},
			Cells: make([]Cell, len(row.Cells)),
		}
		for i, c := range row.Cells {
			out.Cells[i] = Cell{Date: c.Day.Format(time.DateOnly), IsStart: c.IsStart}
			if c.Appointment != nil {
				a := toWire(*c.Appointment)
				out.Cells[i].Appointment = &a
			}
		}
		resp.Rows = append(resp.Rows, out)
	}
	return resp, nil
}

func (h *Handler) ListAppointments(ctx context.Context, req *ListAppointmentsRequest) (*ListAppointmentsResponse, error) {
	appts := schedule.Filter(h.repo.List(), schedule.Selection{Treatment: req.Treatment, Doctor: req.Doctor})
	out := make([]Appointment, len(appts))
	for i, a := range appts {
		out[i] = toWire(a)
	}
	return &ListAppointmentsResponse{Appointments: out}, nil
}

func (h *Handler) GetAppointment(ctx context.Context, req *GetAppointmentRequest) (*GetAppointmentResponse, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	a, ok := h.repo.Get(id)
	if !ok {
		return nil, status.Error(codes.NotFound, "not found")
	}
	return &GetAppointmentResponse{Appointment: toWire(a)}, nil
}

func (h *Handler) AvailableSlots(ctx context.Context, req *AvailableSlotsRequest) (*AvailableSlotsResponse, error) {
	choices, err := h.bookings.Slots(req.Date, req.Doctor, req.ExcludeID, req.Start)
	if err != nil {
		return nil, h.toStatus("slots", err)
	}
	resp := &AvailableSlotsResponse{StartSlots: toSlots(choices.Start)}
	if choices.End != nil {
		resp.EndSlots = toSlots(choices.End)
	}
	return resp, nil
}

func (h *Handler) CreateAppointment(ctx context.Context, req *CreateAppointmentRequest) (*CreateAppointmentResponse, error) {
	a, err := h.bookings.Create(ctx, req.Draft)
	if err != nil {
		return nil, h.toStatus("create", err)
	}
	return &CreateAppointmentResponse{Appointment: toWire(a)}, nil
}

// UpdateAppointment reports found=false for an unknown id instead of failing,
// matching the repository's no-op semantics.
func (h *Handler) UpdateAppointment(ctx context.Context, req *UpdateAppointmentRequest) (*UpdateAppointmentResponse, error) {
	a, found, err := h.bookings.Update(ctx, req.Draft)
	if err != nil {
		return nil, h.toStatus("update", err)
	}
	if !found {
		return &UpdateAppointmentResponse{}, nil
	}
	wire := toWire(a)
	return &UpdateAppointmentResponse{Appointment: &wire, Found: true}, nil
}

func (h *Handler) DeleteAppointment(ctx context.Context, req *DeleteAppointmentRequest) (*DeleteAppointmentResponse, error) {
	if err := h.bookings.Delete(ctx, req.ID); err != nil {
		return nil, h.toStatus("delete", err)
	}
	return &DeleteAppointmentResponse{}, nil
}
