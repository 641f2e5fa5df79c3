// Package booking turns form submissions into repository writes. It validates
// drafts against the catalog and the working grid and refuses intervals that
// collide with another appointment of the same doctor.
package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"clinic-scheduler/internal/model"
	"clinic-scheduler/internal/repository"
	"clinic-scheduler/internal/schedule"
)

var tracer = otel.Tracer("clinic.internal.booking")

// Draft is an appointment as typed into the form. Date is YYYY-MM-DD, Start
// and End are HH:mm. ID is only read by Update.
type Draft struct {
	ID        string `json:"id,omitempty"`
	Patient   string `json:"patient"`
	Doctor    string `json:"doctor"`
	Treatment string `json:"treatment"`
	Purpose   string `json:"purpose"`
	Date      string `json:"date"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

func (d Draft) trimmed() Draft {
	return Draft{
		ID:        strings.TrimSpace(d.ID),
		Patient:   strings.TrimSpace(d.Patient),
		Doctor:    strings.TrimSpace(d.Doctor),
		Treatment: strings.TrimSpace(d.Treatment),
		Purpose:   strings.TrimSpace(d.Purpose),
		Date:      strings.TrimSpace(d.Date),
		Start:     strings.TrimSpace(d.Start),
		End:       strings.TrimSpace(d.End),
	}
}

// SlotChoices are the options offered by the start and end pickers.
type SlotChoices struct {
	Start []model.Clock
	End   []model.Clock
}

type Service struct {
	repo    *repository.Repository
	catalog model.Catalog
	logger  *zap.Logger
}

func NewService(repo *repository.Repository, catalog model.Catalog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, catalog: catalog, logger: logger}
}

func (s *Service) Catalog() model.Catalog { return s.catalog }

// Create validates d and stores it under a new id.
func (s *Service) Create(ctx context.Context, d Draft) (model.Appointment, error) {
	ctx, span := tracer.Start(ctx, "booking.create")
	defer span.End()

	a, err := s.validate(d)
	if err != nil {
		span.RecordError(err)
		return model.Appointment{}, err
	}
	span.SetAttributes(attribute.String("clinic.doctor", a.Doctor), attribute.String("clinic.date", a.Date.Format(time.DateOnly)))

	stored, err := s.repo.Add(ctx, a, s.noConflict(a))
	if err != nil {
		s.fail(span, "create", err)
		return model.Appointment{}, err
	}
	s.logger.Info("appointment created",
		zap.String("id", stored.ID),
		zap.String("doctor", stored.Doctor),
		zap.Time("date", stored.Date),
		zap.Stringer("start", stored.Start),
		zap.Stringer("end", stored.End),
	)
	return stored, nil
}

// Update replaces the appointment d.ID. found is false, and nothing is
// written, when no appointment has that id.
func (s *Service) Update(ctx context.Context, d Draft) (model.Appointment, bool, error) {
	ctx, span := tracer.Start(ctx, "booking.update")
	defer span.End()

	d = d.trimmed()
	if d.ID == "" {
		err := invalid(msgIDRequired)
		span.RecordError(err)
		return model.Appointment{}, false, err
	}
	a, err := s.validate(d)
	if err != nil {
		span.RecordError(err)
		return model.Appointment{}, false, err
	}
	a.ID = d.ID
	span.SetAttributes(
		attribute.String("clinic.appointment_id", a.ID),
		attribute.String("clinic.doctor", a.Doctor),
		attribute.String("clinic.date", a.Date.Format(time.DateOnly)),
	)

	found, err := s.repo.Update(ctx, a, s.noConflict(a))
	if err != nil {
		s.fail(span, "update", err)
		return model.Appointment{}, false, err
	}
	if !found {
		s.logger.Warn("update of unknown appointment ignored", zap.String("id", a.ID))
		return model.Appointment{}, false, nil
	}
	s.logger.Info("appointment updated", zap.String("id", a.ID))
	return a, true, nil
}

// Delete removes id. Unknown ids are not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "booking.delete")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		err := invalid(msgIDRequired)
		span.RecordError(err)
		return err
	}
	span.SetAttributes(attribute.String("clinic.appointment_id", id))

	if err := s.repo.Remove(ctx, id); err != nil {
		s.fail(span, "delete", err)
		return err
	}
	s.logger.Info("appointment deleted", zap.String("id", id))
	return nil
}

// Slots lists the free start times of doctor on date, ignoring excludeID.
// When start is given the end choices are the free slots after it. An empty
// date or doctor offers every slot.
func (s *Service) Slots(date, doctor, excludeID, start string) (SlotChoices, error) {
	var day time.Time
	if date = strings.TrimSpace(date); date != "" {
		d, err := model.ParseDate(date)
		if err != nil {
			return SlotChoices{}, invalid(msgDate)
		}
		day = d
	}

	free := schedule.AvailableSlots(s.repo.List(), day, strings.TrimSpace(doctor), strings.TrimSpace(excludeID))
	choices := SlotChoices{Start: free}
	if start = strings.TrimSpace(start); start != "" {
		from, err := model.ParseClock(start)
		if err != nil {
			return SlotChoices{}, invalid(msgTime)
		}
		choices.End = schedule.EndSlots(free, from)
	}
	return choices, nil
}

func (s *Service) validate(d Draft) (model.Appointment, error) {
	d = d.trimmed()
	if d.Patient == "" || d.Doctor == "" || d.Treatment == "" || d.Purpose == "" ||
		d.Date == "" || d.Start == "" || d.End == "" {
		return model.Appointment{}, invalid(msgRequired)
	}

	date, err := model.ParseDate(d.Date)
	if err != nil {
		return model.Appointment{}, invalid(msgDate)
	}
	start, err := model.ParseClock(d.Start)
	if err != nil {
		return model.Appointment{}, invalid(msgTime)
	}
	end, err := model.ParseClock(d.End)
	if err != nil {
		return model.Appointment{}, invalid(msgTime)
	}

	if !s.catalog.HasDoctor(d.Doctor) {
		return model.Appointment{}, invalid(msgUnknownDoc, d.Doctor)
	}
	if !s.catalog.HasTreatment(d.Treatment) {
		return model.Appointment{}, invalid(msgUnknownTreat, d.Treatment)
	}
	if end <= start {
		return model.Appointment{}, invalid(msgEndAfter)
	}
	if !schedule.OnGrid(start) || !schedule.OnGrid(end) {
		return model.Appointment{}, invalid(msgOffGrid)
	}

	return model.Appointment{
		Patient:   d.Patient,
		Doctor:    d.Doctor,
		Treatment: d.Treatment,
		Purpose:   d.Purpose,
		Date:      date,
		Start:     start,
		End:       end,
	}, nil
}

// noConflict vetoes a write when a overlaps another appointment of the same
// doctor and day. The check runs against the collection the write applies to.
func (s *Service) noConflict(a model.Appointment) repository.Guard {
	return func(current []model.Appointment) error {
		if clash := schedule.Conflicts(current, a.Doctor, a.Date, a.Start, a.End, a.ID); len(clash) > 0 {
			return &ConflictError{With: clash[0]}
		}
		return nil
	}
}

func (s *Service) fail(span trace.Span, op string, err error) {
	span.RecordError(err)
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return
	}
	span.SetStatus(codes.Error, op+" failed")
}
