// Package handler exposes the schedule to presentation clients as the gRPC
// service schedule.v1.ScheduleService, speaking JSON messages.
package handler

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"clinic-scheduler/internal/booking"
	"clinic-scheduler/internal/repository"
)

type Handler struct {
	bookings  *booking.Service
	repo      *repository.Repository
	weekStart time.Weekday
	now       func() time.Time
	logger    *zap.Logger
}

type Option func(*Handler)

// WithClock overrides time.Now when working out the current week.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

func New(bookings *booking.Service, repo *repository.Repository, weekStart time.Weekday, logger *zap.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		bookings:  bookings,
		repo:      repo,
		weekStart: weekStart,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// toStatus maps booking errors onto gRPC codes. Anything unexpected is
// logged and reported without detail.
func (h *Handler) toStatus(op string, err error) error {
	var invalid *booking.ValidationError
	var conflict *booking.ConflictError
	switch {
	case errors.As(err, &invalid):
		return status.Error(codes.InvalidArgument, invalid.Message)
	case errors.As(err, &conflict):
		return status.Error(codes.AlreadyExists, conflict.Error())
	default:
		h.logger.Error("request failed", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "internal error")
	}
}
