// Package repository owns the canonical appointment collection and mirrors it
// into a durable store slot after every change.
package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clinic-scheduler/internal/metrics"
	"clinic-scheduler/internal/model"
	"clinic-scheduler/internal/store"
)

type Repository struct {
	mu      sync.Mutex
	store   store.Store
	key     string
	logger  *zap.Logger
	metrics *metrics.Metrics
	newID   func() string
	appts   []model.Appointment
}

type Option func(*Repository)

// Guard inspects the current collection before a write and vetoes it by
// returning an error. Guards run under the repository lock.
type Guard func(current []model.Appointment) error

func check(current []model.Appointment, guards []Guard) error {
	for _, g := range guards {
		if err := g(current); err != nil {
			return err
		}
	}
	return nil
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Repository) { r.metrics = m }
}

// WithIDs replaces uuid minting, mainly for tests.
func WithIDs(next func() string) Option {
	return func(r *Repository) { r.newID = next }
}

func New(st store.Store, key string, logger *zap.Logger, opts ...Option) *Repository {
	if st == nil {
		panic("repository: store required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Repository{
		store:  st,
		key:    key,
		logger: logger,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load replaces the in-memory collection with the stored one. Unreadable
// data is logged and treated as an empty collection; store failures are
// returned.
func (r *Repository) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.store.Get(ctx, r.key)
	if errors.Is(err, store.ErrNotFound) {
		r.appts = nil
		r.metrics.SetAppointments(0)
		return nil
	}
	if err != nil {
		return fmt.Errorf("repository: load: %w", err)
	}

	appts, err := decode(data)
	if err != nil {
		r.logger.Warn("stored appointments unreadable, starting empty",
			zap.String("key", r.key), zap.Error(err))
		appts = nil
	}
	r.appts = appts
	r.metrics.SetAppointments(len(appts))
	r.logger.Info("appointments loaded", zap.String("key", r.key), zap.Int("count", len(appts)))
	return nil
}

// Save writes the whole collection to the store.
func (r *Repository) Save(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.persist(ctx, r.appts)
}

// List returns a copy in load order followed by insertion order.
func (r *Repository) List() []model.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.appts)
}

func (r *Repository) Get(id string) (model.Appointment, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.index(id); i >= 0 {
		return r.appts[i], true
	}
	return model.Appointment{}, false
}

// Add stores a under a freshly minted id and returns the stored copy.
func (r *Repository) Add(ctx context.Context, a model.Appointment, guards ...Guard) (model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := check(r.appts, guards); err != nil {
		return model.Appointment{}, err
	}

	a.ID = r.newID()
	next := append(slices.Clone(r.appts), a)
	if err := r.commit(ctx, "add", next); err != nil {
		return model.Appointment{}, err
	}
	return a, nil
}

// Update replaces the appointment with a.ID. It reports false, and writes
// nothing, when no such appointment exists.
func (r *Repository) Update(ctx context.Context, a model.Appointment, guards ...Guard) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(a.ID)
	if i < 0 {
		return false, nil
	}
	if err := check(r.appts, guards); err != nil {
		return false, err
	}
	next := slices.Clone(r.appts)
	next[i] = a
	if err := r.commit(ctx, "update", next); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the appointment with id if present. Removing an unknown id
// is not an error.
func (r *Repository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(r.appts), func(a model.Appointment) bool {
		return a.ID == id
	})
	return r.commit(ctx, "remove", next)
}

// commit persists next and only then makes it the current collection, so a
// failed write leaves memory and store in agreement.
func (r *Repository) commit(ctx context.Context, op string, next []model.Appointment) error {
	err := r.persist(ctx, next)
	r.metrics.ObserveMutation(op, err)
	if err != nil {
		r.logger.Error("appointment write failed", zap.String("op", op), zap.Error(err))
		return err
	}
	r.appts = next
	r.metrics.SetAppointments(len(next))
	return nil
}

func (r *Repository) persist(ctx context.Context, appts []model.Appointment) error {
	data, err := encode(appts)
	if err != nil {
		return fmt.Errorf("repository: encode: %w", err)
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("repository: save: %w", err)
	}
	return nil
}

func (r *Repository) index(id string) int {
	return slices.IndexFunc(r.appts, func(a model.Appointment) bool { return a.ID == id })
}
