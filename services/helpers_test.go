package services

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"barbershop-backend/models"
	"barbershop-backend/store"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func lisbon(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Lisbon")
	require.NoError(t, err)
	return loc
}

// flakyStore wraps the memory store and fails the next call of an operation
// when an error has been queued for it.
type flakyStore struct {
	*store.MemoryStore
	mu      sync.Mutex
	nextErr map[string]error
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: store.NewMemoryStore(), nextErr: map[string]error{}}
}

func (s *flakyStore) setErr(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextErr[op] = err
}

func (s *flakyStore) takeErr(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.nextErr[op]
	delete(s.nextErr, op)
	return err
}

func (s *flakyStore) FindAll(ctx context.Context) ([]models.Appointment, error) {
	if err := s.takeErr("FindAll"); err != nil {
		return nil, err
	}
	return s.MemoryStore.FindAll(ctx)
}

func (s *flakyStore) FindByDateRange(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	if err := s.takeErr("FindByDateRange"); err != nil {
		return nil, err
	}
	return s.MemoryStore.FindByDateRange(ctx, from, to)
}

func (s *flakyStore) DeleteBefore(ctx context.Context, t time.Time) (int64, error) {
	if err := s.takeErr("DeleteBefore"); err != nil {
		return 0, err
	}
	return s.MemoryStore.DeleteBefore(ctx, t)
}

// newTestService returns a service whose clock reads now in Lisbon.
func newTestService(t *testing.T, st AppointmentStore, now time.Time) *AppointmentService {
	t.Helper()
	svc := NewAppointmentService(st, lisbon(t), quietLogger())
	svc.now = func() time.Time { return now }
	return svc
}

// utcStore hands every date back in UTC, the way the database drivers do.
type utcStore struct {
	*store.MemoryStore
}

func toUTC(list []models.Appointment) []models.Appointment {
	out := make([]models.Appointment, len(list))
	for i, a := range list {
		a.Date = a.Date.UTC()
		out[i] = a
	}
	return out
}

func (s utcStore) FindAll(ctx context.Context) ([]models.Appointment, error) {
	list, err := s.MemoryStore.FindAll(ctx)
	return toUTC(list), err
}

func (s utcStore) FindByDateRange(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	list, err := s.MemoryStore.FindByDateRange(ctx, from, to)
	return toUTC(list), err
}

func (s utcStore) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	a, err := s.MemoryStore.FindByID(ctx, id)
	if a != nil {
		a.Date = a.Date.UTC()
	}
	return a, err
}

func (s utcStore) UpdateByID(ctx context.Context, id string, patch models.AppointmentPatch) (*models.Appointment, error) {
	a, err := s.MemoryStore.UpdateByID(ctx, id, patch)
	if a != nil {
		a.Date = a.Date.UTC()
	}
	return a, err
}
