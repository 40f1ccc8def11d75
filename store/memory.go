package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"barbershop-backend/models"

	"github.com/google/uuid"
)

// MemoryStore keeps appointments in process memory. It backs local runs
// (STORE_DRIVER=memory) and the service and handler tests.
type MemoryStore struct {
	mu           sync.RWMutex
	appointments map[string]models.Appointment
	now          func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		appointments: make(map[string]models.Appointment),
		now:          time.Now,
	}
}

func (s *MemoryStore) FindAll(_ context.Context) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Appointment, 0, len(s.appointments))
	for _, a := range s.appointments {
		out = append(out, a)
	}
	sortByCreation(out)
	return out, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (s *MemoryStore) FindByDateRange(_ context.Context, from, to time.Time) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Appointment{}
	for _, a := range s.appointments {
		if !a.Date.Before(from) && a.Date.Before(to) {
			out = append(out, a)
		}
	}
	sortByCreation(out)
	return out, nil
}

func (s *MemoryStore) Insert(_ context.Context, a *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := s.now()
	a.CreatedAt = now
	a.UpdatedAt = now
	s.appointments[a.ID] = *a
	return nil
}

func (s *MemoryStore) UpdateByID(_ context.Context, id string, patch models.AppointmentPatch) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.IsEmpty() {
		return &a, nil
	}
	patch.Apply(&a)
	a.UpdatedAt = s.now()
	s.appointments[id] = a
	return &a, nil
}

func (s *MemoryStore) DeleteByID(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appointments[id]; !ok {
		return false, nil
	}
	delete(s.appointments, id)
	return true, nil
}

func (s *MemoryStore) DeleteBefore(_ context.Context, t time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, a := range s.appointments {
		if a.Date.Before(t) {
			delete(s.appointments, id)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

func sortByCreation(list []models.Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
}
