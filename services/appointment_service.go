// services/appointment_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barbershop-backend/models"
	"barbershop-backend/store"
	"barbershop-backend/utils"

	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidDate         = errors.New("invalid date, expected YYYY-MM-DD")
)

// AppointmentStore is the persistence contract the lifecycle service needs.
type AppointmentStore interface {
	FindAll(ctx context.Context) ([]models.Appointment, error)
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
	Insert(ctx context.Context, a *models.Appointment) error
	UpdateByID(ctx context.Context, id string, patch models.AppointmentPatch) (*models.Appointment, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	DeleteBefore(ctx context.Context, t time.Time) (int64, error)
	Ping(ctx context.Context) error
}

// AppointmentService owns the appointment lifecycle: CRUD plus the
// calendar-day queries used by the dashboard and the daily jobs. All day
// arithmetic happens in the business location.
type AppointmentService struct {
	store AppointmentStore
	loc   *time.Location
	now   func() time.Time
	log   *logrus.Entry
}

func NewAppointmentService(store AppointmentStore, loc *time.Location, logger *logrus.Logger) *AppointmentService {
	if loc == nil {
		loc = time.Local
	}
	return &AppointmentService{
		store: store,
		loc:   loc,
		now:   time.Now,
		log:   logger.WithField("component", "appointments"),
	}
}

// Location is the timezone dates are normalized to.
func (s *AppointmentService) Location() *time.Location {
	return s.loc
}

// Today is the current day boundary in the business location.
func (s *AppointmentService) Today() time.Time {
	return utils.BeginningOfDay(s.now().In(s.loc))
}

// Tomorrow is Today plus one calendar day.
func (s *AppointmentService) Tomorrow() time.Time {
	return s.Today().AddDate(0, 0, 1)
}

func (s *AppointmentService) ListAll(ctx context.Context) ([]models.Appointment, error) {
	appointments, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.localizeAll(appointments), nil
}

func (s *AppointmentService) Get(ctx context.Context, id string) (*models.Appointment, error) {
	a, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	s.localize(a)
	return a, nil
}

// Create persists a new appointment and returns it with its assigned id.
// Input validation is the caller's job.
func (s *AppointmentService) Create(ctx context.Context, a models.Appointment) (*models.Appointment, error) {
	a.ID = ""
	a.Date = s.normalize(a.Date)
	if err := s.store.Insert(ctx, &a); err != nil {
		return nil, err
	}
	s.log.WithField("appointment_id", a.ID).Info("appointment created")
	s.localize(&a)
	return &a, nil
}

// Update applies only the fields present in patch. It never creates a record.
func (s *AppointmentService) Update(ctx context.Context, id string, patch models.AppointmentPatch) (*models.Appointment, error) {
	if patch.Date != nil {
		d := s.normalize(*patch.Date)
		patch.Date = &d
	}

	a, err := s.store.UpdateByID(ctx, id, patch)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	s.log.WithField("appointment_id", id).Info("appointment updated")
	s.localize(a)
	return a, nil
}

// Remove deletes by id and reports whether a record existed.
func (s *AppointmentService) Remove(ctx context.Context, id string) (bool, error) {
	deleted, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.WithField("appointment_id", id).Info("appointment deleted")
	}
	return deleted, nil
}

// FindByDate returns the appointments on the calendar day named by date
// (YYYY-MM-DD), read in the business location.
func (s *AppointmentService) FindByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	day, err := s.ParseDate(date)
	if err != nil {
		return nil, err
	}
	return s.FindByDay(ctx, day)
}

// FindByDay returns the appointments in [day, day+1) for day's calendar date.
func (s *AppointmentService) FindByDay(ctx context.Context, day time.Time) ([]models.Appointment, error) {
	from, to := utils.DayWindow(day.In(s.loc))
	appointments, err := s.store.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return s.localizeAll(appointments), nil
}

// RemoveStale deletes every appointment dated before today and returns how
// many were removed.
func (s *AppointmentService) RemoveStale(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteBefore(ctx, s.Today())
	if err != nil {
		return 0, fmt.Errorf("remove stale appointments: %w", err)
	}
	return n, nil
}

// ParseDate reads a YYYY-MM-DD string as midnight in the business location.
func (s *AppointmentService) ParseDate(date string) (time.Time, error) {
	day, err := utils.ParseDay(date, s.loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return day, nil
}

// localize presents a stored date in the business location. Backends hand
// dates back in UTC or the server zone.
func (s *AppointmentService) localize(a *models.Appointment) {
	if !a.Date.IsZero() {
		a.Date = a.Date.In(s.loc)
	}
}

func (s *AppointmentService) localizeAll(appointments []models.Appointment) []models.Appointment {
	for i := range appointments {
		s.localize(&appointments[i])
	}
	return appointments
}

// normalize keeps the calendar date of t as seen in the business location.
func (s *AppointmentService) normalize(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return utils.BeginningOfDay(t.In(s.loc))
}
