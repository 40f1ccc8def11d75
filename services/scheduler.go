// services/scheduler.go
package services

import (
	"context"
	"fmt"
	"time"

	"barbershop-backend/metrics"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	DefaultCleanupSchedule  = "0 0 * * *"
	DefaultReminderSchedule = "38 18 * * *"

	defaultCustomerName = "Cliente"
	jobTimeout          = 10 * time.Minute
)

type SchedulerConfig struct {
	CleanupSchedule  string
	ReminderSchedule string
	// Location is the business address quoted in reminders.
	Location string
}

// Scheduler runs the daily cleanup and reminder jobs. Both jobs fire in the
// appointment service's timezone and keep no state between runs.
type Scheduler struct {
	cron         *cron.Cron
	cfg          SchedulerConfig
	appointments *AppointmentService
	reminders    ReminderSender
	log          *logrus.Entry
}

func NewScheduler(cfg SchedulerConfig, appointments *AppointmentService, reminders ReminderSender, logger *logrus.Logger) (*Scheduler, error) {
	if cfg.CleanupSchedule == "" {
		cfg.CleanupSchedule = DefaultCleanupSchedule
	}
	if cfg.ReminderSchedule == "" {
		cfg.ReminderSchedule = DefaultReminderSchedule
	}

	s := &Scheduler{
		cron:         cron.New(cron.WithLocation(appointments.Location())),
		cfg:          cfg,
		appointments: appointments,
		reminders:    reminders,
		log:          logger.WithField("component", "scheduler"),
	}

	if _, err := s.cron.AddFunc(cfg.CleanupSchedule, s.cleanupTick); err != nil {
		return nil, fmt.Errorf("schedule cleanup %q: %w", cfg.CleanupSchedule, err)
	}
	if _, err := s.cron.AddFunc(cfg.ReminderSchedule, s.reminderTick); err != nil {
		return nil, fmt.Errorf("schedule reminders %q: %w", cfg.ReminderSchedule, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.WithFields(logrus.Fields{
		"cleanup":  s.cfg.CleanupSchedule,
		"reminder": s.cfg.ReminderSchedule,
		"timezone": s.appointments.Location().String(),
	}).Info("scheduler started")
}

// Stop prevents further runs and waits for a running job to return or ctx
// to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out with a job still running")
	}
}

func (s *Scheduler) cleanupTick() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	s.RunCleanup(ctx)
}

func (s *Scheduler) reminderTick() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	s.RunReminders(ctx)
}

// RunCleanup removes stale appointments. Failures are logged and left for
// the next run.
func (s *Scheduler) RunCleanup(ctx context.Context) int64 {
	s.log.Info("running daily cleanup job")
	n, err := s.appointments.RemoveStale(ctx)
	metrics.RecordJobRun("cleanup", err)
	if err != nil {
		s.log.WithError(err).Error("error removing old appointments")
		return 0
	}
	s.log.WithField("removed", n).Info("old appointments removed")
	return n
}

// RunReminders texts every customer booked for tomorrow. A failed send is
// logged and does not stop the remaining ones. It returns how many sends
// succeeded and failed.
func (s *Scheduler) RunReminders(ctx context.Context) (sent, failed int) {
	tomorrow := s.appointments.Tomorrow()
	log := s.log.WithField("date", tomorrow.Format("2006-01-02"))
	log.Info("running daily reminder job")

	appointments, err := s.appointments.FindByDay(ctx, tomorrow)
	if err != nil {
		metrics.RecordJobRun("reminders", err)
		log.WithError(err).Error("error retrieving appointments for reminders")
		return 0, 0
	}
	log.WithField("count", len(appointments)).Info("retrieved appointments for reminders")

	for _, a := range appointments {
		name := a.CustomerName
		if name == "" {
			name = defaultCustomerName
		}
		err := s.reminders.SendReminder(ctx, a.Phone, AppointmentDetails{
			Name:     name,
			Date:     a.Date.In(s.appointments.Location()),
			Time:     a.Time,
			Location: s.cfg.Location,
		})
		if err != nil {
			failed++
			log.WithError(err).WithField("appointment_id", a.ID).Error("error sending reminder")
			continue
		}
		sent++
	}

	metrics.RecordJobRun("reminders", nil)
	log.WithFields(logrus.Fields{"sent": sent, "failed": failed}).Info("reminder job finished")
	return sent, failed
}
