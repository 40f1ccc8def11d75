package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// AppointmentDetails is what a customer is told about a booking.
type AppointmentDetails struct {
	Name     string
	Date     time.Time
	Time     string
	Location string
}

// ConfirmationSender delivers the booking confirmation email.
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, email string, details AppointmentDetails) error
}

// ReminderSender delivers the day-before reminder text.
type ReminderSender interface {
	SendReminder(ctx context.Context, phone string, details AppointmentDetails) error
}

// NoopEmailSender is used when no mail transport is configured.
type NoopEmailSender struct {
	log *logrus.Entry
}

func NewNoopEmailSender(logger *logrus.Logger) *NoopEmailSender {
	return &NoopEmailSender{log: logger.WithField("component", "email")}
}

func (s *NoopEmailSender) SendConfirmation(_ context.Context, email string, _ AppointmentDetails) error {
	s.log.WithField("to", email).Info("email disabled, confirmation skipped")
	return nil
}

// NoopSMSSender is used when no SMS provider is configured.
type NoopSMSSender struct {
	log *logrus.Entry
}

func NewNoopSMSSender(logger *logrus.Logger) *NoopSMSSender {
	return &NoopSMSSender{log: logger.WithField("component", "sms")}
}

func (s *NoopSMSSender) SendReminder(_ context.Context, phone string, _ AppointmentDetails) error {
	s.log.WithField("to", phone).Info("sms disabled, reminder skipped")
	return nil
}
