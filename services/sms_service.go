// services/sms_service.go
package services

import (
	"context"
	"fmt"

	"barbershop-backend/metrics"
	"barbershop-backend/utils"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type TwilioConfig struct {
	AccountSID  string
	AuthToken   string
	FromNumber  string
	CountryCode string
	Business    string
	Contact     string
}

// TwilioSMSSender sends reminder texts through the Twilio messages API.
type TwilioSMSSender struct {
	cfg    TwilioConfig
	client messageCreator
	log    *logrus.Entry
}

func NewTwilioSMSSender(cfg TwilioConfig, logger *logrus.Logger) *TwilioSMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioSMSSender{
		cfg:    cfg,
		client: client.Api,
		log:    logger.WithField("component", "sms"),
	}
}

func (s *TwilioSMSSender) SendReminder(_ context.Context, phone string, details AppointmentDetails) error {
	to := utils.NormalizePhone(phone, s.cfg.CountryCode)
	if !utils.ValidatePhone(to) {
		err := fmt.Errorf("invalid phone number %q", phone)
		metrics.RecordNotification("sms", err)
		s.log.WithError(err).Error("reminder not sent")
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.cfg.FromNumber)
	params.SetBody(s.reminderBody(details))

	s.log.WithField("to", to).Debug("sending reminder sms")
	resp, err := s.client.CreateMessage(params)
	metrics.RecordNotification("sms", err)
	if err != nil {
		s.log.WithError(err).WithField("to", to).Error("failed to send appointment reminder")
		return fmt.Errorf("send reminder to %s: %w", to, err)
	}

	entry := s.log.WithField("to", to)
	if resp != nil && resp.Sid != nil {
		entry = entry.WithField("sid", *resp.Sid)
	}
	entry.Info("appointment reminder sent")
	return nil
}

func (s *TwilioSMSSender) reminderBody(d AppointmentDetails) string {
	body := fmt.Sprintf("Olá %s, lembrete do seu agendamento para amanhã:\n", d.Name)
	if s.cfg.Business != "" {
		body += s.cfg.Business + "\n"
	}
	body += fmt.Sprintf("Data: %s\nHora: %s\nLocal: %s\n", d.Date.Format("02/01/2006"), d.Time, d.Location)
	body += "Caso não possa comparecer p.f. contacte-nos.\nObrigado!"
	if s.cfg.Contact != "" {
		body += "\nTel." + s.cfg.Contact
	}
	return body
}
