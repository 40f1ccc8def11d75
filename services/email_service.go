// services/email_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"

	"barbershop-backend/metrics"

	"github.com/sirupsen/logrus"
)

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`
<div style="font-family: Arial, sans-serif; font-size: 16px; color: #333;">
  <h2 style="color: #4CAF50;">Appointment Confirmation</h2>
  <p>Dear {{.Name}},</p>
  <p>Your appointment has been confirmed. Here are the details:</p>
  <table style="width: 100%; border-collapse: collapse;">
    <tr>
      <td style="padding: 8px; border: 1px solid #ddd;">Date</td>
      <td style="padding: 8px; border: 1px solid #ddd;">{{.Date}}</td>
    </tr>
    <tr>
      <td style="padding: 8px; border: 1px solid #ddd;">Time</td>
      <td style="padding: 8px; border: 1px solid #ddd;">{{.Time}}</td>
    </tr>
    <tr>
      <td style="padding: 8px; border: 1px solid #ddd;">Location</td>
      <td style="padding: 8px; border: 1px solid #ddd;">{{.Location}}</td>
    </tr>
  </table>
  <p>If you have any questions or need to reschedule, please contact us at {{.Contact}}.</p>
  <p>Thank you for choosing our service!</p>
  <p>Best regards,<br/>{{.Business}}</p>
</div>
`))

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Business string
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPEmailSender sends the confirmation as an HTML mail over SMTP with
// PLAIN auth.
type SMTPEmailSender struct {
	cfg      SMTPConfig
	sendMail sendMailFunc
	log      *logrus.Entry
}

func NewSMTPEmailSender(cfg SMTPConfig, logger *logrus.Logger) *SMTPEmailSender {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &SMTPEmailSender{
		cfg:      cfg,
		sendMail: smtp.SendMail,
		log:      logger.WithField("component", "email"),
	}
}

func (s *SMTPEmailSender) SendConfirmation(_ context.Context, email string, details AppointmentDetails) error {
	msg, err := s.buildConfirmation(email, details)
	if err == nil {
		addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		err = s.sendMail(addr, auth, s.cfg.From, []string{email}, msg)
	}
	metrics.RecordNotification("email", err)
	if err != nil {
		s.log.WithError(err).WithField("to", email).Error("failed to send appointment confirmation")
		return fmt.Errorf("send confirmation to %s: %w", email, err)
	}
	s.log.WithField("to", email).Info("appointment confirmation sent")
	return nil
}

func (s *SMTPEmailSender) buildConfirmation(to string, d AppointmentDetails) ([]byte, error) {
	var body bytes.Buffer
	err := confirmationTemplate.Execute(&body, map[string]string{
		"Name":     d.Name,
		"Date":     d.Date.Format("02/01/2006"),
		"Time":     d.Time,
		"Location": d.Location,
		"Contact":  s.cfg.From,
		"Business": s.cfg.Business,
	})
	if err != nil {
		return nil, err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	msg.WriteString("Subject: Appointment Confirmation\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	msg.Write(body.Bytes())
	return []byte(msg.String()), nil
}
