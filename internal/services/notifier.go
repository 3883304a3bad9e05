package services

import (
	"context"
	"fmt"

	"github.com/go-gomail/gomail"
	"github.com/sirupsen/logrus"

	"github.com/medibook/clinic-api/internal/models"
)

// NotificationResult makes the outcome of a delivery attempt explicit.
// The caller decides what to do with a failure; this package never does more
// than report it. Notification failure must not affect the confirmed
// appointment or the HTTP response.
type NotificationResult struct {
	Sent bool
	Err  error
}

// Notifier delivers the confirmation email to the patient after the
// appointment state transition has already been persisted.
type Notifier interface {
	SendConfirmation(ctx context.Context, appointment *models.Appointment, doctor *models.Doctor) NotificationResult
}

type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
	log    *logrus.Logger
}

func NewSMTPNotifier(host string, port int, user, password, from string, log *logrus.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
		log:    log,
	}
}

func (n *SMTPNotifier) SendConfirmation(ctx context.Context, appointment *models.Appointment, doctor *models.Doctor) NotificationResult {
	if appointment.PatientEmail == "" {
		return NotificationResult{Err: fmt.Errorf("appointment %s has no patient email", appointment.ID.Hex())}
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", appointment.PatientEmail)
	m.SetHeader("Subject", "Appointment Confirmed")
	m.SetBody("text/plain", fmt.Sprintf(
		"Dear %s,\n\n%s\n\nDoctor: %s (%s)\nHospital: %s\nDate: %s\nTime: %s\n\nThank you.",
		appointment.PatientName,
		appointment.Message,
		doctor.Name,
		doctor.Specialization,
		doctor.HospitalName,
		appointment.Date,
		appointment.TimeSlot,
	))

	// gomail has no context support; run the dial in a goroutine so a slow
	// SMTP server cannot hold the request past the caller's deadline.
	done := make(chan error, 1)
	go func() {
		done <- n.dialer.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		return NotificationResult{Err: fmt.Errorf("send confirmation email: %w", ctx.Err())}
	case err := <-done:
		if err != nil {
			return NotificationResult{Err: fmt.Errorf("send confirmation email: %w", err)}
		}
	}

	n.log.WithFields(logrus.Fields{
		"appointment": appointment.ID.Hex(),
		"to":          appointment.PatientEmail,
	}).Info("confirmation email sent")
	return NotificationResult{Sent: true}
}

// NoopNotifier stands in when SMTP is not configured. Confirmations still
// succeed; emailSent is simply reported false.
type NoopNotifier struct{}

func (NoopNotifier) SendConfirmation(context.Context, *models.Appointment, *models.Doctor) NotificationResult {
	return NotificationResult{Err: fmt.Errorf("notification service not configured")}
}
