package notifications

import (
	"fmt"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// Messenger implements domain.NotificationService by fanning out to the
// configured email and SMS channels.
type Messenger struct {
	mailer *SMTPMailer
	sms    *TwilioSMSSender

	smtpConfigured bool
}

// NewMessenger creates a new messenger. An empty SMTP username means no relay
// is configured and email falls back to logged mock output, matching the SMS
// channel behavior.
func NewMessenger(mailer *SMTPMailer, sms *TwilioSMSSender, smtpConfigured bool) domain.NotificationService {
	return &Messenger{
		mailer:         mailer,
		sms:            sms,
		smtpConfigured: smtpConfigured,
	}
}

// SendEmail implements domain.NotificationService
func (m *Messenger) SendEmail(to, subject, body string) error {
	if !m.smtpConfigured {
		fmt.Printf("[MOCK EMAIL] To: %s, Subject: %s, Body: %s\n", to, subject, body)
		return nil
	}
	return m.mailer.SendEmail(to, subject, body)
}

// SendSMS implements domain.NotificationService
func (m *Messenger) SendSMS(to, message string) error {
	return m.sms.SendSMS(to, message)
}
