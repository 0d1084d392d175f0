package report

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/config"
)

// Mailer sends the daily report email over SMTP.
type Mailer struct {
	cfg config.MailConfig
}

// NewMailer builds a mailer from SMTP config.
func NewMailer(cfg config.MailConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers the report email with the given file attachments. A missing
// recipient list is an error so a misconfigured job fails loudly instead of
// silently mailing nobody.
func (m *Mailer) Send(subject, body string, attachments []string) error {
	if len(m.cfg.To) == 0 {
		return fmt.Errorf("no report recipients configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.User)
	msg.SetHeader("To", m.cfg.To...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	for _, path := range attachments {
		msg.Attach(path)
	}

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send report mail: %w", err)
	}
	return nil
}
