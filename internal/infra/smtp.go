package infra

import (
	"fmt"
	"net/smtp"

	"autocenter/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer sends plain-text mail through the configured SMTP relay. Sends go
// through a circuit breaker so a dead relay does not stall every worker.
type Mailer struct {
	from    string
	addr    string
	auth    smtp.Auth
	breaker *CircuitBreaker
}

func NewMailer(cfg *config.Config) *Mailer {
	m := &Mailer{
		from:    cfg.SMTPUser,
		addr:    fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		breaker: NewCircuitBreaker(DefaultCBConfig()),
	}
	if cfg.SMTPUser != "" {
		m.auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return m
}

// Send mails body to the recipients, attaching the file at attachPath when
// it is not empty.
func (m *Mailer) Send(to []string, subject, body, attachPath string) error {
	if len(to) == 0 {
		return fmt.Errorf("mailer: no recipients")
	}
	e := email.NewEmail()
	e.From = m.from
	e.To = to
	e.Subject = subject
	e.Text = []byte(body)
	if attachPath != "" {
		if _, err := e.AttachFile(attachPath); err != nil {
			return fmt.Errorf("mailer: attach %s: %w", attachPath, err)
		}
	}
	return m.breaker.Execute(func() error { return e.Send(m.addr, m.auth) })
}

// BreakerState reports the relay breaker for /health.
func (m *Mailer) BreakerState() string { return m.breaker.State().String() }
