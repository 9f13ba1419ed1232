package notificationservice

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/bezell-bank/ledger-core/internal/domain"
)

// SMTPSender delivers notifications over plain SMTP.
type SMTPSender struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPSender returns a sender for the given SMTP relay. Auth is skipped
// when no username is configured, which is the local development setup.
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	s := &SMTPSender{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
	}

	if username != "" {
		s.auth = smtp.PlainAuth("", username, password, host)
	}

	return s
}

// Send delivers the notification as a plain-text email.
func (s *SMTPSender) Send(ctx context.Context, n domain.Notification) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.from, n.Email, n.Subject, n.Content)

	return smtp.SendMail(s.addr, s.auth, s.from, []string{n.Email}, []byte(msg))
}
