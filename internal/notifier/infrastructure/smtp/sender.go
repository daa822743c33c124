package smtp

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Sender delivers mail over plain SMTP. Auth is optional and only used
// when a username is configured.
type Sender struct {
	addr string
	from string
	auth smtp.Auth
}

func NewSender(addr, from, username, password string) *Sender {
	s := &Sender{addr: addr, from: from}
	if username != "" {
		host := addr
		if i := strings.LastIndex(addr, ":"); i >= 0 {
			host = addr[:i]
		}
		s.auth = smtp.PlainAuth("", username, password, host)
	}
	return s
}

func (s *Sender) Send(_ context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", s.from, to, subject, body)
	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp.SendMail: %w", err)
	}
	return nil
}
