package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// Mail delivers change notifications over SMTP. net/smtp is enough for
// the single plain-text message shape we send.
type Mail struct {
	Addr string // SMTP server, host:port
	From string
	To   []string
}

func NewMail(addr, from string, to []string) *Mail {
	if addr == "" || from == "" || len(to) == 0 {
		return nil
	}
	return &Mail{Addr: addr, From: from, To: to}
}

func (m *Mail) Name() string { return "mail" }

func (m *Mail) Send(ctx context.Context, subject, body string) error {
	if m == nil {
		return fmt.Errorf("mail disabled")
	}
	msg := m.message(subject, body)

	// net/smtp has no context hooks; run it in a goroutine so a hung
	// server can't stall the dispatch loop past the context deadline.
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(m.Addr, nil, m.From, m.To, msg)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Mail) message(subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(m.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}
