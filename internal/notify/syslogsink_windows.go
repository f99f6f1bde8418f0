//go:build windows

package notify

import (
	"context"
	"errors"
)

// log/syslog does not exist on Windows; the sink is unavailable there.
type Syslog struct {
	Priority string
}

func NewSyslog(priority string) (*Syslog, error) {
	return nil, errors.New("syslog sink is not supported on windows")
}

func (s *Syslog) Name() string { return "syslog" }

func (s *Syslog) Send(ctx context.Context, subject, body string) error {
	return errors.New("syslog sink is not supported on windows")
}
