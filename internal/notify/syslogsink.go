//go:build !windows

package notify

import (
	"context"
	"fmt"
	"log/syslog"
	"strings"
)

// Syslog delivers change notifications to the local syslog daemon. The
// priority string follows the classic "facility.severity" form, e.g.
// "daemon.err".
type Syslog struct {
	Priority string
	Tag      string

	dial func(p syslog.Priority, tag string) (*syslog.Writer, error)
}

func NewSyslog(priority string) (*Syslog, error) {
	if priority == "" {
		priority = "daemon.err"
	}
	if _, err := parsePriority(priority); err != nil {
		return nil, err
	}
	return &Syslog{
		Priority: priority,
		Tag:      "pingwatch",
		dial: func(p syslog.Priority, tag string) (*syslog.Writer, error) {
			return syslog.New(p, tag)
		},
	}, nil
}

func (s *Syslog) Name() string { return "syslog" }

func (s *Syslog) Send(ctx context.Context, subject, body string) error {
	p, err := parsePriority(s.Priority)
	if err != nil {
		return err
	}
	w, err := s.dial(p, s.Tag)
	if err != nil {
		return err
	}
	defer w.Close()
	// Syslog wants the concise form: subject plus the summary line.
	msg := subject
	if first, _, ok := strings.Cut(body, "\n"); ok && first != "" {
		msg = subject + ": " + first
	}
	_, err = fmt.Fprint(w, msg)
	return err
}

var facilities = map[string]syslog.Priority{
	"kern": syslog.LOG_KERN, "user": syslog.LOG_USER, "mail": syslog.LOG_MAIL,
	"daemon": syslog.LOG_DAEMON, "auth": syslog.LOG_AUTH, "syslog": syslog.LOG_SYSLOG,
	"lpr": syslog.LOG_LPR, "news": syslog.LOG_NEWS, "uucp": syslog.LOG_UUCP,
	"cron": syslog.LOG_CRON, "authpriv": syslog.LOG_AUTHPRIV, "ftp": syslog.LOG_FTP,
	"local0": syslog.LOG_LOCAL0, "local1": syslog.LOG_LOCAL1, "local2": syslog.LOG_LOCAL2,
	"local3": syslog.LOG_LOCAL3, "local4": syslog.LOG_LOCAL4, "local5": syslog.LOG_LOCAL5,
	"local6": syslog.LOG_LOCAL6, "local7": syslog.LOG_LOCAL7,
}

var severities = map[string]syslog.Priority{
	"emerg": syslog.LOG_EMERG, "alert": syslog.LOG_ALERT, "crit": syslog.LOG_CRIT,
	"err": syslog.LOG_ERR, "warning": syslog.LOG_WARNING, "notice": syslog.LOG_NOTICE,
	"info": syslog.LOG_INFO, "debug": syslog.LOG_DEBUG,
}

func parsePriority(s string) (syslog.Priority, error) {
	fac, sev, ok := strings.Cut(s, ".")
	if !ok {
		return 0, fmt.Errorf("syslog priority %q: want facility.severity", s)
	}
	f, okf := facilities[strings.ToLower(fac)]
	v, okv := severities[strings.ToLower(sev)]
	if !okf || !okv {
		return 0, fmt.Errorf("syslog priority %q: unknown facility or severity", s)
	}
	return f | v, nil
}
