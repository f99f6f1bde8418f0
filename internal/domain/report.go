package domain

import (
	"fmt"
	"strings"
)

// Line renders the canonical per-host report line consumed by the log
// and web sinks and summarized for mail/syslog.
func (st HostStatus) Line() string {
	switch st.Outcome {
	case Up:
		return fmt.Sprintf("%s [%s] is up (time = %.1f ms)", st.label(), st.Addr, st.LatencyMS)
	case UnknownHost:
		return fmt.Sprintf("%s unknown hostname", st.Host)
	default:
		return fmt.Sprintf("%s [%s] is down", st.label(), st.Addr)
	}
}

func (st HostStatus) label() string {
	if st.Label != "" {
		return st.Label
	}
	return string(st.Host)
}

// Text renders the full per-host report, one line per host in probe order.
func (r CycleReport) Text() string {
	var b strings.Builder
	for _, st := range r.Statuses {
		b.WriteString(st.Line())
		b.WriteByte('\n')
	}
	return b.String()
}

// Summary is the concise change-notification body: the down hosts, or an
// all-clear sentence when the dead set is empty.
func (r CycleReport) Summary() string {
	ds := r.DeadSet()
	if len(ds) == 0 {
		return "all hosts are up"
	}
	parts := make([]string, 0, len(ds))
	for _, h := range ds.Hosts() {
		parts = append(parts, string(h))
	}
	return "hosts down: " + strings.Join(parts, ", ")
}
