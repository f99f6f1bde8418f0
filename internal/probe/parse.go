package probe

import (
	"regexp"
	"strconv"

	"github.com/hamed0406/pingwatch/internal/domain"
)

// Probe output markers. The iputils and BSD ping variants phrase
// resolution failures differently, so all known spellings count.
var (
	reUnknown = regexp.MustCompile(`(?i)unknown host|name or service not known|temporary failure in name resolution|cannot resolve|could not resolve`)
	reHeader  = regexp.MustCompile(`(?m)^PING\s+(\S+)\s+\(([^)\s]+)\)`)
	reReply   = regexp.MustCompile(`time[=<]\s*([0-9]+(?:\.[0-9]+)?)\s*ms`)
	reRTTAvg  = regexp.MustCompile(`=\s*[0-9.]+/([0-9.]+)/`)
)

// Classify turns a raw probe result into a per-host status.
//
// Precedence is fixed and load-bearing:
//  1. a resolution-failure marker wins over everything, even stray
//     latency text, and yields UnknownHost;
//  2. any round-trip figure (per-reply time= or the rtt avg summary)
//     yields Up, even amid packet loss;
//  3. everything else, including empty output and zero received
//     packets, yields Down.
func Classify(raw RawResult) domain.HostStatus {
	st := domain.HostStatus{Host: raw.Host}

	if m := reHeader.FindStringSubmatch(raw.Output); m != nil {
		st.Label = m[1]
		st.Addr = m[2]
	}

	if reUnknown.MatchString(raw.Output) || reUnknown.MatchString(raw.Err) {
		st.Outcome = domain.UnknownHost
		return st
	}

	if m := reReply.FindStringSubmatch(raw.Output); m != nil {
		if ms, err := strconv.ParseFloat(m[1], 64); err == nil {
			st.Outcome = domain.Up
			st.LatencyMS = ms
			return st
		}
	}
	if m := reRTTAvg.FindStringSubmatch(raw.Output); m != nil {
		if ms, err := strconv.ParseFloat(m[1], 64); err == nil {
			st.Outcome = domain.Up
			st.LatencyMS = ms
			return st
		}
	}

	st.Outcome = domain.Down
	return st
}
