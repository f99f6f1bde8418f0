package domain

import (
	"sort"
	"time"
)

// HostSpec identifies one monitored host: a hostname or an IP string,
// exactly as it appears in the configured host list.
type HostSpec string

// Outcome is the classified result of probing one host in one cycle.
type Outcome int

const (
	// Down: the host resolved (or was an address) but never answered.
	Down Outcome = iota
	// Up: at least one probe round-trip succeeded.
	Up
	// UnknownHost: the name could not be resolved. Distinct from Down
	// because it usually means a configuration error, not an outage.
	UnknownHost
)

func (o Outcome) String() string {
	switch o {
	case Up:
		return "up"
	case UnknownHost:
		return "unknown"
	default:
		return "down"
	}
}

// Dead reports whether this outcome counts the host into the DeadSet.
func (o Outcome) Dead() bool { return o != Up }

// HostStatus is one host's result within a cycle.
type HostStatus struct {
	Host      HostSpec `json:"host"`
	Label     string   `json:"label"` // resolved hostname, falls back to Host
	Addr      string   `json:"addr"`  // resolved address, empty when unresolved
	Outcome   Outcome  `json:"outcome"`
	LatencyMS float64  `json:"latency_ms,omitempty"` // meaningful only when Up
}

// CycleReport is the product of one full probe cycle: every configured
// host, in host-list order, with its classified outcome. It is created
// fresh each cycle and discarded once the state decision is made.
type CycleReport struct {
	CheckedAt time.Time    `json:"checked_at"`
	Statuses  []HostStatus `json:"statuses"`
}

// DeadSet derives the set of hosts classified Down or UnknownHost.
// Always computed from the per-host outcomes, never stored separately.
func (r CycleReport) DeadSet() DeadSet {
	ds := make(DeadSet, len(r.Statuses))
	for _, st := range r.Statuses {
		if st.Outcome.Dead() {
			ds[st.Host] = struct{}{}
		}
	}
	return ds
}

// AllUp reports whether every probed host answered.
func (r CycleReport) AllUp() bool {
	for _, st := range r.Statuses {
		if st.Outcome.Dead() {
			return false
		}
	}
	return true
}

// DeadSet is the set of hosts considered unreachable in a cycle.
type DeadSet map[HostSpec]struct{}

// NewDeadSet builds a DeadSet from host names, mostly for tests.
func NewDeadSet(hosts ...HostSpec) DeadSet {
	ds := make(DeadSet, len(hosts))
	for _, h := range hosts {
		ds[h] = struct{}{}
	}
	return ds
}

// Equal is order-independent set equality.
func (d DeadSet) Equal(other DeadSet) bool {
	if len(d) != len(other) {
		return false
	}
	for h := range d {
		if _, ok := other[h]; !ok {
			return false
		}
	}
	return true
}

// Clone returns an independent copy so snapshots can cross the cycle
// boundary without sharing the underlying map.
func (d DeadSet) Clone() DeadSet {
	out := make(DeadSet, len(d))
	for h := range d {
		out[h] = struct{}{}
	}
	return out
}

// Hosts returns the members sorted for deterministic rendering.
func (d DeadSet) Hosts() []HostSpec {
	out := make([]HostSpec, 0, len(d))
	for h := range d {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
