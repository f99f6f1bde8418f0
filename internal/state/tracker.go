package state

import (
	"sync"

	"github.com/hamed0406/pingwatch/internal/domain"
)

// Verdict is the per-cycle notification decision.
type Verdict int

const (
	// Unchanged: dead set identical to the previous cycle. Suppress
	// notification even if hosts are still down (anti-spam contract).
	Unchanged Verdict = iota
	// ChangedToDown: dead set non-empty and different from last cycle.
	ChangedToDown
	// ChangedToAllUp: everything recovered after at least one host was
	// dead last cycle.
	ChangedToAllUp
)

func (v Verdict) String() string {
	switch v {
	case ChangedToDown:
		return "changed_to_down"
	case ChangedToAllUp:
		return "changed_to_all_up"
	default:
		return "unchanged"
	}
}

// Changed reports whether this verdict triggers change notifications.
func (v Verdict) Changed() bool { return v != Unchanged }

// Evaluate is the pure decision function: compare the current dead set
// against the previous one. The initial previous set is empty, so a
// first cycle with dead hosts alerts immediately while a healthy first
// cycle stays silent.
func Evaluate(current, previous domain.DeadSet) Verdict {
	if current.Equal(previous) {
		return Unchanged
	}
	if len(current) == 0 {
		return ChangedToAllUp
	}
	return ChangedToDown
}

// Tracker owns the single piece of cross-cycle state: the previous
// cycle's dead set. Evaluate never mutates it; Commit replaces it.
type Tracker struct {
	mu   sync.Mutex
	prev domain.DeadSet
}

func NewTracker() *Tracker {
	return &Tracker{prev: domain.NewDeadSet()}
}

// Evaluate compares current against the held previous set without
// committing, so calling it twice gives the same verdict.
func (t *Tracker) Evaluate(current domain.DeadSet) Verdict {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Evaluate(current, t.prev)
}

// Commit replaces the previous dead set. Called once per cycle, after
// the notification decision, regardless of verdict.
func (t *Tracker) Commit(current domain.DeadSet) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prev = current.Clone()
}

// Previous returns a snapshot of the held set.
func (t *Tracker) Previous() domain.DeadSet {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.prev.Clone()
}
