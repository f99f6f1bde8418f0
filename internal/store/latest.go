package store

import (
	"context"
	"sync"

	"github.com/hamed0406/pingwatch/internal/domain"
)

// Latest holds exactly one cycle report, the most recent. There is no
// history: cross-cycle memory belongs to the state tracker alone.
type Latest struct {
	mu     sync.RWMutex
	report *domain.CycleReport
}

func NewLatest() *Latest {
	return &Latest{}
}

func (s *Latest) Name() string { return "store" }

// Record satisfies the dispatcher's recorder contract; the store sees
// every cycle regardless of verdict.
func (s *Latest) Record(ctx context.Context, report domain.CycleReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = &report
	return nil
}

// Latest returns the most recent report, false before the first cycle.
func (s *Latest) Latest() (domain.CycleReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.report == nil {
		return domain.CycleReport{}, false
	}
	return *s.report, true
}
