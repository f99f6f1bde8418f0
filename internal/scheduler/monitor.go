package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/pingwatch/internal/domain"
	"github.com/hamed0406/pingwatch/internal/state"
)

// CycleRunner produces one cycle's report; satisfied by cycle.Executor.
type CycleRunner interface {
	RunCycle(ctx context.Context, hosts []domain.HostSpec) domain.CycleReport
}

// Dispatcher delivers a cycle's outcome; satisfied by notify.Dispatcher.
type Dispatcher interface {
	Dispatch(ctx context.Context, verdict state.Verdict, report domain.CycleReport) error
}

// Monitor is the outer loop: one cycle per interval, strictly
// sequential, never exiting except through context cancellation.
type Monitor struct {
	Logger     *zap.Logger
	Hosts      []domain.HostSpec
	Runner     CycleRunner
	Tracker    *state.Tracker
	Dispatcher Dispatcher
	Interval   time.Duration
}

func NewMonitor(
	logger *zap.Logger,
	hosts []domain.HostSpec,
	runner CycleRunner,
	tracker *state.Tracker,
	dispatcher Dispatcher,
	interval time.Duration,
) *Monitor {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Monitor{
		Logger:     logger,
		Hosts:      hosts,
		Runner:     runner,
		Tracker:    tracker,
		Dispatcher: dispatcher,
		Interval:   interval,
	}
}

// Run does an immediate pass, then one per tick. The in-flight cycle
// finishes before a cancellation is observed.
func (m *Monitor) Run(ctx context.Context) {
	t := time.NewTicker(m.Interval)
	defer t.Stop()

	m.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			m.Logger.Info("monitor_stopped")
			return
		case <-t.C:
			m.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single cycle end to end. The previous dead set is
// replaced only after the notification decision has been dispatched,
// and is replaced on every cycle, Unchanged included.
func (m *Monitor) RunOnce(ctx context.Context) domain.CycleReport {
	report := m.Runner.RunCycle(ctx, m.Hosts)
	dead := report.DeadSet()

	verdict := m.Tracker.Evaluate(dead)
	if err := m.Dispatcher.Dispatch(ctx, verdict, report); err != nil {
		m.Logger.Warn("dispatch_error", zap.Error(err))
	}
	m.Tracker.Commit(dead)

	m.Logger.Info("cycle_done",
		zap.Int("hosts", len(m.Hosts)),
		zap.Int("dead", len(dead)),
		zap.String("verdict", verdict.String()),
	)
	return report
}
