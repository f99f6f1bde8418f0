package notify

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/pingwatch/internal/domain"
	"github.com/hamed0406/pingwatch/internal/state"
)

// Notifier is a change-triggered sink: it only hears about cycles whose
// dead set differs from the previous one.
type Notifier interface {
	Name() string
	Send(ctx context.Context, subject, body string) error
}

// Recorder is an unconditional sink: it receives the full report every
// cycle regardless of verdict.
type Recorder interface {
	Name() string
	Record(ctx context.Context, report domain.CycleReport) error
}

// Dispatcher fans a cycle's outcome out to the configured sinks. One
// sink's failure never blocks another's delivery, and nothing here can
// abort the cycle: the combined error is for logging only.
type Dispatcher struct {
	Logger    *zap.Logger
	Notifiers []Notifier
	Recorders []Recorder

	// Reporter receives delivery-failure notices (classically the syslog
	// sink hearing about a failed mail send). May be nil.
	Reporter Notifier
}

func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{Logger: logger}
}

// Dispatch delivers the report. Recorders always run; notifiers run
// only on a state change, with the subject picked by verdict.
func (d *Dispatcher) Dispatch(ctx context.Context, verdict state.Verdict, report domain.CycleReport) error {
	var errs error

	for _, r := range d.Recorders {
		if err := r.Record(ctx, report); err != nil {
			d.Logger.Warn("sink_error", zap.String("sink", r.Name()), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", r.Name(), err))
		}
	}

	if !verdict.Changed() {
		return errs
	}

	subject, body := composeChange(verdict, report)
	for _, n := range d.Notifiers {
		err := n.Send(ctx, subject, body)
		if err == nil {
			continue
		}
		d.Logger.Warn("sink_error", zap.String("sink", n.Name()), zap.Error(err))
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", n.Name(), err))
		if d.Reporter != nil && d.Reporter != n {
			notice := fmt.Sprintf("%s delivery failed: %v", n.Name(), err)
			if rerr := d.Reporter.Send(ctx, "pingwatch delivery failure", notice); rerr != nil {
				d.Logger.Warn("sink_error", zap.String("sink", d.Reporter.Name()), zap.Error(rerr))
			}
		}
	}
	return errs
}

// composeChange builds the notification. Recovery deliberately gets its
// own template instead of reusing the down one.
func composeChange(verdict state.Verdict, report domain.CycleReport) (subject, body string) {
	if verdict == state.ChangedToAllUp {
		return "pingwatch: all clear", "all hosts are up again\n\n" + report.Text()
	}
	return "pingwatch: hosts down", report.Summary() + "\n\n" + report.Text()
}
