package cycle

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/pingwatch/internal/domain"
	"github.com/hamed0406/pingwatch/internal/probe"
)

// Executor runs one full probe cycle over the configured host list.
// Hosts are probed at most Concurrency at a time; results land in
// indexed slots so the report always keeps host-list order and the
// derived dead set is independent of completion order.
type Executor struct {
	Logger      *zap.Logger
	Resolver    probe.Resolver
	Pinger      probe.Pinger
	Concurrency int
}

func NewExecutor(logger *zap.Logger, resolver probe.Resolver, pinger probe.Pinger, concurrency int) *Executor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Executor{
		Logger:      logger,
		Resolver:    resolver,
		Pinger:      pinger,
		Concurrency: concurrency,
	}
}

// RunCycle probes every host exactly once. One host's failure never
// affects another's probe; the cycle itself cannot fail.
func (e *Executor) RunCycle(ctx context.Context, hosts []domain.HostSpec) domain.CycleReport {
	report := domain.CycleReport{
		CheckedAt: time.Now().UTC(),
		Statuses:  make([]domain.HostStatus, len(hosts)),
	}

	sem := make(chan struct{}, e.Concurrency)
	var wg sync.WaitGroup

	for i, h := range hosts {
		i, h := i, h
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem }()
			defer wg.Done()
			report.Statuses[i] = e.probeOne(ctx, h)
		}()
	}
	wg.Wait()

	if e.Logger != nil {
		e.Logger.Debug("cycle_done",
			zap.Int("hosts", len(hosts)),
			zap.Int("dead", len(report.DeadSet())),
		)
	}
	return report
}

func (e *Executor) probeOne(ctx context.Context, host domain.HostSpec) domain.HostStatus {
	// Resolution pre-check decides UnknownHost from structured resolver
	// errors; the output classifier is only the fallback.
	var res probe.Resolution
	if e.Resolver != nil {
		res = e.Resolver.Resolve(ctx, host)
		if !res.Resolved() {
			if e.Logger != nil {
				e.Logger.Info("resolve_failed",
					zap.String("host", string(host)),
					zap.String("class", res.Class),
					zap.String("error", res.Err),
				)
			}
			return domain.HostStatus{Host: host, Outcome: domain.UnknownHost}
		}
	}

	st := probe.Classify(e.Pinger.Ping(ctx, host))
	if st.Addr == "" && len(res.Addrs) > 0 {
		st.Addr = res.Addrs[0]
	}
	if st.Label == "" {
		st.Label = string(host)
	}
	return st
}
