package probe

import (
	"context"
	"time"

	"github.com/hamed0406/pingwatch/internal/domain"
)

// RetryPinger wraps a Pinger and re-probes on failure. Retries counts
// additional attempts after the first, so Retries=0 means exactly one
// probe; Attempts makes that conversion explicit.
type RetryPinger struct {
	Inner   Pinger
	Retries int
	Backoff time.Duration
}

// Attempts is the total number of probes a single Ping call may issue.
func (r *RetryPinger) Attempts() int {
	if r.Retries < 0 {
		return 1
	}
	return r.Retries + 1
}

func (r *RetryPinger) Ping(ctx context.Context, host domain.HostSpec) RawResult {
	attempts := r.Attempts()
	var last RawResult
	for i := 0; i < attempts; i++ {
		last = r.Inner.Ping(ctx, host)
		if last.ExitOK {
			return last
		}
		if i < attempts-1 && r.Backoff > 0 {
			select {
			case <-ctx.Done():
				return last
			case <-time.After(r.Backoff):
			}
		}
		if ctx.Err() != nil {
			return last
		}
	}
	return last
}
