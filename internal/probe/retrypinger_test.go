package probe

import (
	"context"
	"testing"
	"time"

	"github.com/hamed0406/pingwatch/internal/domain"
)

// fake pinger you can control
type fakePinger struct {
	results []RawResult
	calls   int
}

func (f *fakePinger) Ping(ctx context.Context, host domain.HostSpec) RawResult {
	i := f.calls
	f.calls++
	if i >= len(f.results) {
		return RawResult{Host: host, ExitOK: false, Output: "no more"}
	}
	r := f.results[i]
	r.Host = host
	return r
}

func TestRetryPinger_ZeroRetriesMeansOneAttempt(t *testing.T) {
	f := &fakePinger{results: []RawResult{{ExitOK: false}}}
	rp := &RetryPinger{Inner: f, Retries: 0}
	if got := rp.Attempts(); got != 1 {
		t.Fatalf("want 1 attempt for retries=0, got %d", got)
	}
	rp.Ping(context.Background(), "a")
	if f.calls != 1 {
		t.Fatalf("want exactly one probe, got %d", f.calls)
	}
}

func TestRetryPinger_AttemptsIsRetriesPlusOne(t *testing.T) {
	f := &fakePinger{results: []RawResult{{ExitOK: false}, {ExitOK: false}, {ExitOK: false}}}
	rp := &RetryPinger{Inner: f, Retries: 2}
	if got := rp.Attempts(); got != 3 {
		t.Fatalf("want 3 attempts for retries=2, got %d", got)
	}
	out := rp.Ping(context.Background(), "a")
	if f.calls != 3 {
		t.Fatalf("want 3 probes, got %d", f.calls)
	}
	if out.ExitOK {
		t.Fatalf("want failure carried through, got %+v", out)
	}
}

func TestRetryPinger_SuccessStopsRetrying(t *testing.T) {
	f := &fakePinger{results: []RawResult{
		{ExitOK: false, Output: "first fail"},
		{ExitOK: true, Output: "ok"},
	}}
	rp := &RetryPinger{Inner: f, Retries: 3, Backoff: time.Millisecond}
	out := rp.Ping(context.Background(), "a")
	if !out.ExitOK {
		t.Fatalf("expected success after retry, got %+v", out)
	}
	if f.calls != 2 {
		t.Fatalf("want retrying to stop at first success, got %d calls", f.calls)
	}
}

func TestRetryPinger_CancelledContextStops(t *testing.T) {
	f := &fakePinger{results: []RawResult{{ExitOK: false}, {ExitOK: false}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rp := &RetryPinger{Inner: f, Retries: 5, Backoff: time.Millisecond}
	rp.Ping(ctx, "a")
	if f.calls != 1 {
		t.Fatalf("want no retries after cancellation, got %d calls", f.calls)
	}
}
