package probe

import (
	"context"

	"github.com/hamed0406/pingwatch/internal/domain"
)

// RawResult is the unparsed outcome of a single reachability probe.
//
// Fields:
// - ExitOK: whether the probe command reported success.
// - Output: combined stdout+stderr of the probe, fed to Classify.
// - Err: transport/spawn error text when the probe could not run at all.
type RawResult struct {
	Host   domain.HostSpec
	ExitOK bool
	Output string
	Err    string
}

// Pinger performs a single reachability probe against one host.
// Implementations must honor ctx cancellation and never block past the
// configured timeout.
type Pinger interface {
	Ping(ctx context.Context, host domain.HostSpec) RawResult
}
