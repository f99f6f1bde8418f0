package probe

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/hamed0406/pingwatch/internal/domain"
)

// ExecPinger probes by running the system ping binary and capturing its
// output for classification. ICMP via raw sockets needs privileges the
// monitor usually doesn't have; the system binary is setuid/capability
// equipped everywhere we deploy.
type ExecPinger struct {
	Command string        // ping binary, default "ping"
	Count   int           // echo requests per attempt, default 1
	Timeout time.Duration // per-attempt deadline
}

func NewExecPinger(timeout time.Duration) *ExecPinger {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ExecPinger{Command: "ping", Count: 1, Timeout: timeout}
}

func (p *ExecPinger) Ping(ctx context.Context, host domain.HostSpec) RawResult {
	cmd := p.Command
	if cmd == "" {
		cmd = "ping"
	}
	count := p.Count
	if count < 1 {
		count = 1
	}

	cctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	// -W takes whole seconds; round up so sub-second timeouts still wait.
	waitSec := int((p.Timeout + time.Second - 1) / time.Second)
	args := []string{"-n", "-c", fmt.Sprint(count), "-W", fmt.Sprint(waitSec), string(host)}

	out, err := exec.CommandContext(cctx, cmd, args...).CombinedOutput()
	res := RawResult{Host: host, ExitOK: err == nil, Output: string(out)}
	if err != nil {
		if _, isExit := err.(*exec.ExitError); !isExit {
			// Could not run the binary at all; output stays empty and the
			// classifier will call it down.
			res.Err = err.Error()
		}
	}
	return res
}
