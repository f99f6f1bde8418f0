package cycle

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/hamed0406/pingwatch/internal/domain"
	"github.com/hamed0406/pingwatch/internal/probe"
)

// scripted pinger: per-host canned ping output
type scriptedPinger struct {
	outputs map[domain.HostSpec]string
}

func (s *scriptedPinger) Ping(ctx context.Context, host domain.HostSpec) probe.RawResult {
	out, ok := s.outputs[host]
	if !ok {
		return probe.RawResult{Host: host, ExitOK: false}
	}
	return probe.RawResult{Host: host, ExitOK: true, Output: out}
}

// scripted resolver: hosts in the unknown set fail resolution
type scriptedResolver struct {
	unknown map[domain.HostSpec]bool
}

func (s *scriptedResolver) Resolve(ctx context.Context, host domain.HostSpec) probe.Resolution {
	if s.unknown[host] {
		return probe.Resolution{Host: host, Class: probe.ClassNXDomain}
	}
	return probe.Resolution{Host: host, Class: probe.ClassResolves, Addrs: []string{"198.51.100.7"}}
}

func upOutput(host string, ms float64) string {
	return fmt.Sprintf("PING %s (10.1.1.1)\n64 bytes from %s (10.1.1.1): icmp_seq=1 ttl=60 time=%.1f ms\n", host, host, ms)
}

func TestExecutor_OrderPreservedAndDeadSetDerived(t *testing.T) {
	hosts := []domain.HostSpec{"a", "b", "c", "d"}
	e := NewExecutor(zap.NewNop(),
		&scriptedResolver{unknown: map[domain.HostSpec]bool{"d": true}},
		&scriptedPinger{outputs: map[domain.HostSpec]string{
			"a": upOutput("a", 3.5),
			"c": upOutput("c", 9.9),
			// "b" has no output: probed but no reply -> Down
		}},
		1)

	rep := e.RunCycle(context.Background(), hosts)
	if len(rep.Statuses) != 4 {
		t.Fatalf("want 4 statuses, got %d", len(rep.Statuses))
	}
	for i, h := range hosts {
		if rep.Statuses[i].Host != h {
			t.Fatalf("slot %d: want %s, got %s", i, h, rep.Statuses[i].Host)
		}
	}
	if rep.Statuses[0].Outcome != domain.Up || rep.Statuses[0].LatencyMS != 3.5 {
		t.Fatalf("a: want Up 3.5ms, got %+v", rep.Statuses[0])
	}
	if rep.Statuses[1].Outcome != domain.Down {
		t.Fatalf("b: want Down, got %+v", rep.Statuses[1])
	}
	if rep.Statuses[3].Outcome != domain.UnknownHost {
		t.Fatalf("d: want UnknownHost, got %+v", rep.Statuses[3])
	}
	if !rep.DeadSet().Equal(domain.NewDeadSet("b", "d")) {
		t.Fatalf("want dead set {b,d}, got %v", rep.DeadSet().Hosts())
	}
}

func TestExecutor_OneFailureNeverAbortsOthers(t *testing.T) {
	// Every host after the unknown one must still be probed.
	hosts := []domain.HostSpec{"bad", "good"}
	e := NewExecutor(zap.NewNop(),
		&scriptedResolver{unknown: map[domain.HostSpec]bool{"bad": true}},
		&scriptedPinger{outputs: map[domain.HostSpec]string{"good": upOutput("good", 1.0)}},
		1)
	rep := e.RunCycle(context.Background(), hosts)
	if rep.Statuses[1].Outcome != domain.Up {
		t.Fatalf("host after failure must still be probed, got %+v", rep.Statuses[1])
	}
}

func TestExecutor_ParallelKeepsHostListOrder(t *testing.T) {
	var hosts []domain.HostSpec
	outputs := map[domain.HostSpec]string{}
	for i := 0; i < 20; i++ {
		h := domain.HostSpec(fmt.Sprintf("h%02d", i))
		hosts = append(hosts, h)
		if i%3 != 0 {
			outputs[h] = upOutput(string(h), float64(i))
		}
	}
	e := NewExecutor(zap.NewNop(), &scriptedResolver{}, &scriptedPinger{outputs: outputs}, 8)

	rep := e.RunCycle(context.Background(), hosts)
	for i, h := range hosts {
		if rep.Statuses[i].Host != h {
			t.Fatalf("slot %d out of order: want %s, got %s", i, h, rep.Statuses[i].Host)
		}
	}
	want := domain.NewDeadSet()
	for i := 0; i < 20; i += 3 {
		want[domain.HostSpec(fmt.Sprintf("h%02d", i))] = struct{}{}
	}
	if !rep.DeadSet().Equal(want) {
		t.Fatalf("dead set wrong under parallel probing: got %v", rep.DeadSet().Hosts())
	}
}

func TestExecutor_AddrFilledFromResolution(t *testing.T) {
	// Ping output without a header still gets the resolved address.
	e := NewExecutor(zap.NewNop(),
		&scriptedResolver{},
		&scriptedPinger{outputs: map[domain.HostSpec]string{
			"a": "64 bytes: icmp_seq=1 ttl=60 time=2.0 ms\n",
		}},
		1)
	rep := e.RunCycle(context.Background(), []domain.HostSpec{"a"})
	if rep.Statuses[0].Addr != "198.51.100.7" {
		t.Fatalf("want resolver addr fallback, got %q", rep.Statuses[0].Addr)
	}
	if rep.Statuses[0].Label != "a" {
		t.Fatalf("want label fallback to host, got %q", rep.Statuses[0].Label)
	}
}
