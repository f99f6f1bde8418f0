package domain

import (
	"strings"
	"testing"
	"time"
)

func TestDeadSet_EqualIsOrderIndependent(t *testing.T) {
	a := NewDeadSet("a", "b")
	b := NewDeadSet("b", "a")
	if !a.Equal(b) {
		t.Fatalf("want {a,b} == {b,a}")
	}
	if !NewDeadSet().Equal(NewDeadSet()) {
		t.Fatalf("want {} == {}")
	}
	if a.Equal(NewDeadSet("a")) {
		t.Fatalf("want {a,b} != {a}")
	}
	if NewDeadSet("h1").Equal(NewDeadSet("h2")) {
		t.Fatalf("want {h1} != {h2}")
	}
}

func TestCycleReport_DeadSetDerivedFromOutcomes(t *testing.T) {
	r := CycleReport{
		CheckedAt: time.Now(),
		Statuses: []HostStatus{
			{Host: "a", Label: "a", Addr: "10.0.0.1", Outcome: Up, LatencyMS: 1.2},
			{Host: "b", Label: "b", Addr: "10.0.0.2", Outcome: Down},
			{Host: "c", Outcome: UnknownHost},
		},
	}
	ds := r.DeadSet()
	if !ds.Equal(NewDeadSet("b", "c")) {
		t.Fatalf("want dead set {b,c}, got %v", ds.Hosts())
	}
	if r.AllUp() {
		t.Fatalf("report with dead hosts must not be AllUp")
	}
}

func TestHostStatus_Line(t *testing.T) {
	up := HostStatus{Host: "a", Label: "a.example.net", Addr: "10.0.0.1", Outcome: Up, LatencyMS: 12.3}
	if got, want := up.Line(), "a.example.net [10.0.0.1] is up (time = 12.3 ms)"; got != want {
		t.Fatalf("up line: want %q, got %q", want, got)
	}

	down := HostStatus{Host: "b", Label: "b.example.net", Addr: "10.0.0.2", Outcome: Down}
	if got, want := down.Line(), "b.example.net [10.0.0.2] is down"; got != want {
		t.Fatalf("down line: want %q, got %q", want, got)
	}

	unk := HostStatus{Host: "nosuch.example", Outcome: UnknownHost}
	if got, want := unk.Line(), "nosuch.example unknown hostname"; got != want {
		t.Fatalf("unknown line: want %q, got %q", want, got)
	}

	// No resolved label: fall back to the configured spec.
	bare := HostStatus{Host: "10.0.0.9", Addr: "10.0.0.9", Outcome: Down}
	if !strings.HasPrefix(bare.Line(), "10.0.0.9 ") {
		t.Fatalf("want fallback label, got %q", bare.Line())
	}
}

func TestCycleReport_Summary(t *testing.T) {
	r := CycleReport{Statuses: []HostStatus{
		{Host: "b", Outcome: Down},
		{Host: "a", Outcome: UnknownHost},
		{Host: "c", Outcome: Up, LatencyMS: 5},
	}}
	if got, want := r.Summary(), "hosts down: a, b"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}

	healthy := CycleReport{Statuses: []HostStatus{{Host: "a", Outcome: Up, LatencyMS: 5}}}
	if got, want := healthy.Summary(), "all hosts are up"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestCycleReport_TextKeepsProbeOrder(t *testing.T) {
	r := CycleReport{Statuses: []HostStatus{
		{Host: "z", Label: "z", Addr: "1.1.1.1", Outcome: Up, LatencyMS: 1},
		{Host: "a", Label: "a", Addr: "2.2.2.2", Outcome: Down},
	}}
	lines := strings.Split(strings.TrimSpace(r.Text()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "z ") || !strings.HasPrefix(lines[1], "a ") {
		t.Fatalf("probe order not preserved: %v", lines)
	}
}
