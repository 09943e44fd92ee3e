package flowbuf

import (
	"sync"
	"testing"
)

func TestMetrics_CountsDeliveries(t *testing.T) {
	var mu sync.Mutex
	var snapshots []Metrics

	s := New(WithMetricsCollector(func(m *Metrics) {
		mu.Lock()
		snapshots = append(snapshots, *m)
		mu.Unlock()
	}))

	r := record(s)

	s.WriteString("abc")
	s.WriteString("de")
	s.End()
	waitEnded(t, r)

	mu.Lock()
	defer mu.Unlock()
	if len(snapshots) != 3 {
		t.Fatalf("expected 3 snapshots (2 chunks + end), got %d", len(snapshots))
	}
	last := snapshots[len(snapshots)-1]
	if last.Chunks != 2 || last.Bytes != 5 {
		t.Fatalf("unexpected final counters: %+v", last)
	}
	if !last.Ended || last.Queued != 0 {
		t.Fatalf("expected ended snapshot with empty queue: %+v", last)
	}
	if last.Stream != s.ID() {
		t.Fatalf("expected stream ID %q, got %q", s.ID(), last.Stream)
	}
}

func TestMetrics_CountsErrors(t *testing.T) {
	var mu sync.Mutex
	var errorsSeen int

	s := New(WithMetricsCollector(func(m *Metrics) {
		mu.Lock()
		errorsSeen = m.Errors
		mu.Unlock()
	}))

	errs := make(chan error, 1)
	s.OnError(func(err error) { errs <- err })

	s.emitError(ErrInternal)
	waitError(t, errs)

	mu.Lock()
	defer mu.Unlock()
	if errorsSeen != 1 {
		t.Fatalf("expected 1 error counted, got %d", errorsSeen)
	}
}
