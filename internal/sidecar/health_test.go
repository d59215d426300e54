package sidecar

import (
	"context"
	"sync"
	"testing"
)

// recordingEmitter records emitted events for assertions, mirroring
// how the app layer's emitter is exercised in tests.
type recordingEmitter struct {
	mu     sync.Mutex
	events []string
	data   []any
}

func (r *recordingEmitter) Emit(_ context.Context, event string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	r.data = append(r.data, data)
}

func (r *recordingEmitter) snapshot() ([]string, []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...), append([]any(nil), r.data...)
}

func TestHealthReporter_ReportEmitsStatus(t *testing.T) {
	launcher := &fakeLauncher{}
	sup := newTestSupervisor(launcher, nil)
	rec := &recordingEmitter{}
	reporter := NewHealthReporter(sup, rec)

	reporter.report(context.Background())

	events, data := rec.snapshot()
	if len(events) != 1 || events[0] != "sidecar:health" {
		t.Fatalf("expected one sidecar:health event, got %v", events)
	}
	status, ok := data[0].(Status)
	if !ok {
		t.Fatalf("expected Status payload, got %T", data[0])
	}
	if status.Running {
		t.Error("expected Running=false before any start")
	}
	if status.Port != LocalAPIPort {
		t.Errorf("expected port %s, got %s", LocalAPIPort, status.Port)
	}
}

func TestHealthReporter_StartEmitsImmediately(t *testing.T) {
	launcher := &fakeLauncher{}
	sup := newTestSupervisor(launcher, nil)
	if err := sup.EnsureRunning(); err != nil {
		t.Fatal(err)
	}

	rec := &recordingEmitter{}
	reporter := NewHealthReporter(sup, rec)
	if err := reporter.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer reporter.Stop()

	events, data := rec.snapshot()
	if len(events) == 0 {
		t.Fatal("expected an immediate report on Start")
	}
	status := data[0].(Status)
	if !status.Running {
		t.Error("expected Running=true after EnsureRunning")
	}
	if status.LaunchID == "" {
		t.Error("expected a launch ID for a running sidecar")
	}
}
