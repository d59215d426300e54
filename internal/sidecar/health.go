package sidecar

import (
	"context"

	"github.com/robfig/cron/v3"
)

// Emitter sends an event to the frontend. The app layer implements
// it over the Wails runtime; tests use a recorder.
type Emitter interface {
	Emit(ctx context.Context, event string, data any)
}

// healthEvent is the frontend event carrying a Status snapshot.
const healthEvent = "sidecar:health"

// healthSchedule is how often the reporter publishes.
const healthSchedule = "@every 30s"

// HealthReporter periodically publishes the supervisor's status so
// the UI can show whether the local API is up without polling it.
type HealthReporter struct {
	sup     *Supervisor
	emitter Emitter
	cron    *cron.Cron
}

// NewHealthReporter creates a reporter over the given supervisor.
func NewHealthReporter(sup *Supervisor, emitter Emitter) *HealthReporter {
	return &HealthReporter{
		sup:     sup,
		emitter: emitter,
		cron:    cron.New(),
	}
}

// Start begins periodic reporting and publishes one snapshot
// immediately so the UI has state before the first tick.
func (r *HealthReporter) Start(ctx context.Context) error {
	_, err := r.cron.AddFunc(healthSchedule, func() {
		r.report(ctx)
	})
	if err != nil {
		return err
	}
	r.report(ctx)
	r.cron.Start()
	return nil
}

// Stop halts the schedule. Running entries are not awaited; the
// report body is a lock-read and an event emit, both bounded.
func (r *HealthReporter) Stop() {
	r.cron.Stop()
}

func (r *HealthReporter) report(ctx context.Context) {
	r.emitter.Emit(ctx, healthEvent, r.sup.Status())
}
