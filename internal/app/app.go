package app

import (
	"context"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"worldmonitor/internal/secret"
	"worldmonitor/internal/sidecar"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context

	secrets *secret.Store
	sidecar *sidecar.Supervisor
	health  *sidecar.HealthReporter
	watcher *sidecar.Watcher
}

// New creates a new App.
func New() *App {
	return &App{
		secrets: secret.NewStore(secret.NewKeyringVault()),
	}
}

// Startup is called when the app starts. Sidecar startup is
// best-effort: on failure the error is logged and the UI loads
// anyway, so the user can see and recover from the degraded state.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	mode := sidecar.ModePackaged
	if wailsRuntime.Environment(ctx).BuildType == "dev" {
		mode = sidecar.ModeDev
	}

	a.sidecar = sidecar.New(mode, func(err error) {
		wailsRuntime.LogWarningf(a.ctx, "local API sidecar exited on its own: %v", err)
		wailsRuntime.EventsEmit(a.ctx, "sidecar:exited", errString(err))
	})

	if err := a.sidecar.EnsureRunning(); err != nil {
		wailsRuntime.LogErrorf(ctx, "local API sidecar failed to start: %v", err)
	}

	if mode == sidecar.ModeDev {
		paths := sidecar.ResolvePaths(mode)
		w, err := sidecar.WatchScript(a.sidecar, paths.Script, func(format string, args ...any) {
			wailsRuntime.LogInfof(a.ctx, format, args...)
		})
		if err != nil {
			wailsRuntime.LogWarningf(ctx, "sidecar script watcher unavailable: %v", err)
		} else {
			a.watcher = w
		}
	}

	a.health = sidecar.NewHealthReporter(a.sidecar, a)
	if err := a.health.Start(ctx); err != nil {
		wailsRuntime.LogWarningf(ctx, "sidecar health reporter unavailable: %v", err)
	}
}

// Shutdown is called when the app is closing. Cleanup is advisory:
// nothing here may block or abort process teardown.
func (a *App) Shutdown(ctx context.Context) {
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.health != nil {
		a.health.Stop()
	}
	if a.sidecar != nil {
		a.sidecar.Stop()
	}
}

// Emit implements sidecar.Emitter by delegating to the Wails runtime.
func (a *App) Emit(ctx context.Context, event string, data any) {
	wailsRuntime.EventsEmit(ctx, event, data)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
