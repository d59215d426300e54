package app

import "worldmonitor/internal/sidecar"

// ============================================================
// Sidecar commands
// ============================================================

// SidecarStatus reports whether the local API sidecar is tracked as
// running, and under which launch ID.
func (a *App) SidecarStatus() sidecar.Status {
	if a.sidecar == nil {
		return sidecar.Status{Port: sidecar.LocalAPIPort}
	}
	return a.sidecar.Status()
}

// RestartSidecar stops the tracked sidecar (if any) and starts a
// fresh one. Lets the user recover from a dead or wedged local API
// without relaunching the app.
func (a *App) RestartSidecar() error {
	a.sidecar.Stop()
	return a.sidecar.EnsureRunning()
}
