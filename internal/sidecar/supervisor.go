package sidecar

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LocalAPIPort is the fixed port the sidecar listens on; the
// frontend dials it directly.
const LocalAPIPort = "46123"

const (
	envPort        = "LOCAL_API_PORT"
	envResourceDir = "LOCAL_API_RESOURCE_DIR"
	envMode        = "LOCAL_API_MODE"
	envLaunchID    = "LOCAL_API_LAUNCH_ID"

	// launchMode marks a supervised launch so the sidecar can tell
	// it apart from being run standalone.
	launchMode = "wails-sidecar"
)

// ScriptMissingError means the sidecar entry point was not found at
// its resolved path. No spawn is attempted.
type ScriptMissingError struct {
	Path string
}

func (e *ScriptMissingError) Error() string {
	return fmt.Sprintf("sidecar script missing at %s", e.Path)
}

// SpawnError wraps an OS-level process creation failure.
type SpawnError struct {
	Err error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("launch sidecar: %v", e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// process is the handle the supervisor keeps for a spawned sidecar.
// Wait blocks until the process exits.
type process interface {
	Kill() error
	Wait() error
}

// launchFunc spawns the sidecar and returns its handle.
type launchFunc func(paths LaunchPaths, env []string) (process, error)

// Status is a point-in-time snapshot of the supervisor for the UI
// and the health reporter.
type Status struct {
	Running   bool      `json:"running"`
	LaunchID  string    `json:"launchId,omitempty"`
	StartedAt time.Time `json:"startedAt,omitempty"`
	Port      string    `json:"port"`
}

// Supervisor owns at most one sidecar process. The handle is guarded
// by a mutex so EnsureRunning and Stop are safe to call from
// concurrent hooks (startup, shutdown, UI commands) without
// double-spawning or double-clearing. The child is never awaited
// synchronously; a reaper goroutine clears the slot if it exits on
// its own.
type Supervisor struct {
	mode   Mode
	launch launchFunc
	exists func(path string) bool
	onExit func(err error) // fired only on self-exit, not on Stop

	mu        sync.Mutex
	proc      process
	gen       uint64 // bumped on every spawn and Stop; stale reapers bail out
	launchID  string
	startedAt time.Time
}

// New creates a Supervisor for the given mode. onExit, if non-nil,
// is invoked when a running sidecar exits without Stop being called.
func New(mode Mode, onExit func(err error)) *Supervisor {
	return &Supervisor{
		mode:   mode,
		launch: launchNode,
		exists: fileExists,
		onExit: onExit,
	}
}

// EnsureRunning starts the sidecar if it is not already tracked.
// Calling it while a sidecar is tracked is a no-op, so re-entrant
// setup hooks cannot spawn a second process.
func (s *Supervisor) EnsureRunning() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.proc != nil {
		return nil
	}

	paths := ResolvePaths(s.mode)
	if !s.exists(paths.Script) {
		return &ScriptMissingError{Path: paths.Script}
	}

	launchID := uuid.New().String()
	env := launchEnv(paths, launchID)

	proc, err := s.launch(paths, env)
	if err != nil {
		return &SpawnError{Err: err}
	}

	s.proc = proc
	s.gen++
	s.launchID = launchID
	s.startedAt = time.Now()

	go s.reap(proc, s.gen)
	return nil
}

// Stop kills the tracked sidecar, if any, and clears the handle
// unconditionally. Kill errors are swallowed: a process that already
// exited is treated the same as one actively killed, and cleanup
// must never block shutdown.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.proc == nil {
		return
	}
	s.proc.Kill()
	s.proc = nil
	s.launchID = ""
	s.startedAt = time.Time{}
	s.gen++ // invalidate the pending reaper so onExit stays quiet
}

// Status reports whether a sidecar is tracked and which launch it is.
func (s *Supervisor) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Status{
		Running:   s.proc != nil,
		LaunchID:  s.launchID,
		StartedAt: s.startedAt,
		Port:      LocalAPIPort,
	}
}

// reap waits for the child and clears the slot if this launch is
// still the tracked one. A Stop in the meantime bumps the generation,
// so the reaper of a deliberately killed child does nothing.
func (s *Supervisor) reap(proc process, gen uint64) {
	err := proc.Wait()

	s.mu.Lock()
	current := s.gen == gen && s.proc == proc
	if current {
		s.proc = nil
		s.launchID = ""
		s.startedAt = time.Time{}
	}
	s.mu.Unlock()

	if current && s.onExit != nil {
		s.onExit(err)
	}
}

func launchEnv(paths LaunchPaths, launchID string) []string {
	return []string{
		envPort + "=" + LocalAPIPort,
		envResourceDir + "=" + paths.ResourceRoot,
		envMode + "=" + launchMode,
		envLaunchID + "=" + launchID,
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// execProcess adapts *exec.Cmd to the process interface.
type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) Kill() error { return p.cmd.Process.Kill() }
func (p *execProcess) Wait() error { return p.cmd.Wait() }

// launchNode starts the sidecar under node. Its stdout is discarded;
// stderr passes through to the host's own stderr for diagnostics.
func launchNode(paths LaunchPaths, env []string) (process, error) {
	cmd := exec.Command("node", paths.Script)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = nil
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &execProcess{cmd: cmd}, nil
}
