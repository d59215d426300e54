package sidecar

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_RestartsOnScriptChange(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "local-api-server.mjs")
	if err := os.WriteFile(script, []byte("// v1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	launcher := &fakeLauncher{}
	sup := newTestSupervisor(launcher, nil)
	if err := sup.EnsureRunning(); err != nil {
		t.Fatal(err)
	}

	w, err := WatchScript(sup, script, func(string, ...any) {})
	if err != nil {
		t.Fatalf("WatchScript: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(script, []byte("// v2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for launcher.spawns.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected a restart spawn, got %d spawns", launcher.spawns.Load())
		case <-time.After(10 * time.Millisecond):
		}
	}

	if n := launcher.procAt(0).killed.Load(); n != 1 {
		t.Errorf("expected the first process to be killed once, got %d", n)
	}
	if !sup.Status().Running {
		t.Error("expected the sidecar to be running after restart")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "local-api-server.mjs")
	if err := os.WriteFile(script, []byte("// v1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	launcher := &fakeLauncher{}
	sup := newTestSupervisor(launcher, nil)
	if err := sup.EnsureRunning(); err != nil {
		t.Fatal(err)
	}

	w, err := WatchScript(sup, script, func(string, ...any) {})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(200 * time.Millisecond)
	if n := launcher.spawns.Load(); n != 1 {
		t.Errorf("unrelated file change must not restart: got %d spawns", n)
	}
}
