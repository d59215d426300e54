package sidecar

import (
	"os"
	"path/filepath"
	"runtime"
)

// Mode identifies how the host shell was built and launched.
type Mode string

const (
	// ModeDev is a `wails dev` build running out of the project tree.
	ModeDev Mode = "dev"
	// ModePackaged is a production build running out of the app bundle.
	ModePackaged Mode = "packaged"
)

// scriptRelPath is where the sidecar entry point lives, relative to
// the project root (dev) or the resource directory (packaged).
const scriptRelPath = "sidecar/local-api-server.mjs"

// LaunchPaths is the resolved pair the supervisor needs for one
// start attempt. Recomputed on every attempt, never cached.
type LaunchPaths struct {
	Script       string
	ResourceRoot string
}

// ResolvePaths derives the sidecar script path and resource root for
// the given mode. Dev builds resolve from the working directory
// (wails dev runs from the project root); packaged builds resolve
// from the platform resource directory. Resolution never fails —
// when the resource directory cannot be determined it falls back to
// the working directory, so a failed start stays attributable to the
// actual missing-script condition.
func ResolvePaths(mode Mode) LaunchPaths {
	root := workingDir()
	if mode == ModePackaged {
		root = resourceDir()
	}
	return LaunchPaths{
		Script:       filepath.Join(root, filepath.FromSlash(scriptRelPath)),
		ResourceRoot: root,
	}
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func resourceDir() string {
	exe, err := os.Executable()
	if err != nil {
		return workingDir()
	}
	return resourceDirFrom(exe, runtime.GOOS)
}

// resourceDirFrom maps an executable path to its resource directory.
// macOS bundles place the binary in <App>.app/Contents/MacOS and
// resources in <App>.app/Contents/Resources; everywhere else the
// resources sit next to the binary.
func resourceDirFrom(exePath, goos string) string {
	dir := filepath.Dir(exePath)
	if goos == "darwin" && filepath.Base(dir) == "MacOS" {
		contents := filepath.Dir(dir)
		if filepath.Base(contents) == "Contents" {
			return filepath.Join(contents, "Resources")
		}
	}
	return dir
}
