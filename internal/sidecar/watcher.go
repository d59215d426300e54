package sidecar

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// restartSquelch swallows the burst of fsnotify events an editor
// save produces so one save triggers one restart.
const restartSquelch = 500 * time.Millisecond

// Watcher restarts the sidecar whenever its script changes on disk.
// Dev-mode convenience only; packaged builds never construct one.
type Watcher struct {
	fsw  *fsnotify.Watcher
	sup  *Supervisor
	logf func(format string, args ...any)
	done chan struct{}
}

// WatchScript watches the directory containing script (editors
// typically replace files, so watching the file itself would lose
// the watch on the first save) and restarts the supervisor's sidecar
// on changes to it.
func WatchScript(sup *Supervisor, script string, logf func(format string, args ...any)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(script)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:  fsw,
		sup:  sup,
		logf: logf,
		done: make(chan struct{}),
	}
	go w.loop(filepath.Base(script))
	return w, nil
}

func (w *Watcher) loop(scriptBase string) {
	var lastRestart time.Time
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != scriptBase {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if time.Since(lastRestart) < restartSquelch {
				continue
			}
			lastRestart = time.Now()

			w.logf("sidecar script changed, restarting")
			w.sup.Stop()
			if err := w.sup.EnsureRunning(); err != nil {
				w.logf("sidecar restart failed: %v", err)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logf("sidecar script watcher: %v", err)
		case <-w.done:
			return
		}
	}
}

// Close stops watching. Safe to call once during shutdown.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
