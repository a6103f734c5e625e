// Package signal provides a file-based stop signal for in-flight
// deliberation sessions. Creating a "stop" file in the signals directory
// aborts the session at the next between-round check.
package signal

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// SendStop creates the stop file under <dir>/signals, creating the
// directory if needed.
func SendStop(dir string) error {
	signalsDir := filepath.Join(dir, "signals")
	if err := os.MkdirAll(signalsDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(signalsDir, "stop"), []byte("stop"), 0644)
}

// Watcher watches a signals directory for a stop file.
type Watcher struct {
	signalsDir string

	mu   sync.RWMutex
	stop bool

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewWatcher creates a watcher over <dir>/signals, creating the directory
// if needed. When the fsnotify watcher cannot be started the Watcher still
// works through stat-based polling in ShouldStop.
func NewWatcher(dir string) (*Watcher, error) {
	signalsDir := filepath.Join(dir, "signals")
	if err := os.MkdirAll(signalsDir, 0755); err != nil {
		return nil, err
	}

	w := &Watcher{
		signalsDir: signalsDir,
		done:       make(chan struct{}),
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return w, nil
	}
	w.watcher = fw

	if err := fw.Add(signalsDir); err != nil {
		fw.Close()
		w.watcher = nil
		return w, nil
	}

	go w.watch()

	return w, nil
}

// watch monitors the signals directory for the stop file.
func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) == "stop" && (event.Op&fsnotify.Create != 0 || event.Op&fsnotify.Write != 0) {
				// The file may already be gone if Clear raced the event.
				if _, err := os.Stat(event.Name); err == nil {
					w.mu.Lock()
					w.stop = true
					w.mu.Unlock()
				}
			}
		case <-w.watcher.Errors:
			// Keep watching; ShouldStop's stat fallback covers misses.
		}
	}
}

// ShouldStop returns true once a stop signal has been received. It also
// stats the file directly in case the watcher missed the event.
func (w *Watcher) ShouldStop() bool {
	if _, err := os.Stat(filepath.Join(w.signalsDir, "stop")); err == nil {
		w.mu.Lock()
		w.stop = true
		w.mu.Unlock()
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stop
}

// Clear removes the stop file and resets the signal state.
func (w *Watcher) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stop = false
	os.Remove(filepath.Join(w.signalsDir, "stop"))
}

// Close shuts down the watcher.
func (w *Watcher) Close() {
	close(w.done)
	if w.watcher != nil {
		w.watcher.Close()
	}
}
