package signal

import (
	"testing"
)

func TestWatcher_StopSignal(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if w.ShouldStop() {
		t.Fatal("ShouldStop = true before any signal")
	}

	if err := SendStop(dir); err != nil {
		t.Fatal(err)
	}

	// The stat fallback makes the check deterministic without waiting on
	// the fsnotify event.
	if !w.ShouldStop() {
		t.Fatal("ShouldStop = false after SendStop")
	}
}

func TestWatcher_Clear(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := SendStop(dir); err != nil {
		t.Fatal(err)
	}
	if !w.ShouldStop() {
		t.Fatal("stop signal not seen")
	}

	w.Clear()
	if w.ShouldStop() {
		t.Error("ShouldStop = true after Clear")
	}
}
