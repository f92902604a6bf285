package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestWatcherCollectsNewFiles(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var handled []string
	w := New(Options{Debounce: 50 * time.Millisecond}, func(path string) error {
		mu.Lock()
		handled = append(handled, filepath.Base(path))
		mu.Unlock()
		return nil
	})

	if err := w.Start(dir); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(handled)
		mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	summary := w.Stop()
	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 1 || handled[0] != "new.txt" {
		t.Errorf("handled = %v, want [new.txt]", handled)
	}
	if summary.FilesCollected != 1 {
		t.Errorf("FilesCollected = %d, want 1", summary.FilesCollected)
	}
}

func TestWatcherIgnoresTempFiles(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	handledCount := 0
	w := New(Options{Debounce: 50 * time.Millisecond}, func(string) error {
		mu.Lock()
		handledCount++
		mu.Unlock()
		return nil
	})

	if err := w.Start(dir); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "partial.crdownload"), []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	time.Sleep(300 * time.Millisecond)
	summary := w.Stop()

	mu.Lock()
	defer mu.Unlock()
	if handledCount != 0 {
		t.Errorf("temp file should not reach the handler, handled %d", handledCount)
	}
	if summary.FilesSkipped == 0 {
		t.Error("ignored file should be counted as skipped")
	}
}

func TestWatcherStopWaitsForInFlightHandler(t *testing.T) {
	dir := t.TempDir()
	entered := make(chan struct{})
	release := make(chan struct{})
	w := New(Options{Debounce: 20 * time.Millisecond}, func(string) error {
		close(entered)
		<-release
		return nil
	})

	if err := w.Start(dir); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "late.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case <-entered:
	case <-time.After(3 * time.Second):
		t.Fatal("handler never ran")
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		close(release)
	}()

	// Stop must block until the handler returns so its outcome lands
	// in the summary.
	summary := w.Stop()
	if summary.FilesCollected != 1 {
		t.Errorf("FilesCollected = %d, want 1", summary.FilesCollected)
	}
}

func TestWatcherStartOnMissingDir(t *testing.T) {
	w := New(Options{}, nil)
	if err := w.Start(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("watching a missing directory should fail")
	}
}

func TestDebouncerCoalescesEvents(t *testing.T) {
	var mu sync.Mutex
	fired := 0
	d := NewDebouncer(80*time.Millisecond, func(string) {
		mu.Lock()
		fired++
		mu.Unlock()
	})

	for i := 0; i < 5; i++ {
		d.Add("/same/path")
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(250 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if fired != 1 {
		t.Errorf("rapid events for one path should fire once, fired %d", fired)
	}
}

func TestDebouncerCancel(t *testing.T) {
	fired := make(chan string, 1)
	d := NewDebouncer(60*time.Millisecond, func(path string) { fired <- path })

	d.Add("/a")
	d.Cancel("/a")

	select {
	case <-fired:
		t.Error("cancelled path should not fire")
	case <-time.After(200 * time.Millisecond):
	}
	if d.PendingCount() != 0 {
		t.Errorf("pending count = %d, want 0", d.PendingCount())
	}
}

func TestDebouncerCancelAll(t *testing.T) {
	d := NewDebouncer(time.Minute, func(string) {})
	d.Add("/a")
	d.Add("/b")

	d.CancelAll()
	if d.PendingCount() != 0 {
		t.Errorf("pending count after CancelAll = %d, want 0", d.PendingCount())
	}
}

func TestFileFilterPatterns(t *testing.T) {
	f := NewFileFilter(nil)

	tests := []struct {
		path string
		want bool
	}{
		{"/inbox/document.pdf", false},
		{"/inbox/video.part", true},
		{"/inbox/setup.tmp", true},
		{"/inbox/page.crdownload", true},
		{"/inbox/.~lock.doc", true},
		{"/inbox/archive.tar", false},
	}

	for _, tt := range tests {
		if got := f.ShouldIgnore(tt.path); got != tt.want {
			t.Errorf("ShouldIgnore(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFileFilterCustomPatterns(t *testing.T) {
	f := NewFileFilter([]string{"*.bak"})

	if !f.ShouldIgnore("/x/old.bak") {
		t.Error("custom pattern should match")
	}
	if f.ShouldIgnore("/x/draft.tmp") {
		t.Error("defaults should be replaced by custom patterns")
	}
}
