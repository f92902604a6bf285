// Package watcher monitors a source directory and collects new arrivals.
package watcher

import (
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Options contains watch-mode settings.
type Options struct {
	Debounce       time.Duration // Delay before a new file is processed
	IgnorePatterns []string      // Glob patterns for temp files to skip
}

// DefaultOptions returns watch settings matching common download and
// editor temp-file behavior.
func DefaultOptions() Options {
	return Options{
		Debounce:       2 * time.Second,
		IgnorePatterns: DefaultIgnorePatterns(),
	}
}

// Summary contains stats from a watch session.
type Summary struct {
	FilesCollected int
	FilesSkipped   int
	Duration       time.Duration
}

// Handler processes one settled file. An error counts the file as
// skipped; the watch session keeps running.
type Handler func(path string) error

// Watcher monitors a directory for newly created files, debounces the
// events, and hands settled files to the handler.
type Watcher struct {
	opts      Options
	handler   Handler
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	filter    *FileFilter
	done      chan struct{}
	wg        sync.WaitGroup
	settled   sync.WaitGroup
	startTime time.Time

	mu        sync.Mutex
	stopping  bool
	collected int
	skipped   int
}

// New creates a Watcher. Zero-valued options fall back to defaults.
func New(opts Options, handler Handler) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultOptions().Debounce
	}
	w := &Watcher{
		opts:    opts,
		handler: handler,
		filter:  NewFileFilter(opts.IgnorePatterns),
		done:    make(chan struct{}),
	}
	w.debouncer = NewDebouncer(opts.Debounce, w.processSettled)
	return w
}

// Start begins watching dir. The watcher runs until Stop is called.
func (w *Watcher) Start(dir string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return err
	}

	w.fsWatcher = fsw
	w.startTime = time.Now()

	w.wg.Add(1)
	go w.processEvents()
	return nil
}

// Stop shuts the watcher down and returns the session summary.
func (w *Watcher) Stop() *Summary {
	close(w.done)
	w.wg.Wait()
	w.debouncer.CancelAll()

	// A timer that fired before CancelAll may still be running its
	// settled callback; drain it so the summary includes its outcome.
	w.mu.Lock()
	w.stopping = true
	w.mu.Unlock()
	w.settled.Wait()

	if w.fsWatcher != nil {
		w.fsWatcher.Close()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return &Summary{
		FilesCollected: w.collected,
		FilesSkipped:   w.skipped,
		Duration:       time.Since(w.startTime),
	}
}

// processEvents drains fsnotify events until the session ends.
func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			// New files arrive as Create; downloads finishing with a
			// rename surface the final name the same way.
			if event.Op&(fsnotify.Create|fsnotify.Rename) != 0 {
				w.handleEvent(event.Name)
			}
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; keep the session alive.
		}
	}
}

func (w *Watcher) handleEvent(path string) {
	if w.filter.ShouldIgnore(path) {
		w.mu.Lock()
		w.skipped++
		w.mu.Unlock()
		return
	}
	w.debouncer.Add(path)
}

// processSettled runs after the debounce delay for a path with no
// further events.
func (w *Watcher) processSettled(path string) {
	w.mu.Lock()
	if w.stopping {
		w.mu.Unlock()
		return
	}
	w.settled.Add(1)
	w.mu.Unlock()
	defer w.settled.Done()

	info, err := os.Lstat(path)
	if err != nil || !info.Mode().IsRegular() {
		// Vanished again or a directory; nothing to collect.
		return
	}

	handlerErr := error(nil)
	if w.handler != nil {
		handlerErr = w.handler(path)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if handlerErr != nil {
		w.skipped++
	} else {
		w.collected++
	}
}
