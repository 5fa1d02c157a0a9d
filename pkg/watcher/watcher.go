// Package watcher reports when a book file changes on disk. It uses fsnotify
// on the file's directory, which survives editors that save by rename, and
// falls back to polling the file's size and mtime.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vanderheijden86/quire/pkg/debug"
)

// DefaultPollInterval is the polling interval for fallback mode.
const DefaultPollInterval = time.Second

// Common errors.
var (
	ErrFileRemoved = errors.New("watched file was removed")
	ErrPermission  = errors.New("permission denied")
)

// EventKind says what happened to the file.
type EventKind int

const (
	EventChanged EventKind = iota
	EventRemoved
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventChanged:
		return "changed"
	case EventRemoved:
		return "removed"
	case EventError:
		return "error"
	}
	return "unknown"
}

// Event is one report from Run.
type Event struct {
	Kind EventKind
	Err  error // Set for EventRemoved and EventError
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a change is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithPollInterval sets the polling interval for fallback mode.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.pollInterval = d
		}
	}
}

// WithForcePoll skips fsnotify and polls.
func WithForcePoll(force bool) Option {
	return func(w *Watcher) { w.forcePoll = force }
}

// Watcher monitors a single file.
type Watcher struct {
	path         string
	debounce     time.Duration
	pollInterval time.Duration
	forcePoll    bool

	events chan Event

	mu        sync.Mutex
	polling   bool
	lastMtime time.Time
	lastSize  int64
}

// New creates a watcher for path. Nothing is watched until Run.
// QUIRE_FORCE_POLL=1 forces polling, for network filesystems where fsnotify
// stays silent.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:         abs,
		debounce:     DefaultDebounceDuration,
		pollInterval: DefaultPollInterval,
		forcePoll:    envBool("QUIRE_FORCE_POLL"),
		events:       make(chan Event, 4),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Events delivers changes while Run is active. Bursts of writes arrive as
// one EventChanged.
func (w *Watcher) Events() <-chan Event { return w.events }

// Path returns the absolute watched path.
func (w *Watcher) Path() string { return w.path }

// Polling reports whether Run fell back to polling.
func (w *Watcher) Polling() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.polling
}

// Run watches until ctx is cancelled. It returns nil on cancellation and an
// error only when watching cannot begin.
func (w *Watcher) Run(ctx context.Context) error {
	info, err := os.Stat(w.path)
	switch {
	case err == nil:
		w.mu.Lock()
		w.lastMtime, w.lastSize = info.ModTime(), info.Size()
		w.mu.Unlock()
	case os.IsPermission(err):
		return ErrPermission
	}

	d := NewDebouncer(w.debounce)
	defer d.Cancel()

	if !w.forcePoll {
		fsw, err := fsnotify.NewWatcher()
		if err == nil {
			if err = fsw.Add(filepath.Dir(w.path)); err == nil {
				defer fsw.Close()
				debug.Logw("watching", "path", w.path, "mode", "fsnotify")
				return w.runFsnotify(ctx, fsw, d)
			}
			fsw.Close()
		}
		debug.Logw("fsnotify unavailable, polling", "path", w.path, "err", err)
	}

	w.mu.Lock()
	w.polling = true
	w.mu.Unlock()
	debug.Logw("watching", "path", w.path, "mode", "poll", "interval", w.pollInterval)
	return w.runPolling(ctx, d)
}

func (w *Watcher) runFsnotify(ctx context.Context, fsw *fsnotify.Watcher, d *Debouncer) error {
	target := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != target {
				continue
			}
			switch {
			case ev.Op&fsnotify.Remove != 0:
				d.Cancel()
				w.emit(Event{Kind: EventRemoved, Err: ErrFileRemoved})
			case ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
				d.Trigger(w.changed)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.emit(Event{Kind: EventError, Err: err})
		}
	}
}

func (w *Watcher) runPolling(ctx context.Context, d *Debouncer) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.poll(d)
		}
	}
}

func (w *Watcher) poll(d *Debouncer) {
	info, err := os.Stat(w.path)
	if err != nil {
		w.mu.Lock()
		hadFile := !w.lastMtime.IsZero()
		w.lastMtime, w.lastSize = time.Time{}, 0
		w.mu.Unlock()
		switch {
		case os.IsNotExist(err):
			// Report a removal once, not on every tick.
			if hadFile {
				w.emit(Event{Kind: EventRemoved, Err: ErrFileRemoved})
			}
		case os.IsPermission(err):
			w.emit(Event{Kind: EventError, Err: ErrPermission})
		default:
			w.emit(Event{Kind: EventError, Err: err})
		}
		return
	}

	w.mu.Lock()
	changed := !info.ModTime().Equal(w.lastMtime) || info.Size() != w.lastSize
	w.lastMtime, w.lastSize = info.ModTime(), info.Size()
	w.mu.Unlock()
	if changed {
		d.Trigger(w.changed)
	}
}

func (w *Watcher) changed() { w.emit(Event{Kind: EventChanged}) }

// emit never blocks; a full channel already holds a pending report.
func (w *Watcher) emit(ev Event) {
	select {
	case w.events <- ev:
	default:
	}
}

func envBool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
