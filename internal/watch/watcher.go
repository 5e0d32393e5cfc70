// Package watch triggers debounced callbacks when watched files change.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// DefaultDebounce coalesces editor save bursts into one rebuild.
const DefaultDebounce = 300 * time.Millisecond

// Watcher monitors a set of files and calls OnChange once per burst of changes.
type Watcher struct {
	files    map[string]bool
	dirs     []string
	debounce time.Duration
	onChange func(ctx context.Context, changed []string)
	watcher  *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]bool
	trigger chan struct{}
	ready   chan struct{}
}

// New creates a watcher for files. Directories of the files are watched rather
// than the files themselves, so editors that replace files on save still
// produce events.
func New(files []string, debounce time.Duration, onChange func(ctx context.Context, changed []string)) (*Watcher, error) {
	if len(files) == 0 {
		return nil, ferrors.ValidationError("at least one file to watch is required").Build()
	}
	if onChange == nil {
		return nil, ferrors.ValidationError("change callback is required").Build()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		files:    map[string]bool{},
		debounce: debounce,
		onChange: onChange,
		pending:  map[string]bool{},
		trigger:  make(chan struct{}, 1),
		ready:    make(chan struct{}),
	}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, ferrors.FileSystemError("failed to resolve watched path").WithCause(err).
				WithContext("path", f).
				Build()
		}
		w.files[abs] = true
		if dir := filepath.Dir(abs); !slices.Contains(w.dirs, dir) {
			w.dirs = append(w.dirs, dir)
		}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, ferrors.RuntimeError("failed to create file watcher").WithCause(err).Build()
	}
	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, ferrors.FileSystemError("failed to watch directory").WithCause(err).
				WithContext("path", dir).
				Build()
		}
	}
	w.watcher = fw
	return w, nil
}

// Ready is closed once Run is consuming events.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run processes events until ctx is cancelled. It closes the underlying
// fsnotify watcher before returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Warn("Error closing file watcher", logfields.Error(err))
		}
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.debounceLoop(ctx)
	}()
	defer wg.Wait()

	close(w.ready)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	name, err := filepath.Abs(event.Name)
	if err != nil || !w.files[name] {
		return
	}
	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
		slog.Debug("Watched file changed", logfields.File(name), slog.String("op", event.Op.String()))
	case event.Has(fsnotify.Remove):
		slog.Warn("Watched file removed", logfields.File(name))
	default:
		return
	}

	w.mu.Lock()
	w.pending[name] = true
	w.mu.Unlock()

	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

func (w *Watcher) debounceLoop(ctx context.Context) {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-w.trigger:
			timer.Reset(w.debounce)
		case <-timer.C:
			w.mu.Lock()
			changed := make([]string, 0, len(w.pending))
			for f := range w.pending {
				changed = append(changed, f)
			}
			clear(w.pending)
			w.mu.Unlock()
			if len(changed) == 0 {
				continue
			}
			slices.Sort(changed)
			w.onChange(ctx, changed)
		}
	}
}
