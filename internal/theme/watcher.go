package theme

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-resolves themes when a definition file under a directory
// base changes. Each change triggers a full Resolve; nothing is cached
// between runs.
type Watcher struct {
	mu       sync.Mutex
	logger   *slog.Logger
	resolver *Resolver
	watcher  *fsnotify.Watcher

	// Quiet period after the last event before resolving.
	debounce time.Duration

	onChange func(*Configuration, error)

	done    chan struct{}
	stopped chan struct{}
	running bool
}

// NewWatcher creates a watcher for the resolver's base directory.
func NewWatcher(resolver *Resolver, logger *slog.Logger) (*Watcher, error) {
	if !resolver.Base().HasPath() {
		return nil, errors.New("theme watcher requires a directory base")
	}
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		logger:   logger,
		resolver: resolver,
		watcher:  fw,
		debounce: 100 * time.Millisecond,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}, nil
}

// SetDebounce sets the quiet period applied to bursts of file events.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// SetChangeCallback sets the callback receiving each re-resolution.
func (w *Watcher) SetChangeCallback(callback func(*Configuration, error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = callback
}

// Start begins watching. It returns once the directory watch is in place.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	// Watch the directory; editors often replace files instead of writing them.
	if err := w.watcher.Add(w.resolver.Base().Dir()); err != nil {
		return err
	}
	w.running = true

	go w.watchLoop(ctx)
	w.logger.Debug("theme watcher started", "dir", w.resolver.Base().Dir())
	return nil
}

// Stop stops watching and waits for the loop to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return w.watcher.Close()
	}
	w.running = false
	close(w.done)
	w.mu.Unlock()

	<-w.stopped
	w.logger.Debug("theme watcher stopped")
	return w.watcher.Close()
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer close(w.stopped)

	watched := make(map[string]bool)
	for _, name := range Names() {
		watched[filepath.Clean(w.resolver.Location(name).Path)] = true
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			w.logger.Debug("theme file changed", "file", event.Name, "op", event.Op.String())

			w.mu.Lock()
			debounce := w.debounce
			w.mu.Unlock()
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("theme watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	cfg, err := w.resolver.Resolve(ctx)
	if err != nil {
		w.logger.Warn("failed to re-resolve themes", "error", err)
	} else {
		w.logger.Info("themes re-resolved", "dir", w.resolver.Base().Dir())
	}

	w.mu.Lock()
	callback := w.onChange
	w.mu.Unlock()
	if callback != nil {
		callback(cfg, err)
	}
}
