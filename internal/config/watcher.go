package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"shopctl/internal/logging"
)

// Watcher reloads the config file when it changes on disk and hands the new
// Config to a callback. Used to hot-apply logging settings and the API base
// URL without restarting an interactive session.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	onChange func(Config)
	debounce time.Duration
	timer    *time.Timer
	running  bool
	doneCh   chan struct{}
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(path string, onChange func(Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:  fsw,
		path:     path,
		onChange: onChange,
		debounce: 500 * time.Millisecond, // editors fire several events per save
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; stops when ctx is cancelled or Close
// is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory, not the file: editors replace files on save and
	// a file watch dies with the old inode.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	logging.Boot("config watcher: watching %s", w.path)

	go w.loop(ctx)
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryBoot).Warn("config watcher: %v", err)
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		cfg, err := Load(w.path)
		if err != nil {
			logging.Get(logging.CategoryBoot).Warn("config reload failed, keeping previous config: %v", err)
			return
		}
		logging.Boot("config reloaded from %s", w.path)
		w.onChange(cfg)
	})
}

// Close stops the watcher and waits for the event loop to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	running := w.running
	w.mu.Unlock()

	err := w.watcher.Close()
	if running {
		<-w.doneCh
	}
	return err
}
