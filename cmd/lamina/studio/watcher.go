package studio

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"lamina/internal/form"
	"lamina/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// FormReload is delivered when the watched form file changes.
type FormReload struct {
	Fields form.Fields
	Err    error
}

// FormWatcher reloads a form file whenever it is written. It watches the
// parent directory so editors that replace the file on save still trigger.
type FormWatcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	path        string
	debounceDur time.Duration
	pendingAt   time.Time
	updates     chan FormReload
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

// NewFormWatcher creates a watcher for path. Call Start to begin watching.
func NewFormWatcher(path string) (*FormWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FormWatcher{
		watcher:     w,
		path:        abs,
		debounceDur: 200 * time.Millisecond, // editors often write twice
		updates:     make(chan FormReload, 1),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Updates returns the channel reloads are delivered on. It is closed when
// the watcher stops.
func (fw *FormWatcher) Updates() <-chan FormReload {
	return fw.updates
}

// Start begins watching. It is non-blocking.
func (fw *FormWatcher) Start(ctx context.Context) error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return nil
	}
	fw.running = true
	fw.mu.Unlock()

	if err := fw.watcher.Add(filepath.Dir(fw.path)); err != nil {
		fw.mu.Lock()
		fw.running = false
		fw.mu.Unlock()
		return err
	}
	logging.UI("FormWatcher: watching %s", fw.path)

	go fw.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (fw *FormWatcher) Stop() {
	fw.mu.Lock()
	if !fw.running {
		fw.mu.Unlock()
		fw.watcher.Close()
		return
	}
	fw.running = false
	fw.mu.Unlock()

	close(fw.stopCh)
	<-fw.doneCh

	if err := fw.watcher.Close(); err != nil {
		logging.Get(logging.CategoryUI).Error("FormWatcher: error closing watcher: %v", err)
	}
}

func (fw *FormWatcher) run(ctx context.Context) {
	defer close(fw.doneCh)
	defer close(fw.updates)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-fw.stopCh:
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			fw.pendingAt = time.Now()
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryUI).Error("FormWatcher error: %v", err)
		case <-ticker.C:
			if fw.pendingAt.IsZero() || time.Since(fw.pendingAt) < fw.debounceDur {
				continue
			}
			fw.pendingAt = time.Time{}
			fields, err := form.LoadFile(fw.path)
			fw.deliver(FormReload{Fields: fields, Err: err})
		}
	}
}

// deliver keeps only the newest reload when the consumer is behind.
func (fw *FormWatcher) deliver(r FormReload) {
	select {
	case fw.updates <- r:
		return
	default:
	}
	select {
	case <-fw.updates:
	default:
	}
	select {
	case fw.updates <- r:
	default:
	}
}
