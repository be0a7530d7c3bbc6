package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/revpoint/internal/log"
)

// DefaultDebounce is the delay used when NewWatcher is given none.
const DefaultDebounce = 100 * time.Millisecond

// Event reports that the record file changed on disk.
type Event struct {
	Path      string
	Removed   bool // the file no longer exists
	Timestamp time.Time
}

// Watcher reports debounced changes of one record file. Bursts of writes,
// including the create and rename of an atomic save, are coalesced into a
// single Event.
type Watcher struct {
	path  string
	delay time.Duration

	watcher *fsnotify.Watcher
	logger  *log.Logger

	mu       sync.Mutex
	pending  *time.Timer
	gen      uint64 // incremented on every arming of pending
	closed   bool
	events   chan Event
	errors   chan error
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// NewWatcher watches the record file at path. The containing directory must
// exist; the file itself may not.
func NewWatcher(path string, delay time.Duration, logger *log.Logger) (*Watcher, error) {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if logger == nil {
		logger = log.Nop()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: atomic saves replace the file's inode.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		delay:   delay,
		watcher: fsw,
		logger:  logger,
		events:  make(chan Event, 16),
		errors:  make(chan error, 16),
		closeCh: make(chan struct{}),
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns the debounced event channel.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and closes its channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	if w.pending != nil {
		w.pending.Stop()
		w.pending = nil
	}
	w.mu.Unlock()

	w.closedWg.Wait()

	close(w.events)
	close(w.errors)

	return w.watcher.Close()
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("record watcher error", "path", w.path, "error", err)
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	if ev.Op == fsnotify.Chmod {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	if w.pending != nil {
		w.pending.Stop()
	}
	w.gen++
	gen := w.gen
	w.pending = time.AfterFunc(w.delay, func() { w.fire(gen) })
}

// fire sends the event of arming gen unless a later change re-armed the
// timer. The send never blocks, so it runs under the lock that Close takes
// before closing the channel.
func (w *Watcher) fire(gen uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || gen != w.gen {
		return
	}
	w.pending = nil

	_, err := os.Stat(w.path)
	ev := Event{Path: w.path, Removed: errors.Is(err, fs.ErrNotExist), Timestamp: time.Now()}

	select {
	case w.events <- ev:
	default:
		w.logger.Debug("record watcher event dropped", "path", w.path)
	}
}
