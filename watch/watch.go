// Package watch observes a single session log file for growth and triggers
// debounced change callbacks.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet after a modification
// before one re-derivation fires. A single exchange emits several
// consecutive appends; debouncing collapses the burst into one recompute.
const DefaultDebounce = 150 * time.Millisecond

// Watcher watches one log file. The parent directory is watched rather than
// the file itself so appends via rename or re-creation are still observed.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	onChange func()
	onError  func(error)

	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer

	done      chan struct{}
	closeOnce sync.Once
}

// New starts watching path. onChange fires once per settled write burst, on
// the watcher's goroutine. onError fires at most once, when the underlying
// notification mechanism fails; the watcher is closed before it is called
// and is not restarted.
func New(path string, onChange func(), onError func(error)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		fsw:      fsw,
		onChange: onChange,
		onError:  onError,
		debounce: DefaultDebounce,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Path returns the absolute path this watcher observes.
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.fail(err)
			return
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	w.bump()
}

// bump starts or resets the debounce timer. Only when the timer elapses
// without a further notification does onChange fire.
func (w *Watcher) bump() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}

func (w *Watcher) fail(err error) {
	w.Close()
	if w.onError != nil {
		w.onError(err)
	}
}

// Close stops the watcher. A pending debounce timer is cancelled; no
// callbacks fire after Close returns, except a change already in flight.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.mu.Unlock()
		close(w.done)
		w.fsw.Close()
	})
	return nil
}
