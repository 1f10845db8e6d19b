// Package broadcast maintains per-log observer registries and fans freshly
// derived summaries out to every observer of a log as it grows.
package broadcast

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sonnes/drishti/core"
	"github.com/sonnes/drishti/discover"
	"github.com/sonnes/drishti/reader"
	"github.com/sonnes/drishti/reader/claude"
	"github.com/sonnes/drishti/watch"
)

// Kind discriminates messages so a consumer can tell first-load from live
// refresh.
type Kind string

const (
	KindCatalog Kind = "catalog"
	KindInitial Kind = "initial"
	KindUpdate  Kind = "update"
	KindPing    Kind = "ping"
)

// Message is one delivery to an observer.
type Message struct {
	Kind    Kind             `json:"kind"`
	Summary *core.Summary    `json:"summary,omitempty"`
	Catalog []discover.Entry `json:"catalog,omitempty"`
}

// Observer is a long-lived delivery channel bound to one log. A Send error
// is treated as an implicit detach. Implementations must be comparable
// (pointer types) so the hub can find them again on Detach.
type Observer interface {
	Send(Message) error
}

// ErrClosed is returned by Attach after the hub has been closed.
var ErrClosed = errors.New("broadcast: hub closed")

// Options configures a Hub.
type Options struct {
	// Reader derives summaries. Defaults to the Claude Code reader.
	Reader reader.Reader
	// Transform, when non-nil, is applied to every freshly derived summary
	// before delivery (e.g. redaction).
	Transform func(*core.Summary)
	// KeepAlive is the interval between ping messages used to detect
	// half-open observer channels. Defaults to 30s.
	KeepAlive time.Duration
}

// Hub owns the per-log watcher and observer registries. It is an explicitly
// constructed object, not an ambient singleton, so independent instances can
// coexist in tests.
type Hub struct {
	reader    reader.Reader
	transform func(*core.Summary)
	newWatch  func(path string, onChange func(), onError func(error)) (io.Closer, error)

	mu     sync.Mutex
	feeds  map[string]*feed
	closed bool

	keepAlive time.Duration
	stop      chan struct{}
}

// feed is the state kept per log identity: one reference-counted watcher
// and the observers attached to it.
type feed struct {
	watcher   io.Closer
	observers []Observer
}

// New creates a Hub and starts its keep-alive loop.
func New(opts Options) *Hub {
	if opts.Reader == nil {
		opts.Reader = &claude.Reader{}
	}
	if opts.KeepAlive == 0 {
		opts.KeepAlive = 30 * time.Second
	}

	h := &Hub{
		reader:    opts.Reader,
		transform: opts.Transform,
		keepAlive: opts.KeepAlive,
		feeds:     make(map[string]*feed),
		stop:      make(chan struct{}),
		newWatch: func(path string, onChange func(), onError func(error)) (io.Closer, error) {
			return watch.New(path, onChange, onError)
		},
	}
	go h.keepAliveLoop()
	return h
}

// Attach registers obs for the given log path, lazily starting a watcher
// when none is running, and synchronously delivers one full summary to the
// new observer only. The returned error is non-nil when the watcher could
// not be started or the initial delivery failed (in which case obs is
// already dropped).
func (h *Hub) Attach(path string, obs Observer) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}

	f, ok := h.feeds[path]
	if !ok {
		f = &feed{}
		h.feeds[path] = f
	}
	if f.watcher == nil {
		w, err := h.newWatch(path,
			func() { h.publish(path) },
			func(err error) { h.watchFailed(path, err) },
		)
		if err != nil {
			if len(f.observers) == 0 {
				delete(h.feeds, path)
			}
			return fmt.Errorf("watch %s: %w", path, err)
		}
		f.watcher = w
	}

	f.observers = append(f.observers, obs)

	summary := h.derive(path)
	if err := obs.Send(Message{Kind: KindInitial, Summary: summary}); err != nil {
		h.removeLocked(path, obs)
		return fmt.Errorf("initial delivery: %w", err)
	}
	return nil
}

// Detach removes obs from the given log's observer set. When the set
// becomes empty the watcher is stopped and discarded.
func (h *Hub) Detach(path string, obs Observer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(path, obs)
}

// Close shuts down all watchers and stops the keep-alive loop. Attached
// observers receive no further messages.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	for path, f := range h.feeds {
		if f.watcher != nil {
			f.watcher.Close()
		}
		delete(h.feeds, path)
	}
	h.mu.Unlock()
	close(h.stop)
}

// publish re-derives the summary for path and fans it out to every attached
// observer. Called from watcher goroutines after the debounce window
// settles; the hub lock serializes derivations, so at most one is ever in
// flight per hub.
func (h *Hub) publish(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, ok := h.feeds[path]
	if !ok {
		return
	}
	h.fanOut(path, f, Message{Kind: KindUpdate, Summary: h.derive(path)})
}

func (h *Hub) derive(path string) *core.Summary {
	s := h.reader.ReadFile(path)
	if h.transform != nil {
		h.transform(s)
	}
	return s
}

// fanOut delivers msg to every observer of f in attach order. A failed
// delivery drops that observer and continues; one slow or dead observer
// never aborts the broadcast. Caller holds the lock.
func (h *Hub) fanOut(path string, f *feed, msg Message) {
	kept := f.observers[:0]
	for _, obs := range f.observers {
		if err := obs.Send(msg); err != nil {
			log.Debug("observer dropped", "path", path, "error", err)
			continue
		}
		kept = append(kept, obs)
	}
	f.observers = kept
	if len(f.observers) == 0 {
		h.teardownLocked(path, f)
	}
}

func (h *Hub) removeLocked(path string, obs Observer) {
	f, ok := h.feeds[path]
	if !ok {
		return
	}
	for i, o := range f.observers {
		if o == obs {
			f.observers = append(f.observers[:i], f.observers[i+1:]...)
			break
		}
	}
	if len(f.observers) == 0 {
		h.teardownLocked(path, f)
	}
}

func (h *Hub) teardownLocked(path string, f *feed) {
	if f.watcher != nil {
		f.watcher.Close()
		f.watcher = nil
	}
	delete(h.feeds, path)
}

// watchFailed handles a watch-level error: that log's watcher is closed and
// discarded, without affecting other logs. Observers stay attached; a later
// Attach on the same path re-creates a fresh watcher.
func (h *Hub) watchFailed(path string, err error) {
	log.Warn("watch failed", "path", path, "error", err)

	h.mu.Lock()
	defer h.mu.Unlock()

	f, ok := h.feeds[path]
	if !ok {
		return
	}
	if f.watcher != nil {
		f.watcher.Close()
		f.watcher = nil
	}
}

func (h *Hub) keepAliveLoop() {
	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			h.ping()
		}
	}
}

// ping probes every observer channel so half-open connections are detected
// and detached even when their log is idle.
func (h *Hub) ping() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for path, f := range h.feeds {
		h.fanOut(path, f, Message{Kind: KindPing})
	}
}
