package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setDebounce shortens the debounce window for tests.
func (w *Watcher) setDebounce(d time.Duration) {
	w.mu.Lock()
	w.debounce = d
	w.mu.Unlock()
}

func newTestWatcher(t *testing.T, path string, onChange func()) *Watcher {
	t.Helper()
	w, err := New(path, onChange, nil)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	w.setDebounce(50 * time.Millisecond)
	return w
}

func appendLine(t *testing.T, path, line string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(line + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestDebounceCoalescesBurst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jsonl")
	appendLine(t, path, "{}")

	var fires atomic.Int32
	w := newTestWatcher(t, path, func() { fires.Add(1) })
	_ = w

	// A burst of writes inside the debounce window fires exactly once.
	for range 5 {
		appendLine(t, path, "{}")
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return fires.Load() == 1
	}, time.Second, 10*time.Millisecond)

	// And stays at one after the window has long passed.
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), fires.Load())
}

func TestSettledBurstsFireSeparately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jsonl")
	appendLine(t, path, "{}")

	var fires atomic.Int32
	newTestWatcher(t, path, func() { fires.Add(1) })

	appendLine(t, path, "{}")
	require.Eventually(t, func() bool {
		return fires.Load() == 1
	}, time.Second, 10*time.Millisecond)

	appendLine(t, path, "{}")
	require.Eventually(t, func() bool {
		return fires.Load() == 2
	}, time.Second, 10*time.Millisecond)
}

func TestIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.jsonl")
	appendLine(t, path, "{}")

	var fires atomic.Int32
	newTestWatcher(t, path, func() { fires.Add(1) })

	appendLine(t, filepath.Join(dir, "other.jsonl"), "{}")
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), fires.Load())
}

func TestCloseCancelsPendingTimer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jsonl")
	appendLine(t, path, "{}")

	var fires atomic.Int32
	w := newTestWatcher(t, path, func() { fires.Add(1) })

	appendLine(t, path, "{}")
	// Close before the debounce window elapses; give fsnotify a moment to
	// deliver the event first.
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, w.Close())

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), fires.Load())
}
