package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsageAdd(t *testing.T) {
	var total Usage
	total.Add(Usage{InputTokens: 100, OutputTokens: 50})
	total.Add(Usage{InputTokens: 10, CacheReadTokens: 2000, CacheCreationTokens: 30})

	assert.Equal(t, Usage{
		InputTokens:         110,
		OutputTokens:        50,
		CacheReadTokens:     2000,
		CacheCreationTokens: 30,
	}, total)
}

func TestUsageTotalContext(t *testing.T) {
	u := Usage{
		InputTokens:         100,
		OutputTokens:        9999, // output never counts toward context
		CacheReadTokens:     2000,
		CacheCreationTokens: 30,
	}
	assert.Equal(t, 2130, u.TotalContext())
	assert.Equal(t, 0, Usage{}.TotalContext())
}

func TestSummaryUnreadable(t *testing.T) {
	assert.False(t, (&Summary{Path: "/tmp/a.jsonl"}).Unreadable())
	assert.True(t, (&Summary{Path: "/tmp/a.jsonl", ReadError: "permission denied"}).Unreadable())
}

func TestDiffTracker(t *testing.T) {
	d := NewDiffTracker()
	assert.Nil(t, d.Stats())

	d.RecordWrite("/tmp/a.go", "one\ntwo\n")
	d.RecordEdit("/tmp/a.go", "old line", "new line\nsecond line")
	d.RecordEdit("/tmp/b.go", "", "added")

	stats := d.Stats()
	assert.Equal(t, &DiffStats{Added: 5, Removed: 1, Changed: 2}, stats)
}
