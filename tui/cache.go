package tui

import (
	"encoding/json"
	"sync/atomic"

	"github.com/alphadose/haxmap"

	"github.com/ChristianF88/catgene/form"
)

// SubmitCache keeps the summary of every submitted value set so that
// submitting the same settings again is answered from RAM
type SubmitCache struct {
	summaries *haxmap.Map[string, string]

	// Performance metrics
	hits   atomic.Int64
	misses atomic.Int64
}

// NewSubmitCache creates an empty cache
func NewSubmitCache() *SubmitCache {
	return &SubmitCache{
		summaries: haxmap.New[string, string](),
	}
}

// Fingerprint identifies a value set. Values that only differ in fields the
// pipeline ignores still get distinct keys.
func Fingerprint(values form.Values) string {
	data, err := json.Marshal(values)
	if err != nil {
		return ""
	}
	return string(data)
}

// Get returns the cached summary for values
func (c *SubmitCache) Get(values form.Values) (string, bool) {
	key := Fingerprint(values)
	if key == "" {
		c.misses.Add(1)
		return "", false
	}
	summary, ok := c.summaries.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return summary, ok
}

// Put stores the summary of a successful submit
func (c *SubmitCache) Put(values form.Values, summary string) {
	if key := Fingerprint(values); key != "" {
		c.summaries.Set(key, summary)
	}
}

// Len is the number of cached value sets
func (c *SubmitCache) Len() int {
	return int(c.summaries.Len())
}

// Stats returns the hit and miss counters
func (c *SubmitCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
