// Package cache provides the in-memory, time-bounded caches used by the
// service layer: one for enriched fighter profiles, one for Q&A answers.
// Expiry is lazy — stale entries are treated as misses and overwritten on
// the next successful fetch; there is no background sweep. Everything is
// process-local and discarded on restart.
package cache

import (
	"strings"
	"sync"
	"time"
)

type entry[V any] struct {
	storedAt time.Time
	value    V
}

// TTLCache is a mutex-guarded key→timestamped-value map with a fixed
// time-to-live. Safe for concurrent use.
type TTLCache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry[V]

	// now is a seam for tests; defaults to time.Now.
	now func() time.Time
}

// New builds a TTLCache whose entries are valid for ttl after being stored.
func New[V any](ttl time.Duration) *TTLCache[V] {
	return &TTLCache[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Get returns the stored value for key when it is still within the TTL.
// Expired entries are misses; they stay in place until overwritten.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.storedAt) >= c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with a fresh timestamp, replacing any prior
// entry. Callers must only Set after a successful remote fetch.
func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{storedAt: c.now(), value: value}
}

// Len reports the number of entries including expired ones (lazy expiry).
func (c *TTLCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// AnswerKey builds the answer-cache key for a question about one fighter.
// fighterKey is the fighter's identity key (id, or lowercased name).
func AnswerKey(fighterKey, question string) string {
	return fighterKey + "\n" + strings.ToLower(strings.TrimSpace(question))
}

// GeneralKey builds the answer-cache key for a question not tied to a fighter.
func GeneralKey(question string) string {
	return "general\n" + strings.ToLower(strings.TrimSpace(question))
}
