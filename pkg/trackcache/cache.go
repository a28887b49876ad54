// Package trackcache keeps recently generated tracks in memory for a short
// window so a client can re-fetch audio it already paid to generate without
// a second provider charge. Expiry is lazy: stale entries are removed on the
// next access of any key, there is no background sweeper.
package trackcache

import (
	"sort"
	"sync"
	"time"
)

const DefaultTTL = 15 * time.Minute

// Track is a cached generation result.
type Track struct {
	ID         string
	Audio      []byte
	Prompt     string
	Duration   int
	Filename   string
	StorageURL string
	CreatedAt  time.Time
}

type Cache struct {
	mu     sync.Mutex
	tracks map[string]Track
	ttl    time.Duration

	// now is swappable in tests to exercise expiry boundaries.
	now func() time.Time
}

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		tracks: make(map[string]Track),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Put stores a track stamped with the current time, silently overwriting any
// previous entry under the same id.
func (c *Cache) Put(track Track) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeLocked()
	track.CreatedAt = c.now()
	c.tracks[track.ID] = track
}

// Get returns the track for id if it exists and has not expired. An entry
// that was just purged and one that never existed are indistinguishable.
func (c *Cache) Get(id string) (Track, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeLocked()
	track, ok := c.tracks[id]
	return track, ok
}

// Recent returns up to n live tracks ordered by creation time descending.
func (c *Cache) Recent(n int) []Track {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeLocked()
	out := make([]Track, 0, len(c.tracks))
	for _, track := range c.tracks {
		out = append(out, track)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Stats reports the number of live entries and their audio footprint.
func (c *Cache) Stats() (count int, bytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeLocked()
	for _, track := range c.tracks {
		bytes += int64(len(track.Audio))
	}
	return len(c.tracks), bytes
}

func (c *Cache) purgeLocked() {
	now := c.now()
	for id, track := range c.tracks {
		if now.Sub(track.CreatedAt) > c.ttl {
			delete(c.tracks, id)
		}
	}
}
