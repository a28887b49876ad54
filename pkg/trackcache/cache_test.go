package trackcache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(ttl time.Duration) (*Cache, *time.Time) {
	cache := New(ttl)
	current := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }
	return cache, &current
}

func TestCache_GetRoundTrip(t *testing.T) {
	cache, _ := newTestCache(15 * time.Minute)

	audio := []byte("mp3-bytes")
	cache.Put(Track{ID: "abcd1234", Audio: audio, Prompt: "ambient pad", Duration: 20, Filename: "vugru_track_abcd1234.mp3"})

	got, ok := cache.Get("abcd1234")
	require.True(t, ok)
	assert.Equal(t, audio, got.Audio)
	assert.Equal(t, 20, got.Duration)
	assert.False(t, got.CreatedAt.IsZero(), "Put must stamp the creation time")
}

func TestCache_ExpiryBoundary(t *testing.T) {
	cache, current := newTestCache(15 * time.Minute)

	cache.Put(Track{ID: "abcd1234", Audio: []byte("x")})

	*current = current.Add(14*time.Minute + 59*time.Second)
	_, ok := cache.Get("abcd1234")
	assert.True(t, ok, "entry must still be live just before the TTL")

	*current = current.Add(2 * time.Second) // now 15m01s after Put
	_, ok = cache.Get("abcd1234")
	assert.False(t, ok, "entry must be gone just after the TTL")
}

func TestCache_PurgeHappensOnAnyAccess(t *testing.T) {
	cache, current := newTestCache(15 * time.Minute)

	cache.Put(Track{ID: "old", Audio: []byte("x")})
	*current = current.Add(20 * time.Minute)

	// Accessing an unrelated key sweeps everything stale.
	_, _ = cache.Get("unrelated")

	count, _ := cache.Stats()
	assert.Equal(t, 0, count)
}

func TestCache_PutOverwritesSilently(t *testing.T) {
	cache, _ := newTestCache(15 * time.Minute)

	cache.Put(Track{ID: "abcd1234", Audio: []byte("first")})
	cache.Put(Track{ID: "abcd1234", Audio: []byte("second")})

	got, ok := cache.Get("abcd1234")
	require.True(t, ok)
	assert.Equal(t, []byte("second"), got.Audio)

	count, _ := cache.Stats()
	assert.Equal(t, 1, count)
}

func TestCache_RecentOrderAndBound(t *testing.T) {
	cache, current := newTestCache(15 * time.Minute)

	for i := 0; i < 8; i++ {
		cache.Put(Track{ID: fmt.Sprintf("track-%d", i), Audio: []byte("x")})
		*current = current.Add(time.Minute)
	}

	recent := cache.Recent(5)
	require.Len(t, recent, 5)
	for i := 1; i < len(recent); i++ {
		assert.True(t, recent[i-1].CreatedAt.After(recent[i].CreatedAt),
			"recent tracks must be ordered newest first")
	}
	assert.Equal(t, "track-7", recent[0].ID)

	// Fewer live entries than requested.
	assert.Len(t, cache.Recent(50), 8)
}

func TestCache_RecentSkipsExpired(t *testing.T) {
	cache, current := newTestCache(15 * time.Minute)

	cache.Put(Track{ID: "stale", Audio: []byte("x")})
	*current = current.Add(16 * time.Minute)
	cache.Put(Track{ID: "fresh", Audio: []byte("y")})

	recent := cache.Recent(5)
	require.Len(t, recent, 1)
	assert.Equal(t, "fresh", recent[0].ID)
}

func TestCache_StatsFootprint(t *testing.T) {
	cache, _ := newTestCache(15 * time.Minute)

	cache.Put(Track{ID: "a", Audio: make([]byte, 100)})
	cache.Put(Track{ID: "b", Audio: make([]byte, 150)})

	count, bytes := cache.Stats()
	assert.Equal(t, 2, count)
	assert.EqualValues(t, 250, bytes)
}
