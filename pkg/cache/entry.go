package cache

import (
	"net/http"
	"time"
)

// CacheEntry is one stored PokeAPI response plus the validators needed to
// revalidate it once it goes stale.
type CacheEntry struct {
	Data       []byte      `json:"data"`
	StatusCode int         `json:"status_code"`
	Headers    http.Header `json:"headers"`

	// Validators sent back as If-None-Match / If-Modified-Since.
	ETag         string    `json:"etag"`
	LastModified time.Time `json:"last_modified"`

	// Expires ends freshness; CachedAt is the store time.
	Expires  time.Time `json:"expires"`
	CachedAt time.Time `json:"cached_at"`
}

// IsExpired reports whether Expires has passed.
func (e *CacheEntry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL is the remaining freshness, never negative.
func (e *CacheEntry) TTL() time.Duration {
	return max(time.Until(e.Expires), 0)
}

// Age returns how long ago the response was stored.
func (e *CacheEntry) Age() time.Duration {
	if e.CachedAt.IsZero() {
		return 0
	}
	return time.Since(e.CachedAt)
}

// CanRevalidate reports whether a stale entry carries validators the server
// can use to answer 304.
func (e *CacheEntry) CanRevalidate() bool {
	return e.ETag != "" || !e.LastModified.IsZero()
}
