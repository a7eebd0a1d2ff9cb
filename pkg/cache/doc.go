// Package cache provides an optional Redis-backed HTTP response cache for the
// PokeAPI client.
//
// Freshness comes from Cache-Control max-age, then Expires, then DefaultTTL.
// no-store responses are skipped. Stale entries stay in Redis for a grace
// window so the client can revalidate them with If-None-Match or
// If-Modified-Since instead of downloading the record again. Keys are
// namespaced by host, which lets Manager.Purge drop one API's responses.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient)
//
//	key := cache.CacheKey{Host: "pokeapi.co", Endpoint: "/api/v2/pokemon/25"}
//
//	entry, err := manager.Get(ctx, key)
//	if errors.Is(err, cache.ErrCacheMiss) {
//		// go to PokeAPI
//	}
//
//	removed, err := manager.Purge(ctx, "pokeapi.co")
//
// # HTTP Response Caching
//
//	entry, err := cache.ResponseToEntry(resp)
//	if err != nil {
//		return err
//	}
//
//	if err := manager.Set(ctx, key, entry); err != nil {
//		return err
//	}
//
// # Conditional Requests
//
//	if entry.IsExpired() && cache.ShouldMakeConditionalRequest(entry) {
//		cache.AddConditionalHeaders(req, entry)
//		// the API answers 304 if the record did not change
//	}
//
// # Metrics
//
//   - pokeapi_cache_hits_total{state} - Cache hits (fresh or stale)
//   - pokeapi_cache_misses_total - Cache misses
//   - pokeapi_cache_size_bytes - Bytes written to the cache
//   - pokeapi_conditional_requests_total - Revalidation requests sent
//   - pokeapi_304_responses_total - Revalidations answered with 304
//   - pokeapi_cache_errors_total{operation} - Cache operation errors
package cache
