// Package metrics provides the Prometheus registry shared by the pokedex packages.
// All metrics are defined in their respective packages (client, cache, pokedex)
// to maintain modularity and avoid circular dependencies.
//
// There is no scrape endpoint. WriteTextfile dumps the current values in the
// text exposition format so a node_exporter textfile collector can pick them up.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry is where the client, cache and pokedex packages register their
// metrics. It must be paired with Gatherer.
var Registry = prometheus.DefaultRegisterer

// Gatherer collects the metrics written by WriteTextfile.
var Gatherer prometheus.Gatherer = prometheus.DefaultGatherer

// WriteTextfile writes every gathered metric to path. The file is replaced
// atomically.
func WriteTextfile(path string) error {
	if path == "" {
		return fmt.Errorf("metrics textfile path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create metrics directory: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, Gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Metrics Documentation
//
// Cache Metrics (pkg/cache):
//   - pokeapi_cache_hits_total{state} (Counter): Cache hits by freshness (fresh, stale)
//   - pokeapi_cache_misses_total (Counter): Cache misses
//   - pokeapi_cache_size_bytes (Gauge): Bytes written to the cache
//   - pokeapi_304_responses_total (Counter): 304 Not Modified responses
//   - pokeapi_conditional_requests_total (Counter): Conditional requests sent with If-None-Match
//   - pokeapi_cache_errors_total{operation} (Counter): Cache operation errors
//
// Request Metrics (pkg/client):
//   - pokeapi_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - pokeapi_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - pokeapi_errors_total{class} (Counter): Errors by class (client, server, network, decode)
//
// Fetch Metrics (pkg/pokedex):
//   - pokedex_records_fetched_total (Counter): Records fetched and classified
//   - pokedex_fetch_failures_total (Counter): Fetch runs aborted by a retrieval failure
//   - pokedex_records_by_category_total{category} (Counter): Classified records by category
//   - pokedex_fetch_duration_seconds (Histogram): Duration of a complete fetch run
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(pokeapi_cache_hits_total) /
//   (sum(pokeapi_cache_hits_total) + pokeapi_cache_misses_total)
//
//   # Category distribution of the last runs
//   topk(5, pokedex_records_by_category_total)
//
//   # Request Error Rate
//   sum by (class) (pokeapi_errors_total)
//
//   # P95 Request Latency
//   histogram_quantile(0.95, sum by (le) (pokeapi_request_duration_seconds_bucket))
