package cache

import (
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// KeyPrefix namespaces every cache key in Redis.
const KeyPrefix = "pokedex"

// CacheKey identifies one cached API response. Host keeps responses from
// different API mirrors apart.
type CacheKey struct {
	// Host is the API host, e.g. "pokeapi.co" or "localhost:8080"
	Host string

	// Endpoint is the request path, e.g. "/api/v2/pokemon/25"
	Endpoint string

	// QueryParams are the query parameters, if any
	QueryParams url.Values
}

// KeyForRequest derives the cache key of an outgoing request.
func KeyForRequest(req *http.Request) CacheKey {
	return CacheKey{
		Host:        req.URL.Host,
		Endpoint:    req.URL.Path,
		QueryParams: req.URL.Query(),
	}
}

// String renders the Redis key: prefix, host, trimmed path, then sorted
// query pairs, joined by colons.
//
//	pokedex:pokeapi.co:api/v2/pokemon/25
func (k CacheKey) String() string {
	var b strings.Builder
	b.WriteString(KeyPrefix)

	if host := strings.ToLower(k.Host); host != "" {
		b.WriteString(":")
		b.WriteString(host)
	}
	if endpoint := strings.Trim(k.Endpoint, "/"); endpoint != "" {
		b.WriteString(":")
		b.WriteString(endpoint)
	}

	names := make([]string, 0, len(k.QueryParams))
	for name := range k.QueryParams {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString(":")
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(k.QueryParams.Get(name))
	}

	return b.String()
}

// globEscaper quotes Redis glob metacharacters, e.g. the brackets of an
// IPv6 host.
var globEscaper = strings.NewReplacer(`\`, `\\`, "[", `\[`, "]", `\]`, "*", `\*`, "?", `\?`)

// Pattern is the SCAN match pattern covering every key of host, or every
// pokedex key when host is empty.
func Pattern(host string) string {
	if host == "" {
		return KeyPrefix + ":*"
	}
	return KeyPrefix + ":" + globEscaper.Replace(strings.ToLower(host)) + ":*"
}
