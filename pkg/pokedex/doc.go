// Package pokedex fetches creature records from PokeAPI and classifies each
// one into a display category with a background color.
//
// # Fetching
//
//	fetcher, err := pokedex.NewFetcher(apiClient, pokedex.DefaultFetcherConfig())
//	records, err := fetcher.FetchClassified(ctx, 40) // ids 1..39
//
// Records are requested one at a time in id order. FetcherConfig.Concurrency
// allows a bounded number of requests in flight; the result is still ordered
// by id. The first failed retrieval aborts the run and no records are
// returned.
//
// # Classification
//
// A Table is an ordered list of categories. A record's category is the first
// table entry that appears anywhere in its type list, so the result depends on
// table order only, never on the order the API lists types in. Records whose
// types match nothing get the Unknown category.
package pokedex
