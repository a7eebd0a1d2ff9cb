// Package pagination splits an ordered record sequence into fixed-size pages
// and tracks the page a viewer is looking at.
//
// Paging is purely client-side: the remote API is queried record by record
// and the full result set is chunked afterwards.
//
// Example usage:
//
//	pager := pagination.NewPager(records, pagination.DefaultPageSize)
//	pager.Next()
//	for _, r := range pager.Current() {
//		fmt.Println(r.Name)
//	}
//
// Navigation is modelled as commands (GoTo, Next, Prev) applied by Reduce to
// an immutable State, so the state machine can be tested without a UI:
//   - GoTo(i) moves to page i when 0 <= i < TotalPages, otherwise no-op
//   - Next moves forward unless already on the last page
//   - Prev moves back unless already on the first page
//   - an empty result set has zero pages and stays at index 0
package pagination
