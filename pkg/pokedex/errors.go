package pokedex

import (
	"errors"
	"fmt"
)

var (
	// ErrRetrieval matches any failed record retrieval via errors.Is.
	ErrRetrieval = errors.New("record retrieval failed")

	// ErrInvalidCount is returned when fewer than one record slot is requested.
	ErrInvalidCount = errors.New("count must be >= 1")

	// ErrMalformedRecord marks a payload missing required fields.
	ErrMalformedRecord = errors.New("malformed record")
)

// RetrievalError reports the record id whose retrieval aborted a fetch.
type RetrievalError struct {
	ID  int
	Err error
}

// Error implements the error interface.
func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve record %d: %v", e.ID, e.Err)
}

// Unwrap exposes the underlying cause (e.g. *client.APIError).
func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrRetrieval) true for every RetrievalError.
func (e *RetrievalError) Is(target error) bool {
	return target == ErrRetrieval
}
