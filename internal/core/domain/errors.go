package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file extension with no registered loader.
	// Callers walking a directory treat this as "skip", not as a failure.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmbeddingUnavailable indicates no embedding tier could be resolved.
	// Retrieval degrades to keyword search.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrRetrieverUnavailable indicates no retriever has been initialised yet.
	ErrRetrieverUnavailable = errors.New("retriever unavailable")
)

// InitError is returned when retriever initialisation fails after every
// fallback is exhausted. It carries both the root cause and the reason the
// keyword fallback itself failed, so operators see the full picture in one
// error.
type InitError struct {
	// Cause is the failure of the primary (vector) initialisation path.
	Cause error

	// FallbackCause is the failure of the keyword fallback path.
	FallbackCause error
}

// Error implements the error interface.
func (e *InitError) Error() string {
	return fmt.Sprintf("retriever initialisation failed: %v (keyword fallback: %v)", e.Cause, e.FallbackCause)
}

// Unwrap exposes the root cause for errors.Is / errors.As.
func (e *InitError) Unwrap() error {
	return e.Cause
}
