package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors. Match with errors.Is; every error returned by the
// repositories and services wraps exactly one of these.
var (
	// ErrInvalidInput covers empty required fields, malformed numbers and
	// areas below the configured minimum.
	ErrInvalidInput = errors.New("invalid input")

	// ErrReferenceNotFound is returned when a product type or state is
	// absent from the reference catalogs.
	ErrReferenceNotFound = errors.New("reference not found")

	// ErrInvalidProductType and ErrInvalidState narrow ErrReferenceNotFound
	// to the catalog that rejected the lookup.
	ErrInvalidProductType = fmt.Errorf("invalid product type: %w", ErrReferenceNotFound)
	ErrInvalidState       = fmt.Errorf("invalid state: %w", ErrReferenceNotFound)

	// ErrOrderNotFound is returned for edit/remove of an unknown order number.
	ErrOrderNotFound = errors.New("order not found")

	// ErrDuplicateKey is returned when adding a catalog entry whose key exists.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrPersistence wraps failures reading or writing data files.
	ErrPersistence = errors.New("persistence failure")
)

// ValidationError names the field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// OrderNotFoundError carries the order number that failed to resolve.
type OrderNotFoundError struct {
	Number int
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("order %d not found", e.Number)
}

func (e *OrderNotFoundError) Unwrap() error { return ErrOrderNotFound }

// PersistenceError records which file an I/O failure happened on.
type PersistenceError struct {
	Op   string // "read", "write" or "remove"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }

// IsClientError reports whether err stems from caller input rather than the
// environment. Client errors are surfaced verbatim and never retried.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrReferenceNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrDuplicateKey)
}

// IsNotFound reports whether err indicates a missing order or reference.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrReferenceNotFound)
}
