package listing

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an item does not exist.
var ErrNotFound = errors.New("item not found")

// StorageError represents an error from the storage backend.
type StorageError struct {
	Backend   string // Storage backend type ("sqlite", "memory")
	Operation string // Operation that failed ("store", "query", "delete", etc.)
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}

// QueryError represents an error during query validation.
type QueryError struct {
	Query *Query // Query that failed
	Cause error  // Underlying error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("query error: %v", e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *QueryError) Unwrap() error {
	return e.Cause
}

// NewQueryError creates a new QueryError.
func NewQueryError(query *Query, cause error) *QueryError {
	return &QueryError{
		Query: query,
		Cause: cause,
	}
}

// ItemError represents an invalid item on write.
type ItemError struct {
	ItemID string
	Cause  error
}

// Error implements the error interface.
func (e *ItemError) Error() string {
	if e.ItemID != "" {
		return fmt.Sprintf("item error [id=%s]: %v", e.ItemID, e.Cause)
	}
	return fmt.Sprintf("item error: %v", e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ItemError) Unwrap() error {
	return e.Cause
}

// NewItemError creates a new ItemError.
func NewItemError(itemID string, cause error) *ItemError {
	return &ItemError{
		ItemID: itemID,
		Cause:  cause,
	}
}
