// Package modelerrors holds error helpers shared by the model packages and
// their callers.
package modelerrors

import (
	"errors"
	"maps"
)

// WithSourceError is an error that carries the source document and position
// at which the underlying failure was detected.
type WithSourceError struct {
	error

	// Source is the path or logical name of the offending document.
	Source string

	// LineNumber is the (1-indexed) line number of the error, or 0 if
	// unknown.
	LineNumber int

	// ColumnPosition is the (1-indexed) column position of the error, or 0
	// if unknown.
	ColumnPosition int
}

// Unwrap returns the inner, wrapped error.
func (err *WithSourceError) Unwrap() error {
	return err.error
}

// NewWithSourceError creates and returns a new WithSourceError.
func NewWithSourceError(err error, source string, oneIndexedLineNumber int, oneIndexedColumnPosition int) *WithSourceError {
	return &WithSourceError{err, source, oneIndexedLineNumber, oneIndexedColumnPosition}
}

// AsWithSourceError returns the error as a WithSourceError, if applicable.
func AsWithSourceError(err error) (*WithSourceError, bool) {
	var serr *WithSourceError
	if errors.As(err, &serr) {
		return serr, true
	}
	return nil, false
}

// HasMetadata indicates that the error has structured detail metadata
// defined.
type HasMetadata interface {
	// DetailsMetadata returns the metadata for details for this error.
	DetailsMetadata() map[string]string
}

// CombineMetadata combines the metadata found on an existing error with
// that given.
func CombineMetadata(withMetadata HasMetadata, metadata map[string]string) map[string]string {
	clone := maps.Clone(withMetadata.DetailsMetadata())
	maps.Copy(clone, metadata)
	return clone
}
