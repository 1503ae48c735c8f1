package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrNotFound is returned by a Backend when the named resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrLocationUnresolved means the storage location could not be determined.
	ErrLocationUnresolved = errors.New("storage location unresolved")

	errEmptyColor = errors.New("empty colour")
)

// ValidationError reports a required field that is missing or has the wrong type.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid note: " + e.Reason
	}
	return fmt.Sprintf("invalid note field %q: %s", e.Field, e.Reason)
}

func missingField(key string) *ValidationError {
	return &ValidationError{Field: key, Reason: "missing"}
}

func wrongKind(key string, want, got Kind) *ValidationError {
	return &ValidationError{Field: key, Reason: fmt.Sprintf("expected %s, got %s", want, got)}
}

// EnumParseError reports an unrecognised enumeration tag.
type EnumParseError struct {
	Field string
	Value string
}

func (e *EnumParseError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Field, e.Value)
}

// ColorParseError reports colour text that could not be decoded.
// It is recoverable: the decoded colour falls back to black.
type ColorParseError struct {
	Text string
	Err  error
}

func (e *ColorParseError) Error() string {
	return fmt.Sprintf("invalid colour %q: %v", e.Text, e.Err)
}

func (e *ColorParseError) Unwrap() error { return e.Err }

// StorageError reports a failed read or write against a Backend, or a location
// that could not be resolved.
type StorageError struct {
	Op       string // "load" or "save"
	Location string
	Err      error
}

func (e *StorageError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Location, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// DocumentError reports a persisted document whose top level is not a JSON array of values.
type DocumentError struct {
	Err error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("malformed notebook document: %v", e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// ParseWarning is a recoverable problem found while loading element Index of a document.
type ParseWarning struct {
	Index int
	Err   error
}

func (w ParseWarning) Error() string {
	return fmt.Sprintf("element %d: %v", w.Index, w.Err)
}

func (w ParseWarning) Unwrap() error { return w.Err }
