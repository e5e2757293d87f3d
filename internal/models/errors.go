package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for entity lookups and mutation guards.
var (
	ErrBuyerNotFound = errors.New("buyer not found")
	ErrActorNotFound = errors.New("actor not found")

	// ErrVersionConflict is the optimistic-concurrency guard: the record was
	// modified by another actor since it was read. Callers must re-read and
	// resubmit; no retry is attempted automatically.
	ErrVersionConflict = errors.New("record modified by another actor since it was read")

	// ErrNotOwner indicates the acting user does not own the record.
	ErrNotOwner = errors.New("only the owner may modify this buyer")
)

// ErrDuplicateKey indicates a unique constraint violation (maps to HTTP 409 Conflict).
var ErrDuplicateKey = errors.New("duplicate key")

// FieldError is a single user-correctable validation failure, addressed by
// the JSON field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the full list of field errors for a rejected
// payload, never just the first.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// RowError is a per-row failure from the bulk import pipeline. Row numbers
// are 1-indexed with the header row excluded.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}
