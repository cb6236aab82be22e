// Package validator accumulates validation failures as ordered,
// human-readable messages and checks request bodies against the
// embedded book JSON schemas.
package validator

import (
	"net/http"
	"slices"
	"strings"
)

// Validator holds the messages of every failed check, in the order they
// were recorded. A Validator with no messages is considered valid.
type Validator struct {
	Errors []string
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{Errors: []string{}}
}

// Valid returns true if no check has failed.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records message. A message that was already recorded is not
// repeated.
func (v *Validator) AddError(message string) {
	if !slices.Contains(v.Errors, message) {
		v.Errors = append(v.Errors, message)
	}
}

// Check adds message only when ok is false.
// Use this as a single-line guard:
//
//	v.Check(port > 0, "port must be positive")
func (v *Validator) Check(ok bool, message string) {
	if !ok {
		v.AddError(message)
	}
}

// Err returns nil when v is valid and a *ValidationError carrying the
// collected messages otherwise.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return &ValidationError{Messages: slices.Clone(v.Errors)}
}

// In returns true if value is present in the list slice.
func In(value string, list ...string) bool {
	return slices.Contains(list, value)
}

// ValidationError is returned when input breaks one or more rules.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 1 {
		return e.Messages[0]
	}
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// Status returns the HTTP status suited to invalid input.
func (e *ValidationError) Status() int { return http.StatusBadRequest }
