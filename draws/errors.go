// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draws

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Eligibility reasons, in the order the evaluator checks them.
var (
	ErrDrawNotActive   = errors.New("draw is not accepting participants")
	ErrDrawDateElapsed = errors.New("draw date has already passed")
	ErrCapacityReached = errors.New("draw has reached its participant limit")
	ErrAlreadyJoined   = errors.New("user has already joined this draw")
)

// Lifecycle and storage failures.
var (
	ErrNotFound            = errors.New("record not found")
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrConflict            = errors.New("lost a race with a concurrent update")
	ErrAlreadyFinalized    = errors.New("winners have already been drawn for this draw")
	ErrGenerationExhausted = errors.New("could not generate a unique reference number")
)

// ValidationError reports a request field that failed validation.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Msg)
}

func validationErr(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// isUniqueViolation reports whether err is a unique-constraint failure
// involving the named column. Handles lib/pq error codes and the sqlite
// driver's message format.
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && strings.Contains(pqErr.Constraint, column)
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, column)
}
