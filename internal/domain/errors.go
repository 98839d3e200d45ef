package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy returned across the service boundary. Callers distinguish
// cases with errors.Is; none of these are retried internally.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrNotAvailable     = errors.New("equipment not available")
	ErrConflict         = errors.New("conflicting reservation")
)

// ErrInvalidTransition is the base error for illegal state machine edges.
// Use NewInvalidTransition to attach the attempted pair.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError names the attempted from/to pair.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

func NewInvalidTransition(from, to OrderStatus) error {
	return &InvalidTransitionError{From: from, To: to}
}

// ConflictError carries the id of the blocking order that caused a
// date-range conflict.
type ConflictError struct {
	ConflictingOrderID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting reservation %s", e.ConflictingOrderID)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
