package domain

import (
	"fmt"
	"strings"
)

// ValidationError carries one or more field-rule violations. Booking creation
// collects every violated rule before rejecting, so Messages is ordered the way
// the rules were checked.
type ValidationError struct {
	Messages []string
}

// NewValidationError creates a ValidationError with a single message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Messages: []string{msg}}
}

// NewValidationErrors creates a ValidationError from an aggregated message list.
func NewValidationErrors(msgs []string) *ValidationError {
	return &ValidationError{Messages: msgs}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// NotFoundError indicates the addressed resource does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

// NewNotFoundError creates a NotFoundError for the given resource and identifier.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// InvalidStateError indicates a status transition that the workflow does not allow.
type InvalidStateError struct {
	From string
	To   string
}

// NewInvalidStateError creates an InvalidStateError for the attempted transition.
func NewInvalidStateError(from, to string) *InvalidStateError {
	return &InvalidStateError{From: from, To: to}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// ConflictError indicates a write that clashed with concurrent state.
type ConflictError struct {
	Message string
}

// NewConflictError creates a ConflictError with the given message.
func NewConflictError(msg string) *ConflictError {
	return &ConflictError{Message: msg}
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ForbiddenError indicates the caller is not allowed to perform the operation.
type ForbiddenError struct {
	Message string
}

// NewForbiddenError creates a ForbiddenError with the given message.
func NewForbiddenError(msg string) *ForbiddenError {
	return &ForbiddenError{Message: msg}
}

func (e *ForbiddenError) Error() string {
	return e.Message
}
