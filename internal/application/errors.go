package application

import (
	"errors"
	"fmt"

	"compass/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = domain.ErrNotFound
	ErrInvalidOperation = errors.New("invalid operation")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LaunchError reports an IDE that could not be started
type LaunchError struct {
	IDE    string
	Paths  []string
	Reason error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("cannot launch %s with %d project(s): %v", e.IDE, len(e.Paths), e.Reason)
}

func (e *LaunchError) Unwrap() error {
	return e.Reason
}
