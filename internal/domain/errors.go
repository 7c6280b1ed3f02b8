package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds reported by the listing core. Callers branch on them with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrReference  = errors.New("referenced record does not exist")
	ErrStorage    = errors.New("storage error")

	// ErrStorageUnavailable also matches ErrStorage.
	ErrStorageUnavailable = fmt.Errorf("%w: storage unavailable", ErrStorage)

	// ErrOutcomeUnknown marks a write whose caller gave up before the database answered.
	// The row may or may not have been committed.
	ErrOutcomeUnknown = errors.New("write outcome unknown")
)

// ValidationError lists every problem found in a caller-supplied record.
type ValidationError struct {
	Problems []string
}

func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return ErrValidation.Error()
	}
	return strings.Join(e.Problems, "; ")
}

// Is reports ValidationError as ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
