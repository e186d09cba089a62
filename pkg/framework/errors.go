package framework

import (
	"errors"
	"strings"
)

// AggregatedError collects the errors of Runnables stopped together.
type AggregatedError struct {
	Errors []error
}

// Error implements error.
func (e *AggregatedError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := make([]string, 0, len(e.Errors)+1)
	msg = append(msg, "multiple errors:")
	for _, err := range e.Errors {
		msg = append(msg, "  "+err.Error())
	}
	return strings.Join(msg, "\n")
}

// Is reports whether any collected error matches target.
func (e *AggregatedError) Is(target error) bool {
	for _, err := range e.Errors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Add adds errors. nil and context cancellation are skipped.
func (e *AggregatedError) Add(errs ...error) *AggregatedError {
	for _, err := range errs {
		if err != nil && !isCanceled(err) {
			e.Errors = append(e.Errors, err)
		}
	}
	return e
}

// Aggregate returns nil if no error was collected.
func (e *AggregatedError) Aggregate() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}
