// Package service provides application-level services for managing tasks,
// categories, and tags.
package service

import (
	"errors"
	"fmt"
)

// ServiceError wraps unexpected failures from a service operation with
// context. Expected conditions (missing rows, bad references, validation
// failures) are returned as their store or domain sentinels unwrapped so
// callers can check them with errors.Is.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_task").
	Operation string
	// Message is a human-readable description of the error.
	Message string
	// Err is the underlying error that caused the failure.
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// wrapServiceError wraps err unless it is one of the given sentinels, which
// pass through untouched for the API layer to map to status codes.
func wrapServiceError(operation, message string, err error, sentinels ...error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
