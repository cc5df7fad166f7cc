// Package apperrors defines the error taxonomy shared by the services and
// mapped to HTTP statuses by the controllers.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// NotFoundError reports an id lookup miss.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// ConflictError reports a uniqueness violation.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func Conflict(message string) error {
	return &ConflictError{Message: message}
}

// AuthenticationError carries a single undifferentiated message so callers
// cannot tell a missing user from a wrong password.
type AuthenticationError struct{}

func (e *AuthenticationError) Error() string {
	return "invalid username or password"
}

func Authentication() error {
	return &AuthenticationError{}
}

// ConfigurationError reports missing seed data, a deployment defect rather
// than a per-request condition.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

func Configuration(message string) error {
	return &ConfigurationError{Message: message}
}

// InvalidReferenceError reports a relational field pointing at a row that
// does not exist in its target table.
type InvalidReferenceError struct {
	Field string
	ID    uint
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("%s references missing row %d", e.Field, e.ID)
}

func InvalidReference(field string, id uint) error {
	return &InvalidReferenceError{Field: field, ID: id}
}

// StorageError wraps a persistence-layer failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func Storage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// HTTPStatus maps a taxonomy error to the status the API layer responds with.
func HTTPStatus(err error) int {
	var (
		notFound   *NotFoundError
		conflict   *ConflictError
		authn      *AuthenticationError
		config     *ConfigurationError
		invalidRef *InvalidReferenceError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &authn):
		return http.StatusUnauthorized
	case errors.As(err, &invalidRef):
		return http.StatusBadRequest
	case errors.As(err, &config):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
