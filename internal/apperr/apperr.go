// Package apperr defines the error taxonomy shared by all services and the
// mapping from datastore failures into it. Handlers never leak raw datastore
// errors to clients; they log the full error and respond with the sanitized
// message and stable code produced here.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrValidation   = errors.New("validation")   // 400
	ErrNotFound     = errors.New("not found")    // 404
	ErrUnauthorized = errors.New("unauthorized") // 401
	ErrForbidden    = errors.New("forbidden")    // 403
	ErrConflict     = errors.New("conflict")     // 409
)

func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func NotFound(resource string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, resource)
}

// Classify maps known datastore errors into the taxonomy. Unknown errors are
// returned unchanged and surface as a generic 500.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: record", ErrNotFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: duplicate record", ErrConflict)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: invalid reference", ErrValidation)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return fmt.Errorf("%w: duplicate record", ErrConflict)
		case "23503":
			return fmt.Errorf("%w: invalid reference", ErrValidation)
		}
	}

	return err
}

// Status returns the HTTP status, stable error code and the client-safe
// message for an error. Anything outside the taxonomy is a 500 with a
// generic message.
func Status(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR", clientMessage(err)
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", clientMessage(err)
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, "DUPLICATE_ENTRY", clientMessage(err)
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
	}
}

// clientMessage is safe for taxonomy errors: their messages are written by
// our own services, never copied from the datastore.
func clientMessage(err error) string {
	return err.Error()
}
