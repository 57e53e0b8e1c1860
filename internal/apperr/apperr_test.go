package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	require.NoError(t, Classify(nil))

	require.ErrorIs(t, Classify(gorm.ErrRecordNotFound), ErrNotFound)
	require.ErrorIs(t, Classify(gorm.ErrDuplicatedKey), ErrConflict)
	require.ErrorIs(t, Classify(gorm.ErrForeignKeyViolated), ErrValidation)

	unknown := errors.New("connection reset")
	require.Equal(t, unknown, Classify(unknown))
}

func TestStatus(t *testing.T) {
	status, code, _ := Status(Validation("quantity must be a positive integer"))
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "VALIDATION_ERROR", code)

	status, code, _ = Status(NotFound("order"))
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "NOT_FOUND", code)

	status, code, _ = Status(ErrUnauthorized)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "UNAUTHORIZED", code)

	status, code, _ = Status(Classify(gorm.ErrDuplicatedKey))
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "DUPLICATE_ENTRY", code)

	status, code, msg := Status(errors.New("pq: password authentication failed"))
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, "INTERNAL_ERROR", code)
	// Raw datastore errors never reach the client.
	require.Equal(t, "internal server error", msg)
}
