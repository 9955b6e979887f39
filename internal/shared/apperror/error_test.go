package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"out-of-office/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps its status and code", func(t *testing.T) {
		notFound := apperror.New(apperror.CodeNotFound, "leave request not found", http.StatusNotFound)

		got := apperror.ToHTTP(fmt.Errorf("load: %w", notFound))

		assert.Equal(t, http.StatusNotFound, got.Status)
		assert.Equal(t, apperror.CodeNotFound, got.Code)
		assert.Equal(t, "leave request not found", got.Message)
	})

	t.Run("unknown error is hidden", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
		assert.Equal(t, "Internal server error", got.Message)
	})

	t.Run("validation error carries field details", func(t *testing.T) {
		fields := []apperror.FieldError{{Field: "start_date", Message: "Start Date must be earlier than End Date"}}

		err := apperror.Validation(fields)
		got := apperror.ToHTTP(err)

		assert.True(t, errors.Is(err, apperror.ErrValidation))
		assert.Equal(t, http.StatusBadRequest, got.Status)
		assert.Equal(t, apperror.CodeValidation, got.Code)
		assert.Equal(t, "Invalid input", got.Message)
		assert.Equal(t, fields, got.Details)
		assert.Equal(t, "Invalid input", err.Error())
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "", apperror.CodeOf(nil))
	assert.Equal(t, apperror.CodeConflict, apperror.CodeOf(apperror.ErrConflict))
	assert.Equal(t, apperror.CodeInternalError, apperror.CodeOf(errors.New("boom")))
}

func TestFormatFieldName(t *testing.T) {
	assert.Equal(t, "People Partner Id", apperror.FormatFieldName("people_partner_id"))
}
