package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error", func(t *testing.T) {
		err := apperror.New(apperror.CodeBusinessRule, "limit exceeded", http.StatusUnprocessableEntity)
		got := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusUnprocessableEntity, got.Status)
		assert.Equal(t, apperror.CodeBusinessRule, got.Code)
		assert.Equal(t, "limit exceeded", got.Message)
	})

	t.Run("wrapped app error", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", apperror.ErrForbidden)
		got := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusForbidden, got.Status)
		assert.Equal(t, apperror.CodeForbidden, got.Code)
	})

	t.Run("plain error", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, "INTERNAL_ERROR", got.Code)
		assert.Equal(t, "Internal server error", got.Message)
	})
}

func TestAppError_Is(t *testing.T) {
	sentinel := apperror.New(apperror.CodeNotFound, "leave not found", http.StatusNotFound)
	wrapped := apperror.Wrap(errors.New("record not found"), apperror.CodeNotFound, "leave not found", http.StatusNotFound)

	assert.True(t, errors.Is(wrapped, sentinel))
	assert.False(t, errors.Is(wrapped, apperror.ErrForbidden))
	assert.Nil(t, apperror.Wrap(nil, apperror.CodeNotFound, "x", http.StatusNotFound))
}

type sample struct {
	StartDate string `json:"start_date" binding:"required" validate:"required"`
	Email     string `json:"email" validate:"email"`
}

func TestMapValidationError(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})

	err := v.Struct(sample{Email: "hr@worksphere.io"})
	mapped := apperror.ToHTTP(apperror.MapValidationError(err))
	assert.Equal(t, http.StatusBadRequest, mapped.Status)
	assert.Equal(t, "Start Date is required", mapped.Message)

	err = v.Struct(sample{StartDate: "2024-03-04", Email: "nope"})
	mapped = apperror.ToHTTP(apperror.MapValidationError(err))
	assert.Equal(t, "Email is invalid", mapped.Message)

	mapped = apperror.ToHTTP(apperror.MapValidationError(errors.New("EOF")))
	assert.Equal(t, "Invalid input", mapped.Message)
}
