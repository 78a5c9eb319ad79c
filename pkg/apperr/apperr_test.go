package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/stockroom/pkg/apperr"
)

func TestIsCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("service: %w", apperr.NotFound("Product not found"))

	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	assert.False(t, apperr.IsCode(err, apperr.CodeInternal))
	assert.False(t, apperr.IsCode(errors.New("plain"), apperr.CodeNotFound))
}

func TestFromTreatsUnknownAsInternal(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: products.sku")
	ae := apperr.From(cause)

	assert.Equal(t, apperr.CodeInternal, ae.Code)
	assert.Equal(t, "Internal Server Error", ae.Message)
	assert.ErrorIs(t, ae, cause)
}

func TestHTTPStatus(t *testing.T) {
	cases := map[apperr.Code]int{
		apperr.CodeInvalid:      http.StatusBadRequest,
		apperr.CodeUnauthorized: http.StatusUnauthorized,
		apperr.CodeNotFound:     http.StatusNotFound,
		apperr.CodeValidation:   http.StatusUnprocessableEntity,
		apperr.CodeInternal:     http.StatusInternalServerError,
		apperr.Code("other"):    http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, apperr.HTTPStatus(code), code)
	}
}
