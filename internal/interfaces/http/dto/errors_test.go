package dto

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := map[string]int{
		ErrCodeInternal:           http.StatusInternalServerError,
		ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
		ErrCodeValidation:         http.StatusBadRequest,
		ErrCodeBadRequest:         http.StatusBadRequest,
		ErrCodeRequestTooLarge:    http.StatusRequestEntityTooLarge,
		ErrCodeNotFound:           http.StatusNotFound,
		ErrCodeDuplicateRequest:   http.StatusConflict,
		ErrCodeInsufficientStock:  http.StatusUnprocessableEntity,
		"INSUFFICIENT_STOCK":      http.StatusUnprocessableEntity,
		"ALREADY_EXISTS":          http.StatusConflict,
		"ERR_SOMETHING_NEW":       http.StatusInternalServerError,
		"":                        http.StatusInternalServerError,
	}
	for code, want := range tests {
		assert.Equal(t, want, HTTPStatus(code), "code %q", code)
	}
}

func TestPublicCode(t *testing.T) {
	tests := []struct{ in, want string }{
		{"NOT_FOUND", ErrCodeNotFound},
		{"INVALID_INPUT", ErrCodeInvalidInput},
		{"CONFLICT", ErrCodeConflict},
		{"INSUFFICIENT_STOCK", ErrCodeInsufficientStock},
		{ErrCodeDuplicateRequest, ErrCodeDuplicateRequest},
		{"BATCH_LOCKED", "BATCH_LOCKED"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PublicCode(tt.in), tt.in)
	}

	for code := range codeStatus {
		assert.True(t, strings.HasPrefix(code, codePrefix), code)
	}
}
