package dto

import (
	"net/http"
	"strings"
)

// Codes returned in error.code. Domain errors carry the same names without
// the ERR_ prefix.
const (
	ErrCodeInternal           = "ERR_INTERNAL"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"
	ErrCodeBadRequest         = "ERR_BAD_REQUEST"
	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeInvalidInput       = "ERR_INVALID_INPUT"
	ErrCodeRequestTooLarge    = "ERR_REQUEST_TOO_LARGE"
	ErrCodeNotFound           = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists      = "ERR_ALREADY_EXISTS"
	ErrCodeConflict           = "ERR_CONFLICT"
	ErrCodeDuplicateRequest   = "ERR_DUPLICATE_REQUEST"
	ErrCodeInsufficientStock  = "ERR_INSUFFICIENT_STOCK"
)

const codePrefix = "ERR_"

var codeStatus = map[string]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeInvalidInput:       http.StatusBadRequest,
	ErrCodeRequestTooLarge:    http.StatusRequestEntityTooLarge,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeAlreadyExists:      http.StatusConflict,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeDuplicateRequest:   http.StatusConflict,
	ErrCodeInsufficientStock:  http.StatusUnprocessableEntity,
}

// HTTPStatus is the status an error code is served with; unknown codes are 500.
func HTTPStatus(code string) int {
	if s, ok := codeStatus[PublicCode(code)]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// PublicCode maps a domain error code such as INSUFFICIENT_STOCK to its API
// form ERR_INSUFFICIENT_STOCK. Codes that are already public, or unknown, are
// returned as given.
func PublicCode(code string) string {
	if strings.HasPrefix(code, codePrefix) {
		return code
	}
	if _, ok := codeStatus[codePrefix+code]; ok {
		return codePrefix + code
	}
	return code
}
