package api

import (
	"errors"
	"net/http"

	"tradejournal/pkg/journal"
)

// ErrorResponse represents an error API response with structured information.
type ErrorResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code,omitempty"`
}

// writeErrorResponse writes an error response with proper HTTP status and
// error details. Structured journal errors map their classification code to
// an HTTP status; anything else keeps the provided fallback status.
func writeErrorResponse(w http.ResponseWriter, httpStatus int, err error) {
	response := ErrorResponse{
		Code:    httpStatus,
		Message: err.Error(),
	}

	var jErr *journal.Error
	if errors.As(err, &jErr) {
		httpStatus = mapErrorCodeToHTTPStatus(jErr.Code)
		response.Code = httpStatus
		response.ErrorCode = string(jErr.Code)
	}

	writeJSON(w, httpStatus, response)
}

// mapErrorCodeToHTTPStatus maps business error codes to HTTP status codes.
func mapErrorCodeToHTTPStatus(code journal.ErrorCode) int {
	switch code {
	case journal.ErrCodeInvalidInput, journal.ErrCodeValidation:
		return http.StatusBadRequest
	case journal.ErrCodeNotFound:
		return http.StatusNotFound
	case journal.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case journal.ErrCodeDuplicate:
		return http.StatusConflict
	case journal.ErrCodeDatabase, journal.ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
