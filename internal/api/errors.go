/*-------------------------------------------------------------------------
 *
 * errors.go
 *    API error types for the Gaprio agent service
 *
 * Copyright (c) 2024-2026, Gaprio, Inc. <engineering@gaprio.io>
 *
 * IDENTIFICATION
 *    gaprio-agent/internal/api/errors.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"fmt"
	"net/http"
)

/* APIError carries an HTTP status code alongside the underlying error */
type APIError struct {
	Code      int
	Message   string
	Err       error
	RequestID string
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

/* ErrorResponse is the transport-level error envelope */
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

/* Common errors */
var (
	ErrBadRequest = NewError(http.StatusBadRequest, "bad request", nil)
	ErrNotFound   = NewError(http.StatusNotFound, "resource not found", nil)
	ErrInternal   = NewError(http.StatusInternalServerError, "internal server error", nil)
)

/* NewError creates a new APIError */
func NewError(code int, message string, err error) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

/* WrapError attaches a request ID to an APIError */
func WrapError(apiErr *APIError, requestID string) *APIError {
	return &APIError{
		Code:      apiErr.Code,
		Message:   apiErr.Message,
		Err:       apiErr.Err,
		RequestID: requestID,
	}
}
