package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	CodeAPIError   = "API_ERROR"
	CodeTransport  = "TRANSPORT_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeCache      = "CACHE_ERROR"
	CodeService    = "SERVICE_ERROR"
)

type AppError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// APIError is an upstream failure: a non-2xx status or a non-zero status code
// inside the upstream payload.
type APIError struct {
	*AppError
	UpstreamStatus int
}

func NewAPIError(message string, upstreamStatus int, context map[string]any) *APIError {
	return &APIError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: http.StatusInternalServerError,
			Context:    context,
		},
		UpstreamStatus: upstreamStatus,
	}
}

// TransportError is a network or timeout failure while contacting upstream.
type TransportError struct {
	*AppError
	Timeout bool
}

func NewTransportError(message string, timeout bool, cause error) *TransportError {
	return &TransportError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeTransport,
			StatusCode: http.StatusInternalServerError,
			Cause:      cause,
		},
		Timeout: timeout,
	}
}

type ValidationError struct {
	*AppError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: http.StatusBadRequest,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type CacheError struct {
	*AppError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: http.StatusInternalServerError,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

type ServiceError struct {
	*AppError
	Service   string
	Operation string
}

func NewServiceError(message, service, operation string, cause error) *ServiceError {
	return &ServiceError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeService,
			StatusCode: http.StatusInternalServerError,
			Context: map[string]any{
				"service":   service,
				"operation": operation,
			},
			Cause: cause,
		},
		Service:   service,
		Operation: operation,
	}
}

// WithStatus overrides the HTTP status reported for the error.
func (e *ServiceError) WithStatus(statusCode int) *ServiceError {
	e.StatusCode = statusCode
	return e
}

// HTTPStatus returns the status code an error should be reported with at the
// HTTP boundary. Unknown errors map to 500.
func HTTPStatus(err error) int {
	var validationErr *ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.StatusCode
	}
	var serviceErr *ServiceError
	if stderrors.As(err, &serviceErr) {
		return serviceErr.StatusCode
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the message surfaced to API callers. Typed errors expose
// their own message without the wrapped cause.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var validationErr *ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.Message
	}
	var serviceErr *ServiceError
	if stderrors.As(err, &serviceErr) {
		return serviceErr.Message
	}
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Message
	}
	var transportErr *TransportError
	if stderrors.As(err, &transportErr) {
		return transportErr.Message
	}
	return err.Error()
}
