// Package errors defines the storefront's error vocabulary. Services return
// AppErrors, or wrap the sentinels, and the HTTP layer turns them into
// status codes and envelope codes.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrConflict        = errors.New("conflict")
	ErrTooManyRequests = errors.New("too many requests")
	ErrServiceUnavail  = errors.New("service unavailable")
	ErrInternal        = errors.New("internal error")
)

// kind ties a sentinel to its wire code and HTTP status.
type kind struct {
	sentinel error
	code     string
	status   int
}

var (
	kindNotFound     = kind{ErrNotFound, "NOT_FOUND", http.StatusNotFound}
	kindInvalidInput = kind{ErrInvalidInput, "INVALID_INPUT", http.StatusBadRequest}
	kindUnauthorized = kind{ErrUnauthorized, "UNAUTHORIZED", http.StatusUnauthorized}
	kindConflict     = kind{ErrConflict, "CONFLICT", http.StatusConflict}
	kindRateLimited  = kind{ErrTooManyRequests, "RATE_LIMITED", http.StatusTooManyRequests}
	kindUnavailable  = kind{ErrServiceUnavail, "SERVICE_UNAVAILABLE", http.StatusServiceUnavailable}
	kindInternal     = kind{ErrInternal, "INTERNAL_ERROR", http.StatusInternalServerError}
)

// statusOrder is consulted by HTTPStatus for plain wrapped sentinels.
var statusOrder = []kind{
	kindNotFound, kindConflict, kindInvalidInput, kindUnauthorized,
	kindRateLimited, kindUnavailable, kindInternal,
}

// AppError is an error with a machine-readable code and an HTTP status.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func newAppError(k kind, message string, cause error) *AppError {
	err := k.sentinel
	if cause != nil {
		err = errors.Join(k.sentinel, cause)
	}
	return &AppError{Code: k.code, Message: message, Status: k.status, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Code + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// NotFound reports a missing product, cart line or other resource.
func NotFound(resource, id string) *AppError {
	return newAppError(kindNotFound, fmt.Sprintf("%s with id %s not found", resource, id), nil)
}

func InvalidInput(message string) *AppError {
	return newAppError(kindInvalidInput, message, nil)
}

func Unauthorized(message string) *AppError {
	return newAppError(kindUnauthorized, message, nil)
}

// Conflict reports a cart that kept changing underneath a write until the
// retry budget ran out.
func Conflict(message string) *AppError {
	return newAppError(kindConflict, message, nil)
}

func TooManyRequests() *AppError {
	return newAppError(kindRateLimited, "too many requests, please slow down", nil)
}

// Unavailable reports a backing store or broker that cannot be reached.
func Unavailable(dependency string, err error) *AppError {
	return newAppError(kindUnavailable, dependency+" is unavailable", err)
}

// Internal hides err from the client behind a generic message.
func Internal(err error) *AppError {
	return newAppError(kindInternal, "an internal error occurred", err)
}

// HTTPStatus maps err to a status code. An AppError anywhere in the chain
// wins; otherwise the first matching sentinel decides, and anything else is
// a 500.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	for _, k := range statusOrder {
		if errors.Is(err, k.sentinel) {
			return k.status
		}
	}
	return http.StatusInternalServerError
}
