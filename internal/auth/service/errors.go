package service

import (
	"errors"
	"net/http"
)

// Client-taxonomy errors. Every operation either succeeds, fails with one of
// these, or fails with a server-side error that must never reach the caller
// verbatim.
var (
	ErrInvalidRequest     = errors.New("auth: missing required fields")
	ErrAlreadyRegistered  = errors.New("auth: user already registered")
	ErrAccountNotFound    = errors.New("auth: user not found")
	ErrCredentialMismatch = errors.New("auth: email/password do not match")
	ErrInvalidResetToken  = errors.New("auth: invalid reset token")
	ErrInvalidRefresh     = errors.New("auth: invalid refresh token")
	ErrTooManyAttempts    = errors.New("auth: too many attempts")
)

// StatusCode maps a service error to the response status the surrounding web
// layer should send. Anything unrecognized is a server-side failure.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrCredentialMismatch),
		errors.Is(err, ErrInvalidResetToken):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidRefresh):
		return http.StatusUnauthorized
	case errors.Is(err, ErrTooManyAttempts):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the human-readable message for a service error. Server-side
// failures get a generic message; internals are for the log, not the caller.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyRegistered):
		return "user already registered"
	case errors.Is(err, ErrInvalidRequest):
		return "missing required fields"
	case errors.Is(err, ErrAccountNotFound):
		return "user not found"
	case errors.Is(err, ErrCredentialMismatch):
		return "email/password do not match"
	case errors.Is(err, ErrInvalidResetToken):
		return "invalid token"
	case errors.Is(err, ErrInvalidRefresh):
		return "unauthorized"
	case errors.Is(err, ErrTooManyAttempts):
		return "too many attempts, try again later"
	default:
		return "service unavailable"
	}
}
