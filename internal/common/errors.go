// Package common defines shared sentinel errors used across the storage,
// service, and HTTP layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorValidation   = errors.New("validation error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("access denied")

	// Auth errors (missing, invalid, or expired token).
	ErrInvalidToken = errors.New("invalid token")

	// Backend errors. Downstream failures wrap these and propagate
	// unmodified; there is no retry at this layer.
	ErrorBlobBackend  = errors.New("blob backend error")
	ErrorStoreBackend = errors.New("store backend error")
)
