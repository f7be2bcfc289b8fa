// Package common defines the sentinel errors shared across service and
// transport layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors. ErrorInternal is the catch-all for anything
	// unexpected; its cause is logged server-side and never reaches a client.
	ErrorInternal           = errors.New("internal error")
	ErrorUnauthorized       = errors.New("unauthorized")
	ErrorForbidden          = errors.New("forbidden")
	ErrorInvalidCredentials = errors.New("invalid email or password")

	// Auth errors. Expired, tampered and malformed tokens all collapse into
	// this single value so callers cannot tell them apart.
	ErrInvalidToken = errors.New("invalid token")
)
