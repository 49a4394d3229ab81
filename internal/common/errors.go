// Package common defines shared constants and sentinel errors used across
// the launcher server. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound     = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrTokenExists    = errors.New("token already issued")
	ErrorInternal     = errors.New("internal error")
	ErrStorageFailure = errors.New("storage failure")

	// Credential errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrNotLoggedIn        = errors.New("no active account")

	// Token and session errors (bad, missing, revoked or expired token).
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Payload errors.
	ErrDecryptionFailure = errors.New("decryption failure")
	ErrMalformedPayload  = errors.New("malformed payload")

	// Key exchange errors. Fatal to the request, not the process.
	ErrCryptoFailure = errors.New("crypto failure")

	// Approval gate rejected the app.
	ErrAuthDenied = errors.New("authorization denied")
)
