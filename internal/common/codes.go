package common

import "errors"

// LauncherErrorStartRange is the first numeric error code reserved for the
// launcher. Codes grow downwards from here; ErrorCode(unknown) yields
// LauncherErrorStartRange - 1.
const LauncherErrorStartRange = -601

var errorCodes = []struct {
	err  error
	code int
}{
	{ErrInvalidCredentials, LauncherErrorStartRange - 2},
	{ErrDuplicateAccount, LauncherErrorStartRange - 3},
	{ErrNotLoggedIn, LauncherErrorStartRange - 4},
	{ErrUnauthorized, LauncherErrorStartRange - 5},
	{ErrForbidden, LauncherErrorStartRange - 6},
	{ErrDecryptionFailure, LauncherErrorStartRange - 7},
	{ErrMalformedPayload, LauncherErrorStartRange - 8},
	{ErrCryptoFailure, LauncherErrorStartRange - 9},
	{ErrAuthDenied, LauncherErrorStartRange - 10},
	{ErrorNotFound, LauncherErrorStartRange - 11},
	{ErrAlreadyExists, LauncherErrorStartRange - 12},
	{ErrStorageFailure, LauncherErrorStartRange - 13},
}

// ErrorCode returns the numeric launcher code for err, matching wrapped
// sentinels with errors.Is.
func ErrorCode(err error) int {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return LauncherErrorStartRange - 1
}

// PublicError returns the sentinel err wraps, so callers can expose its text
// without leaking wrapped details. Unknown errors collapse to ErrorInternal.
func PublicError(err error) error {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.err
		}
	}
	return ErrorInternal
}
