package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{common.ErrMalformedPayload, http.StatusBadRequest},
		{fmt.Errorf("payload: %w", common.ErrDecryptionFailure), http.StatusBadRequest},
		{common.ErrInvalidCredentials, http.StatusUnauthorized},
		{common.ErrUnauthorized, http.StatusUnauthorized},
		{common.ErrAuthDenied, http.StatusUnauthorized},
		{common.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("get directory: %w", common.ErrorNotFound), http.StatusNotFound},
		{common.ErrAlreadyExists, http.StatusConflict},
		{common.ErrDuplicateAccount, http.StatusConflict},
		{common.ErrCryptoFailure, http.StatusInternalServerError},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestBearerToken(t *testing.T) {
	tok, ok := bearerToken("bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	tok, ok = bearerToken("BEARER  abc ")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	for _, h := range []string{"", "bearer", "bearer ", "token abc"} {
		_, ok := bearerToken(h)
		assert.False(t, ok, h)
	}
}
