package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/gin-gonic/gin"
)

// errorResponse is the body of every failed call. Description is the
// sentinel text only.
type errorResponse struct {
	ErrorCode   int    `json:"errorCode"`
	Description string `json:"description"`
}

var statusTable = []struct {
	err    error
	status int
}{
	{common.ErrMalformedPayload, http.StatusBadRequest},
	{common.ErrDecryptionFailure, http.StatusBadRequest},
	{common.ErrInvalidCredentials, http.StatusUnauthorized},
	{common.ErrNotLoggedIn, http.StatusUnauthorized},
	{common.ErrUnauthorized, http.StatusUnauthorized},
	{common.ErrAuthDenied, http.StatusUnauthorized},
	{common.ErrForbidden, http.StatusForbidden},
	{common.ErrorNotFound, http.StatusNotFound},
	{common.ErrDuplicateAccount, http.StatusConflict},
	{common.ErrAlreadyExists, http.StatusConflict},
	{common.ErrCryptoFailure, http.StatusInternalServerError},
}

func statusFor(err error) int {
	for _, s := range statusTable {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// fail aborts the request with the status and body err maps to.
func (h *Handler) fail(ctx *gin.Context, err error) {
	if errors.Is(err, context.Canceled) && ctx.Request.Context().Err() != nil {
		h.logger.Debug(ctx, "client went away", "path", ctx.FullPath())
		ctx.Abort()
		return
	}

	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(ctx, "request failed", "path", ctx.FullPath(), "error", err)
	}

	ctx.AbortWithStatusJSON(status, errorResponse{
		ErrorCode:   common.ErrorCode(err),
		Description: common.PublicError(err).Error(),
	})
}
