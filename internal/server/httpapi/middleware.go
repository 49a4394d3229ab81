package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/dmitrijs2005/launcher/internal/server/auth"
	"github.com/dmitrijs2005/launcher/internal/server/models"
	"github.com/gin-gonic/gin"
)

const (
	ctxSessionKey  = "session"
	ctxOperatorKey = "operator"
)

// bearerToken extracts the token from "bearer <token>"; the scheme is case
// insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// bearer resolves the app session and stores it in the gin context.
func (h *Handler) bearer() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := bearerToken(ctx.GetHeader(common.AuthorizationHeaderName))
		if !ok {
			h.fail(ctx, common.ErrUnauthorized)
			return
		}

		s, err := h.auth.Session(ctx, token)
		if err != nil {
			h.fail(ctx, err)
			return
		}
		ctx.Set(ctxSessionKey, s)
		ctx.Next()
	}
}

func session(ctx *gin.Context) *models.Session {
	return ctx.MustGet(ctxSessionKey).(*models.Session)
}

// operator admits requests carrying a valid operator JWT.
func (h *Handler) operator() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := bearerToken(ctx.GetHeader(common.AuthorizationHeaderName))
		if !ok {
			h.fail(ctx, common.ErrUnauthorized)
			return
		}

		name, err := auth.ParseOperatorToken(token, h.operatorSecret)
		if err != nil {
			h.fail(ctx, err)
			return
		}
		ctx.Set(ctxOperatorKey, name)
		ctx.Next()
	}
}

func (h *Handler) limitBody() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxBodyBytes)
		ctx.Next()
	}
}

// requestLogger logs one line per request. Headers are never logged since
// they carry tokens.
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		h.logger.Info(ctx, "request",
			"method", ctx.Request.Method,
			"route", ctx.FullPath(),
			"status", ctx.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
