package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/dmitrijs2005/launcher/internal/cryptox"
	"github.com/dmitrijs2005/launcher/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) authorize(ctx *gin.Context) {
	req := new(authRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		h.fail(ctx, common.ErrMalformedPayload)
		return
	}

	pub, err := cryptox.DecodeKey(req.PublicKey)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	nonce, err := cryptox.DecodeNonce(req.Nonce)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	res, err := h.auth.Authorize(ctx.Request.Context(), &models.AppAuthRequest{
		App:         req.App,
		Permissions: req.Permissions,
		PublicKey:   pub,
		Nonce:       nonce,
	})
	if err != nil {
		h.fail(ctx, err)
		return
	}

	perms := res.Permissions
	if perms == nil {
		perms = []string{}
	}
	ctx.JSON(http.StatusOK, authResponse{
		Token:        res.Token,
		EncryptedKey: res.EncryptedKey,
		PublicKey:    res.PublicKey,
		Permissions:  perms,
	})
}

func (h *Handler) sessionInfo(ctx *gin.Context) {
	s := session(ctx)
	perms := s.Permissions
	if perms == nil {
		perms = []string{}
	}
	ctx.JSON(http.StatusOK, sessionResponse{App: s.App, Permissions: perms})
}

func (h *Handler) revoke(ctx *gin.Context) {
	if err := h.auth.Revoke(ctx, session(ctx).Token); err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}
