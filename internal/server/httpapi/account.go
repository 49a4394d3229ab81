package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/gin-gonic/gin"
)

func (h *Handler) register(ctx *gin.Context) {
	req := new(accountRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		h.fail(ctx, common.ErrMalformedPayload)
		return
	}

	acc, err := h.accounts.Register(ctx, string(req.Pin), string(req.Keyword), string(req.Password))
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, accountResponse{AccountID: acc.ID})
}

func (h *Handler) login(ctx *gin.Context) {
	req := new(accountRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		h.fail(ctx, common.ErrInvalidCredentials)
		return
	}

	acc, err := h.accounts.Login(ctx, string(req.Pin), string(req.Keyword), string(req.Password))
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, accountResponse{AccountID: acc.ID})
}

func (h *Handler) logout(ctx *gin.Context) {
	h.accounts.Logout()
	ctx.Status(http.StatusOK)
}
