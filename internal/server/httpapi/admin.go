package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/gin-gonic/gin"
)

func (h *Handler) listPending(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"mode":    h.gate.Mode(),
		"pending": h.gate.Pending(),
	})
}

func bindDecision(ctx *gin.Context) (bool, bool) {
	req := new(decisionRequest)
	if err := ctx.ShouldBindJSON(req); err != nil || req.Allow == nil {
		return false, false
	}
	return *req.Allow, true
}

func (h *Handler) decide(ctx *gin.Context) {
	allow, ok := bindDecision(ctx)
	if !ok {
		h.fail(ctx, common.ErrMalformedPayload)
		return
	}

	id := ctx.Param("id")
	if err := h.gate.Decide(id, allow); err != nil {
		h.fail(ctx, err)
		return
	}
	h.logger.Info(ctx, "request decided", "operator", ctx.GetString(ctxOperatorKey), "request_id", id, "allow", allow)
	ctx.Status(http.StatusOK)
}

func (h *Handler) registerApproval(ctx *gin.Context) {
	allow, ok := bindDecision(ctx)
	if !ok {
		h.fail(ctx, common.ErrMalformedPayload)
		return
	}

	h.gate.RegisterApproval(allow)
	h.logger.Info(ctx, "standing decision registered", "operator", ctx.GetString(ctxOperatorKey), "allow", allow)
	ctx.Status(http.StatusOK)
}

func (h *Handler) removeApprovals(ctx *gin.Context) {
	h.gate.RemoveAllListeners()
	h.logger.Info(ctx, "approval listeners removed", "operator", ctx.GetString(ctxOperatorKey))
	ctx.Status(http.StatusOK)
}

