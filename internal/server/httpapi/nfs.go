package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/gin-gonic/gin"
)

// sharedFlag parses the :isPathShared segment.
func sharedFlag(ctx *gin.Context) (bool, error) {
	switch ctx.Param("isPathShared") {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, common.ErrMalformedPayload
}

func (h *Handler) createDirectory(ctx *gin.Context) {
	body, err := ctx.GetRawData()
	if err != nil {
		h.fail(ctx, common.ErrMalformedPayload)
		return
	}

	if err := h.nfs.CreateDirectory(ctx, session(ctx), body); err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}

func (h *Handler) getDirectory(ctx *gin.Context) {
	shared, err := sharedFlag(ctx)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	enc, err := h.nfs.GetDirectory(ctx, session(ctx), ctx.Param("dirPath"), shared)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(enc))
}

func (h *Handler) deleteDirectory(ctx *gin.Context) {
	shared, err := sharedFlag(ctx)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	if err := h.nfs.DeleteDirectory(ctx, session(ctx), ctx.Param("dirPath"), shared); err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}
