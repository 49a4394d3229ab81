// Package httpapi is the launcher's REST surface, served with gin.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/launcher/internal/logging"
	"github.com/dmitrijs2005/launcher/internal/server/approval"
	"github.com/dmitrijs2005/launcher/internal/server/services"
	"github.com/gin-gonic/gin"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

type Handler struct {
	accounts       *services.AccountService
	auth           *services.AuthService
	nfs            *services.NFSService
	gate           *approval.Gate
	operatorSecret []byte
	logger         logging.Logger
}

func NewHandler(accounts *services.AccountService, auth *services.AuthService, nfs *services.NFSService,
	gate *approval.Gate, operatorSecret string, logger logging.Logger) *Handler {
	return &Handler{
		accounts:       accounts,
		auth:           auth,
		nfs:            nfs,
		gate:           gate,
		operatorSecret: []byte(operatorSecret),
		logger:         logger.With("module", "http"),
	}
}

// Router builds the gin engine with every route registered.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.UseRawPath = true
	r.UnescapePathValues = true
	r.Use(gin.Recovery(), h.requestLogger(), h.limitBody())

	h.RegisterRoutes(r.Group(""))
	return r
}

func (h *Handler) RegisterRoutes(root *gin.RouterGroup) {
	root.POST("/account", h.register)
	root.POST("/account/login", h.login)
	root.DELETE("/account/login", h.logout)

	root.POST("/auth", h.authorize)

	private := root.Group("")
	private.Use(h.bearer())
	private.GET("/auth", h.sessionInfo)
	private.DELETE("/auth", h.revoke)
	private.POST("/nfs/directory", h.createDirectory)
	private.GET("/nfs/directory/:dirPath/:isPathShared", h.getDirectory)
	private.DELETE("/nfs/directory/:dirPath/:isPathShared", h.deleteDirectory)

	admin := root.Group("/admin")
	admin.Use(h.operator())
	admin.GET("/auth/pending", h.listPending)
	admin.POST("/auth/pending/:id", h.decide)
	admin.POST("/auth/approval", h.registerApproval)
	admin.DELETE("/auth/approval", h.removeApprovals)

	root.GET("/healthz", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })
}
