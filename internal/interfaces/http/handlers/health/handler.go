package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keshevplus/leadhub/internal/shared/logger"
)

const pingTimeout = 2 * time.Second

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	db      Pinger
	version string
	logger  logger.Interface
}

func NewHandler(db Pinger, version string, logger logger.Interface) *Handler {
	return &Handler{db: db, version: version, logger: logger}
}

type Response struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version,omitempty"`
}

// Check handles GET /health
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Failure 503 {object} Response
// @Router /health [get]
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Errorw("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, Response{Status: "unavailable", Database: "unreachable", Version: h.version})
		return
	}

	c.JSON(http.StatusOK, Response{Status: "ok", Database: "ok", Version: h.version})
}
