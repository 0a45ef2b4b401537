package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	. "blogapp/internal/adapter/http/helper"
)

// PingFunc is sql.DB.PingContext or pgxpool.Pool.Ping.
type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	ping PingFunc
}

func NewHealthHandler(ping PingFunc) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		SendError(c, http.StatusServiceUnavailable, "UNAVAILABLE", "Database unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
