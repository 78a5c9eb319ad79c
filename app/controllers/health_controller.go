package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/stockroom/pkg/ctx"
)

// Pinger is satisfied by *database.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db Pinger
}

func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Show reports 200 while the database answers a ping, 503 otherwise.
func (h *HealthController) Show(c *ctx.Context) {
	pingCtx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(pingCtx); err != nil {
		c.Logger().Warn("health: database ping failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	c.OK(map[string]string{"status": "ok"})
}
