package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Uptime      string `json:"uptime"`
	Users       int    `json:"users"`
}

func (h HandlerSet) Health(c *gin.Context) {
	users, err := h.directory.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("directory list failed")
	}

	c.JSON(http.StatusOK, healthResponse{
		Status:      "ok",
		Environment: h.cfg.Environment,
		Uptime:      time.Since(h.started).Round(time.Second).String(),
		Users:       len(users),
	})
}
