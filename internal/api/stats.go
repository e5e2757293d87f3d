package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/leadvaulthq/leadvault/internal/domain"
)

// StatsHandler serves the pipeline statistics endpoint.
type StatsHandler struct {
	svc domain.StatsService
	log *logrus.Logger
}

// NewStatsHandler creates a StatsHandler with the given service and logger.
func NewStatsHandler(svc domain.StatsService, log *logrus.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: log}
}

// GetStats handles GET /api/v1/stats.
func (h *StatsHandler) GetStats(c *gin.Context) {
	actorID := getActorID(c)
	if actorID == uuid.Nil {
		return
	}

	stats, err := h.svc.BuyerStats(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("computing buyer stats")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, stats)
}
