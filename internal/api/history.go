package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/leadvaulthq/leadvault/internal/domain"
)

// HistoryHandler serves buyer change history endpoints.
type HistoryHandler struct {
	svc domain.HistoryService
	log *logrus.Logger
}

// NewHistoryHandler creates a HistoryHandler with the given service and logger.
func NewHistoryHandler(svc domain.HistoryService, log *logrus.Logger) *HistoryHandler {
	return &HistoryHandler{svc: svc, log: log}
}

// GetHistory handles GET /api/v1/buyers/:id/history.
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	buyerID := parsePathUUID(c)
	if buyerID == uuid.Nil {
		return
	}

	actorID := getActorID(c)
	if actorID == uuid.Nil {
		return
	}

	limit := parseInt(c.DefaultQuery("limit", "5"), 5)
	offset := parseOffset(c.DefaultQuery("offset", "0"))

	entries, hasMore, err := h.svc.GetBuyerHistory(c.Request.Context(), buyerID, limit, offset)
	if respondBuyerError(c, h.log, err, "getting buyer history") {
		return
	}

	h.log.WithFields(logrus.Fields{
		"action":   "history.get",
		"actor_id": actorID,
		"buyer_id": buyerID,
		"count":    len(entries),
	}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"entries": entries, "has_more": hasMore})
}
