package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/leadvaulthq/leadvault/internal/domain"
	"github.com/leadvaulthq/leadvault/internal/models"
)

// AuditHandler serves audit log endpoints.
type AuditHandler struct {
	svc domain.AuditService
	log *logrus.Logger
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(svc domain.AuditService, log *logrus.Logger) *AuditHandler {
	return &AuditHandler{svc: svc, log: log}
}

// Query handles GET /api/v1/audit.
func (h *AuditHandler) Query(c *gin.Context) {
	actorID := getActorID(c)
	if actorID == uuid.Nil {
		return
	}

	opts := models.AuditQueryOpts{
		Action: c.Query("action"),
		Limit:  parseInt(c.Query("limit"), 50),
		Offset: parseOffset(c.Query("offset")),
	}

	if bid := c.Query("buyer_id"); bid != "" {
		id, err := uuid.Parse(bid)
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "buyer_id must be a valid UUID")
			return
		}
		opts.BuyerID = &id
	}

	if aid := c.Query("actor"); aid != "" {
		id, err := uuid.Parse(aid)
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "actor must be a valid UUID")
			return
		}
		opts.Actor = &id
	}

	if since := c.Query("since"); since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid since format, use RFC3339")
			return
		}
		opts.Since = &t
	}

	entries, hasMore, err := h.svc.QueryAudit(c.Request.Context(), opts)
	if err != nil {
		h.log.WithError(err).Error("failed to query audit log")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "failed to query audit log")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     entries,
		"has_more": hasMore,
	})
}
