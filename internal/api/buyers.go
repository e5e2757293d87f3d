package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/leadvaulthq/leadvault/internal/domain"
	"github.com/leadvaulthq/leadvault/internal/models"
)

// BuyerHandler serves buyer lead CRUD endpoints.
type BuyerHandler struct {
	svc domain.BuyerService
	log *logrus.Logger
}

// NewBuyerHandler creates a BuyerHandler with the given service and logger.
func NewBuyerHandler(svc domain.BuyerService, log *logrus.Logger) *BuyerHandler {
	return &BuyerHandler{svc: svc, log: log}
}

// List handles GET /api/v1/buyers.
func (h *BuyerHandler) List(c *gin.Context) {
	actorID := getActorID(c)
	if actorID == uuid.Nil {
		return
	}

	filter := parseBuyerFilter(c)
	sort := parseSort(c)
	page := parsePage(c.Query("page"))
	pageSize := parseInt(c.DefaultQuery("pageSize", "10"), 10)

	buyers, total, err := h.svc.ListBuyers(c.Request.Context(), filter, sort, page, pageSize)
	if respondBuyerError(c, h.log, err, "listing buyers") {
		return
	}

	h.log.WithFields(logrus.Fields{
		"action": "buyer.list", "actor_id": actorID, "page": page, "count": len(buyers),
	}).Info("audit")

	c.JSON(http.StatusOK, gin.H{
		"buyers":    buyers,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Get handles GET /api/v1/buyers/:id.
func (h *BuyerHandler) Get(c *gin.Context) {
	buyerID := parsePathUUID(c)
	if buyerID == uuid.Nil {
		return
	}

	actorID := getActorID(c)
	if actorID == uuid.Nil {
		return
	}

	buyer, err := h.svc.GetBuyer(c.Request.Context(), buyerID)
	if respondBuyerError(c, h.log, err, "getting buyer") {
		return
	}

	h.log.WithFields(logrus.Fields{"action": "buyer.get", "actor_id": actorID, "buyer_id": buyerID}).Info("audit")

	c.JSON(http.StatusOK, buyer)
}

// Create handles POST /api/v1/buyers.
func (h *BuyerHandler) Create(c *gin.Context) {
	var req models.CreateBuyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	actorID := getActorID(c)
	if actorID == uuid.Nil {
		return
	}

	buyer, err := h.svc.CreateBuyer(c.Request.Context(), actorID, req)
	if respondBuyerError(c, h.log, err, "creating buyer") {
		return
	}

	h.log.WithFields(logrus.Fields{"action": "buyer.create", "actor_id": actorID, "buyer_id": buyer.ID}).Info("audit")

	c.JSON(http.StatusCreated, buyer)
}

// Update handles PUT /api/v1/buyers/:id. The request carries the version
// token the client last read; a stale token yields 409.
func (h *BuyerHandler) Update(c *gin.Context) {
	buyerID := parsePathUUID(c)
	if buyerID == uuid.Nil {
		return
	}

	var req models.UpdateBuyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	actorID := getActorID(c)
	if actorID == uuid.Nil {
		return
	}

	buyer, err := h.svc.UpdateBuyer(c.Request.Context(), actorID, buyerID, req)
	if respondBuyerError(c, h.log, err, "updating buyer") {
		return
	}

	h.log.WithFields(logrus.Fields{"action": "buyer.update", "actor_id": actorID, "buyer_id": buyerID}).Info("audit")

	c.JSON(http.StatusOK, buyer)
}

// Delete handles DELETE /api/v1/buyers/:id. Only the owner may delete.
func (h *BuyerHandler) Delete(c *gin.Context) {
	buyerID := parsePathUUID(c)
	if buyerID == uuid.Nil {
		return
	}

	actorID := getActorID(c)
	if actorID == uuid.Nil {
		return
	}

	err := h.svc.DeleteBuyer(c.Request.Context(), actorID, buyerID)
	if respondBuyerError(c, h.log, err, "deleting buyer") {
		return
	}

	h.log.WithFields(logrus.Fields{"action": "buyer.delete", "actor_id": actorID, "buyer_id": buyerID}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// CanEdit handles GET /api/v1/buyers/:id/can-edit.
func (h *BuyerHandler) CanEdit(c *gin.Context) {
	buyerID := parsePathUUID(c)
	if buyerID == uuid.Nil {
		return
	}

	actorID := getActorID(c)
	if actorID == uuid.Nil {
		return
	}

	canEdit, err := h.svc.CanEdit(c.Request.Context(), actorID, buyerID)
	if respondBuyerError(c, h.log, err, "checking edit permission") {
		return
	}

	c.JSON(http.StatusOK, gin.H{"can_edit": canEdit})
}
