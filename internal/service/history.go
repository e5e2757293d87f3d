package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/leadvaulthq/leadvault/internal/domain"
	"github.com/leadvaulthq/leadvault/internal/models"
)

// HistoryStore is the data-access interface HistoryService depends on.
// It reuses domain.HistoryService since the method sets are identical.
type HistoryStore = domain.HistoryService

// Compile-time check: *HistoryService must satisfy domain.HistoryService.
var _ domain.HistoryService = (*HistoryService)(nil)

// HistoryService wraps HistoryStore with context-aware logging.
type HistoryService struct {
	store HistoryStore
	log   *logrus.Logger
}

// NewHistoryService creates a HistoryService.
func NewHistoryService(store HistoryStore, log *logrus.Logger) *HistoryService {
	return &HistoryService{store: store, log: log}
}

// GetBuyerHistory returns a buyer's change history, newest first.
func (s *HistoryService) GetBuyerHistory(
	ctx context.Context, buyerID uuid.UUID, limit, offset int,
) ([]models.HistoryEntry, bool, error) {
	s.log.WithFields(logrus.Fields{
		"buyer_id": buyerID,
		"limit":    limit,
		"offset":   offset,
	}).Debug("history.get_buyer_history")

	return s.store.GetBuyerHistory(ctx, buyerID, limit, offset)
}
