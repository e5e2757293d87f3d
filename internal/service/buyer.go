// Package service provides business logic between API handlers and data stores.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/leadvaulthq/leadvault/internal/domain"
	"github.com/leadvaulthq/leadvault/internal/metrics"
	"github.com/leadvaulthq/leadvault/internal/models"
)

// buyerStore is the data-access interface BuyerService depends on. Defined at
// the consumer (per project convention) so the store package depends on no
// service types.
type buyerStore interface {
	GetBuyer(ctx context.Context, buyerID uuid.UUID) (*models.Buyer, error)
	GetBuyerOwner(ctx context.Context, buyerID uuid.UUID) (uuid.UUID, error)
	CreateBuyer(ctx context.Context, ownerID uuid.UUID, req models.CreateBuyerRequest, diff models.BuyerDiff) (*models.Buyer, error)
	UpdateBuyer(ctx context.Context, buyerID uuid.UUID, expected time.Time, merged models.Buyer, changedBy uuid.UUID, changes map[string]models.FieldChange) (*models.Buyer, error)
	DeleteBuyer(ctx context.Context, buyerID, actorID uuid.UUID) error
	ListBuyers(ctx context.Context, filter models.BuyerFilter, sort models.BuyerSort, page, pageSize int) ([]models.Buyer, int, error)
}

// Compile-time check: *BuyerService must satisfy domain.BuyerService.
var _ domain.BuyerService = (*BuyerService)(nil)

// BuyerService orchestrates buyer mutations: validation, ownership, the
// optimistic-concurrency guard and history recording.
type BuyerService struct {
	store       buyerStore
	auditWorker AuditEnqueuer
	log         *logrus.Logger
}

// NewBuyerService creates a BuyerService.
func NewBuyerService(store buyerStore, auditWorker AuditEnqueuer, log *logrus.Logger) *BuyerService {
	return &BuyerService{store: store, auditWorker: auditWorker, log: log}
}

// ListBuyers returns a filtered, sorted page of buyers plus the total count
// over the filtered set (pass-through).
func (s *BuyerService) ListBuyers(
	ctx context.Context, filter models.BuyerFilter, sort models.BuyerSort, page, pageSize int,
) ([]models.Buyer, int, error) {
	return s.store.ListBuyers(ctx, filter, sort, page, pageSize)
}

// GetBuyer returns a single buyer by ID (pass-through).
func (s *BuyerService) GetBuyer(ctx context.Context, buyerID uuid.UUID) (*models.Buyer, error) {
	return s.store.GetBuyer(ctx, buyerID)
}

// CreateBuyer validates the payload and persists a new buyer owned by
// actorID, with one creation-shaped history entry written in the same
// transaction. Status defaults to "New" when the payload omits it.
func (s *BuyerService) CreateBuyer(
	ctx context.Context, actorID uuid.UUID, req models.CreateBuyerRequest,
) (*models.Buyer, error) {
	if req.Status == "" {
		req.Status = models.StatusNew
	}

	if verr := req.Validate(); verr != nil {
		return nil, verr
	}

	buyer, err := s.store.CreateBuyer(ctx, actorID, req, models.CreatedDiff(createdFields(req)))
	if err != nil {
		return nil, fmt.Errorf("creating buyer: %w", err)
	}

	auditAsync(s.auditWorker, "buyer.create", &buyer.ID, actorID, map[string]any{"fullName": buyer.FullName})

	return buyer, nil
}

// UpdateBuyer applies a partial update under the optimistic-concurrency
// guard. A stale version token fails with ErrVersionConflict and writes
// nothing; a matching token with an empty effective diff stamps a fresh
// token without appending a history entry.
func (s *BuyerService) UpdateBuyer(
	ctx context.Context, actorID, buyerID uuid.UUID, req models.UpdateBuyerRequest,
) (*models.Buyer, error) {
	if verr := req.Validate(); verr != nil {
		return nil, verr
	}

	existing, err := s.store.GetBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	// Fast-path staleness check. The store re-checks atomically with a
	// conditional write, so a racing writer between here and the UPDATE is
	// still caught.
	if !req.ExpectedUpdatedAt.Equal(existing.UpdatedAt) {
		metrics.VersionConflicts.Inc()

		return nil, models.ErrVersionConflict
	}

	// A fieldless payload cannot change anything or break an invariant, so
	// it goes straight to the token-stamping write.
	merged := *existing

	var changes map[string]models.FieldChange

	if !req.Empty() {
		merged = existing.ApplyUpdate(req)
		if verr := merged.ValidateInvariants(); verr != nil {
			return nil, verr
		}

		changes = ComputeDiff(*existing, req)
	}

	updated, err := s.store.UpdateBuyer(ctx, buyerID, req.ExpectedUpdatedAt, merged, actorID, changes)
	if err != nil {
		if errors.Is(err, models.ErrVersionConflict) {
			metrics.VersionConflicts.Inc()
		}

		return nil, err
	}

	if len(changes) > 0 {
		auditAsync(s.auditWorker, "buyer.update", &buyerID, actorID, map[string]any{"changed": fieldNames(changes)})
	}

	return updated, nil
}

// DeleteBuyer removes a buyer. Only the owner may delete; history entries
// are removed with the record.
func (s *BuyerService) DeleteBuyer(ctx context.Context, actorID, buyerID uuid.UUID) error {
	err := s.store.DeleteBuyer(ctx, buyerID, actorID)
	if err == nil {
		auditAsync(s.auditWorker, "buyer.delete", &buyerID, actorID, nil)
	}

	return err
}

// CanEdit reports whether the buyer exists and is owned by actorID.
func (s *BuyerService) CanEdit(ctx context.Context, actorID, buyerID uuid.UUID) (bool, error) {
	ownerID, err := s.store.GetBuyerOwner(ctx, buyerID)
	if err != nil {
		if errors.Is(err, models.ErrBuyerNotFound) {
			return false, nil
		}

		return false, err
	}

	return ownerID == actorID, nil
}

// createdFields builds the initial-values payload of the creation history
// entry. Optional fields appear only when set.
func createdFields(req models.CreateBuyerRequest) map[string]any {
	fields := map[string]any{
		"fullName":     req.FullName,
		"phone":        req.Phone,
		"city":         req.City,
		"propertyType": req.PropertyType,
		"purpose":      req.Purpose,
		"timeline":     req.Timeline,
		"source":       req.Source,
		"status":       req.Status,
	}

	if req.Email != "" {
		fields["email"] = req.Email
	}

	if req.BHK != "" {
		fields["bhk"] = req.BHK
	}

	if req.BudgetMin != nil {
		fields["budgetMin"] = *req.BudgetMin
	}

	if req.BudgetMax != nil {
		fields["budgetMax"] = *req.BudgetMax
	}

	if req.Notes != "" {
		fields["notes"] = req.Notes
	}

	if len(req.Tags) > 0 {
		fields["tags"] = req.Tags
	}

	return fields
}

func fieldNames(changes map[string]models.FieldChange) []string {
	names := make([]string, 0, len(changes))
	for name := range changes {
		names = append(names, name)
	}

	return names
}
