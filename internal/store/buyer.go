package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/leadvaulthq/leadvault/internal/models"
)

// BuyerStore handles buyer CRUD operations.
type BuyerStore struct {
	Base
}

// NewBuyerStore creates a new BuyerStore.
func NewBuyerStore(base Base) *BuyerStore {
	return &BuyerStore{Base: base}
}

// GetBuyer returns a single buyer by ID.
func (s *BuyerStore) GetBuyer(ctx context.Context, buyerID uuid.UUID) (*models.Buyer, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, `SELECT `+buyerColumns+` FROM buyers WHERE id = $1`, buyerID)

	b, err := scanBuyer(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrBuyerNotFound
		}

		return nil, fmt.Errorf("scanning buyer: %w", err)
	}

	return b, nil
}

// GetBuyerOwner returns the owner of a buyer record.
func (s *BuyerStore) GetBuyerOwner(ctx context.Context, buyerID uuid.UUID) (uuid.UUID, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var ownerID uuid.UUID

	err := s.Pool.QueryRow(ctx, `SELECT owner_id FROM buyers WHERE id = $1`, buyerID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, models.ErrBuyerNotFound
		}

		return uuid.Nil, fmt.Errorf("looking up buyer owner: %w", err)
	}

	return ownerID, nil
}

// CreateBuyer inserts a new buyer owned by ownerID and, in the same
// transaction, the creation-shaped history entry. The record ID and
// timestamps are store-assigned.
func (s *BuyerStore) CreateBuyer(
	ctx context.Context,
	ownerID uuid.UUID,
	req models.CreateBuyerRequest,
	diff models.BuyerDiff,
) (*models.Buyer, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tagsJSON, err := encodeTags(req.Tags)
	if err != nil {
		return nil, err
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating buyer: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	query := `INSERT INTO buyers
		(owner_id, full_name, email, phone, city, property_type, bhk, purpose,
		 budget_min, budget_max, timeline, source, status, notes, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + buyerColumns

	row := tx.QueryRow(ctx, query,
		ownerID, req.FullName, req.Email, req.Phone, req.City, req.PropertyType, req.BHK, req.Purpose,
		req.BudgetMin, req.BudgetMax, req.Timeline, req.Source, req.Status, req.Notes, tagsJSON,
	)

	b, err := scanBuyer(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("scanning created buyer: %w", err)
	}

	if err := insertHistory(ctx, tx, b.ID, ownerID, diff); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing create buyer: %w", err)
	}

	return b, nil
}

// UpdateBuyer persists a merged record with a conditional write on the
// version token: the row is only updated when its updated_at still equals
// expected, which makes the stale-version check and the write one atomic
// step. A non-empty diff is appended to the history in the same transaction;
// a no-op update still stamps a fresh version token but records nothing.
func (s *BuyerStore) UpdateBuyer(
	ctx context.Context,
	buyerID uuid.UUID,
	expected time.Time,
	merged models.Buyer,
	changedBy uuid.UUID,
	changes map[string]models.FieldChange,
) (*models.Buyer, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tagsJSON, err := encodeTags(merged.Tags)
	if err != nil {
		return nil, err
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("updating buyer: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	query := `UPDATE buyers SET
		full_name = $1, email = $2, phone = $3, city = $4, property_type = $5,
		bhk = $6, purpose = $7, budget_min = $8, budget_max = $9, timeline = $10,
		source = $11, status = $12, notes = $13, tags = $14, updated_at = now()
		WHERE id = $15 AND updated_at = $16
		RETURNING ` + buyerColumns

	row := tx.QueryRow(ctx, query,
		merged.FullName, merged.Email, merged.Phone, merged.City, merged.PropertyType,
		merged.BHK, merged.Purpose, merged.BudgetMin, merged.BudgetMax, merged.Timeline,
		merged.Source, merged.Status, merged.Notes, tagsJSON,
		buyerID, expected,
	)

	b, err := scanBuyer(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.classifyUpdateMiss(ctx, tx, buyerID)
		}

		return nil, fmt.Errorf("scanning updated buyer: %w", err)
	}

	if len(changes) > 0 {
		if err := insertHistory(ctx, tx, buyerID, changedBy, models.UpdatedDiff(changes)); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing update buyer: %w", err)
	}

	return b, nil
}

// classifyUpdateMiss distinguishes a missing row from a stale version token
// after a conditional update matched nothing.
func (s *BuyerStore) classifyUpdateMiss(ctx context.Context, tx pgx.Tx, buyerID uuid.UUID) error {
	var exists bool

	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM buyers WHERE id = $1)`, buyerID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking buyer existence: %w", err)
	}

	if !exists {
		return models.ErrBuyerNotFound
	}

	return models.ErrVersionConflict
}

// DeleteBuyer removes a buyer after verifying ownership. History entries are
// removed by the ON DELETE CASCADE constraint.
func (s *BuyerStore) DeleteBuyer(ctx context.Context, buyerID, actorID uuid.UUID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return fmt.Errorf("deleting buyer: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	var ownerID uuid.UUID

	err = tx.QueryRow(ctx, `SELECT owner_id FROM buyers WHERE id = $1 FOR UPDATE`, buyerID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrBuyerNotFound
		}

		return fmt.Errorf("locking buyer for delete: %w", err)
	}

	if ownerID != actorID {
		return models.ErrNotOwner
	}

	if _, err := tx.Exec(ctx, `DELETE FROM buyers WHERE id = $1`, buyerID); err != nil {
		return fmt.Errorf("executing buyer delete: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing delete buyer: %w", err)
	}

	return nil
}
