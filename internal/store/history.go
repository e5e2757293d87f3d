package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/leadvaulthq/leadvault/internal/models"
)

// HistoryStore handles buyer change history reads. Writes happen inside the
// buyer mutation transactions via insertHistory so a mutation and its history
// entry commit atomically.
type HistoryStore struct {
	Base
}

// NewHistoryStore creates a new HistoryStore.
func NewHistoryStore(base Base) *HistoryStore {
	return &HistoryStore{Base: base}
}

// insertHistory appends one immutable history entry within a mutation
// transaction. Package-level so BuyerStore can call it.
func insertHistory(ctx context.Context, tx pgx.Tx, buyerID, changedBy uuid.UUID, diff models.BuyerDiff) error {
	payload, err := json.Marshal(diff)
	if err != nil {
		return fmt.Errorf("encoding diff payload: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO buyer_history (buyer_id, changed_by, diff) VALUES ($1, $2, $3)`,
		buyerID, changedBy, payload,
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}

	return nil
}

// GetBuyerHistory returns a buyer's change history, newest first, with
// has_more pagination.
func (s *HistoryStore) GetBuyerHistory(
	ctx context.Context,
	buyerID uuid.UUID,
	limit, offset int,
) ([]models.HistoryEntry, bool, error) {
	if limit <= 0 {
		limit = 5
	}

	if limit > maxListLimit {
		limit = maxListLimit
	}

	if offset < 0 {
		offset = 0
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx,
		`SELECT id, buyer_id, changed_by, changed_at, diff
		FROM buyer_history
		WHERE buyer_id = $1
		ORDER BY changed_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		buyerID, limit+1, offset,
	)
	if err != nil {
		return nil, false, fmt.Errorf("querying buyer history: %w", err)
	}
	defer rows.Close()

	entries := make([]models.HistoryEntry, 0, limit+1)

	for rows.Next() {
		var (
			e       models.HistoryEntry
			payload []byte
		)

		if err := rows.Scan(&e.ID, &e.BuyerID, &e.ChangedBy, &e.ChangedAt, &payload); err != nil {
			return nil, false, fmt.Errorf("scanning history row: %w", err)
		}

		if err := json.Unmarshal(payload, &e.Diff); err != nil {
			return nil, false, fmt.Errorf("decoding diff for history entry %d: %w", e.ID, err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating history rows: %w", err)
	}

	hasMore := len(entries) > limit
	if hasMore {
		entries = entries[:limit]
	}

	return entries, hasMore, nil
}
