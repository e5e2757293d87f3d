package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/leadvaulthq/leadvault/internal/models"
)

// AuditStore handles the operation-level audit log.
type AuditStore struct {
	Base
}

// NewAuditStore creates a new AuditStore.
func NewAuditStore(base Base) *AuditStore {
	return &AuditStore{Base: base}
}

// RecordAudit inserts one audit log entry.
func (s *AuditStore) RecordAudit(
	ctx context.Context,
	action string,
	buyerID *uuid.UUID,
	actor uuid.UUID,
	detail map[string]any,
) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var detailJSON []byte

	if detail != nil {
		data, err := json.Marshal(detail)
		if err != nil {
			return fmt.Errorf("encoding audit detail: %w", err)
		}

		detailJSON = data
	}

	_, err := s.Pool.Exec(ctx,
		`INSERT INTO audit_log (action, buyer_id, actor, detail) VALUES ($1, $2, $3, $4)`,
		action, buyerID, actor, detailJSON,
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}

	return nil
}

// QueryAudit returns audit entries matching the filters, newest first, with
// has_more pagination.
func (s *AuditStore) QueryAudit(
	ctx context.Context,
	opts models.AuditQueryOpts,
) ([]models.AuditEntry, bool, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	if limit > maxListLimit {
		limit = maxListLimit
	}

	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT id, action, buyer_id, actor, detail, created_at FROM audit_log`

	var (
		conds []string
		args  []any
	)

	arg := func(v any) string {
		args = append(args, v)

		return fmt.Sprintf("$%d", len(args))
	}

	if opts.Action != "" {
		conds = append(conds, "action = "+arg(opts.Action))
	}

	if opts.BuyerID != nil {
		conds = append(conds, "buyer_id = "+arg(*opts.BuyerID))
	}

	if opts.Actor != nil {
		conds = append(conds, "actor = "+arg(*opts.Actor))
	}

	if opts.Since != nil {
		conds = append(conds, "created_at >= "+arg(*opts.Since))
	}

	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT %s OFFSET %s", arg(limit+1), arg(offset))

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	entries := make([]models.AuditEntry, 0, limit+1)

	for rows.Next() {
		var (
			e          models.AuditEntry
			detailJSON []byte
		)

		if err := rows.Scan(&e.ID, &e.Action, &e.BuyerID, &e.Actor, &detailJSON, &e.CreatedAt); err != nil {
			return nil, false, fmt.Errorf("scanning audit row: %w", err)
		}

		if len(detailJSON) > 0 {
			if err := json.Unmarshal(detailJSON, &e.Detail); err != nil {
				return nil, false, fmt.Errorf("decoding audit detail for entry %d: %w", e.ID, err)
			}
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating audit rows: %w", err)
	}

	hasMore := len(entries) > limit
	if hasMore {
		entries = entries[:limit]
	}

	return entries, hasMore, nil
}
