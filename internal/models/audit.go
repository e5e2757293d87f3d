package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry is one operation-level audit log record. Unlike buyer history,
// which is transactional and field-level, the audit log is written
// asynchronously and records which actor performed which operation.
type AuditEntry struct {
	ID        int64          `json:"id"`
	Action    string         `json:"action"`
	BuyerID   *uuid.UUID     `json:"buyer_id,omitempty"`
	Actor     uuid.UUID      `json:"actor"`
	Detail    map[string]any `json:"detail,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// AuditQueryOpts holds filters for querying the audit log.
type AuditQueryOpts struct {
	Action  string
	BuyerID *uuid.UUID
	Actor   *uuid.UUID
	Since   *time.Time
	Limit   int
	Offset  int
}
