// Package domain defines the canonical service interfaces shared across the
// API layer, the client SDK and tests. Consumers should depend on these
// interfaces rather than re-declaring equivalent ones.
package domain

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/leadvaulthq/leadvault/internal/models"
)

// BuyerService defines all buyer mutation and query operations.
type BuyerService interface {
	ListBuyers(ctx context.Context, filter models.BuyerFilter, sort models.BuyerSort, page, pageSize int) ([]models.Buyer, int, error)
	GetBuyer(ctx context.Context, buyerID uuid.UUID) (*models.Buyer, error)
	CreateBuyer(ctx context.Context, actorID uuid.UUID, req models.CreateBuyerRequest) (*models.Buyer, error)
	UpdateBuyer(ctx context.Context, actorID, buyerID uuid.UUID, req models.UpdateBuyerRequest) (*models.Buyer, error)
	DeleteBuyer(ctx context.Context, actorID, buyerID uuid.UUID) error
	CanEdit(ctx context.Context, actorID, buyerID uuid.UUID) (bool, error)
}

// HistoryService defines read access to a buyer's change history.
type HistoryService interface {
	GetBuyerHistory(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]models.HistoryEntry, bool, error)
}

// ImportService defines the bulk CSV import pipeline.
type ImportService interface {
	ImportCSV(ctx context.Context, actorID uuid.UUID, r io.Reader) (*models.ImportResult, error)
}

// ExportService streams filtered buyers as CSV. It returns the number of
// exported rows.
type ExportService interface {
	ExportCSV(ctx context.Context, actorID uuid.UUID, w io.Writer, filter models.BuyerFilter) (int, error)
}

// StatsService summarizes the lead pipeline.
type StatsService interface {
	BuyerStats(ctx context.Context) (*models.BuyerStats, error)
}

// AuditService defines audit log query and maintenance operations.
type AuditService interface {
	Auditor
	QueryAudit(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error)
}

// Auditor is the minimal interface for recording audit entries.
// Used by services for fire-and-forget audit logging.
type Auditor interface {
	RecordAudit(ctx context.Context, action string, buyerID *uuid.UUID, actor uuid.UUID, detail map[string]any) error
}
