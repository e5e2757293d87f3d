package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/leadvaulthq/leadvault/internal/domain"
	"github.com/leadvaulthq/leadvault/internal/models"
)

// buyerExporter is the store surface the export pipeline needs.
type buyerExporter interface {
	ExportBuyers(ctx context.Context, filter models.BuyerFilter, maxRows int) ([]models.Buyer, error)
}

var _ domain.ExportService = (*Exporter)(nil)

// Exporter streams filtered buyers as CSV.
type Exporter struct {
	store       buyerExporter
	auditWorker AuditEnqueuer
	log         *logrus.Logger
	maxRows     int
}

// NewExporter creates an Exporter. maxRows caps the number of exported
// rows; values <= 0 fall back to the default cap.
func NewExporter(store buyerExporter, auditWorker AuditEnqueuer, log *logrus.Logger, maxRows int) *Exporter {
	if maxRows <= 0 {
		maxRows = defaultExportMaxRows
	}

	return &Exporter{store: store, auditWorker: auditWorker, log: log, maxRows: maxRows}
}

const defaultExportMaxRows = 10000

// ExportCSV writes the filtered buyer set to w in the canonical column
// order and returns the number of data rows written. Absent optional
// fields render as empty cells; tags render as a JSON array string so the
// output round-trips through ImportCSV.
func (e *Exporter) ExportCSV(ctx context.Context, actorID uuid.UUID, w io.Writer, filter models.BuyerFilter) (int, error) {
	buyers, err := e.store.ExportBuyers(ctx, filter, e.maxRows)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(csvColumns); err != nil {
		return 0, fmt.Errorf("writing csv header: %w", err)
	}

	for i, b := range buyers {
		if err := cw.Write(exportRecord(b)); err != nil {
			return i, fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return len(buyers), fmt.Errorf("flushing csv: %w", err)
	}

	auditAsync(e.auditWorker, "buyers.export", nil, actorID, map[string]any{
		"rows": len(buyers),
	})

	return len(buyers), nil
}

func exportRecord(b models.Buyer) []string {
	return []string{
		b.FullName,
		b.Email,
		b.Phone,
		string(b.City),
		string(b.PropertyType),
		string(b.BHK),
		string(b.Purpose),
		formatBudget(b.BudgetMin),
		formatBudget(b.BudgetMax),
		string(b.Timeline),
		string(b.Source),
		b.Notes,
		formatTags(b.Tags),
		string(b.Status),
	}
}

func formatBudget(v *int64) string {
	if v == nil {
		return ""
	}

	return strconv.FormatInt(*v, 10)
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}

	raw, err := json.Marshal(tags)
	if err != nil {
		return ""
	}

	return string(raw)
}
