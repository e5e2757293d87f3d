package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/leadvaulthq/leadvault/internal/domain"
	"github.com/leadvaulthq/leadvault/internal/metrics"
	"github.com/leadvaulthq/leadvault/internal/models"
)

// ErrEmptyCSV is returned when the uploaded file has no header row.
var ErrEmptyCSV = errors.New("csv file is empty")

// csvColumns is the canonical column set, shared by import and export.
var csvColumns = []string{
	"fullName", "email", "phone", "city", "propertyType", "bhk", "purpose",
	"budgetMin", "budgetMax", "timeline", "source", "notes", "tags", "status",
}

// buyerCreator is the single mutation the import pipeline needs. Inserting
// through the mutation service keeps history recording in one place.
type buyerCreator interface {
	CreateBuyer(ctx context.Context, actorID uuid.UUID, req models.CreateBuyerRequest) (*models.Buyer, error)
}

// Compile-time check: *Importer must satisfy domain.ImportService.
var _ domain.ImportService = (*Importer)(nil)

// Importer is the bulk CSV import pipeline.
type Importer struct {
	buyers      buyerCreator
	auditWorker AuditEnqueuer
	log         *logrus.Logger
}

// NewImporter creates an Importer.
func NewImporter(buyers buyerCreator, auditWorker AuditEnqueuer, log *logrus.Logger) *Importer {
	return &Importer{buyers: buyers, auditWorker: auditWorker, log: log}
}

type validRow struct {
	row int
	req models.CreateBuyerRequest
}

// ImportCSV parses a header-driven CSV and validates every row
// independently, then inserts. Row numbers are 1-indexed with the header
// excluded. Any validation error blocks the entire batch before any write
// occurs; partial imports are confusing, so the all-or-nothing gate applies
// at the validation stage. Once validation passes, per-row insert failures
// are collected without rolling back rows already inserted.
func (imp *Importer) ImportCSV(ctx context.Context, actorID uuid.UUID, r io.Reader) (*models.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCSV
		}

		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	index := headerIndex(header)

	result := &models.ImportResult{}

	var valid []validRow

	for row := 1; ; {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			result.Errors = append(result.Errors, models.RowError{Row: row, Message: "malformed csv row"})
			row++

			continue
		}

		if emptyRecord(record) {
			continue
		}

		req, parseErrs := models.ParseCSVRow(models.CSVRow{
			FullName:     cell(record, index, "fullName"),
			Email:        cell(record, index, "email"),
			Phone:        cell(record, index, "phone"),
			City:         cell(record, index, "city"),
			PropertyType: cell(record, index, "propertyType"),
			BHK:          cell(record, index, "bhk"),
			Purpose:      cell(record, index, "purpose"),
			BudgetMin:    cell(record, index, "budgetMin"),
			BudgetMax:    cell(record, index, "budgetMax"),
			Timeline:     cell(record, index, "timeline"),
			Source:       cell(record, index, "source"),
			Notes:        cell(record, index, "notes"),
			Tags:         cell(record, index, "tags"),
			Status:       cell(record, index, "status"),
		})

		fieldErrs := parseErrs
		if verr := req.Validate(); verr != nil {
			fieldErrs = append(fieldErrs, verr.Fields...)
		}

		if len(fieldErrs) > 0 {
			result.Errors = append(result.Errors, models.RowError{Row: row, Message: joinFieldErrors(fieldErrs)})
		} else {
			valid = append(valid, validRow{row: row, req: req})
		}

		row++
	}

	result.ValidRows = len(valid)

	if len(result.Errors) > 0 {
		result.Rejected = true
		metrics.ImportRows.WithLabelValues("invalid").Add(float64(len(result.Errors)))

		return result, nil
	}

	for _, vr := range valid {
		if _, err := imp.buyers.CreateBuyer(ctx, actorID, vr.req); err != nil {
			imp.log.WithError(err).WithField("row", vr.row).Error("importing buyer row")
			result.Errors = append(result.Errors, models.RowError{Row: vr.row, Message: "failed to create buyer"})
			metrics.ImportRows.WithLabelValues("failed").Inc()

			continue
		}

		result.Created++
		metrics.ImportRows.WithLabelValues("created").Inc()
	}

	auditAsync(imp.auditWorker, "buyers.import", nil, actorID, map[string]any{
		"created": result.Created,
		"errors":  len(result.Errors),
	})

	return result, nil
}

// headerIndex maps known column names to their positions. Unknown columns
// are ignored; missing columns read as empty cells.
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(csvColumns))

	for pos, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))
		for _, known := range csvColumns {
			if name == known {
				index[name] = pos

				break
			}
		}
	}

	return index
}

func cell(record []string, index map[string]int, column string) string {
	pos, ok := index[column]
	if !ok || pos >= len(record) {
		return ""
	}

	return record[pos]
}

func emptyRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}

	return true
}

func joinFieldErrors(fields []models.FieldError) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Field+": "+f.Message)
	}

	return strings.Join(parts, "; ")
}
