package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/leadvaulthq/leadvault/internal/domain"
	"github.com/leadvaulthq/leadvault/internal/metrics"
	"github.com/leadvaulthq/leadvault/internal/models"
	"github.com/leadvaulthq/leadvault/internal/service"
)

// ImportExportHandler serves CSV bulk import and export endpoints.
type ImportExportHandler struct {
	importer domain.ImportService
	exporter domain.ExportService
	log      *logrus.Logger
}

// NewImportExportHandler creates an ImportExportHandler.
func NewImportExportHandler(importer domain.ImportService, exporter domain.ExportService, log *logrus.Logger) *ImportExportHandler {
	return &ImportExportHandler{importer: importer, exporter: exporter, log: log}
}

// importSummary is the success payload for a bulk import. Errors carries
// per-row insert failures that occurred after the validation pass.
type importSummary struct {
	Message string            `json:"message"`
	Created int               `json:"created"`
	Errors  []models.RowError `json:"errors,omitempty"`
}

// importRejection reports a batch blocked by the validation gate. Nothing
// was inserted; ValidRows counts the rows that would have been accepted.
type importRejection struct {
	Error     string            `json:"error"`
	Errors    []models.RowError `json:"errors"`
	ValidRows int               `json:"validRows"`
}

// Import handles POST /api/v1/buyers/import.
// Accepts either a multipart form with a "file" field or a raw text/csv
// body. Any invalid row rejects the whole batch with a 400 listing every
// row error; a clean validation pass answers 200 with a summary.
func (h *ImportExportHandler) Import(c *gin.Context) {
	actorID := getActorID(c)
	if actorID == uuid.Nil {
		return
	}

	body, err := importBody(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}
	defer body.Close()

	result, err := h.importer.ImportCSV(c.Request.Context(), actorID, body)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCSV) {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "csv file is empty")

			return
		}

		h.log.WithError(err).Error("importing buyers")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "import failed")

		return
	}

	h.log.WithFields(logrus.Fields{
		"action":     "buyers.import",
		"actor_id":   actorID,
		"created":    result.Created,
		"valid_rows": result.ValidRows,
		"rejected":   result.Rejected,
		"errors":     len(result.Errors),
	}).Info("audit")

	if result.Rejected {
		metrics.ErrorsTotal.WithLabelValues(ErrCodeValidationError).Inc()
		c.JSON(http.StatusBadRequest, importRejection{
			Error:     "validation failed",
			Errors:    result.Errors,
			ValidRows: result.ValidRows,
		})

		return
	}

	c.JSON(http.StatusOK, importSummary{
		Message: fmt.Sprintf("imported %d buyers", result.Created),
		Created: result.Created,
		Errors:  result.Errors,
	})
}

// importBody selects the CSV source for an import request.
func importBody(c *gin.Context) (io.ReadCloser, error) {
	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, err := c.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("multipart form must include a \"file\" field")
		}

		f, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("opening uploaded file")
		}

		return f, nil
	}

	return c.Request.Body, nil
}

// Export handles GET /api/v1/buyers/export.
// Streams the filtered buyer set as a CSV file attachment, honoring the
// same filter params as the list endpoint.
func (h *ImportExportHandler) Export(c *gin.Context) {
	actorID := getActorID(c)
	if actorID == uuid.Nil {
		return
	}

	filter := parseBuyerFilter(c)

	ts := time.Now().UTC().Format("20060102T150405Z")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=buyers-%s.csv", ts))

	rows, err := h.exporter.ExportCSV(c.Request.Context(), actorID, c.Writer, filter)
	if err != nil {
		// Headers may already be written; log and abort the stream.
		h.log.WithError(err).Error("exporting buyers")
		c.Abort()

		return
	}

	h.log.WithFields(logrus.Fields{
		"action":   "buyers.export",
		"actor_id": actorID,
		"rows":     rows,
	}).Info("audit")
}
