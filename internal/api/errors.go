package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/leadvaulthq/leadvault/internal/httputil"
	"github.com/leadvaulthq/leadvault/internal/metrics"
	"github.com/leadvaulthq/leadvault/internal/models"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeNotFound        = "not_found"
	ErrCodeInternalError   = "internal_error"
	ErrCodeUnauthorized    = "unauthorized"
	ErrCodeForbidden       = "forbidden"
	ErrCodeConflict        = "conflict"
	ErrCodeRateLimited     = "rate_limited"
	ErrCodeValidationError = "validation_error"
)

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// respondValidationError writes a 400 response carrying the per-field
// messages so clients can surface them next to the offending inputs.
func respondValidationError(c *gin.Context, verr *models.ValidationError) {
	metrics.ErrorsTotal.WithLabelValues(ErrCodeValidationError).Inc()
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"code":    ErrCodeValidationError,
		"message": "validation failed",
		"fields":  verr.Fields,
	})
}

// respondBuyerError maps service errors from buyer operations to HTTP
// responses. Returns false if err was nil and no response was written.
func respondBuyerError(c *gin.Context, log *logrus.Logger, err error, op string) bool {
	if err == nil {
		return false
	}

	var verr *models.ValidationError

	switch {
	case errors.As(err, &verr):
		respondValidationError(c, verr)
	case errors.Is(err, models.ErrBuyerNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "buyer not found")
	case errors.Is(err, models.ErrVersionConflict):
		respondError(c, http.StatusConflict, ErrCodeConflict,
			"record changed, please refresh")
	case errors.Is(err, models.ErrNotOwner):
		respondError(c, http.StatusForbidden, ErrCodeForbidden, "only the owner may perform this operation")
	default:
		log.WithError(err).Error(op)
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}

	return true
}
