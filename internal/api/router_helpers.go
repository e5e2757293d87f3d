package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/leadvaulthq/leadvault/internal/middleware"
	"github.com/leadvaulthq/leadvault/internal/models"
)

// getActorID extracts the authenticated actor ID from the Gin context. On
// failure it writes an error response and returns uuid.Nil.
func getActorID(c *gin.Context) uuid.UUID {
	id, err := uuid.Parse(c.GetString("actor_id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid actor id")

		return uuid.Nil
	}

	return id
}

// parsePathUUID validates the :id path parameter. On failure it writes an
// error response and returns uuid.Nil.
func parsePathUUID(c *gin.Context) uuid.UUID {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "id must be a valid UUID")

		return uuid.Nil
	}

	return id
}

func ginLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		if rid, exists := c.Get(middleware.RequestIDKey); exists {
			fields["request_id"] = rid
		}
		if aid := c.GetString("actor_id"); aid != "" {
			fields["actor_id"] = aid
		}
		log.WithFields(fields).Info("request")
	}
}

// maxPaginationLimit caps the maximum number of items per page.
const maxPaginationLimit = 100

// maxPaginationOffset caps the maximum offset for paginated queries.
const maxPaginationOffset = 100000

func parseInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}

	if v > maxPaginationLimit {
		return maxPaginationLimit
	}

	return v
}

func parseOffset(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0
	}

	if v > maxPaginationOffset {
		return maxPaginationOffset
	}

	return v
}

// parsePage returns a 1-indexed page number.
func parsePage(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 1
	}

	return v
}

// parseSort reads the sort and order query params, falling back to the
// default updatedAt-descending ordering.
func parseSort(c *gin.Context) models.BuyerSort {
	sort := models.DefaultSort()

	if field, ok := models.ParseSortField(c.Query("sort")); ok {
		sort.Field = field
		sort.Descending = c.DefaultQuery("order", "asc") == "desc"
	}

	return sort
}

// parseBuyerFilter reads list/export filter params from the query string.
func parseBuyerFilter(c *gin.Context) models.BuyerFilter {
	return models.BuyerFilter{
		City:         models.City(c.Query("city")),
		PropertyType: models.PropertyType(c.Query("propertyType")),
		Status:       models.Status(c.Query("status")),
		Timeline:     models.Timeline(c.Query("timeline")),
		Search:       c.Query("search"),
	}
}
