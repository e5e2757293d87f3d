// Package store provides focused, single-concern data access stores for the
// buyer-lead service.
//
// Each store owns one table (buyers, history, actors, audit) and embeds
// shared helpers (Pool, logger) via the Base struct. Stores never import
// each other; shared logic lives in this file or in dedicated helper files.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/leadvaulthq/leadvault/internal/dbpool"
	"github.com/leadvaulthq/leadvault/internal/models"
)

const defaultQueryTimeout = 30 * time.Second

// maxListLimit caps page sizes across list queries.
const maxListLimit = 100

// Base contains shared dependencies for all stores.
// Embed this in each store struct.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// beginTx starts a read-write transaction.
func (b *Base) beginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := b.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	return tx, nil
}

// GetActorByAPIKey looks up an actor ID by API key hash.
func (b *Base) GetActorByAPIKey(ctx context.Context, apiKey string) (string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	hash := sha256.Sum256([]byte(apiKey))
	apiKeyHash := hex.EncodeToString(hash[:])

	var actorID string

	err := b.Pool.QueryRow(ctx, "SELECT id FROM actors WHERE api_key_hash = $1", apiKeyHash).Scan(&actorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", models.ErrActorNotFound
		}

		return "", fmt.Errorf("looking up actor by API key: %w", err)
	}

	return actorID, nil
}
