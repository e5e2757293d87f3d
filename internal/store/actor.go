package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leadvaulthq/leadvault/internal/models"
)

// ActorStore handles actor (authenticated user) records.
type ActorStore struct {
	Base
}

// NewActorStore creates a new ActorStore.
func NewActorStore(base Base) *ActorStore {
	return &ActorStore{Base: base}
}

// GetActor returns an actor by ID.
func (s *ActorStore) GetActor(ctx context.Context, actorID uuid.UUID) (*models.Actor, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var a models.Actor

	err := s.Pool.QueryRow(ctx,
		`SELECT id, name, email, created_at FROM actors WHERE id = $1`, actorID,
	).Scan(&a.ID, &a.Name, &a.Email, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrActorNotFound
		}

		return nil, fmt.Errorf("scanning actor: %w", err)
	}

	return &a, nil
}

// CreateActor registers a new actor with the given API key hash.
func (s *ActorStore) CreateActor(ctx context.Context, name, email, apiKeyHash string) (*models.Actor, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var a models.Actor

	err := s.Pool.QueryRow(ctx,
		`INSERT INTO actors (name, email, api_key_hash) VALUES ($1, $2, $3)
		RETURNING id, name, email, created_at`,
		name, email, apiKeyHash,
	).Scan(&a.ID, &a.Name, &a.Email, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.ErrDuplicateKey
		}

		return nil, fmt.Errorf("inserting actor: %w", err)
	}

	return &a, nil
}
