package store_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/leadvaulthq/leadvault/internal/db"
	"github.com/leadvaulthq/leadvault/internal/db/migrations"
	"github.com/leadvaulthq/leadvault/internal/dbpool"
	"github.com/leadvaulthq/leadvault/internal/models"
	"github.com/leadvaulthq/leadvault/internal/store"
)

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	sharedEnv = &testEnv{pool: pool, log: log}

	return sharedEnv
}

// setupTestBase creates a Base with a fresh test actor, cleaned up after the test.
func setupTestBase(t *testing.T) (store.Base, uuid.UUID) {
	t.Helper()

	env := getTestEnv(t)
	ctx := context.Background()

	base := store.Base{Pool: env.pool, Log: env.log}

	suffix := uuid.New().String()[:8]
	apiKey := "test-key-" + suffix
	hash := sha256.Sum256([]byte(apiKey))

	actors := store.NewActorStore(base)
	actor, err := actors.CreateActor(ctx,
		"test-actor-"+suffix,
		fmt.Sprintf("test-%s@example.com", suffix),
		hex.EncodeToString(hash[:]),
	)
	if err != nil {
		t.Fatalf("creating test actor: %v", err)
	}

	t.Cleanup(func() {
		cleanCtx := context.Background()
		// buyer_history rows go with their buyers via ON DELETE CASCADE.
		env.pool.Exec(cleanCtx, "DELETE FROM audit_log WHERE actor = $1", actor.ID)    //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM buyers WHERE owner_id = $1", actor.ID)    //nolint:errcheck // best-effort cleanup
		env.pool.Exec(cleanCtx, "DELETE FROM actors WHERE id = $1", actor.ID)          //nolint:errcheck // best-effort cleanup
	})

	return base, actor.ID
}

func storeCreateReq(name string) models.CreateBuyerRequest {
	return models.CreateBuyerRequest{
		FullName:     name,
		Phone:        "9876543210",
		City:         models.CityChandigarh,
		PropertyType: models.PropertyApartment,
		BHK:          models.BHKTwo,
		Purpose:      models.PurposeBuy,
		Timeline:     models.TimelineZeroToThree,
		Source:       models.SourceWebsite,
		Status:       models.StatusNew,
	}
}
