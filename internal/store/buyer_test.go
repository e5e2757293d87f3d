package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/leadvaulthq/leadvault/internal/models"
	"github.com/leadvaulthq/leadvault/internal/store"
)

func TestCreateBuyer_RoundTrip(t *testing.T) {
	base, actorID := setupTestBase(t)
	bs := store.NewBuyerStore(base)
	ctx := context.Background()

	req := storeCreateReq("Asha Rao")
	req.Tags = []string{"vip", "nri"}

	created, err := bs.CreateBuyer(ctx, actorID, req, models.CreatedDiff(map[string]any{"fullName": req.FullName}))
	if err != nil {
		t.Fatalf("CreateBuyer: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("ID not assigned")
	}
	if created.OwnerID != actorID {
		t.Errorf("owner = %s, want %s", created.OwnerID, actorID)
	}
	if created.UpdatedAt.IsZero() {
		t.Error("version token not stamped")
	}

	got, err := bs.GetBuyer(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetBuyer: %v", err)
	}
	if got.FullName != "Asha Rao" || got.Status != models.StatusNew {
		t.Errorf("got %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "vip" {
		t.Errorf("tags = %v", got.Tags)
	}
}

func TestCreateBuyer_WritesCreationHistory(t *testing.T) {
	base, actorID := setupTestBase(t)
	bs := store.NewBuyerStore(base)
	hs := store.NewHistoryStore(base)
	ctx := context.Background()

	created, err := bs.CreateBuyer(ctx, actorID, storeCreateReq("Asha Rao"),
		models.CreatedDiff(map[string]any{"fullName": "Asha Rao", "status": "New"}))
	if err != nil {
		t.Fatalf("CreateBuyer: %v", err)
	}

	entries, hasMore, err := hs.GetBuyerHistory(ctx, created.ID, 5, 0)
	if err != nil {
		t.Fatalf("GetBuyerHistory: %v", err)
	}
	if hasMore {
		t.Error("hasMore = true for a single entry")
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if !entries[0].Diff.IsCreated() {
		t.Error("expected creation-shaped diff")
	}
	if entries[0].ChangedBy != actorID {
		t.Errorf("changed_by = %s, want %s", entries[0].ChangedBy, actorID)
	}
}

func TestUpdateBuyer_StaleTokenRejected(t *testing.T) {
	base, actorID := setupTestBase(t)
	bs := store.NewBuyerStore(base)
	ctx := context.Background()

	created, err := bs.CreateBuyer(ctx, actorID, storeCreateReq("Asha Rao"), models.CreatedDiff(nil))
	if err != nil {
		t.Fatalf("CreateBuyer: %v", err)
	}

	merged := *created
	merged.Status = models.StatusQualified
	stale := created.UpdatedAt.Add(-time.Second)

	_, err = bs.UpdateBuyer(ctx, created.ID, stale, merged, actorID,
		map[string]models.FieldChange{"status": {Old: "New", New: "Qualified"}})
	if !errors.Is(err, models.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}

	// The record must be untouched.
	got, err := bs.GetBuyer(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetBuyer: %v", err)
	}
	if got.Status != models.StatusNew {
		t.Errorf("status = %q after rejected update, want New", got.Status)
	}
}

func TestUpdateBuyer_AppendsHistoryAndStampsToken(t *testing.T) {
	base, actorID := setupTestBase(t)
	bs := store.NewBuyerStore(base)
	hs := store.NewHistoryStore(base)
	ctx := context.Background()

	created, err := bs.CreateBuyer(ctx, actorID, storeCreateReq("Asha Rao"), models.CreatedDiff(nil))
	if err != nil {
		t.Fatalf("CreateBuyer: %v", err)
	}

	merged := *created
	merged.Status = models.StatusQualified

	updated, err := bs.UpdateBuyer(ctx, created.ID, created.UpdatedAt, merged, actorID,
		map[string]models.FieldChange{"status": {Old: "New", New: "Qualified"}})
	if err != nil {
		t.Fatalf("UpdateBuyer: %v", err)
	}
	if updated.Status != models.StatusQualified {
		t.Errorf("status = %q", updated.Status)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Error("version token not refreshed")
	}

	entries, _, err := hs.GetBuyerHistory(ctx, created.ID, 5, 0)
	if err != nil {
		t.Fatalf("GetBuyerHistory: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want creation + update", len(entries))
	}
	// Newest first.
	fc, ok := entries[0].Diff.Changes["status"]
	if !ok {
		t.Fatalf("newest entry diff = %+v, want status change", entries[0].Diff)
	}
	if fc.Old != "New" || fc.New != "Qualified" {
		t.Errorf("change = %+v", fc)
	}
}

func TestUpdateBuyer_NoChangesSkipsHistory(t *testing.T) {
	base, actorID := setupTestBase(t)
	bs := store.NewBuyerStore(base)
	hs := store.NewHistoryStore(base)
	ctx := context.Background()

	created, err := bs.CreateBuyer(ctx, actorID, storeCreateReq("Asha Rao"), models.CreatedDiff(nil))
	if err != nil {
		t.Fatalf("CreateBuyer: %v", err)
	}

	updated, err := bs.UpdateBuyer(ctx, created.ID, created.UpdatedAt, *created, actorID, nil)
	if err != nil {
		t.Fatalf("UpdateBuyer: %v", err)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Error("no-op update must still stamp a fresh token")
	}

	entries, _, err := hs.GetBuyerHistory(ctx, created.ID, 5, 0)
	if err != nil {
		t.Fatalf("GetBuyerHistory: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("entries = %d, want only the creation entry", len(entries))
	}
}

func TestUpdateBuyer_MissingRow(t *testing.T) {
	base, actorID := setupTestBase(t)
	bs := store.NewBuyerStore(base)

	_, err := bs.UpdateBuyer(context.Background(), uuid.New(), time.Now(), models.Buyer{}, actorID, nil)
	if !errors.Is(err, models.ErrBuyerNotFound) {
		t.Fatalf("expected ErrBuyerNotFound, got %v", err)
	}
}

func TestDeleteBuyer_OwnershipAndCascade(t *testing.T) {
	base, actorID := setupTestBase(t)
	bs := store.NewBuyerStore(base)
	hs := store.NewHistoryStore(base)
	ctx := context.Background()

	created, err := bs.CreateBuyer(ctx, actorID, storeCreateReq("Asha Rao"), models.CreatedDiff(nil))
	if err != nil {
		t.Fatalf("CreateBuyer: %v", err)
	}

	if err := bs.DeleteBuyer(ctx, created.ID, uuid.New()); !errors.Is(err, models.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner for a stranger, got %v", err)
	}

	if err := bs.DeleteBuyer(ctx, created.ID, actorID); err != nil {
		t.Fatalf("DeleteBuyer: %v", err)
	}

	if _, err := bs.GetBuyer(ctx, created.ID); !errors.Is(err, models.ErrBuyerNotFound) {
		t.Errorf("expected ErrBuyerNotFound after delete, got %v", err)
	}

	entries, _, err := hs.GetBuyerHistory(ctx, created.ID, 5, 0)
	if err != nil {
		t.Fatalf("GetBuyerHistory: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("history entries = %d after delete, want 0 (cascade)", len(entries))
	}
}

func TestListBuyers_FilterAndPaging(t *testing.T) {
	base, actorID := setupTestBase(t)
	bs := store.NewBuyerStore(base)
	ctx := context.Background()

	// Names carry a unique marker so rows from other tests never match.
	marker := uuid.New().String()[:8]
	for i, city := range []models.City{models.CityMohali, models.CityMohali, models.CityZirakpur} {
		req := storeCreateReq("Lead " + marker)
		req.City = city
		req.Phone = "987654321" + string(rune('0'+i))
		if _, err := bs.CreateBuyer(ctx, actorID, req, models.CreatedDiff(nil)); err != nil {
			t.Fatalf("CreateBuyer: %v", err)
		}
	}

	filter := models.BuyerFilter{City: models.CityMohali, Search: marker}

	buyers, total, err := bs.ListBuyers(ctx, filter, models.DefaultSort(), 1, 10)
	if err != nil {
		t.Fatalf("ListBuyers: %v", err)
	}
	if total != 2 || len(buyers) != 2 {
		t.Errorf("total=%d len=%d, want 2/2", total, len(buyers))
	}

	// Page past the end: total stays, page is empty.
	buyers, total, err = bs.ListBuyers(ctx, filter, models.DefaultSort(), 3, 1)
	if err != nil {
		t.Fatalf("ListBuyers: %v", err)
	}
	if total != 2 || len(buyers) != 0 {
		t.Errorf("total=%d len=%d, want 2/0", total, len(buyers))
	}
}
