package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leadvaulthq/leadvault/internal/models"
)

// mockBuyerStore records calls and returns configured responses.
type mockBuyerStore struct {
	mu    sync.Mutex
	calls []string

	getBuyer      func(ctx context.Context, buyerID uuid.UUID) (*models.Buyer, error)
	getBuyerOwner func(ctx context.Context, buyerID uuid.UUID) (uuid.UUID, error)
	createBuyer   func(ctx context.Context, ownerID uuid.UUID, req models.CreateBuyerRequest, diff models.BuyerDiff) (*models.Buyer, error)
	updateBuyer   func(ctx context.Context, buyerID uuid.UUID, expected time.Time, merged models.Buyer, changedBy uuid.UUID, changes map[string]models.FieldChange) (*models.Buyer, error)
	deleteBuyer   func(ctx context.Context, buyerID, actorID uuid.UUID) error
	listBuyers    func(ctx context.Context, filter models.BuyerFilter, sort models.BuyerSort, page, pageSize int) ([]models.Buyer, int, error)
}

func (m *mockBuyerStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockBuyerStore) getCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockBuyerStore) GetBuyer(ctx context.Context, buyerID uuid.UUID) (*models.Buyer, error) {
	m.record("GetBuyer")
	return m.getBuyer(ctx, buyerID)
}

func (m *mockBuyerStore) GetBuyerOwner(ctx context.Context, buyerID uuid.UUID) (uuid.UUID, error) {
	m.record("GetBuyerOwner")
	return m.getBuyerOwner(ctx, buyerID)
}

func (m *mockBuyerStore) CreateBuyer(ctx context.Context, ownerID uuid.UUID, req models.CreateBuyerRequest, diff models.BuyerDiff) (*models.Buyer, error) {
	m.record("CreateBuyer")
	return m.createBuyer(ctx, ownerID, req, diff)
}

func (m *mockBuyerStore) UpdateBuyer(ctx context.Context, buyerID uuid.UUID, expected time.Time, merged models.Buyer, changedBy uuid.UUID, changes map[string]models.FieldChange) (*models.Buyer, error) {
	m.record("UpdateBuyer")
	return m.updateBuyer(ctx, buyerID, expected, merged, changedBy, changes)
}

func (m *mockBuyerStore) DeleteBuyer(ctx context.Context, buyerID, actorID uuid.UUID) error {
	m.record("DeleteBuyer")
	return m.deleteBuyer(ctx, buyerID, actorID)
}

func (m *mockBuyerStore) ListBuyers(ctx context.Context, filter models.BuyerFilter, sort models.BuyerSort, page, pageSize int) ([]models.Buyer, int, error) {
	m.record("ListBuyers")
	return m.listBuyers(ctx, filter, sort, page, pageSize)
}

// mockAuditor collects recorded audit entries.
type mockAuditor struct {
	mu    sync.Mutex
	calls []auditCall
	err   error
}

type auditCall struct {
	Action  string
	BuyerID *uuid.UUID
	Actor   uuid.UUID
	Detail  map[string]any
}

func (m *mockAuditor) RecordAudit(_ context.Context, action string, buyerID *uuid.UUID, actor uuid.UUID, detail map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, auditCall{Action: action, BuyerID: buyerID, Actor: actor, Detail: detail})
	return m.err
}

func (m *mockAuditor) getCalls() []auditCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]auditCall(nil), m.calls...)
}

// mockEnqueuer is a synchronous AuditEnqueuer for tests that assert on
// enqueued actions without running a worker.
type mockEnqueuer struct {
	mu   sync.Mutex
	jobs []*AuditJob
}

func (m *mockEnqueuer) Enqueue(job *AuditJob) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, job)
}

func (m *mockEnqueuer) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, j.Action)
	}
	return out
}

// mockBuyerCreator drives the import pipeline without a real store.
type mockBuyerCreator struct {
	mu      sync.Mutex
	created []models.CreateBuyerRequest

	createBuyer func(ctx context.Context, actorID uuid.UUID, req models.CreateBuyerRequest) (*models.Buyer, error)
}

func (m *mockBuyerCreator) CreateBuyer(ctx context.Context, actorID uuid.UUID, req models.CreateBuyerRequest) (*models.Buyer, error) {
	m.mu.Lock()
	m.created = append(m.created, req)
	m.mu.Unlock()
	if m.createBuyer != nil {
		return m.createBuyer(ctx, actorID, req)
	}
	return &models.Buyer{ID: uuid.New(), OwnerID: actorID, FullName: req.FullName}, nil
}

// mockBuyerExporter returns a fixed buyer set.
type mockBuyerExporter struct {
	buyers  []models.Buyer
	err     error
	maxRows int
}

func (m *mockBuyerExporter) ExportBuyers(_ context.Context, _ models.BuyerFilter, maxRows int) ([]models.Buyer, error) {
	m.maxRows = maxRows
	if m.err != nil {
		return nil, m.err
	}
	return m.buyers, nil
}

// mockStatsStore returns fixed count maps.
type mockStatsStore struct {
	byStatus map[models.Status]int
	byCity   map[models.City]int
	err      error
}

func (m *mockStatsStore) CountByStatus(_ context.Context) (map[models.Status]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byStatus, nil
}

func (m *mockStatsStore) CountByCity(_ context.Context) (map[models.City]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byCity, nil
}
