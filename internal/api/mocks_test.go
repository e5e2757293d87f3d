package api_test

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/leadvaulthq/leadvault/internal/models"
)

// mockBuyerService implements domain.BuyerService for testing.
type mockBuyerService struct {
	listFn    func(ctx context.Context, filter models.BuyerFilter, sort models.BuyerSort, page, pageSize int) ([]models.Buyer, int, error)
	getFn     func(ctx context.Context, buyerID uuid.UUID) (*models.Buyer, error)
	createFn  func(ctx context.Context, actorID uuid.UUID, req models.CreateBuyerRequest) (*models.Buyer, error)
	updateFn  func(ctx context.Context, actorID, buyerID uuid.UUID, req models.UpdateBuyerRequest) (*models.Buyer, error)
	deleteFn  func(ctx context.Context, actorID, buyerID uuid.UUID) error
	canEditFn func(ctx context.Context, actorID, buyerID uuid.UUID) (bool, error)
}

func (m *mockBuyerService) ListBuyers(ctx context.Context, filter models.BuyerFilter, sort models.BuyerSort, page, pageSize int) ([]models.Buyer, int, error) {
	return m.listFn(ctx, filter, sort, page, pageSize)
}

func (m *mockBuyerService) GetBuyer(ctx context.Context, buyerID uuid.UUID) (*models.Buyer, error) {
	return m.getFn(ctx, buyerID)
}

func (m *mockBuyerService) CreateBuyer(ctx context.Context, actorID uuid.UUID, req models.CreateBuyerRequest) (*models.Buyer, error) {
	return m.createFn(ctx, actorID, req)
}

func (m *mockBuyerService) UpdateBuyer(ctx context.Context, actorID, buyerID uuid.UUID, req models.UpdateBuyerRequest) (*models.Buyer, error) {
	return m.updateFn(ctx, actorID, buyerID, req)
}

func (m *mockBuyerService) DeleteBuyer(ctx context.Context, actorID, buyerID uuid.UUID) error {
	return m.deleteFn(ctx, actorID, buyerID)
}

func (m *mockBuyerService) CanEdit(ctx context.Context, actorID, buyerID uuid.UUID) (bool, error) {
	return m.canEditFn(ctx, actorID, buyerID)
}

// mockHistoryService implements domain.HistoryService for testing.
type mockHistoryService struct {
	historyFn func(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]models.HistoryEntry, bool, error)
}

func (m *mockHistoryService) GetBuyerHistory(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]models.HistoryEntry, bool, error) {
	return m.historyFn(ctx, buyerID, limit, offset)
}

// mockImportService implements domain.ImportService for testing.
type mockImportService struct {
	importFn func(ctx context.Context, actorID uuid.UUID, r io.Reader) (*models.ImportResult, error)
}

func (m *mockImportService) ImportCSV(ctx context.Context, actorID uuid.UUID, r io.Reader) (*models.ImportResult, error) {
	return m.importFn(ctx, actorID, r)
}

// mockExportService implements domain.ExportService for testing.
type mockExportService struct {
	exportFn func(ctx context.Context, actorID uuid.UUID, w io.Writer, filter models.BuyerFilter) (int, error)
}

func (m *mockExportService) ExportCSV(ctx context.Context, actorID uuid.UUID, w io.Writer, filter models.BuyerFilter) (int, error) {
	return m.exportFn(ctx, actorID, w, filter)
}

// mockStatsService implements domain.StatsService for testing.
type mockStatsService struct {
	statsFn func(ctx context.Context) (*models.BuyerStats, error)
}

func (m *mockStatsService) BuyerStats(ctx context.Context) (*models.BuyerStats, error) {
	return m.statsFn(ctx)
}
