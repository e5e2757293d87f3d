package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/leadvaulthq/leadvault/internal/models"
)

const csvHeader = "fullName,email,phone,city,propertyType,bhk,purpose,budgetMin,budgetMax,timeline,source,notes,tags,status"

func validCSVRow(name string) string {
	return name + ",,9876543210,Chandigarh,Apartment,2,Buy,,,0-3m,Website,,,"
}

func newTestImporter(creator *mockBuyerCreator) (*Importer, *mockEnqueuer) {
	enq := &mockEnqueuer{}
	return NewImporter(creator, enq, testLogger()), enq
}

func TestImportCSV_CreatesValidRows(t *testing.T) {
	creator := &mockBuyerCreator{}
	imp, enq := newTestImporter(creator)

	body := strings.Join([]string{
		csvHeader,
		validCSVRow("Asha Rao"),
		validCSVRow("Ravi Kumar"),
	}, "\n")

	result, err := imp.ImportCSV(context.Background(), uuid.New(), strings.NewReader(body))
	if err != nil {
		t.Fatalf("ImportCSV error: %v", err)
	}
	if result.Created != 2 || result.ValidRows != 2 {
		t.Errorf("created=%d validRows=%d, want 2/2", result.Created, result.ValidRows)
	}
	if len(result.Errors) != 0 {
		t.Errorf("errors = %v", result.Errors)
	}
	if len(creator.created) != 2 {
		t.Errorf("store inserts = %d, want 2", len(creator.created))
	}
	if got := enq.actions(); len(got) != 1 || got[0] != "buyers.import" {
		t.Errorf("audit actions = %v", got)
	}
}

func TestImportCSV_OneBadRowBlocksBatch(t *testing.T) {
	creator := &mockBuyerCreator{}
	imp, _ := newTestImporter(creator)

	body := strings.Join([]string{
		csvHeader,
		validCSVRow("Asha Rao"),
		"X,,123,Chandigarh,Apartment,2,Buy,,,0-3m,Website,,,", // name too short, phone too short
		validCSVRow("Ravi Kumar"),
	}, "\n")

	result, err := imp.ImportCSV(context.Background(), uuid.New(), strings.NewReader(body))
	if err != nil {
		t.Fatalf("ImportCSV error: %v", err)
	}
	if result.Created != 0 {
		t.Errorf("created = %d, want 0 when any row is invalid", result.Created)
	}
	if result.ValidRows != 2 {
		t.Errorf("validRows = %d, want 2", result.ValidRows)
	}
	if !result.Rejected {
		t.Error("expected the batch to be marked rejected")
	}
	if len(creator.created) != 0 {
		t.Errorf("store inserts = %d, want none", len(creator.created))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", result.Errors)
	}
	if result.Errors[0].Row != 2 {
		t.Errorf("error row = %d, want 2", result.Errors[0].Row)
	}
	if !strings.Contains(result.Errors[0].Message, "fullName") ||
		!strings.Contains(result.Errors[0].Message, "phone") {
		t.Errorf("error message should name all invalid fields: %q", result.Errors[0].Message)
	}
}

func TestImportCSV_EmptyLinesSkippedWithoutNumbering(t *testing.T) {
	creator := &mockBuyerCreator{}
	imp, _ := newTestImporter(creator)

	body := strings.Join([]string{
		csvHeader,
		validCSVRow("Asha Rao"),
		",,,,,,,,,,,,,",
		"X,,123,,,,,,,,,,,", // invalid; must still be row 2
	}, "\n")

	result, err := imp.ImportCSV(context.Background(), uuid.New(), strings.NewReader(body))
	if err != nil {
		t.Fatalf("ImportCSV error: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %v", result.Errors)
	}
	if result.Errors[0].Row != 2 {
		t.Errorf("error row = %d, want 2 (blank line does not count)", result.Errors[0].Row)
	}
}

func TestImportCSV_BOMHeader(t *testing.T) {
	creator := &mockBuyerCreator{}
	imp, _ := newTestImporter(creator)

	body := "\uFEFF" + csvHeader + "\n" + validCSVRow("Asha Rao")

	result, err := imp.ImportCSV(context.Background(), uuid.New(), strings.NewReader(body))
	if err != nil {
		t.Fatalf("ImportCSV error: %v", err)
	}
	if result.Created != 1 {
		t.Errorf("created = %d, want 1 (BOM must not break the first column)", result.Created)
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	imp, _ := newTestImporter(&mockBuyerCreator{})

	_, err := imp.ImportCSV(context.Background(), uuid.New(), strings.NewReader(""))
	if !errors.Is(err, ErrEmptyCSV) {
		t.Fatalf("expected ErrEmptyCSV, got %v", err)
	}
}

func TestImportCSV_TagsFormats(t *testing.T) {
	creator := &mockBuyerCreator{}
	imp, _ := newTestImporter(creator)

	body := strings.Join([]string{
		csvHeader,
		`Asha Rao,,9876543210,Chandigarh,Apartment,2,Buy,,,0-3m,Website,,"[""vip"",""nri""]",`,
		`Ravi Kumar,,9876543211,Mohali,Plot,,Buy,,,3-6m,Referral,,"vip, hot-lead",`,
	}, "\n")

	result, err := imp.ImportCSV(context.Background(), uuid.New(), strings.NewReader(body))
	if err != nil {
		t.Fatalf("ImportCSV error: %v", err)
	}
	if result.Created != 2 {
		t.Fatalf("created = %d, errors = %v", result.Created, result.Errors)
	}

	want := [][]string{{"vip", "nri"}, {"vip", "hot-lead"}}
	for i, req := range creator.created {
		if len(req.Tags) != 2 || req.Tags[0] != want[i][0] || req.Tags[1] != want[i][1] {
			t.Errorf("row %d tags = %v, want %v", i+1, req.Tags, want[i])
		}
	}
}

func TestImportCSV_InsertFailureReported(t *testing.T) {
	creator := &mockBuyerCreator{
		createBuyer: func(_ context.Context, actorID uuid.UUID, req models.CreateBuyerRequest) (*models.Buyer, error) {
			if req.FullName == "Ravi Kumar" {
				return nil, errors.New("db down")
			}
			return &models.Buyer{ID: uuid.New(), OwnerID: actorID}, nil
		},
	}
	imp, _ := newTestImporter(creator)

	body := strings.Join([]string{
		csvHeader,
		validCSVRow("Asha Rao"),
		validCSVRow("Ravi Kumar"),
	}, "\n")

	result, err := imp.ImportCSV(context.Background(), uuid.New(), strings.NewReader(body))
	if err != nil {
		t.Fatalf("ImportCSV error: %v", err)
	}
	if result.Created != 1 {
		t.Errorf("created = %d, want 1", result.Created)
	}
	if len(result.Errors) != 1 || result.Errors[0].Row != 2 {
		t.Errorf("errors = %v, want one failure at row 2", result.Errors)
	}
	if result.Rejected {
		t.Error("insert failures after a clean validation pass must not mark the batch rejected")
	}
}
