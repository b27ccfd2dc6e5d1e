package journal

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/condostore/pos-backend/pkg/db/models"
	"github.com/condostore/pos-backend/pkg/enums"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
	"github.com/condostore/pos-backend/pkg/logger"
)

type fakeRepository struct {
	createFn     func(ctx context.Context, record *models.SaleRecord) error
	listRecentFn func(ctx context.Context, terminalID string, limit int) ([]models.SaleRecord, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*models.SaleRecord, error)
}

func (f *fakeRepository) Create(ctx context.Context, record *models.SaleRecord) error {
	if f.createFn != nil {
		return f.createFn(ctx, record)
	}
	return nil
}

func (f *fakeRepository) ListRecent(ctx context.Context, terminalID string, limit int) ([]models.SaleRecord, error) {
	if f.listRecentFn != nil {
		return f.listRecentFn(ctx, terminalID, limit)
	}
	return nil, nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SaleRecord, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, errors.New("not found")
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func TestRecord(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	var created *models.SaleRecord
	repo.createFn = func(ctx context.Context, record *models.SaleRecord) error {
		created = record
		return nil
	}

	residentID := uuid.New().String()
	settledAt := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	got, err := svc.Record(context.Background(), Entry{
		TerminalID:    "term-1",
		Operator:      "ana",
		PaymentMethod: enums.PaymentMethodPix,
		ResidentID:    &residentID,
		TotalCents:    1250,
		SettledAt:     settledAt,
		Items: []EntryItem{
			{ProductID: "p-1", ProductName: "Soda", Quantity: 2, UnitPriceCents: 500},
			{ProductID: "p-2", ProductName: "Chips", Quantity: 1, UnitPriceCents: 250},
		},
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if created == nil || created != got {
		t.Fatal("record was not passed to the repository")
	}
	if got.ID == uuid.Nil {
		t.Fatal("record id must be generated")
	}
	if got.ResidentID == nil || got.ResidentID.String() != residentID {
		t.Fatalf("resident id not carried: %+v", got.ResidentID)
	}
	if len(got.Items) != 2 || got.Items[0].SaleID != got.ID {
		t.Fatalf("items not linked to the sale: %+v", got.Items)
	}
	if !got.SettledAt.Equal(settledAt) {
		t.Fatalf("settled_at overwritten: %v", got.SettledAt)
	}
}

func TestRecordValidation(t *testing.T) {
	svc, err := NewService(&fakeRepository{}, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if _, err := svc.Record(context.Background(), Entry{TerminalID: " "}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for blank terminal, got %v", err)
	}
	if _, err := svc.Record(context.Background(), Entry{TerminalID: "term-1"}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for empty items, got %v", err)
	}
}

func TestRecordUnparseableResidentIDIsDropped(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	bogus := "not-a-uuid"
	got, err := svc.Record(context.Background(), Entry{
		TerminalID:    "term-1",
		PaymentMethod: enums.PaymentMethodCash,
		Items:         []EntryItem{{ProductID: "p-1", ProductName: "Soda", Quantity: 1, UnitPriceCents: 500}},
		ResidentID:    &bogus,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if got.ResidentID != nil {
		t.Fatalf("unparseable resident id must be dropped, got %v", got.ResidentID)
	}
}

func TestListRecentClampsLimit(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	var gotLimit int
	repo.listRecentFn = func(ctx context.Context, terminalID string, limit int) ([]models.SaleRecord, error) {
		gotLimit = limit
		return nil, nil
	}

	if _, err := svc.ListRecent(context.Background(), "term-1", 0); err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if gotLimit != defaultListLimit {
		t.Fatalf("zero limit must fall back to default, got %d", gotLimit)
	}

	if _, err := svc.ListRecent(context.Background(), "term-1", 10_000); err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if gotLimit != defaultListLimit {
		t.Fatalf("oversized limit must fall back to default, got %d", gotLimit)
	}
}

func TestGet(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if _, err := svc.Get(context.Background(), uuid.Nil); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for nil id, got %v", err)
	}
	if _, err := svc.Get(context.Background(), uuid.New()); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}
