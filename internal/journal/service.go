package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/condostore/pos-backend/pkg/db/models"
	"github.com/condostore/pos-backend/pkg/enums"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
	"github.com/condostore/pos-backend/pkg/logger"
)

const defaultListLimit = 50

// EntryItem is one line of a settled sale as handed to the journal.
type EntryItem struct {
	ProductID      string
	ProductName    string
	Quantity       int
	UnitPriceCents int64
}

// Entry is a sale the settlement service accepted.
type Entry struct {
	TerminalID    string
	Operator      string
	PaymentMethod enums.PaymentMethod
	ResidentID    *string
	TotalCents    int64
	Items         []EntryItem
	SettledAt     time.Time
}

// Service records accepted sales locally for receipt reprint and audit.
type Service interface {
	Record(ctx context.Context, entry Entry) (*models.SaleRecord, error)
	ListRecent(ctx context.Context, terminalID string, limit int) ([]models.SaleRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*models.SaleRecord, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the journal service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("journal repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// Record persists a settled sale. IDs are generated here so the row shape is
// identical on sqlite and postgres.
func (s *service) Record(ctx context.Context, entry Entry) (*models.SaleRecord, error) {
	if strings.TrimSpace(entry.TerminalID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "terminal id is required")
	}
	if len(entry.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a sale needs at least one item")
	}
	if entry.SettledAt.IsZero() {
		entry.SettledAt = time.Now().UTC()
	}

	record := &models.SaleRecord{
		ID:            uuid.New(),
		TerminalID:    entry.TerminalID,
		Operator:      entry.Operator,
		PaymentMethod: entry.PaymentMethod,
		ResidentID:    parseResidentID(entry.ResidentID),
		TotalCents:    entry.TotalCents,
		SettledAt:     entry.SettledAt,
	}
	for _, item := range entry.Items {
		record.Items = append(record.Items, models.SaleItem{
			ID:             uuid.New(),
			SaleID:         record.ID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist sale record")
	}
	return record, nil
}

// ListRecent returns the latest journal entries, newest first. A blank
// terminal id lists across all terminals.
func (s *service) ListRecent(ctx context.Context, terminalID string, limit int) ([]models.SaleRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultListLimit
	}
	records, err := s.repo.ListRecent(ctx, strings.TrimSpace(terminalID), limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sale records")
	}
	return records, nil
}

// Get loads one journal entry with its items.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.SaleRecord, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale id is required")
	}
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "sale record not found")
	}
	return record, nil
}

func parseResidentID(raw *string) *uuid.UUID {
	if raw == nil {
		return nil
	}
	parsed, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil
	}
	return &parsed
}
