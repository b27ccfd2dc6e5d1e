package journal

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/condostore/pos-backend/pkg/db/models"
)

// Repository manages persistence for the local sales journal.
type Repository interface {
	Create(ctx context.Context, record *models.SaleRecord) error
	ListRecent(ctx context.Context, terminalID string, limit int) ([]models.SaleRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.SaleRecord, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a journal repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, record *models.SaleRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) ListRecent(ctx context.Context, terminalID string, limit int) ([]models.SaleRecord, error) {
	query := r.db.WithContext(ctx).
		Preload("Items").
		Order("settled_at DESC").
		Limit(limit)
	if terminalID != "" {
		query = query.Where("terminal_id = ?", terminalID)
	}

	var records []models.SaleRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.SaleRecord, error) {
	var record models.SaleRecord
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
