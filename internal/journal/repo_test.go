package journal

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/condostore/pos-backend/pkg/db/models"
	"github.com/condostore/pos-backend/pkg/enums"
)

func setupJournalTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SaleRecord{}, &models.SaleItem{}))
	return db
}

func saleFixture(terminalID string, settledAt time.Time) *models.SaleRecord {
	id := uuid.New()
	return &models.SaleRecord{
		ID:            id,
		TerminalID:    terminalID,
		Operator:      "ana",
		PaymentMethod: enums.PaymentMethodCash,
		TotalCents:    1000,
		SettledAt:     settledAt,
		Items: []models.SaleItem{
			{ID: uuid.New(), SaleID: id, ProductID: "p-1", ProductName: "Soda", Quantity: 2, UnitPriceCents: 500},
		},
	}
}

func TestRepositoryCreateAndGet(t *testing.T) {
	repo := NewRepository(setupJournalTestDB(t))
	ctx := context.Background()

	record := saleFixture("term-1", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, record))

	loaded, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, loaded.ID)
	assert.Equal(t, int64(1000), loaded.TotalCents)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "Soda", loaded.Items[0].ProductName)
}

func TestRepositoryListRecent(t *testing.T) {
	repo := NewRepository(setupJournalTestDB(t))
	ctx := context.Background()

	base := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, saleFixture("term-1", base.Add(-2*time.Hour))))
	require.NoError(t, repo.Create(ctx, saleFixture("term-1", base)))
	require.NoError(t, repo.Create(ctx, saleFixture("term-2", base.Add(-time.Hour))))

	all, err := repo.ListRecent(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].SettledAt.After(all[1].SettledAt) || all[0].SettledAt.Equal(all[1].SettledAt))

	scoped, err := repo.ListRecent(ctx, "term-2", 10)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "term-2", scoped[0].TerminalID)

	limited, err := repo.ListRecent(ctx, "term-1", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, base.Unix(), limited[0].SettledAt.Unix())
}
