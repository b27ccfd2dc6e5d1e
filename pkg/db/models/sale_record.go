package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/condostore/pos-backend/pkg/enums"
)

// SaleRecord is the local journal entry for a sale the settlement service
// accepted. It exists for receipt reprint and end-of-day audit only; the
// authoritative record lives upstream.
type SaleRecord struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	TerminalID    string              `gorm:"column:terminal_id;not null;index"`
	Operator      string              `gorm:"column:operator;not null"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;not null"`
	ResidentID    *uuid.UUID          `gorm:"column:resident_id;type:uuid"`
	TotalCents    int64               `gorm:"column:total_cents;not null"`
	Items         []SaleItem          `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	SettledAt     time.Time           `gorm:"column:settled_at;not null;index"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
}
