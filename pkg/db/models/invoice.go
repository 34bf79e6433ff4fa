package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/griphyn/agent-backend/pkg/enums"
)

// Invoice records a bill issued to a brand for a deal.
type Invoice struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CreatorID uuid.UUID           `gorm:"column:creator_id;type:uuid;not null;index"`
	DealID    *uuid.UUID          `gorm:"column:deal_id;type:uuid"`
	Number    string              `gorm:"column:number;not null;uniqueIndex"`
	DealTitle string              `gorm:"column:deal_title;not null"`
	BrandName string              `gorm:"column:brand_name;not null"`
	Amount    decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	Status    enums.InvoiceStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	IssuedAt  time.Time           `gorm:"column:issued_at;not null"`
	PaidAt    *time.Time          `gorm:"column:paid_at"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default pluralization.
func (Invoice) TableName() string {
	return "invoices"
}
