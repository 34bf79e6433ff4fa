package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/griphyn/agent-backend/pkg/enums"
)

// Payout is an upcoming or released payment milestone tied to a deal.
type Payout struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CreatorID uuid.UUID          `gorm:"column:creator_id;type:uuid;not null;index"`
	DealID    *uuid.UUID         `gorm:"column:deal_id;type:uuid"`
	DealTitle string             `gorm:"column:deal_title;not null"`
	BrandName string             `gorm:"column:brand_name;not null"`
	Amount    decimal.Decimal    `gorm:"column:amount;type:numeric(12,2);not null"`
	Status    enums.PayoutStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Milestone *string            `gorm:"column:milestone"`
	DueDate   *time.Time         `gorm:"column:due_date"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default pluralization.
func (Payout) TableName() string {
	return "payouts"
}
