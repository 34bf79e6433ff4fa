package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/griphyn/agent-backend/pkg/enums"
	"github.com/griphyn/agent-backend/pkg/types"
)

// Deal is one sponsorship opportunity moving through the pipeline.
type Deal struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CreatorID      uuid.UUID           `gorm:"column:creator_id;type:uuid;not null;index"`
	BrandID        *uuid.UUID          `gorm:"column:brand_id;type:uuid"`
	Title          string              `gorm:"column:title;not null"`
	Summary        *string             `gorm:"column:summary"`
	Stage          enums.DealStage     `gorm:"column:stage;type:text;not null;default:'new'"`
	Source         enums.DealSource    `gorm:"column:source;type:text;not null;default:'inbound'"`
	EstimatedValue decimal.Decimal     `gorm:"column:estimated_value;type:numeric(12,2);not null;default:0"`
	CurrencyCode   string              `gorm:"column:currency_code;not null;default:'USD'"`
	UsageRights    *string             `gorm:"column:usage_rights"`
	PaymentStatus  enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'awaiting_payment'"`
	CloseDate      *time.Time          `gorm:"column:close_date"`
	GoLiveDate     *time.Time          `gorm:"column:go_live_date"`
	AISummary      *string             `gorm:"column:ai_summary"`
	CreativeBrief  types.CreativeBrief `gorm:"column:creative_brief;type:jsonb"`
	Brand          *Brand              `gorm:"foreignKey:BrandID"`
	InboundEmail   *InboundEmail       `gorm:"foreignKey:DealID"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default pluralization.
func (Deal) TableName() string {
	return "deals"
}
