package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// InboundEmail stores the parsed brand email that seeded an inbound deal.
type InboundEmail struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DealID      uuid.UUID       `gorm:"column:deal_id;type:uuid;not null;index"`
	Subject     *string         `gorm:"column:subject"`
	FromAddress string          `gorm:"column:from_address;not null"`
	ToAddress   *string         `gorm:"column:to_address"`
	Body        *string         `gorm:"column:body"`
	ParsedData  json.RawMessage `gorm:"column:parsed_data;type:jsonb"`
	ReceivedAt  time.Time       `gorm:"column:received_at;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides the default pluralization.
func (InboundEmail) TableName() string {
	return "inbound_emails"
}
