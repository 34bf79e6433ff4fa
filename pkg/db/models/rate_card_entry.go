package models

import (
	"time"

	"github.com/google/uuid"
)

// RateCardEntry is one creator-configured price point. The deliverable key
// should reference the static catalog but this is not enforced; unmatched keys
// simply never price a deliverable line.
type RateCardEntry struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CreatorID      uuid.UUID `gorm:"column:creator_id;type:uuid;not null;index"`
	Label          string    `gorm:"column:label;not null"`
	DeliverableKey string    `gorm:"column:deliverable_key;not null"`
	Price          int64     `gorm:"column:price;not null;default:0"`
	Position       int       `gorm:"column:position;not null;default:0"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default pluralization.
func (RateCardEntry) TableName() string {
	return "rate_card_entries"
}
