package models

import (
	"time"

	"github.com/google/uuid"
)

// Brand is a sponsor the creator has worked with or been contacted by.
type Brand struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	ContactEmail *string   `gorm:"column:contact_email"`
	Website      *string   `gorm:"column:website"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default pluralization.
func (Brand) TableName() string {
	return "brands"
}
