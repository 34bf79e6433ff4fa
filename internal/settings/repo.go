package settings

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/griphyn/agent-backend/pkg/db/models"
)

// Repository handles agent settings and rate card persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to settings operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByCreator loads a creator's settings row.
func (r *Repository) FindByCreator(ctx context.Context, creatorID uuid.UUID) (*models.AgentSettings, error) {
	var settings models.AgentSettings
	if err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save upserts the settings row.
func (r *Repository) Save(ctx context.Context, settings *models.AgentSettings) error {
	if settings == nil {
		return fmt.Errorf("settings is required")
	}
	return r.db.WithContext(ctx).Save(settings).Error
}

// ListRateCard returns a creator's rate card ordered by position.
func (r *Repository) ListRateCard(ctx context.Context, creatorID uuid.UUID) ([]models.RateCardEntry, error) {
	var entries []models.RateCardEntry
	if err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("position ASC, created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ReplaceRateCard swaps a creator's whole rate card in one transaction.
func (r *Repository) ReplaceRateCard(ctx context.Context, creatorID uuid.UUID, entries []models.RateCardEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("creator_id = ?", creatorID).Delete(&models.RateCardEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		for i := range entries {
			entries[i].CreatorID = creatorID
			entries[i].Position = i
		}
		return tx.Create(&entries).Error
	})
}
