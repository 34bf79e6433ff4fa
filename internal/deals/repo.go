package deals

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/griphyn/agent-backend/pkg/db/models"
	"github.com/griphyn/agent-backend/pkg/enums"
	"github.com/griphyn/agent-backend/pkg/pagination"
)

// Repository handles deal and brand persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to deal operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new deal row.
func (r *Repository) Create(ctx context.Context, deal *models.Deal) error {
	if deal == nil {
		return fmt.Errorf("deal is required")
	}
	return r.db.WithContext(ctx).Create(deal).Error
}

// FindByID loads a creator's deal with its brand and inbound email. A deal
// owned by another creator reads as not found.
func (r *Repository) FindByID(ctx context.Context, creatorID uuid.UUID, id uuid.UUID) (*models.Deal, error) {
	var deal models.Deal
	if err := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("InboundEmail").
		Where("id = ? AND creator_id = ?", id, creatorID).
		First(&deal).Error; err != nil {
		return nil, err
	}
	return &deal, nil
}

// ListFilter narrows the deal listing.
type ListFilter struct {
	Stage *enums.DealStage
}

// List returns a creator's deals newest first, keyset-paginated on
// (created_at, id). It fetches limit rows; callers pass a buffered limit to
// detect the next page.
func (r *Repository) List(ctx context.Context, creatorID uuid.UUID, filter ListFilter, cursor *pagination.Cursor, limit int) ([]models.Deal, error) {
	query := r.db.WithContext(ctx).
		Preload("Brand").
		Where("creator_id = ?", creatorID)

	if filter.Stage != nil {
		query = query.Where("stage = ?", *filter.Stage)
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var deals []models.Deal
	if err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&deals).Error; err != nil {
		return nil, err
	}
	return deals, nil
}

// ListRecent returns a creator's most recently touched deals, capped at limit.
func (r *Repository) ListRecent(ctx context.Context, creatorID uuid.UUID, limit int) ([]models.Deal, error) {
	var deals []models.Deal
	if err := r.db.WithContext(ctx).
		Preload("Brand").
		Where("creator_id = ?", creatorID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&deals).Error; err != nil {
		return nil, err
	}
	return deals, nil
}

// ListOpen returns a creator's deals that are still in play, soonest go-live
// first. Deals without a go-live date sort last.
func (r *Repository) ListOpen(ctx context.Context, creatorID uuid.UUID) ([]models.Deal, error) {
	var deals []models.Deal
	if err := r.db.WithContext(ctx).
		Preload("Brand").
		Where("creator_id = ?", creatorID).
		Where("stage NOT IN ?", []enums.DealStage{enums.DealStageClosedWon, enums.DealStageClosedLost}).
		Order("go_live_date ASC NULLS LAST, created_at ASC").
		Find(&deals).Error; err != nil {
		return nil, err
	}
	return deals, nil
}

// Delete removes a creator's deal row. Missing rows are not an error.
func (r *Repository) Delete(ctx context.Context, creatorID uuid.UUID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ? AND creator_id = ?", id, creatorID).Delete(&models.Deal{}).Error
}

// Update saves the provided deal.
func (r *Repository) Update(ctx context.Context, deal *models.Deal) error {
	if deal == nil {
		return fmt.Errorf("deal is required")
	}
	return r.db.WithContext(ctx).Save(deal).Error
}

// FindOrCreateBrand resolves a brand by case-insensitive name, creating it
// when absent.
func (r *Repository) FindOrCreateBrand(ctx context.Context, name string) (*models.Brand, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("brand name is required")
	}

	var brand models.Brand
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", trimmed).
		First(&brand).Error
	if err == nil {
		return &brand, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	brand = models.Brand{Name: trimmed}
	if err := r.db.WithContext(ctx).Create(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

// AttachInboundEmail stores the parsed email that seeded a deal.
func (r *Repository) AttachInboundEmail(ctx context.Context, email *models.InboundEmail) error {
	if email == nil {
		return fmt.Errorf("email is required")
	}
	return r.db.WithContext(ctx).Create(email).Error
}
