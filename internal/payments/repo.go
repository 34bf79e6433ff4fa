package payments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/griphyn/agent-backend/pkg/db/models"
)

// Repository handles payout and invoice persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to payment operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListPayouts returns a creator's payouts, soonest due first.
func (r *Repository) ListPayouts(ctx context.Context, creatorID uuid.UUID) ([]models.Payout, error) {
	var payouts []models.Payout
	if err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("due_date ASC NULLS LAST, created_at ASC").
		Find(&payouts).Error; err != nil {
		return nil, err
	}
	return payouts, nil
}

// FindPayoutByID loads one payout.
func (r *Repository) FindPayoutByID(ctx context.Context, id uuid.UUID) (*models.Payout, error) {
	var payout models.Payout
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&payout).Error; err != nil {
		return nil, err
	}
	return &payout, nil
}

// UpdatePayout saves the provided payout.
func (r *Repository) UpdatePayout(ctx context.Context, payout *models.Payout) error {
	if payout == nil {
		return fmt.Errorf("payout is required")
	}
	return r.db.WithContext(ctx).Save(payout).Error
}

// ListInvoices returns a creator's invoices, newest issued first.
func (r *Repository) ListInvoices(ctx context.Context, creatorID uuid.UUID) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("issued_at DESC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindInvoiceByID loads one invoice.
func (r *Repository) FindInvoiceByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// UpdateInvoice saves the provided invoice.
func (r *Repository) UpdateInvoice(ctx context.Context, invoice *models.Invoice) error {
	if invoice == nil {
		return fmt.Errorf("invoice is required")
	}
	return r.db.WithContext(ctx).Save(invoice).Error
}
