package payments

import (
	"time"

	"github.com/griphyn/agent-backend/pkg/db/models"
)

// PayoutDTO is the API shape of a payout milestone.
type PayoutDTO struct {
	ID        string  `json:"id"`
	DealID    *string `json:"dealId,omitempty"`
	DealTitle string  `json:"dealTitle"`
	BrandName string  `json:"brandName"`
	Amount    string  `json:"amount"`
	Status    string  `json:"status"`
	Milestone *string `json:"milestone,omitempty"`
	DueDate   *string `json:"dueDate,omitempty"`
}

// InvoiceDTO is the API shape of an invoice.
type InvoiceDTO struct {
	ID        string  `json:"id"`
	DealID    *string `json:"dealId,omitempty"`
	Number    string  `json:"number"`
	DealTitle string  `json:"dealTitle"`
	BrandName string  `json:"brandName"`
	Amount    string  `json:"amount"`
	Status    string  `json:"status"`
	IssuedAt  string  `json:"issuedAt"`
	PaidAt    *string `json:"paidAt,omitempty"`
}

// OverviewDTO aggregates the headline numbers for the payments page.
type OverviewDTO struct {
	TotalUpcoming       string `json:"totalUpcoming"`
	TotalHeldInEscrow   string `json:"totalHeldInEscrow"`
	OutstandingInvoices string `json:"outstandingInvoices"`
	PayoutCount         int    `json:"payoutCount"`
	InvoiceCount        int    `json:"invoiceCount"`
}

// PayoutFromModel converts a payout record into its DTO.
func PayoutFromModel(payout *models.Payout) *PayoutDTO {
	if payout == nil {
		return nil
	}
	dto := &PayoutDTO{
		ID:        payout.ID.String(),
		DealTitle: payout.DealTitle,
		BrandName: payout.BrandName,
		Amount:    payout.Amount.StringFixed(2),
		Status:    payout.Status.String(),
		Milestone: payout.Milestone,
	}
	if payout.DealID != nil {
		id := payout.DealID.String()
		dto.DealID = &id
	}
	if payout.DueDate != nil {
		due := payout.DueDate.Format(time.RFC3339)
		dto.DueDate = &due
	}
	return dto
}

// InvoiceFromModel converts an invoice record into its DTO.
func InvoiceFromModel(invoice *models.Invoice) *InvoiceDTO {
	if invoice == nil {
		return nil
	}
	dto := &InvoiceDTO{
		ID:        invoice.ID.String(),
		Number:    invoice.Number,
		DealTitle: invoice.DealTitle,
		BrandName: invoice.BrandName,
		Amount:    invoice.Amount.StringFixed(2),
		Status:    invoice.Status.String(),
		IssuedAt:  invoice.IssuedAt.Format(time.RFC3339),
	}
	if invoice.DealID != nil {
		id := invoice.DealID.String()
		dto.DealID = &id
	}
	if invoice.PaidAt != nil {
		paid := invoice.PaidAt.Format(time.RFC3339)
		dto.PaidAt = &paid
	}
	return dto
}
