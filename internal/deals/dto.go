package deals

import (
	"time"

	"github.com/griphyn/agent-backend/pkg/db/models"
	"github.com/griphyn/agent-backend/pkg/enums"
	"github.com/griphyn/agent-backend/pkg/types"
)

// DealDTO is the wire shape for a deal.
type DealDTO struct {
	ID             string              `json:"id"`
	CreatorID      string              `json:"creatorId"`
	BrandID        string              `json:"brandId,omitempty"`
	BrandName      string              `json:"brandName,omitempty"`
	Title          string              `json:"title"`
	Summary        string              `json:"summary,omitempty"`
	Stage          enums.DealStage     `json:"stage"`
	Source         enums.DealSource    `json:"source"`
	EstimatedValue int64               `json:"estimatedValue"`
	CurrencyCode   string              `json:"currencyCode"`
	UsageRights    string              `json:"usageRights,omitempty"`
	PaymentStatus  enums.PaymentStatus `json:"paymentStatus"`
	CloseDate      *time.Time          `json:"closeDate,omitempty"`
	GoLiveDate     *time.Time          `json:"goLiveDate,omitempty"`
	AISummary      string              `json:"aiSummary,omitempty"`
	CreativeBrief  types.CreativeBrief `json:"creativeBrief"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// ListDealsDTO is one page of deals plus the cursor for the next page.
type ListDealsDTO struct {
	Deals      []DealDTO `json:"deals"`
	NextCursor string    `json:"nextCursor,omitempty"`
}

// FromModel converts a deal row into its wire shape.
func FromModel(deal *models.Deal) *DealDTO {
	if deal == nil {
		return nil
	}

	dto := &DealDTO{
		ID:             deal.ID.String(),
		CreatorID:      deal.CreatorID.String(),
		Title:          deal.Title,
		Summary:        derefString(deal.Summary),
		Stage:          deal.Stage,
		Source:         deal.Source,
		EstimatedValue: deal.EstimatedValue.Round(0).IntPart(),
		CurrencyCode:   deal.CurrencyCode,
		UsageRights:    derefString(deal.UsageRights),
		PaymentStatus:  deal.PaymentStatus,
		CloseDate:      deal.CloseDate,
		GoLiveDate:     deal.GoLiveDate,
		AISummary:      derefString(deal.AISummary),
		CreativeBrief:  deal.CreativeBrief,
		CreatedAt:      deal.CreatedAt,
		UpdatedAt:      deal.UpdatedAt,
	}
	if deal.BrandID != nil {
		dto.BrandID = deal.BrandID.String()
	}
	if deal.Brand != nil {
		dto.BrandName = deal.Brand.Name
	}
	return dto
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
