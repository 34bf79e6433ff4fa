package negotiation

import (
	"time"

	"github.com/griphyn/agent-backend/pkg/enums"
)

// PlanDTO is the wire shape for a negotiation plan.
type PlanDTO struct {
	DealID             string                  `json:"dealId"`
	Status             enums.NegotiationStatus `json:"status"`
	RecommendedCounter int64                   `json:"recommendedCounter"`
	PercentageIncrease int                     `json:"percentageIncrease"`
	Rationale          []string                `json:"rationale"`
	EmailDraft         string                  `json:"emailDraft"`
	Drafter            string                  `json:"drafter,omitempty"`
	LastUpdated        time.Time               `json:"lastUpdated"`
}

// SummaryDTO is the wire shape for a priced deliverable summary.
type SummaryDTO struct {
	Breakdown []LineBreakdown `json:"breakdown"`
	Total     int64           `json:"total"`
}

// FromPlan converts the stored plan into its wire shape.
func FromPlan(plan *Plan) *PlanDTO {
	if plan == nil {
		return nil
	}
	rationale := plan.Rationale
	if rationale == nil {
		rationale = []string{}
	}
	return &PlanDTO{
		DealID:             plan.DealID.String(),
		Status:             plan.Status,
		RecommendedCounter: plan.RecommendedCounter,
		PercentageIncrease: plan.PercentageIncrease,
		Rationale:          rationale,
		EmailDraft:         plan.EmailDraft,
		Drafter:            plan.Drafter,
		LastUpdated:        plan.LastUpdated,
	}
}

// FromSummary converts an engine summary into its wire shape.
func FromSummary(summary Summary) *SummaryDTO {
	breakdown := summary.Breakdown
	if breakdown == nil {
		breakdown = []LineBreakdown{}
	}
	return &SummaryDTO{Breakdown: breakdown, Total: summary.Total}
}
