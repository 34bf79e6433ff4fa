package negotiation

import (
	"time"

	"github.com/google/uuid"

	"github.com/griphyn/agent-backend/pkg/enums"
)

// Plan is the per-deal negotiation record. It moves through
// idle → recommendation-ready → in-progress → completed, with reset
// returning any non-idle plan to idle.
type Plan struct {
	DealID             uuid.UUID               `json:"dealId"`
	Status             enums.NegotiationStatus `json:"status"`
	RecommendedCounter int64                   `json:"recommendedCounter"`
	PercentageIncrease int                     `json:"percentageIncrease"`
	Rationale          []string                `json:"rationale"`
	EmailDraft         string                  `json:"emailDraft"`
	Drafter            string                  `json:"drafter,omitempty"`
	LastUpdated        time.Time               `json:"lastUpdated"`
}
