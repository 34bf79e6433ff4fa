package settings

import (
	"github.com/google/uuid"

	"github.com/griphyn/agent-backend/pkg/db/models"
	"github.com/griphyn/agent-backend/pkg/deliverables"
)

const (
	defaultMinDealAmount         = 5000
	defaultAutoApprovalThreshold = 10000
)

// First six catalog presets get these starter prices, in catalog order.
var defaultRateCardPrices = []int64{5000, 5500, 1200, 3000, 4000, 8000}

// defaultSettings seeds a creator's guardrails the first time they are read.
func defaultSettings(creatorID uuid.UUID) *models.AgentSettings {
	return &models.AgentSettings{
		CreatorID:               creatorID,
		MinDealAmount:           defaultMinDealAmount,
		AutoApprovalThreshold:   defaultAutoApprovalThreshold,
		UsageRightsApproval:     true,
		TimelineApproval:        true,
		AutoDeclineNonAligned:   true,
		EscalateHighValueDeals:  true,
		EscalateUnusualTerms:    true,
		EscalatePaymentDelays:   true,
		EscalateNewBrandInquiry: false,
		SMSNotifications:        true,
		EmailNotifications:      true,
	}
}

// defaultRateCard seeds a starter rate card from the catalog.
func defaultRateCard(creatorID uuid.UUID) []models.RateCardEntry {
	count := len(defaultRateCardPrices)
	if count > len(deliverables.Presets) {
		count = len(deliverables.Presets)
	}

	entries := make([]models.RateCardEntry, 0, count)
	for i := 0; i < count; i++ {
		preset := deliverables.Presets[i]
		entries = append(entries, models.RateCardEntry{
			CreatorID:      creatorID,
			Label:          preset.Label,
			DeliverableKey: preset.DeliverableKey,
			Price:          defaultRateCardPrices[i],
			Position:       i,
		})
	}
	return entries
}
