package settings

import (
	"github.com/griphyn/agent-backend/pkg/db/models"
)

// NegotiationSettingsDTO carries the guardrails the recommendation engine
// consumes.
type NegotiationSettingsDTO struct {
	MinDealAmount         int64 `json:"minDealAmount"`
	AutoApprovalThreshold int64 `json:"autoApprovalThreshold"`
	UsageRightsApproval   bool  `json:"usageRightsApproval"`
	TimelineApproval      bool  `json:"timelineApproval"`
	AutoDeclineNonAligned bool  `json:"autoDeclineNonAligned"`
}

// EscalationSettingsDTO carries the escalation toggles.
type EscalationSettingsDTO struct {
	HighValueDeals    bool `json:"highValueDeals"`
	UnusualTerms      bool `json:"unusualTerms"`
	PaymentDelays     bool `json:"paymentDelays"`
	NewBrandInquiries bool `json:"newBrandInquiries"`
}

// NotificationSettingsDTO carries the notification preferences.
type NotificationSettingsDTO struct {
	SMSNotifications   bool   `json:"smsNotifications"`
	EmailNotifications bool   `json:"emailNotifications"`
	PhoneNumber        string `json:"phoneNumber"`
}

// RateCardEntryDTO is one priced deliverable row.
type RateCardEntryDTO struct {
	ID             string `json:"id"`
	Label          string `json:"label"`
	DeliverableKey string `json:"deliverableKey"`
	Price          int64  `json:"price"`
	Position       int    `json:"position"`
}

// SettingsDTO is the full agent configuration for one creator.
type SettingsDTO struct {
	CreatorID     string                  `json:"creatorId"`
	Negotiation   NegotiationSettingsDTO  `json:"negotiation"`
	Escalation    EscalationSettingsDTO   `json:"escalation"`
	Notifications NotificationSettingsDTO `json:"notifications"`
	RateCard      []RateCardEntryDTO      `json:"rateCard"`
}

// FromModels assembles the DTO from the settings row and its rate card.
func FromModels(settings *models.AgentSettings, rateCard []models.RateCardEntry) *SettingsDTO {
	if settings == nil {
		return nil
	}

	entries := make([]RateCardEntryDTO, 0, len(rateCard))
	for _, entry := range rateCard {
		entries = append(entries, RateCardEntryDTO{
			ID:             entry.ID.String(),
			Label:          entry.Label,
			DeliverableKey: entry.DeliverableKey,
			Price:          entry.Price,
			Position:       entry.Position,
		})
	}

	phone := ""
	if settings.NotificationPhoneNumber != nil {
		phone = *settings.NotificationPhoneNumber
	}

	return &SettingsDTO{
		CreatorID: settings.CreatorID.String(),
		Negotiation: NegotiationSettingsDTO{
			MinDealAmount:         settings.MinDealAmount,
			AutoApprovalThreshold: settings.AutoApprovalThreshold,
			UsageRightsApproval:   settings.UsageRightsApproval,
			TimelineApproval:      settings.TimelineApproval,
			AutoDeclineNonAligned: settings.AutoDeclineNonAligned,
		},
		Escalation: EscalationSettingsDTO{
			HighValueDeals:    settings.EscalateHighValueDeals,
			UnusualTerms:      settings.EscalateUnusualTerms,
			PaymentDelays:     settings.EscalatePaymentDelays,
			NewBrandInquiries: settings.EscalateNewBrandInquiry,
		},
		Notifications: NotificationSettingsDTO{
			SMSNotifications:   settings.SMSNotifications,
			EmailNotifications: settings.EmailNotifications,
			PhoneNumber:        phone,
		},
		RateCard: entries,
	}
}
