package controllers

import (
	"net/http"

	"github.com/griphyn/agent-backend/api/responses"
	"github.com/griphyn/agent-backend/api/validators"
	"github.com/griphyn/agent-backend/internal/settings"
	"github.com/griphyn/agent-backend/pkg/logger"
)

type rateCardEntryRequest struct {
	Label          string `json:"label" validate:"required,max=120"`
	DeliverableKey string `json:"deliverableKey" validate:"required,max=80"`
	Price          int64  `json:"price" validate:"min=0"`
}

type updateSettingsRequest struct {
	MinDealAmount         *int64 `json:"minDealAmount" validate:"omitempty,min=0"`
	AutoApprovalThreshold *int64 `json:"autoApprovalThreshold" validate:"omitempty,min=0"`
	UsageRightsApproval   *bool  `json:"usageRightsApproval"`
	TimelineApproval      *bool  `json:"timelineApproval"`
	AutoDeclineNonAligned *bool  `json:"autoDeclineNonAligned"`

	EscalateHighValueDeals  *bool `json:"escalateHighValueDeals"`
	EscalateUnusualTerms    *bool `json:"escalateUnusualTerms"`
	EscalatePaymentDelays   *bool `json:"escalatePaymentDelays"`
	EscalateNewBrandInquiry *bool `json:"escalateNewBrandInquiry"`

	SMSNotifications   *bool   `json:"smsNotifications"`
	EmailNotifications *bool   `json:"emailNotifications"`
	PhoneNumber        *string `json:"phoneNumber" validate:"omitempty,max=32"`

	RateCard *[]rateCardEntryRequest `json:"rateCard" validate:"omitempty,dive"`
}

// GetSettings returns the creator's agent configuration, seeding defaults on
// first read.
func GetSettings(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, err := creatorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Get(r.Context(), creatorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// UpdateSettings applies a partial settings mutation. A rateCard array, when
// present, replaces the whole card.
func UpdateSettings(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, err := creatorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateSettingsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := settings.UpdateSettingsInput{
			MinDealAmount:           req.MinDealAmount,
			AutoApprovalThreshold:   req.AutoApprovalThreshold,
			UsageRightsApproval:     req.UsageRightsApproval,
			TimelineApproval:        req.TimelineApproval,
			AutoDeclineNonAligned:   req.AutoDeclineNonAligned,
			EscalateHighValueDeals:  req.EscalateHighValueDeals,
			EscalateUnusualTerms:    req.EscalateUnusualTerms,
			EscalatePaymentDelays:   req.EscalatePaymentDelays,
			EscalateNewBrandInquiry: req.EscalateNewBrandInquiry,
			SMSNotifications:        req.SMSNotifications,
			EmailNotifications:      req.EmailNotifications,
			PhoneNumber:             req.PhoneNumber,
		}
		if req.RateCard != nil {
			entries := make([]settings.RateCardEntryInput, 0, len(*req.RateCard))
			for _, entry := range *req.RateCard {
				entries = append(entries, settings.RateCardEntryInput{
					Label:          entry.Label,
					DeliverableKey: entry.DeliverableKey,
					Price:          entry.Price,
				})
			}
			input.RateCard = &entries
		}

		dto, err := svc.Update(r.Context(), creatorID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
