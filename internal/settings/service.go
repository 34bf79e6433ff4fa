package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/griphyn/agent-backend/internal/negotiation"
	"github.com/griphyn/agent-backend/pkg/db/models"
	pkgerrors "github.com/griphyn/agent-backend/pkg/errors"
)

type settingsRepository interface {
	FindByCreator(ctx context.Context, creatorID uuid.UUID) (*models.AgentSettings, error)
	Save(ctx context.Context, settings *models.AgentSettings) error
	ListRateCard(ctx context.Context, creatorID uuid.UUID) ([]models.RateCardEntry, error)
	ReplaceRateCard(ctx context.Context, creatorID uuid.UUID, entries []models.RateCardEntry) error
}

// Service exposes agent settings operations. It also serves guardrails and
// rate cards to the negotiation engine.
type Service interface {
	Get(ctx context.Context, creatorID uuid.UUID) (*SettingsDTO, error)
	Update(ctx context.Context, creatorID uuid.UUID, input UpdateSettingsInput) (*SettingsDTO, error)
	GuardrailsFor(ctx context.Context, creatorID uuid.UUID) (negotiation.Guardrails, error)
	RateCardFor(ctx context.Context, creatorID uuid.UUID) ([]negotiation.Rate, error)
}

type service struct {
	repo settingsRepository
}

// NewService builds the settings service.
func NewService(repo settingsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &service{repo: repo}, nil
}

// UpdateSettingsInput captures a partial settings mutation. Nil fields keep
// their stored values; a non-nil RateCard replaces the whole card.
type UpdateSettingsInput struct {
	MinDealAmount         *int64
	AutoApprovalThreshold *int64
	UsageRightsApproval   *bool
	TimelineApproval      *bool
	AutoDeclineNonAligned *bool

	EscalateHighValueDeals  *bool
	EscalateUnusualTerms    *bool
	EscalatePaymentDelays   *bool
	EscalateNewBrandInquiry *bool

	SMSNotifications   *bool
	EmailNotifications *bool
	PhoneNumber        *string

	RateCard *[]RateCardEntryInput
}

// RateCardEntryInput is one incoming rate card row.
type RateCardEntryInput struct {
	Label          string
	DeliverableKey string
	Price          int64
}

// loadOrSeed returns the creator's settings and rate card, creating defaults
// on first read so every creator always has usable guardrails.
func (s *service) loadOrSeed(ctx context.Context, creatorID uuid.UUID) (*models.AgentSettings, []models.RateCardEntry, error) {
	stored, err := s.repo.FindByCreator(ctx, creatorID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load agent settings")
		}
		stored = defaultSettings(creatorID)
		if err := s.repo.Save(ctx, stored); err != nil {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed agent settings")
		}
	}

	rateCard, err := s.repo.ListRateCard(ctx, creatorID)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rate card")
	}
	if len(rateCard) == 0 {
		seeded := defaultRateCard(creatorID)
		if err := s.repo.ReplaceRateCard(ctx, creatorID, seeded); err != nil {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed rate card")
		}
		rateCard = seeded
	}

	return stored, rateCard, nil
}

func (s *service) Get(ctx context.Context, creatorID uuid.UUID) (*SettingsDTO, error) {
	stored, rateCard, err := s.loadOrSeed(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	return FromModels(stored, rateCard), nil
}

func (s *service) Update(ctx context.Context, creatorID uuid.UUID, input UpdateSettingsInput) (*SettingsDTO, error) {
	stored, rateCard, err := s.loadOrSeed(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	if input.MinDealAmount != nil {
		if *input.MinDealAmount < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "minDealAmount must be non-negative")
		}
		stored.MinDealAmount = *input.MinDealAmount
	}
	if input.AutoApprovalThreshold != nil {
		if *input.AutoApprovalThreshold < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "autoApprovalThreshold must be non-negative")
		}
		stored.AutoApprovalThreshold = *input.AutoApprovalThreshold
	}
	if input.UsageRightsApproval != nil {
		stored.UsageRightsApproval = *input.UsageRightsApproval
	}
	if input.TimelineApproval != nil {
		stored.TimelineApproval = *input.TimelineApproval
	}
	if input.AutoDeclineNonAligned != nil {
		stored.AutoDeclineNonAligned = *input.AutoDeclineNonAligned
	}
	if input.EscalateHighValueDeals != nil {
		stored.EscalateHighValueDeals = *input.EscalateHighValueDeals
	}
	if input.EscalateUnusualTerms != nil {
		stored.EscalateUnusualTerms = *input.EscalateUnusualTerms
	}
	if input.EscalatePaymentDelays != nil {
		stored.EscalatePaymentDelays = *input.EscalatePaymentDelays
	}
	if input.EscalateNewBrandInquiry != nil {
		stored.EscalateNewBrandInquiry = *input.EscalateNewBrandInquiry
	}
	if input.SMSNotifications != nil {
		stored.SMSNotifications = *input.SMSNotifications
	}
	if input.EmailNotifications != nil {
		stored.EmailNotifications = *input.EmailNotifications
	}
	if input.PhoneNumber != nil {
		phone := strings.TrimSpace(*input.PhoneNumber)
		if phone == "" {
			stored.NotificationPhoneNumber = nil
		} else {
			stored.NotificationPhoneNumber = &phone
		}
	}

	if err := s.repo.Save(ctx, stored); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save agent settings")
	}

	if input.RateCard != nil {
		entries := make([]models.RateCardEntry, 0, len(*input.RateCard))
		// Validate the whole card before rejecting so the caller sees every
		// bad row at once.
		var invalid error
		for i, entry := range *input.RateCard {
			if strings.TrimSpace(entry.DeliverableKey) == "" {
				invalid = multierr.Append(invalid, fmt.Errorf("entry %d: deliverableKey is required", i))
			}
			if entry.Price < 0 {
				invalid = multierr.Append(invalid, fmt.Errorf("entry %d: price must be non-negative", i))
			}
			entries = append(entries, models.RateCardEntry{
				CreatorID:      creatorID,
				Label:          entry.Label,
				DeliverableKey: entry.DeliverableKey,
				Price:          entry.Price,
				Position:       i,
			})
		}
		if invalid != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, invalid, "invalid rate card: "+invalid.Error())
		}
		if err := s.repo.ReplaceRateCard(ctx, creatorID, entries); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace rate card")
		}
		rateCard = entries
	}

	return FromModels(stored, rateCard), nil
}

func (s *service) GuardrailsFor(ctx context.Context, creatorID uuid.UUID) (negotiation.Guardrails, error) {
	stored, _, err := s.loadOrSeed(ctx, creatorID)
	if err != nil {
		return negotiation.Guardrails{}, err
	}
	return negotiation.Guardrails{
		MinDealAmount:         stored.MinDealAmount,
		AutoApprovalThreshold: stored.AutoApprovalThreshold,
		UsageRightsApproval:   stored.UsageRightsApproval,
		TimelineApproval:      stored.TimelineApproval,
		AutoDeclineNonAligned: stored.AutoDeclineNonAligned,
	}, nil
}

func (s *service) RateCardFor(ctx context.Context, creatorID uuid.UUID) ([]negotiation.Rate, error) {
	_, rateCard, err := s.loadOrSeed(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	rates := make([]negotiation.Rate, 0, len(rateCard))
	for _, entry := range rateCard {
		rates = append(rates, negotiation.Rate{
			ID:             entry.ID.String(),
			Label:          entry.Label,
			DeliverableKey: entry.DeliverableKey,
			Price:          entry.Price,
		})
	}
	return rates, nil
}
