package negotiation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/griphyn/agent-backend/pkg/db/models"
	"github.com/griphyn/agent-backend/pkg/enums"
	pkgerrors "github.com/griphyn/agent-backend/pkg/errors"
	"github.com/griphyn/agent-backend/pkg/logger"
	"github.com/griphyn/agent-backend/pkg/metrics"
)

// Drafter labels used on metrics.
const (
	drafterLLM           = "llm"
	drafterDeterministic = "deterministic"
)

type dealsRepository interface {
	FindByID(ctx context.Context, creatorID uuid.UUID, id uuid.UUID) (*models.Deal, error)
}

type settingsProvider interface {
	GuardrailsFor(ctx context.Context, creatorID uuid.UUID) (Guardrails, error)
	RateCardFor(ctx context.Context, creatorID uuid.UUID) ([]Rate, error)
}

// Service exposes negotiation plan operations. Every operation verifies the
// deal belongs to the requesting creator; another creator's deal reads as
// not found.
type Service interface {
	GetPlan(ctx context.Context, creatorID uuid.UUID, dealID uuid.UUID) (*PlanDTO, error)
	GeneratePlan(ctx context.Context, creatorID uuid.UUID, dealID uuid.UUID) (*PlanDTO, error)
	ApprovePlan(ctx context.Context, creatorID uuid.UUID, dealID uuid.UUID) (*PlanDTO, error)
	CompletePlan(ctx context.Context, creatorID uuid.UUID, dealID uuid.UUID) (*PlanDTO, error)
	ResetPlan(ctx context.Context, creatorID uuid.UUID, dealID uuid.UUID) (*PlanDTO, error)
	SummarizeDeal(ctx context.Context, creatorID uuid.UUID, dealID uuid.UUID) (*SummaryDTO, error)
}

type service struct {
	deals    dealsRepository
	settings settingsProvider
	plans    PlanStore
	drafter  Drafter
	metrics  *metrics.NegotiationMetrics
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds the negotiation service. The drafter is optional; without
// one every plan comes from the deterministic engine.
func NewService(deals dealsRepository, settings settingsProvider, plans PlanStore, drafter Drafter, m *metrics.NegotiationMetrics, logg *logger.Logger) (Service, error) {
	if deals == nil {
		return nil, fmt.Errorf("deals repository required")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings provider required")
	}
	if plans == nil {
		return nil, fmt.Errorf("plan store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		deals:    deals,
		settings: settings,
		plans:    plans,
		drafter:  drafter,
		metrics:  m,
		logg:     logg,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// dealContext bundles everything one plan computation needs.
type dealContext struct {
	deal       *models.Deal
	guardrails Guardrails
	rateCard   []Rate
	summary    Summary
	offer      int64
	brandName  string
}

// requireDeal loads the deal scoped to the requesting creator.
func (s *service) requireDeal(ctx context.Context, creatorID uuid.UUID, dealID uuid.UUID) (*models.Deal, error) {
	deal, err := s.deals.FindByID(ctx, creatorID, dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "deal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load deal")
	}
	return deal, nil
}

func (s *service) contextFor(ctx context.Context, deal *models.Deal) (*dealContext, error) {
	guardrails, err := s.settings.GuardrailsFor(ctx, deal.CreatorID)
	if err != nil {
		return nil, err
	}
	rateCard, err := s.settings.RateCardFor(ctx, deal.CreatorID)
	if err != nil {
		return nil, err
	}

	brandName := ""
	if deal.Brand != nil {
		brandName = deal.Brand.Name
	}

	return &dealContext{
		deal:       deal,
		guardrails: guardrails,
		rateCard:   rateCard,
		summary:    Summarize(deal.CreativeBrief.Deliverables, rateCard),
		offer:      deal.EstimatedValue.Round(0).IntPart(),
		brandName:  brandName,
	}, nil
}

// baselinePlan computes the always-available deterministic plan for a deal.
func (s *service) baselinePlan(dc *dealContext, status enums.NegotiationStatus) *Plan {
	rec := Recommend(dc.offer, dc.guardrails, dc.summary.Total)
	return &Plan{
		DealID:             dc.deal.ID,
		Status:             status,
		RecommendedCounter: rec.RecommendedCounter,
		PercentageIncrease: rec.PercentageIncrease,
		Rationale:          rec.Rationale,
		EmailDraft:         BuildCounterEmail(dc.brandName, rec.RecommendedCounter, dc.summary.Breakdown, dc.guardrails),
		Drafter:            drafterDeterministic,
		LastUpdated:        s.now(),
	}
}

func (s *service) GetPlan(ctx context.Context, creatorID uuid.UUID, dealID uuid.UUID) (*PlanDTO, error) {
	deal, err := s.requireDeal(ctx, creatorID, dealID)
	if err != nil {
		return nil, err
	}

	plan, err := s.plans.Get(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if plan != nil {
		return FromPlan(plan), nil
	}

	// First sight of this deal: seed an idle plan with the deterministic
	// baseline so the caller always has numbers to show.
	dc, err := s.contextFor(ctx, deal)
	if err != nil {
		return nil, err
	}
	plan = s.baselinePlan(dc, enums.NegotiationStatusIdle)
	if err := s.plans.Save(ctx, plan); err != nil {
		return nil, err
	}
	return FromPlan(plan), nil
}

func (s *service) GeneratePlan(ctx context.Context, creatorID uuid.UUID, dealID uuid.UUID) (*PlanDTO, error) {
	deal, err := s.requireDeal(ctx, creatorID, dealID)
	if err != nil {
		return nil, err
	}

	existing, err := s.plans.Get(ctx, dealID)
	if err != nil {
		return nil, err
	}
	current := enums.NegotiationStatusIdle
	if existing != nil {
		current = existing.Status
	}
	if !current.CanTransitionTo(enums.NegotiationStatusRecommendationReady) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "plan must be idle before generating; reset it first").
			WithDetails(map[string]string{"status": current.String()})
	}

	dc, err := s.contextFor(ctx, deal)
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithDealID(ctx, dealID.String())
	plan := s.draftPlan(ctx, dc)

	if err := s.plans.Save(ctx, plan); err != nil {
		return nil, err
	}
	return FromPlan(plan), nil
}

// draftPlan asks the language-model drafter first and falls back to the
// deterministic engine when it is unavailable or returns garbage.
func (s *service) draftPlan(ctx context.Context, dc *dealContext) *Plan {
	if s.drafter != nil {
		started := s.now()
		result, err := s.drafter.Draft(ctx, DraftInput{
			DealID:       dc.deal.ID.String(),
			DealTitle:    dc.deal.Title,
			BrandName:    dc.brandName,
			Summary:      derefString(dc.deal.Summary),
			UsageRights:  derefString(dc.deal.UsageRights),
			Stage:        dc.deal.Stage.String(),
			CurrentOffer: dc.offer,
			Guardrails:   dc.guardrails,
			Deliverables: dc.summary,
		})
		s.metrics.ObserveDuration(drafterLLM, s.now().Sub(started))
		if err == nil {
			s.metrics.IncGenerated(drafterLLM)
			return &Plan{
				DealID:             dc.deal.ID,
				Status:             enums.NegotiationStatusRecommendationReady,
				RecommendedCounter: result.RecommendedCounter,
				PercentageIncrease: result.PercentageIncrease,
				Rationale:          result.Rationale,
				EmailDraft:         result.EmailDraft,
				Drafter:            drafterLLM,
				LastUpdated:        s.now(),
			}
		}
		s.metrics.IncFailure(drafterLLM)
		s.logg.Warn(ctx, "llm drafter failed, using deterministic plan")
	}

	plan := s.baselinePlan(dc, enums.NegotiationStatusRecommendationReady)
	s.metrics.IncGenerated(drafterDeterministic)
	return plan
}

func (s *service) ApprovePlan(ctx context.Context, creatorID uuid.UUID, dealID uuid.UUID) (*PlanDTO, error) {
	deal, err := s.requireDeal(ctx, creatorID, dealID)
	if err != nil {
		return nil, err
	}
	plan, err := s.requirePlan(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if !plan.Status.CanTransitionTo(enums.NegotiationStatusInProgress) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "plan is not awaiting approval").
			WithDetails(map[string]string{"status": plan.Status.String()})
	}

	// Regenerate the outgoing email against the current rate card so the
	// approved counter reflects any settings changes since generation.
	dc, err := s.contextFor(ctx, deal)
	if err != nil {
		return nil, err
	}
	plan.Status = enums.NegotiationStatusInProgress
	plan.EmailDraft = BuildCounterEmail(dc.brandName, plan.RecommendedCounter, dc.summary.Breakdown, dc.guardrails)
	plan.LastUpdated = s.now()

	if err := s.plans.Save(ctx, plan); err != nil {
		return nil, err
	}
	return FromPlan(plan), nil
}

func (s *service) CompletePlan(ctx context.Context, creatorID uuid.UUID, dealID uuid.UUID) (*PlanDTO, error) {
	if _, err := s.requireDeal(ctx, creatorID, dealID); err != nil {
		return nil, err
	}
	plan, err := s.requirePlan(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if !plan.Status.CanTransitionTo(enums.NegotiationStatusCompleted) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "plan is not in progress").
			WithDetails(map[string]string{"status": plan.Status.String()})
	}

	plan.Status = enums.NegotiationStatusCompleted
	plan.LastUpdated = s.now()
	if err := s.plans.Save(ctx, plan); err != nil {
		return nil, err
	}
	return FromPlan(plan), nil
}

func (s *service) ResetPlan(ctx context.Context, creatorID uuid.UUID, dealID uuid.UUID) (*PlanDTO, error) {
	deal, err := s.requireDeal(ctx, creatorID, dealID)
	if err != nil {
		return nil, err
	}
	plan, err := s.requirePlan(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if !plan.Status.CanTransitionTo(enums.NegotiationStatusIdle) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "plan is already idle")
	}

	dc, err := s.contextFor(ctx, deal)
	if err != nil {
		return nil, err
	}
	fresh := s.baselinePlan(dc, enums.NegotiationStatusIdle)
	if err := s.plans.Save(ctx, fresh); err != nil {
		return nil, err
	}
	return FromPlan(fresh), nil
}

func (s *service) SummarizeDeal(ctx context.Context, creatorID uuid.UUID, dealID uuid.UUID) (*SummaryDTO, error) {
	deal, err := s.requireDeal(ctx, creatorID, dealID)
	if err != nil {
		return nil, err
	}
	dc, err := s.contextFor(ctx, deal)
	if err != nil {
		return nil, err
	}
	return FromSummary(dc.summary), nil
}

func (s *service) requirePlan(ctx context.Context, dealID uuid.UUID) (*Plan, error) {
	plan, err := s.plans.Get(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "negotiation plan not found")
	}
	return plan, nil
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
