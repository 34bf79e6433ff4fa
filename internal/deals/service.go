package deals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/griphyn/agent-backend/pkg/db/models"
	"github.com/griphyn/agent-backend/pkg/enums"
	pkgerrors "github.com/griphyn/agent-backend/pkg/errors"
	"github.com/griphyn/agent-backend/pkg/pagination"
	"github.com/griphyn/agent-backend/pkg/types"
)

type dealRepository interface {
	Create(ctx context.Context, deal *models.Deal) error
	FindByID(ctx context.Context, creatorID uuid.UUID, id uuid.UUID) (*models.Deal, error)
	List(ctx context.Context, creatorID uuid.UUID, filter ListFilter, cursor *pagination.Cursor, limit int) ([]models.Deal, error)
	Update(ctx context.Context, deal *models.Deal) error
	Delete(ctx context.Context, creatorID uuid.UUID, id uuid.UUID) error
	FindOrCreateBrand(ctx context.Context, name string) (*models.Brand, error)
}

// Service exposes deal pipeline operations. Every by-id operation is scoped
// to the requesting creator; another creator's deal reads as not found.
type Service interface {
	Create(ctx context.Context, creatorID uuid.UUID, input CreateDealInput) (*DealDTO, error)
	GetByID(ctx context.Context, creatorID uuid.UUID, id uuid.UUID) (*DealDTO, error)
	List(ctx context.Context, creatorID uuid.UUID, input ListDealsInput) (*ListDealsDTO, error)
	Update(ctx context.Context, creatorID uuid.UUID, id uuid.UUID, input UpdateDealInput) (*DealDTO, error)
	ChangeStage(ctx context.Context, creatorID uuid.UUID, id uuid.UUID, target enums.DealStage) (*DealDTO, error)
	ChangePaymentStatus(ctx context.Context, creatorID uuid.UUID, id uuid.UUID, target enums.PaymentStatus) (*DealDTO, error)
	Delete(ctx context.Context, creatorID uuid.UUID, id uuid.UUID) error
}

type service struct {
	repo dealRepository
}

// NewService builds the deals service.
func NewService(repo dealRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("deal repository required")
	}
	return &service{repo: repo}, nil
}

// CreateDealInput captures a new deal.
type CreateDealInput struct {
	Title          string
	BrandName      string
	Summary        string
	Source         enums.DealSource
	EstimatedValue int64
	UsageRights    string
	CloseDate      *time.Time
	GoLiveDate     *time.Time
	CreativeBrief  types.CreativeBrief
}

// UpdateDealInput captures a partial deal mutation. Nil fields keep their
// stored values.
type UpdateDealInput struct {
	Title          *string
	Summary        *string
	EstimatedValue *int64
	UsageRights    *string
	CloseDate      *time.Time
	GoLiveDate     *time.Time
	AISummary      *string
	CreativeBrief  *types.CreativeBrief
}

// ListDealsInput carries list filters and pagination.
type ListDealsInput struct {
	Stage  *enums.DealStage
	Limit  int
	Cursor string
}

func (s *service) Create(ctx context.Context, creatorID uuid.UUID, input CreateDealInput) (*DealDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.EstimatedValue < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "estimatedValue must be non-negative")
	}
	source := input.Source
	if source == "" {
		source = enums.DealSourceInbound
	}
	if !source.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid deal source")
	}

	deal := &models.Deal{
		CreatorID:      creatorID,
		Title:          title,
		Stage:          enums.DealStageNew,
		Source:         source,
		EstimatedValue: decimal.NewFromInt(input.EstimatedValue),
		CurrencyCode:   "USD",
		PaymentStatus:  enums.PaymentStatusAwaiting,
		CreativeBrief:  input.CreativeBrief,
	}
	if summary := strings.TrimSpace(input.Summary); summary != "" {
		deal.Summary = &summary
	}
	if rights := strings.TrimSpace(input.UsageRights); rights != "" {
		deal.UsageRights = &rights
	}
	deal.CloseDate = input.CloseDate
	deal.GoLiveDate = input.GoLiveDate

	if brandName := strings.TrimSpace(input.BrandName); brandName != "" {
		brand, err := s.repo.FindOrCreateBrand(ctx, brandName)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve brand")
		}
		deal.BrandID = &brand.ID
		deal.Brand = brand
	}

	if err := s.repo.Create(ctx, deal); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create deal")
	}
	return FromModel(deal), nil
}

func (s *service) GetByID(ctx context.Context, creatorID uuid.UUID, id uuid.UUID) (*DealDTO, error) {
	deal, err := s.loadDeal(ctx, creatorID, id)
	if err != nil {
		return nil, err
	}
	return FromModel(deal), nil
}

func (s *service) List(ctx context.Context, creatorID uuid.UUID, input ListDealsInput) (*ListDealsDTO, error) {
	if input.Stage != nil && !input.Stage.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid stage filter")
	}

	cursor, err := pagination.ParseCursor(input.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(input.Limit)
	rows, err := s.repo.List(ctx, creatorID, ListFilter{Stage: input.Stage}, cursor, pagination.LimitWithBuffer(input.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list deals")
	}

	nextCursor := ""
	if len(rows) > limit {
		last := rows[limit-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		rows = rows[:limit]
	}

	out := make([]DealDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return &ListDealsDTO{Deals: out, NextCursor: nextCursor}, nil
}

func (s *service) Update(ctx context.Context, creatorID uuid.UUID, id uuid.UUID, input UpdateDealInput) (*DealDTO, error) {
	deal, err := s.loadDeal(ctx, creatorID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		deal.Title = title
	}
	if input.Summary != nil {
		deal.Summary = optionalString(*input.Summary)
	}
	if input.EstimatedValue != nil {
		if *input.EstimatedValue < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "estimatedValue must be non-negative")
		}
		deal.EstimatedValue = decimal.NewFromInt(*input.EstimatedValue)
	}
	if input.UsageRights != nil {
		deal.UsageRights = optionalString(*input.UsageRights)
	}
	if input.CloseDate != nil {
		deal.CloseDate = input.CloseDate
	}
	if input.GoLiveDate != nil {
		deal.GoLiveDate = input.GoLiveDate
	}
	if input.AISummary != nil {
		deal.AISummary = optionalString(*input.AISummary)
	}
	if input.CreativeBrief != nil {
		deal.CreativeBrief = *input.CreativeBrief
	}

	if err := s.repo.Update(ctx, deal); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update deal")
	}
	return FromModel(deal), nil
}

func (s *service) ChangeStage(ctx context.Context, creatorID uuid.UUID, id uuid.UUID, target enums.DealStage) (*DealDTO, error) {
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid stage")
	}

	deal, err := s.loadDeal(ctx, creatorID, id)
	if err != nil {
		return nil, err
	}
	if !deal.Stage.CanTransitionTo(target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "stage transition disallowed").
			WithDetails(map[string]string{"from": deal.Stage.String(), "to": target.String()})
	}

	deal.Stage = target
	if err := s.repo.Update(ctx, deal); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update deal stage")
	}
	return FromModel(deal), nil
}

func (s *service) ChangePaymentStatus(ctx context.Context, creatorID uuid.UUID, id uuid.UUID, target enums.PaymentStatus) (*DealDTO, error) {
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
	}

	deal, err := s.loadDeal(ctx, creatorID, id)
	if err != nil {
		return nil, err
	}
	deal.PaymentStatus = target
	if err := s.repo.Update(ctx, deal); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payment status")
	}
	return FromModel(deal), nil
}

func (s *service) Delete(ctx context.Context, creatorID uuid.UUID, id uuid.UUID) error {
	if _, err := s.loadDeal(ctx, creatorID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, creatorID, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete deal")
	}
	return nil
}

func (s *service) loadDeal(ctx context.Context, creatorID uuid.UUID, id uuid.UUID) (*models.Deal, error) {
	deal, err := s.repo.FindByID(ctx, creatorID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "deal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load deal")
	}
	return deal, nil
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
