package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/griphyn/agent-backend/api/middleware"
	"github.com/griphyn/agent-backend/api/responses"
	"github.com/griphyn/agent-backend/api/validators"
	"github.com/griphyn/agent-backend/internal/deals"
	"github.com/griphyn/agent-backend/pkg/enums"
	pkgerrors "github.com/griphyn/agent-backend/pkg/errors"
	"github.com/griphyn/agent-backend/pkg/logger"
	"github.com/griphyn/agent-backend/pkg/pagination"
	"github.com/griphyn/agent-backend/pkg/types"
)

type createDealRequest struct {
	Title          string               `json:"title" validate:"required,max=200"`
	BrandName      string               `json:"brandName" validate:"required,max=120"`
	Summary        string               `json:"summary" validate:"max=4000"`
	Source         string               `json:"source" validate:"omitempty,oneof=inbound outbound"`
	EstimatedValue int64                `json:"estimatedValue" validate:"min=0"`
	UsageRights    string               `json:"usageRights" validate:"max=1000"`
	CloseDate      *time.Time           `json:"closeDate"`
	GoLiveDate     *time.Time           `json:"goLiveDate"`
	CreativeBrief  *types.CreativeBrief `json:"creativeBrief"`
}

type updateDealRequest struct {
	Title          *string              `json:"title" validate:"omitempty,max=200"`
	Summary        *string              `json:"summary" validate:"omitempty,max=4000"`
	EstimatedValue *int64               `json:"estimatedValue" validate:"omitempty,min=0"`
	UsageRights    *string              `json:"usageRights" validate:"omitempty,max=1000"`
	CloseDate      *time.Time           `json:"closeDate"`
	GoLiveDate     *time.Time           `json:"goLiveDate"`
	AISummary      *string              `json:"aiSummary" validate:"omitempty,max=4000"`
	CreativeBrief  *types.CreativeBrief `json:"creativeBrief"`
}

type changeStageRequest struct {
	Stage string `json:"stage" validate:"required"`
}

type changePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required"`
}

// ListDeals returns the creator's deal pipeline, newest first.
func ListDeals(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, err := creatorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := deals.ListDealsInput{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		}
		if raw := r.URL.Query().Get("stage"); raw != "" {
			stage, err := enums.ParseDealStage(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid stage filter"))
				return
			}
			input.Stage = &stage
		}

		page, err := svc.List(r.Context(), creatorID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// CreateDeal registers a new inbound or outbound deal.
func CreateDeal(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, err := creatorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createDealRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := deals.CreateDealInput{
			Title:          req.Title,
			BrandName:      req.BrandName,
			Summary:        req.Summary,
			EstimatedValue: req.EstimatedValue,
			UsageRights:    req.UsageRights,
			CloseDate:      req.CloseDate,
			GoLiveDate:     req.GoLiveDate,
		}
		if req.Source != "" {
			source, err := enums.ParseDealSource(req.Source)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid source"))
				return
			}
			input.Source = source
		}
		if req.CreativeBrief != nil {
			input.CreativeBrief = *req.CreativeBrief
		}

		deal, err := svc.Create(r.Context(), creatorID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, deal)
	}
}

// GetDeal returns one deal with its brand and inbound email.
func GetDeal(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, dealID, err := creatorAndDealFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deal, err := svc.GetByID(r.Context(), creatorID, dealID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deal)
	}
}

// UpdateDeal applies a partial mutation to a deal.
func UpdateDeal(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, dealID, err := creatorAndDealFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateDealRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deal, err := svc.Update(r.Context(), creatorID, dealID, deals.UpdateDealInput{
			Title:          req.Title,
			Summary:        req.Summary,
			EstimatedValue: req.EstimatedValue,
			UsageRights:    req.UsageRights,
			CloseDate:      req.CloseDate,
			GoLiveDate:     req.GoLiveDate,
			AISummary:      req.AISummary,
			CreativeBrief:  req.CreativeBrief,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deal)
	}
}

// ChangeDealStage moves a deal along the pipeline.
func ChangeDealStage(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, dealID, err := creatorAndDealFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req changeStageRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stage, err := enums.ParseDealStage(req.Stage)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid stage"))
			return
		}

		deal, err := svc.ChangeStage(r.Context(), creatorID, dealID, stage)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deal)
	}
}

// ChangeDealPaymentStatus updates a deal's payment tracking state.
func ChangeDealPaymentStatus(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, dealID, err := creatorAndDealFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req changePaymentStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParsePaymentStatus(req.PaymentStatus)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment status"))
			return
		}

		deal, err := svc.ChangePaymentStatus(r.Context(), creatorID, dealID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deal)
	}
}

// DeleteDeal removes a deal from the pipeline.
func DeleteDeal(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, dealID, err := creatorAndDealFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), creatorID, dealID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"id": dealID.String()})
	}
}

func creatorFromContext(r *http.Request) (uuid.UUID, error) {
	raw := middleware.CreatorIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "creator context missing")
	}
	creatorID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid creator id")
	}
	return creatorID, nil
}

func dealIDFromPath(r *http.Request) (uuid.UUID, error) {
	return validators.ParsePathUUID(chi.URLParam(r, "dealId"), "dealId")
}

func creatorAndDealFromRequest(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	creatorID, err := creatorFromContext(r)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	dealID, err := dealIDFromPath(r)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return creatorID, dealID, nil
}
