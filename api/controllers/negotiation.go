package controllers

import (
	"net/http"

	"github.com/griphyn/agent-backend/api/responses"
	"github.com/griphyn/agent-backend/internal/negotiation"
	"github.com/griphyn/agent-backend/pkg/logger"
)

// GetNegotiationPlan returns the deal's current plan, seeding an idle baseline
// when none exists yet.
func GetNegotiationPlan(svc negotiation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, dealID, err := creatorAndDealFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		plan, err := svc.GetPlan(r.Context(), creatorID, dealID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, plan)
	}
}

// GenerateNegotiationPlan produces a counter-offer recommendation for an idle
// plan.
func GenerateNegotiationPlan(svc negotiation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, dealID, err := creatorAndDealFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		plan, err := svc.GeneratePlan(r.Context(), creatorID, dealID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, plan)
	}
}

// ApproveNegotiationPlan moves a recommendation-ready plan into progress.
func ApproveNegotiationPlan(svc negotiation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, dealID, err := creatorAndDealFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		plan, err := svc.ApprovePlan(r.Context(), creatorID, dealID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, plan)
	}
}

// CompleteNegotiationPlan closes out an in-progress plan.
func CompleteNegotiationPlan(svc negotiation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, dealID, err := creatorAndDealFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		plan, err := svc.CompletePlan(r.Context(), creatorID, dealID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, plan)
	}
}

// ResetNegotiationPlan discards the plan and recomputes a fresh idle baseline.
func ResetNegotiationPlan(svc negotiation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, dealID, err := creatorAndDealFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		plan, err := svc.ResetPlan(r.Context(), creatorID, dealID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, plan)
	}
}

// GetDealSummary prices the deal's creative brief against the rate card.
func GetDealSummary(svc negotiation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, dealID, err := creatorAndDealFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.SummarizeDeal(r.Context(), creatorID, dealID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
