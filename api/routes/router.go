package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/griphyn/agent-backend/api/controllers"
	"github.com/griphyn/agent-backend/api/middleware"
	"github.com/griphyn/agent-backend/internal/assistant"
	"github.com/griphyn/agent-backend/internal/calendar"
	"github.com/griphyn/agent-backend/internal/deals"
	"github.com/griphyn/agent-backend/internal/negotiation"
	"github.com/griphyn/agent-backend/internal/payments"
	"github.com/griphyn/agent-backend/internal/settings"
	"github.com/griphyn/agent-backend/pkg/config"
	"github.com/griphyn/agent-backend/pkg/db"
	"github.com/griphyn/agent-backend/pkg/logger"
	"github.com/griphyn/agent-backend/pkg/redis"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Deals       deals.Service
	Settings    settings.Service
	Negotiation negotiation.Service
	Assistant   assistant.Service
	Payments    payments.Service
	Calendar    calendar.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Creator(logg))

		r.Route("/deals", func(r chi.Router) {
			r.Get("/", controllers.ListDeals(svcs.Deals, logg))
			r.Post("/", controllers.CreateDeal(svcs.Deals, logg))

			r.Route("/{dealId}", func(r chi.Router) {
				r.Get("/", controllers.GetDeal(svcs.Deals, logg))
				r.Patch("/", controllers.UpdateDeal(svcs.Deals, logg))
				r.Delete("/", controllers.DeleteDeal(svcs.Deals, logg))
				r.Post("/stage", controllers.ChangeDealStage(svcs.Deals, logg))
				r.Post("/payment-status", controllers.ChangeDealPaymentStatus(svcs.Deals, logg))

				r.Get("/summary", controllers.GetDealSummary(svcs.Negotiation, logg))
				r.Route("/negotiation", func(r chi.Router) {
					r.Get("/", controllers.GetNegotiationPlan(svcs.Negotiation, logg))
					r.Post("/generate", controllers.GenerateNegotiationPlan(svcs.Negotiation, logg))
					r.Post("/approve", controllers.ApproveNegotiationPlan(svcs.Negotiation, logg))
					r.Post("/complete", controllers.CompleteNegotiationPlan(svcs.Negotiation, logg))
					r.Post("/reset", controllers.ResetNegotiationPlan(svcs.Negotiation, logg))
				})
			})
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.GetSettings(svcs.Settings, logg))
			r.Patch("/", controllers.UpdateSettings(svcs.Settings, logg))
		})

		r.Post("/assistant/chat", controllers.AssistantChat(svcs.Assistant, logg))

		r.Route("/payments", func(r chi.Router) {
			r.Get("/overview", controllers.PaymentsOverview(svcs.Payments, logg))
			r.Get("/payouts", controllers.ListPayouts(svcs.Payments, logg))
			r.Post("/payouts/{payoutId}/advance", controllers.AdvancePayout(svcs.Payments, logg))
			r.Get("/invoices", controllers.ListInvoices(svcs.Payments, logg))
			r.Post("/invoices/{invoiceId}/paid", controllers.MarkInvoicePaid(svcs.Payments, logg))
		})

		r.Get("/calendar", controllers.ListCalendar(svcs.Calendar, logg))
	})

	return r
}
