package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/griphyn/agent-backend/api/routes"
	"github.com/griphyn/agent-backend/internal/assistant"
	"github.com/griphyn/agent-backend/internal/calendar"
	"github.com/griphyn/agent-backend/internal/deals"
	"github.com/griphyn/agent-backend/internal/negotiation"
	"github.com/griphyn/agent-backend/internal/payments"
	"github.com/griphyn/agent-backend/internal/settings"
	"github.com/griphyn/agent-backend/pkg/config"
	"github.com/griphyn/agent-backend/pkg/db"
	"github.com/griphyn/agent-backend/pkg/logger"
	"github.com/griphyn/agent-backend/pkg/metrics"
	"github.com/griphyn/agent-backend/pkg/migrate"
	"github.com/griphyn/agent-backend/pkg/openai"
	"github.com/griphyn/agent-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	var openAIClient *openai.Client
	if cfg.OpenAI.Enabled() {
		openAIClient, err = openai.NewClient(cfg.OpenAI)
		if err != nil {
			logg.Error(context.Background(), "failed to create openai client", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "openai api key not configured, drafter and assistant run deterministically")
	}

	dealsRepo := deals.NewRepository(dbClient.DB())
	settingsRepo := settings.NewRepository(dbClient.DB())
	paymentsRepo := payments.NewRepository(dbClient.DB())

	dealsService, err := deals.NewService(dealsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create deals service", err)
		os.Exit(1)
	}

	settingsService, err := settings.NewService(settingsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	planStore, err := negotiation.NewRedisPlanStore(redisClient, cfg.Negotiation.PlanTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create plan store", err)
		os.Exit(1)
	}

	var drafter negotiation.Drafter
	if openAIClient != nil {
		drafter, err = negotiation.NewOpenAIDrafter(openAIClient, cfg.OpenAI.NegotiationModel)
		if err != nil {
			logg.Error(context.Background(), "failed to create negotiation drafter", err)
			os.Exit(1)
		}
	}

	negotiationMetrics := metrics.NewNegotiationMetrics(prometheus.DefaultRegisterer)
	negotiationService, err := negotiation.NewService(dealsRepo, settingsService, planStore, drafter, negotiationMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create negotiation service", err)
		os.Exit(1)
	}

	paymentsService, err := payments.NewService(paymentsRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	var assistantService assistant.Service
	if openAIClient != nil {
		assistantService, err = assistant.NewService(dealsRepo, paymentsRepo, openAIClient, cfg.OpenAI.AssistantModel, logg)
	} else {
		assistantService, err = assistant.NewService(dealsRepo, paymentsRepo, nil, cfg.OpenAI.AssistantModel, logg)
	}
	if err != nil {
		logg.Error(context.Background(), "failed to create assistant service", err)
		os.Exit(1)
	}

	calendarService, err := calendar.NewService(dealsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create calendar service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, routes.Services{
			Deals:       dealsService,
			Settings:    settingsService,
			Negotiation: negotiationService,
			Assistant:   assistantService,
			Payments:    paymentsService,
			Calendar:    calendarService,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
