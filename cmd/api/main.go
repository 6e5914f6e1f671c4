package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/glossline-ai/sales-agent/internal/catalog"
	"github.com/glossline-ai/sales-agent/internal/config"
	"github.com/glossline-ai/sales-agent/internal/events"
	"github.com/glossline-ai/sales-agent/internal/funnel"
	"github.com/glossline-ai/sales-agent/internal/handler"
	"github.com/glossline-ai/sales-agent/internal/intel"
	"github.com/glossline-ai/sales-agent/internal/llm"
	"github.com/glossline-ai/sales-agent/internal/matcher"
	"github.com/glossline-ai/sales-agent/internal/middleware"
	"github.com/glossline-ai/sales-agent/internal/service"
	"github.com/glossline-ai/sales-agent/internal/store"
	"github.com/glossline-ai/sales-agent/pkg/logger"
	"github.com/glossline-ai/sales-agent/pkg/tracing"
)

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()
	logger.SetGlobal(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "sales-agent", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(context.Background(), tp)
		}
	}

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatal("failed to connect to Postgres", zap.Error(err))
	}
	catalogAccessor := catalog.NewCachedAccessor(catalog.NewPostgresAccessor(db), cfg.CatalogRefreshInterval)

	storeAdapter, err := store.NewMongoAdapter(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.StoreTimeout)
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}

	// Event publishing is best-effort; a dead broker must not take down the
	// conversation pipeline.
	var publisher service.DecisionPublisher
	natsClient, err := events.Connect(events.Config{
		URL:      cfg.NATSURL,
		CAFile:   cfg.NATSCAFile,
		CertFile: cfg.NATSCertFile,
		KeyFile:  cfg.NATSKeyFile,
		Token:    cfg.NATSToken,
	}, log)
	if err != nil {
		log.Warn("NATS unavailable, decision events disabled", zap.Error(err))
	} else {
		defer natsClient.Close()
		p := events.NewPublisher(natsClient)
		if err := p.EnsureStream(ctx); err != nil {
			log.Warn("failed to ensure decision stream, events disabled", zap.Error(err))
		} else {
			publisher = p
		}
	}

	intelligence := buildIntelligence(cfg, log)

	analyzer := funnel.NewAnalyzer(cfg.ConfirmationPhrases, cfg.InterestPhrases, cfg.RemovalPhrases, log)
	orchestrator := service.NewOrchestrator(
		storeAdapter,
		catalogAccessor,
		intelligence,
		matcher.New(cfg.SimilarityThreshold, cfg.MaxRelevantProducts),
		analyzer,
		publisher,
		log,
		service.Options{
			MaxConversationHistory: cfg.MaxConversationHistory,
			HandoverMaxTurns:       cfg.HandoverMaxTurns,
		},
	)

	webhookHandler := handler.NewWebhookHandler(orchestrator, log)
	healthHandler := handler.NewHealthHandler(storeAdapter)

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Correlation-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Post("/webhook", webhookHandler.Handle)
		r.Get("/webhook/status/{sender}", webhookHandler.Status)
		r.Delete("/webhook/conversation/{sender}", webhookHandler.Delete)
		r.Get("/webhook/recommendations/{sender}", webhookHandler.Recommendations)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}

// buildIntelligence selects the LLM provider from configured credentials.
// With no credentials the pipeline still runs on its deterministic fallbacks.
func buildIntelligence(cfg *config.Config, log *logger.Logger) intel.Capability {
	var (
		client llm.Client
		err    error
	)
	switch {
	case cfg.AnthropicAPIKey != "":
		client, err = llm.NewClient(llm.ProviderAnthropic, cfg.AnthropicAPIKey)
	case cfg.OpenAIAPIKey != "":
		client, err = llm.NewClient(llm.ProviderOpenAI, cfg.OpenAIAPIKey)
	default:
		log.Warn("no LLM credentials configured, running rule-only")
		return intel.Unavailable{}
	}
	if err != nil {
		log.Warn("failed to initialize LLM client, running rule-only", zap.Error(err))
		return intel.Unavailable{}
	}
	log.Info("LLM provider initialized", zap.String("provider", client.Name()))
	return intel.NewService(client, cfg.LLMModel, cfg.LLMTimeout)
}
