package api

import (
	"net/http"
	"tratrouble_server/api/admin"
	"tratrouble_server/api/debug"
	"tratrouble_server/api/feedback"
	"tratrouble_server/api/health"
	"tratrouble_server/api/middleware"
	"tratrouble_server/api/verification"
	"tratrouble_server/config"
	"tratrouble_server/database"
	"tratrouble_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

func App() chi.Router {
	r := chi.NewRouter()

	// create loggers
	logLevel := gecho.ParseLogLevel(config.GetLogLevel())
	mwLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(false), gecho.WithLogLevel(logLevel)))
	standardLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(true), gecho.WithLogLevel(logLevel)))

	// db
	db := database.GetInstance()

	// config
	cfg := config.GetConfig()

	// services
	cacheService := services.NewCacheService(standardLogger, cfg)
	emailService := services.NewEmailService(standardLogger, cfg)
	verificationStore := services.NewPostgresVerificationStore(db, cfg.Verification.UpsertByEmail)
	verificationService := services.NewVerificationService(
		cfg,
		standardLogger,
		verificationStore,
		emailService,
		services.SystemClock(),
		cacheService,
	)
	feedbackService := services.NewFeedbackService(standardLogger, services.NewPostgresFeedbackStore(db), services.SystemClock())
	healthService := services.NewHealthService(standardLogger, db)

	// Initialize middleware
	mw := middleware.NewMiddleware(cfg, mwLogger, verificationService, cacheService)

	// Core infra
	r.Use(chiware.RequestID)
	r.Use(chiware.RealIP)
	r.Use(chiware.Recoverer)
	r.Use(chiware.StripSlashes)

	// Limits & security
	r.Use(mw.BodyLimit(1 * 1024 * 1024))
	r.Use(mw.SecurityHeaders())

	// Observability
	r.Use(mw.SetupLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware)

	// CORS (must be before auth)
	r.Use(mw.SetupCORS().Handler)

	// Rate limiting
	r.Use(mw.RateLimitMiddleware())

	// Register all routes
	NewRouterManager(
		verification.NewVerificationRoutesManager(standardLogger, verificationService, cfg),
		feedback.NewFeedbackRoutesManager(standardLogger, feedbackService, cfg, mw),
		health.NewHealthRoutesManager(healthService),
		admin.NewAdminRoutesManager(standardLogger, verificationStore, feedbackService, cfg, mw),
		debug.NewDebugRoutesManager(cacheService),
	).RegisterRoutes(r)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		gecho.Success(w,
			gecho.WithMessage("Welcome to the Tratrouble API"),
			gecho.Send(),
		)
	})

	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		gecho.NotFound(w,
			gecho.Send(),
		)
	})

	return r
}
