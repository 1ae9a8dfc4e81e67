package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pulsecheck-backend/internal/ai"
	"pulsecheck-backend/internal/config"
	"pulsecheck-backend/internal/database"
	"pulsecheck-backend/internal/email"
	"pulsecheck-backend/internal/handlers"
	"pulsecheck-backend/internal/logger"
	custommw "pulsecheck-backend/internal/middleware"
	"pulsecheck-backend/internal/repository"
	"pulsecheck-backend/internal/token"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env (ignore error in production — env vars set directly)
	_ = godotenv.Load()

	log := logger.New("pulsecheck-backend")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := database.Connect(cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	log.Info().Str("db", cfg.DBName).Msg("connected to MongoDB")

	feedbackRepo := repository.NewFeedbackRepo(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := feedbackRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to create feedback indexes")
	}

	tokens := token.NewService(cfg.JWTSecret)
	aiClient := ai.NewClient(cfg.OpenAIAPIKey)

	var sender email.Sender
	if cfg.ResendAPIKey == "" {
		log.Warn().Msg("RESEND_API_KEY not set, emails will be logged instead of sent")
		sender = email.NewLogSender(log)
	} else {
		sender = email.NewResendSender(cfg.ResendAPIKey, cfg.FromEmail)
	}

	feedbackHandler := handlers.NewFeedbackHandler(feedbackRepo, aiClient, sender, log)
	summaryHandler := handlers.NewSummaryHandler(feedbackRepo, aiClient, log)
	formLinkHandler := handlers.NewFormLinkHandler(tokens, sender, cfg.BaseURL, log)

	// Setup chi router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(httprate.LimitByIP(100, 15*time.Minute))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-API-Key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"pulsecheck-backend"}`))
	})

	// Public routes (no auth required)
	r.Route("/api", func(r chi.Router) {
		r.Post("/feedback", feedbackHandler.SubmitFeedback)
		r.Post("/verify-token", formLinkHandler.VerifyToken)

		// Admin routes (API key required)
		r.Group(func(r chi.Router) {
			r.Use(custommw.RequireAPIKey(cfg.AdminAPIKey))

			r.Get("/summary", summaryHandler.Summary)
			r.Get("/download-csv", summaryHandler.DownloadCSV)
			r.With(httprate.LimitByIP(5, 15*time.Minute)).
				Post("/generate-form-link", formLinkHandler.GenerateFormLink)
		})
	})

	// Feedback form and static assets
	r.Handle("/*", http.FileServer(http.Dir("web")))

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info().Str("addr", addr).Msg("pulsecheck backend starting")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
