package main

import (
	"context"
	"go-consultancy-backend/config"
	_ "go-consultancy-backend/docs" // Important for Swagger
	v1 "go-consultancy-backend/internal/delivery/http/v1"
	"go-consultancy-backend/internal/session"
	"go-consultancy-backend/internal/usecase"
	"go-consultancy-backend/pkg/captcha"
	"go-consultancy-backend/pkg/linktoken"
	"go-consultancy-backend/pkg/logger"
	"go-consultancy-backend/pkg/mailer"
	"go-consultancy-backend/pkg/redis"
	"go-consultancy-backend/pkg/validation"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// logoPath is the optional PNG rendered at the top of enquiry PDFs.
const logoPath = "assets/logo.png"

// @title           Consultancy Backend API
// @version         1.0
// @description     Backend for the Palmertech marketing site: pricing, contact form, private enquiries and project requirements intake.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting consultancy backend", "port", cfg.Port)

	// 3. Setup Redis (optional; session store falls back to in-memory)
	if cfg.UpstashRedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory sessions", "error", err)
		}
	}
	defer redis.Close()

	// 4. Setup Session Store
	sessions := session.New(redis.Client())

	// 5. Setup Mail and CAPTCHA services
	mail := mailer.NewSendGridMailer(cfg)
	if !mail.IsConfigured() {
		logger.Log.Warn("Mail service not fully configured - form submissions will not be delivered")
	}
	verifier := captcha.NewVerifier(cfg)
	if !verifier.Configured() {
		logger.Log.Warn("CAPTCHA not configured - challenge verification is skipped")
	}

	// 6. Setup Validators
	validate := validator.New()
	validation.RegisterValidators(validate)
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(engine)
	}

	// 7. Setup UseCases
	signer := linktoken.NewSigner(cfg.SessionSecret)
	logoPNG, err := os.ReadFile(logoPath)
	if err != nil {
		logoPNG = nil // PDF renders without the logo
	}

	contactUC := usecase.NewContactUsecase(sessions, mail, verifier, cfg.MailOwnerRecipient)
	enquiryUC := usecase.NewEnquiryUsecase(signer, mail, cfg.MailOwnerRecipient, logoPNG)
	requirementsUC := usecase.NewRequirementsUsecase(mail, validate, cfg.RequirementsTemplate, cfg.RequirementsRecipient, cfg.FallbackContactEmail)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:      contactUC,
		EnquiryUC:      enquiryUC,
		RequirementsUC: requirementsUC,
		Config:         cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
