package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	openai "github.com/sashabaranov/go-openai"

	"github.com/brightfold/lead-capture-api/cmd/mainconfig"
	"github.com/brightfold/lead-capture-api/internal/api/router"
	appconfig "github.com/brightfold/lead-capture-api/internal/config"
	"github.com/brightfold/lead-capture-api/internal/content"
	"github.com/brightfold/lead-capture-api/internal/leads"
	"github.com/brightfold/lead-capture-api/internal/notify"
	"github.com/brightfold/lead-capture-api/internal/observability/metrics"
	"github.com/brightfold/lead-capture-api/internal/submission"
	"github.com/brightfold/lead-capture-api/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel, cfg.Env)
	logger.Info("starting lead-capture-api server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Lead storage: Postgres when configured, in-memory otherwise.
	var repo leads.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		repo = leads.NewPostgresRepository(pool)
		logger.Info("using postgres lead repository")
	} else {
		repo = leads.NewInMemoryRepository()
		logger.Info("DATABASE_URL not set, using in-memory lead repository")
	}

	sender := buildEmailSender(ctx, cfg, logger)
	generator := buildGenerator(cfg, logger)

	mailer := notify.NewConfirmationMailer(generator, sender, cfg.ConfirmationSubject, logger)
	leadMetrics := metrics.NewLeadMetrics(nil)
	submitService := submission.NewService(repo, mailer, leadMetrics, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		SubmissionHandler:  submission.NewHandler(submitService, logger),
		LeadsHandler:       leads.NewHandler(repo, logger),
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
		AdminAuthSecret:    cfg.AdminJWTSecret,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildEmailSender picks the delivery backend from EMAIL_PROVIDER. Anything
// unrecognized falls back to the stub sender so the service still captures
// leads.
func buildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "sendgrid":
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sender != nil {
			logger.Info("confirmation emails via sendgrid", "from", cfg.SendGridFromEmail)
			return sender
		}
		logger.Warn("SENDGRID_API_KEY not set, falling back to stub email sender")
	case "ses":
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config, falling back to stub email sender", "error", err)
			break
		}
		sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger)
		if sender != nil {
			logger.Info("confirmation emails via SES", "from", cfg.SESFromEmail)
			return sender
		}
	}
	return notify.NewStubEmailSender(logger)
}

// buildGenerator returns the OpenAI generator when a key is configured, nil
// otherwise; the mailer falls back to static copy with a nil generator.
func buildGenerator(cfg *appconfig.Config, logger *logging.Logger) content.Generator {
	if cfg.OpenAIAPIKey == "" {
		logger.Info("OPENAI_API_KEY not set, confirmation emails use static copy")
		return nil
	}
	client := openai.NewClient(cfg.OpenAIAPIKey)
	logger.Info("confirmation email bodies via openai", "model", cfg.OpenAIModel)
	return content.NewOpenAIGenerator(client, cfg.OpenAIModel, logger)
}
