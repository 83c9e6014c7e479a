package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pitchpractice/auth-service/config"
	"github.com/pitchpractice/auth-service/db"
	"github.com/pitchpractice/auth-service/internal/auth/handler"
	"github.com/pitchpractice/auth-service/internal/auth/mailer"
	repo "github.com/pitchpractice/auth-service/internal/auth/repository/postgres"
	"github.com/pitchpractice/auth-service/internal/auth/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := repo.NewPostgresRepository(pool)

	sessionService := service.NewSessionService(store, store,
		time.Duration(cfg.SessionLifetimeMin)*time.Minute, logger)
	verificationService := service.NewVerificationService(cfg.VerificationTokenSecret, cfg.VerificationExpiryMin)

	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	} else {
		mail = mailer.NewLogMailer(logger)
	}

	accountService := service.NewAccountService(store, sessionService, verificationService, mail, cfg, logger)
	authHandler := handler.NewAuthHandler(accountService, sessionService, logger)

	go sweepSessions(ctx, sessionService, time.Duration(cfg.SessionSweepMin)*time.Minute, logger)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	logger.Info("starting auth service", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// sweepSessions periodically deletes expired sessions. Resolution never
// honors an expired row, so this only keeps the table bounded.
func sweepSessions(ctx context.Context, sessions *service.SessionService, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := sessions.SweepExpired(ctx)
			if err != nil {
				logger.Warn("session sweep failed", "error", err)
				continue
			}
			if deleted > 0 {
				logger.Info("swept expired sessions", "deleted", deleted)
			}
		}
	}
}
