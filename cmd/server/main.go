// @title Campus Events API
// @version 1.0
// @description Event registration with capacity control and reminders.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"campusevents/config"
	_ "campusevents/docs"
	"campusevents/internal/adapters/auth"
	"campusevents/internal/adapters/email"
	"campusevents/internal/adapters/lease"
	httpdelivery "campusevents/internal/delivery/http"
	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
	"campusevents/internal/repository/postgres"
	"campusevents/internal/services"
)

const (
	shutdownTimeout  = 10 * time.Second
	reminderLeaseKey = "campusevents:reminder-scan"
)

func main() {
	logger := config.NewLogger()
	if err := run(logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	logger.Info("database connected")

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.AWSInsecureSkipVerify,
		},
		SMTP: email.SMTPConfig{
			Host:     cfg.Email.SMTPHost,
			Port:     cfg.Email.SMTPPort,
			Username: cfg.Email.SMTPUsername,
			Password: cfg.Email.SMTPPassword,
			Domain:   cfg.Email.SMTPDomain,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	userRepo := postgres.NewUserRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	registrationStore := postgres.NewRegistrationStore(db, cfg.RegistrationLockTimeout)

	// Services
	dispatcher := services.NewNotificationDispatcher(mailer, email.NewTemplateRenderer(), notificationRepo, logger)
	registrationService := services.NewRegistrationService(registrationStore, eventRepo, userRepo, dispatcher, logger, cfg.Reminder.Lead)
	notificationService := services.NewNotificationService(notificationRepo)

	var runLease domain.RunLease
	if cfg.Redis.Addr != "" {
		rdb, err := lease.NewClient(ctx, lease.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rdb.Close()
		runLease = lease.NewRedisLease(rdb, reminderLeaseKey, logger)
		logger.Info("reminder run lease enabled", "redis_addr", cfg.Redis.Addr)
	}
	scheduler := services.NewReminderScheduler(notificationRepo, dispatcher, runLease, services.ReminderConfig{
		Lead:        cfg.Reminder.Lead,
		Tolerance:   cfg.Reminder.Tolerance,
		Interval:    cfg.Reminder.Interval,
		SendTimeout: cfg.Reminder.SendTimeout,
	}, logger)

	// Delivery
	router := httpdelivery.NewRouter(
		controllers.NewRegistrationController(logger, registrationService),
		controllers.NewNotificationController(logger, notificationService),
		controllers.NewReminderController(logger, scheduler),
		auth.NewJWTVerifier(cfg.JWTSecret),
		logger,
	)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, router)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		scheduler.Start(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
