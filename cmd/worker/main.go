package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/visitra-hq/visitra/internal/application/ticket/usecases"
	"github.com/visitra-hq/visitra/internal/infrastructure/config"
	"github.com/visitra-hq/visitra/internal/infrastructure/database"
	"github.com/visitra-hq/visitra/internal/infrastructure/email"
	"github.com/visitra-hq/visitra/internal/infrastructure/notification"
	"github.com/visitra-hq/visitra/internal/infrastructure/repository"
	"github.com/visitra-hq/visitra/internal/infrastructure/scheduler"
	"github.com/visitra-hq/visitra/internal/shared/logger"
)

// The worker runs the auto-close sweep out of process. Deployments that keep
// the sweep inside the API server do not need it.
func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger()
	log.Infow("starting auto-close worker", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	ticketRepo := repository.NewTicketRepository(database.Get())
	userRepo := repository.NewUserRepository(database.Get())

	emailService := email.NewSMTPEmailService(email.SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		Username:    cfg.Email.SMTPUser,
		Password:    cfg.Email.SMTPPassword,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		BaseURL:     cfg.Server.BaseURL,
	})
	notifier := notification.NewEmailNotifier(ticketRepo, userRepo, emailService, log)

	autoCloseUC := usecases.NewAutoCloseUseCase(ticketRepo, notifier, cfg.Ticket.AutoCloseAfterDays, log)

	schedulerManager, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		log.Fatalw("failed to create scheduler", "error", err)
	}
	if err := schedulerManager.RegisterAutoCloseJob(autoCloseUC, cfg.Ticket.AutoCloseHour); err != nil {
		log.Fatalw("failed to register auto-close job", "error", err)
	}
	schedulerManager.Start()

	// Run one sweep on startup so a long-stopped worker catches up right away.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	closed, err := autoCloseUC.Execute(ctx)
	cancel()
	if err != nil {
		log.Errorw("initial auto-close sweep failed", "error", err)
	} else if closed > 0 {
		log.Infow("initial auto-close sweep completed", "count", closed)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Infow("received signal, shutting down", "signal", sig)

	if err := schedulerManager.Stop(); err != nil {
		log.Errorw("scheduler shutdown failed", "error", err)
	}

	log.Infow("auto-close worker stopped")
}
