package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/metrics"
	"homework_status_bot/internal/infra/praktikum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"
)

func main() {
	fmt.Println("Homework Status Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logFile, err := logger.Init(cfg)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize logger: %v", err)
	}
	defer logFile.Close()

	mainLogger := logger.Named("main")
	mainLogger.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Chat ID: %d, Schedule: %s",
		cfg.LogLevel, cfg.Environment, cfg.TelegramChatID, cfg.PollSchedule)

	// Initialize Telegram Bot; getMe validates the token up front
	bot, err := telegram.NewBot(telegram.Settings{
		Token:   cfg.TelegramToken,
		APIURL:  cfg.TelegramAPIURL,
		Timeout: cfg.RequestTimeout,
	})
	if err != nil {
		mainLogger.Fatalf("Could not create Telegram bot: %v", err)
	}
	mainLogger.Infof("Telegram bot @%s initialized.", bot.Me.Username)

	notifier := app.NewNotifier(telegram.NewTelebotAdapter(bot), cfg.TelegramChatID, logger.Named("notifier"))
	statusClient := praktikum.NewClient(cfg.PraktikumAPIURL, cfg.PraktikumToken, cfg.RequestTimeout)

	pollScheduler, err := scheduler.NewPollScheduler(cfg.PollSchedule, cfg.ErrorDelay, logger.Named("scheduler"))
	if err != nil {
		mainLogger.Fatalf("Could not parse poll schedule: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	recorder := metrics.NewRecorder()
	if cfg.MetricsAddr != "" {
		go func() {
			mainLogger.Infof("Metrics listener starting on %s", cfg.MetricsAddr)
			if err := recorder.Serve(ctx, cfg.MetricsAddr); err != nil {
				mainLogger.WithError(err).Error("Metrics listener stopped")
			}
		}()
	}

	poller := app.NewStatusPoller(statusClient, notifier, pollScheduler, recorder, logger.Named("poller"))
	mainLogger.Info("Application setup complete. Polling for homework statuses...")

	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		mainLogger.WithError(err).Error("Poller exited unexpectedly")
		logFile.Close()
		os.Exit(1)
	}
	mainLogger.Info("Application shut down gracefully.")
}
