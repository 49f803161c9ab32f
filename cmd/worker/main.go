package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admitpath/internal/config"
	"admitpath/internal/repository"
	"admitpath/internal/service"
	"admitpath/pkg/db"
	"admitpath/pkg/logger"
	"admitpath/pkg/mq"
	"admitpath/pkg/outbox"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting roadmap worker...",
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.Int("sweep_within_days", cfg.Sweeper.WithinDays),
		zap.Int("sweep_interval_minutes", cfg.Sweeper.IntervalMinutes),
	)

	log.Info("Initializing database connection...")
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()
	log.Info("Database connection established successfully")

	roadmapRepo := repository.NewRoadmapRepository(dbConn, log)
	milestoneRepo := repository.NewMilestoneRepository(dbConn, log)

	textGen := service.NewTextGenClient(cfg.TextGen.BaseURL, log)
	planService := service.NewPlanService(dbConn, roadmapRepo, milestoneRepo, textGen, log)

	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("Failed to init publisher", zap.Error(err))
	}
	defer publisher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dispatcher := outbox.NewDispatcher(outbox.NewRepository(dbConn), publisher, log)
	go dispatcher.Start(ctx)

	sweeper := service.NewDeadlineSweeper(
		roadmapRepo,
		planService,
		log,
		cfg.Sweeper.WithinDays,
		time.Duration(cfg.Sweeper.IntervalMinutes)*time.Minute,
	)
	go sweeper.Start(ctx)

	log.Info("roadmap worker is fully initialized and running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down roadmap worker gracefully...")
	cancel()

	log.Info("Closing database connection...")
	dbConn.Close()

	log.Info("roadmap worker shutdown complete")
}
