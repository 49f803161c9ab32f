package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admitpath/internal/config"
	"admitpath/internal/handler"
	"admitpath/internal/httpserver"
	"admitpath/internal/mqhandler"
	"admitpath/internal/repository"
	"admitpath/internal/service"
	"admitpath/pkg/db"
	"admitpath/pkg/logger"
	"admitpath/pkg/mq"
	"admitpath/pkg/outbox"
	"admitpath/pkg/redis"
	"admitpath/pkg/util"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting roadmap server...",
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.String("mq_url", cfg.MQ.URL),
		zap.String("port", cfg.Server.Port),
	)

	// DB
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

	// Redis-backed dedupe for inbound events
	rdb := redis.NewRedisClient(cfg.Redis)
	defer rdb.Close()
	deduper := util.NewDeduper(rdb, 24*time.Hour, log)

	onboardingHandler := mqhandler.NewOnboardingCompletedHandler(planService, deduper, log)
	profileHandler := mqhandler.NewProfileChangedHandler(planService, deduper, log)

	// MQ Consumer for onboarding.completed
	log.Info("Initializing MQ consumer for onboarding.completed...",
		zap.String("queue", "onboarding.completed.q"),
		zap.String("routing_key", "onboarding.completed"),
	)
	onboardingConsumer, err := mq.NewConsumer(cfg.MQ.URL, "onboarding.completed.q", "onboarding.completed", log)
	if err != nil {
		log.Fatal("Failed to init onboarding consumer", zap.Error(err))
	}
	defer onboardingConsumer.Close()

	onboardingConsumer.SetHandler(onboardingHandler.Handle)

	go func() {
		log.Info("Starting onboarding.completed consumer...")
		if err := onboardingConsumer.StartConsuming(); err != nil {
			log.Fatal("Onboarding consumer failed", zap.Error(err))
		}
	}()
	log.Info("onboarding.completed consumer started successfully")

	// MQ Consumer for profile.changed
	log.Info("Initializing MQ consumer for profile.changed...",
		zap.String("queue", "profile.changed.q"),
		zap.String("routing_key", "profile.changed"),
	)
	profileConsumer, err := mq.NewConsumer(cfg.MQ.URL, "profile.changed.q", "profile.changed", log)
	if err != nil {
		log.Fatal("Failed to init profile consumer", zap.Error(err))
	}
	defer profileConsumer.Close()

	profileConsumer.SetHandler(profileHandler.Handle)

	go func() {
		log.Info("Starting profile.changed consumer...")
		if err := profileConsumer.StartConsuming(); err != nil {
			log.Fatal("Profile consumer failed", zap.Error(err))
		}
	}()
	log.Info("profile.changed consumer started successfully")

	// Outbox dispatcher
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("Failed to init publisher", zap.Error(err))
	}
	defer publisher.Close()

	dispatcherCtx, dispatcherCancel := context.WithCancel(context.Background())
	defer dispatcherCancel()

	dispatcher := outbox.NewDispatcher(outbox.NewRepository(dbConn), publisher, log)
	go dispatcher.Start(dispatcherCtx)

	// HTTP Server
	roadmapHandler := handler.NewRoadmapHandler(planService, log)
	router := httpserver.NewRouter(roadmapHandler, log, dbConn, onboardingConsumer)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	log.Info("roadmap server is fully initialized and running",
		zap.String("http_port", cfg.Server.Port),
		zap.String("mq_queue_onboarding", "onboarding.completed.q"),
		zap.String("mq_queue_profile", "profile.changed.q"),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down roadmap server gracefully...")

	log.Info("Stopping MQ consumers...")
	onboardingConsumer.Stop()
	profileConsumer.Stop()

	log.Info("Stopping outbox dispatcher...")
	dispatcherCancel()

	log.Info("Shutting down HTTP server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	log.Info("Closing database connection...")
	dbConn.Close()

	log.Info("roadmap server shutdown complete")
}
