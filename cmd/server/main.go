package main

import (
	"context"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"dealscope/server/config"
	"dealscope/server/internal/api"
	"dealscope/server/internal/deepseek"
	"dealscope/server/internal/email"
	"dealscope/server/internal/ingest"
	"dealscope/server/internal/market"
	"dealscope/server/internal/provider"
	"dealscope/server/internal/queue"
	"dealscope/server/internal/rentcast"
	"dealscope/server/internal/scheduler"
	"dealscope/server/internal/state"
	"dealscope/server/internal/store"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Initialize the in-memory snapshot store
	st, err := store.NewStore()
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize store")
	}
	defer st.Close()

	container := state.NewContainer()
	rc := rentcast.NewClient(cfg, logger)
	ds := deepseek.NewClient(cfg, logger)

	// Start the ingest pipeline
	q := queue.NewListingQueue(cfg.Ingest.QueueSize, logger)
	q.Start()
	defer q.Close()

	processor := ingest.NewBatchProcessor(st, q, cfg, logger)
	processor.Start()
	defer processor.Stop()

	mk := market.NewService(st, rc, ds, container, cfg.DefaultCity, logger)

	// Load the initial data set (live when RentCast is reachable, demo otherwise)
	p := provider.New(cfg, rc, container, q, mk, logger)
	p.Initialize(context.Background())

	// Periodic market refreshes for the supported metros
	sched := scheduler.NewScheduler(mk, logger, cfg.RefreshMinutes, config.SupportedMarkets)
	sched.Start()
	defer sched.Stop()

	eg := email.NewGenerator(ds, logger)
	handler := api.NewHandler(cfg, container, p, mk, ds, eg, logger)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}))

	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
