package main

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/BarkinBalci/landing-behavior-service/internal/config"
	"github.com/BarkinBalci/landing-behavior-service/internal/handler"
	"github.com/BarkinBalci/landing-behavior-service/internal/journal"
	"github.com/BarkinBalci/landing-behavior-service/internal/logger"
	"github.com/BarkinBalci/landing-behavior-service/internal/service"
	"github.com/BarkinBalci/landing-behavior-service/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.ServiceEnvironment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting landing behavior service",
		zap.String("environment", cfg.ServiceEnvironment),
		zap.String("port", cfg.ServiceAPIPort))

	// Load the page profile describing widgets, milestones, and timing
	profile, err := config.LoadProfile(cfg.PageProfilePath)
	if err != nil {
		log.Fatal("Failed to load page profile", zap.Error(err))
	}

	// Optional diagnostic event journal
	var sink session.EventSink
	if cfg.JournalEnabled {
		j, err := journal.Open(cfg.JournalPath, journal.Config{
			BatchSizeMax: cfg.JournalBatchSizeMax,
			FlushTimeout: time.Duration(cfg.JournalFlushTimeoutMS) * time.Millisecond,
			BufferSize:   cfg.JournalBufferSize,
		}, log)
		if err != nil {
			log.Fatal("Failed to open event journal", zap.Error(err))
		}
		defer func(j *journal.Journal) {
			if err := j.Close(); err != nil {
				log.Error("Failed to close event journal", zap.Error(err))
			}
		}(j)

		sink = j
		log.Info("Event journal enabled", zap.String("path", cfg.JournalPath))
	}

	// Initialize behavior service
	behavior := service.NewBehaviorService(profile, sink, log)

	// Initialize handler
	h := handler.NewHandler(behavior, log)

	addr := fmt.Sprintf(":%s", cfg.ServiceAPIPort)
	log.Info("Agent server starting", zap.String("address", addr))

	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal("Failed to start agent server", zap.Error(err))
	}
}
