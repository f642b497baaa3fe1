package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flashflow/flashflow/internal/api"
	"github.com/flashflow/flashflow/internal/clock"
	"github.com/flashflow/flashflow/internal/config"
	"github.com/flashflow/flashflow/internal/logger"
	"github.com/flashflow/flashflow/internal/services"
	"github.com/flashflow/flashflow/internal/storage"
	"github.com/flashflow/flashflow/internal/store"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("FlashFlow Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("seed_cards=%t", cfg.SeedCards)
	log.Debug("activity_days=%d", cfg.ActivityDays)

	kv, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer kv.Close()

	st, err := store.Open(context.Background(), kv, clock.System{})
	if err != nil {
		log.Error("failed to load collections: %v", err)
		os.Exit(1)
	}

	if cfg.SeedCards {
		n, err := st.SeedIfEmpty(context.Background())
		if err != nil {
			log.Error("failed to seed starter deck: %v", err)
			os.Exit(1)
		}
		if n > 0 {
			log.Info("first run: seeded %d starter cards", n)
		}
	}

	server := &api.Server{
		Cards:    services.NewCardService(st),
		Progress: services.NewProgressService(st, cfg.ActivityDays),
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      server.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed: %v", err)
	}
	log.Info("goodbye")
}
