package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mx-space/formcraft/internal/app"
	"github.com/mx-space/formcraft/internal/config"
	"github.com/mx-space/formcraft/internal/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	flag.Parse()

	cfg, cfgErr := config.Load(*configPath)

	var log *zap.Logger
	if cfgErr == nil {
		var err error
		log, err = logger.New(cfg.LogDir(), cfg.IsDev())
		if err != nil {
			log, _ = zap.NewProduction()
			log.Warn("file logging unavailable, falling back to stdout", zap.Error(err))
		}
	} else {
		log, _ = zap.NewProduction()
		log.Fatal("failed to load config", zap.String("path", *configPath), zap.Error(cfgErr))
	}
	defer log.Sync()

	application, err := app.New(context.Background(), log, cfg)
	if err != nil {
		log.Fatal("failed to initialize app", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              application.Addr(),
		Handler:           application.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	if err := application.Shutdown(); err != nil {
		log.Error("cleanup failed", zap.Error(err))
	}
	log.Info("server exited")
}
