package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yokitheyo/declutter/internal/api"
	"github.com/yokitheyo/declutter/internal/cleanup"
	"github.com/yokitheyo/declutter/internal/config"
	"github.com/yokitheyo/declutter/internal/history"
	"github.com/yokitheyo/declutter/internal/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zl.Sync()

	if err := run(cfg, zl); err != nil {
		zl.Error("server stopped with error", zap.Error(err))
		_ = zl.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx := context.Background()

	opts := []cleanup.Option{
		cleanup.WithCaseSensitive(cfg.Cleanup.CaseSensitive),
		cleanup.WithProtected(cfg.Cleanup.Protected),
	}
	handler := &api.APIHandler{Logger: zl.Named("api")}

	if cfg.History.Enabled {
		store, err := history.Open(ctx, cfg.History.Path, zl.Named("history"))
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer store.Close()
		opts = append(opts, cleanup.WithRecorder(store))
		handler.History = store
	}
	handler.Cleaner = cleanup.NewCleaner(zl.Named("cleanup"), opts...)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(handler, cfg.Server.AllowedOrigins)
	srv := api.NewServer(router, cfg.Server.Port, zl)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		zl.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
