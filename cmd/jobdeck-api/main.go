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

	"github.com/jobdeck-dev/jobdeck/internal/config"
	"github.com/jobdeck-dev/jobdeck/internal/logger"
	"github.com/jobdeck-dev/jobdeck/internal/router"
	"github.com/jobdeck-dev/jobdeck/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Storage.Cleanup()
	defer deps.Redis.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// dispatch workers run for the lifetime of the process
	dispatchDone := make(chan struct{})
	go func() {
		deps.Dispatcher.Run(ctx)
		close(dispatchDone)
	}()

	httpPort := os.Getenv("PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + httpPort,
		Handler: router.New(deps),
	}

	go func() {
		logger.Log.Info("server started", "port", httpPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("server shutdown failed", "error", err)
	}

	// wait for in-flight deliveries to drain
	select {
	case <-dispatchDone:
	case <-shutdownCtx.Done():
		logger.Log.Warn("dispatch workers did not drain in time")
	}
}
