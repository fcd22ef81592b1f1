package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tasktracker/internal/auth"
	"tasktracker/internal/config"
	"tasktracker/internal/logging"
	"tasktracker/internal/server"
	"tasktracker/internal/storage"
)

func main() {
	cfg, err := config.Load(".env", os.Args[1:])
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(2)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	logger.Info("task tracker API", slog.String("addr", cfg.Addr), slog.String("db_driver", cfg.DBDriver))
	if cfg.JWTSecret == config.DefaultSecret {
		logger.Warn("using the development token secret; set JWT_SECRET in production")
	}
	if cfg.TokenTTL == 0 {
		logger.Warn("issued tokens never expire; set TRACKER_TOKEN_TTL to bound them")
	}

	store, err := storage.Open(cfg.DBDriver, cfg.DBDSN, logger)
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	if purged, err := store.PurgeRevoked(context.Background()); err != nil {
		logger.Warn("unable to purge expired revocations", slog.String("error", err.Error()))
	} else if purged > 0 {
		logger.Info("purged expired revocations", slog.Int64("count", purged))
	}

	tokens, err := auth.NewIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL, store)
	if err != nil {
		logger.Error("unable to create token issuer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := server.New(store, tokens, logger, server.Options{
		StaticDir:   cfg.StaticDir,
		CORSOrigins: cfg.CORSOrigins,
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
