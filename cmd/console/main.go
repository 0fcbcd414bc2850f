package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"ctlfx/console/internal/cache"
	"ctlfx/console/internal/config"
	"ctlfx/console/internal/handlers"
	"ctlfx/console/internal/log"
	"ctlfx/console/internal/server"
	"ctlfx/console/internal/session"
	"ctlfx/console/internal/upstream"
	"ctlfx/console/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}

	client := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, logger)

	store := session.NewRedisStore(redisClient)
	sessions := session.NewManager(store, client, cfg.Session.Secret, cfg.Session.TTL, logger)

	views := view.NewRegistry(view.Options{
		PageSize: cfg.View.PageSize,
		Debounce: cfg.View.SearchDebounce,
	})
	sessions.OnDestroy(views.Drop)

	handlerSet := handlers.NewHandlerSet(logger, cfg, client, sessions, views)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, redisClient)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, redisClient *redis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	if err := redisClient.Close(); err != nil {
		logger.Error().Err(err).Msg("redis close error")
	}

	logger.Info().Msg("console exited cleanly")
}
