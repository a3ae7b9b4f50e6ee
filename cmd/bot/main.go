package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"duet-bot/internal/config"
	"duet-bot/internal/infrastructure/container"
	"duet-bot/internal/infrastructure/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Setup(cfg.Logging.Level)

	// Initialize dependency injection container
	app, err := container.NewContainer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error().Err(err).Msg("error closing application")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Server.Start(); err != nil {
			log.Error().Err(err).Msg("server error")
			quit <- syscall.SIGTERM
		}
	}()

	go app.Bot.Run(ctx, app.Updates)

	log.Info().Str("bot", app.API.Self.UserName).Msg("bot started")

	// Wait for interrupt signal
	<-quit

	// Graceful shutdown: stop accepting updates, then drain the server.
	cancel()
	if err := app.Server.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("bot exited properly")
}
