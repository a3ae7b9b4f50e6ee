package container

import (
	"fmt"

	"duet-bot/internal/cache"
	"duet-bot/internal/config"
	deliveryhttp "duet-bot/internal/delivery/http"
	"duet-bot/internal/delivery/telegram"
	"duet-bot/internal/infrastructure/database"
	"duet-bot/internal/infrastructure/gemini"
	"duet-bot/internal/infrastructure/server"
	"duet-bot/internal/repository/postgres"
	"duet-bot/internal/session"
	"duet-bot/internal/usecase/match"
	"duet-bot/internal/usecase/onboarding"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Container holds all application dependencies
type Container struct {
	Config  *config.Config
	DB      *sqlx.DB
	Redis   *redis.Client
	Gemini  *gemini.Client
	API     *tgbotapi.BotAPI
	Bot     *telegram.Bot
	Server  *server.Server
	Updates <-chan tgbotapi.Update
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Redis is optional; without it the render cache is a no-op.
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = database.NewRedisClient(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
	}

	// Gemini is optional; without it match notifications omit the icebreaker.
	var geminiClient *gemini.Client
	if cfg.GeminiAPIKey != "" {
		geminiClient, err = gemini.NewClient(cfg.GeminiAPIKey)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize gemini client, continuing without icebreakers")
			geminiClient = nil
		}
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram api: %w", err)
	}

	// Initialize repositories
	profileRepo := postgres.NewProfileRepository(db)
	likeRepo := postgres.NewLikeRepository(db)

	renderCache := cache.NewRenderCache(redisClient)
	sessions := session.NewStore()
	notifier := telegram.NewNotifier(api)

	// Initialize use cases
	onboardingUseCase := onboarding.NewUseCase(profileRepo, renderCache)

	var icebreakers match.IcebreakerSource
	if geminiClient != nil {
		icebreakers = geminiClient
	}
	matchUseCase := match.NewUseCase(profileRepo, likeRepo, notifier, icebreakers, renderCache)

	bot := telegram.NewBot(api, sessions, onboardingUseCase, matchUseCase, renderCache)

	// Choose the update source: webhook endpoint or long polling.
	var (
		updates     <-chan tgbotapi.Update
		webhookPath string
		webhookChan chan tgbotapi.Update
	)
	if cfg.Telegram.WebhookURL != "" {
		webhookPath = "/webhook/" + cfg.Telegram.Token
		webhookChan = make(chan tgbotapi.Update, 64)
		updates = webhookChan

		wh, err := tgbotapi.NewWebhook(cfg.Telegram.WebhookURL + webhookPath)
		if err != nil {
			return nil, fmt.Errorf("failed to build webhook config: %w", err)
		}
		if _, err := api.Request(wh); err != nil {
			return nil, fmt.Errorf("failed to register webhook: %w", err)
		}
	} else {
		// Drop any stale webhook so polling receives updates.
		if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
			log.Warn().Err(err).Msg("failed to delete stale webhook")
		}
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 30
		updates = api.GetUpdatesChan(u)
	}

	router := deliveryhttp.NewRouter(webhookPath, webhookChan)
	srv := server.NewServer(&cfg.Server, router)

	return &Container{
		Config:  cfg,
		DB:      db,
		Redis:   redisClient,
		Gemini:  geminiClient,
		API:     api,
		Bot:     bot,
		Server:  srv,
		Updates: updates,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	c.API.StopReceivingUpdates()

	if c.Gemini != nil {
		c.Gemini.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Error().Err(err).Msg("error closing redis")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
