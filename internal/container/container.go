// Package container wires the application's repositories, services and
// handlers together.
package container

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	database "github.com/dora-travel/dora-planner/app/db"
	"github.com/dora-travel/dora-planner/config"
	"github.com/dora-travel/dora-planner/internal/api/auth"
	generativeAI "github.com/dora-travel/dora-planner/internal/api/generative_ai"
	"github.com/dora-travel/dora-planner/internal/api/itinerary"
	"github.com/dora-travel/dora-planner/internal/api/narration"
	"github.com/dora-travel/dora-planner/internal/api/session"
	"github.com/dora-travel/dora-planner/internal/api/trips"
)

// Container holds all application dependencies.
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	Pool             *pgxpool.Pool
	Redis            *redis.Client
	AuthHandler      *auth.Handler
	ItineraryHandler *itinerary.Handler
	TripsHandler     *trips.Handler
	SessionService   session.Service
}

// NewContainer initializes and returns a new dependency container.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Repositories.Redis.Addr,
		Password: cfg.Repositories.Redis.Password,
		DB:       cfg.Repositories.Redis.DB,
	})

	// Sessions
	sessionRepo := session.NewRedisRepository(redisClient)
	sessionService := session.NewServiceImpl(sessionRepo, cfg.Session.TTL, logger)

	// Narration and itinerary assembly. A missing AI key is not fatal;
	// narration then serves curated content only.
	var generator narration.Generator
	if aiClient, aiErr := generativeAI.NewAIClient(ctx, cfg.Gemini.Model); aiErr != nil {
		logger.Warn("AI client unavailable, narration will use curated content", slog.Any("error", aiErr))
	} else {
		generator = aiClient
	}
	narrationService := narration.NewServiceImpl(generator, cfg.Narration.Timeout, cfg.Narration.CacheTTL, logger)
	itineraryService := itinerary.NewServiceImpl(narrationService, logger)
	itineraryHandler := itinerary.NewHandler(itineraryService, sessionService, logger)

	// Accounts
	authRepo := auth.NewPostgresRepository(pool, logger)
	authService := auth.NewServiceImpl(authRepo, cfg.Auth, logger)
	authHandler := auth.NewHandler(authService, logger)

	// Saved trips
	tripsRepo := trips.NewPostgresRepository(pool, logger)
	tripsService := trips.NewServiceImpl(tripsRepo, sessionService, logger)
	tripsHandler := trips.NewHandler(tripsService, logger)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		Pool:             pool,
		Redis:            redisClient,
		AuthHandler:      authHandler,
		ItineraryHandler: itineraryHandler,
		TripsHandler:     tripsHandler,
		SessionService:   sessionService,
	}, nil
}

// Close releases all resources held by the container.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("Failed to close Redis client", slog.Any("error", err))
		}
	}
}

// WaitForDB waits for the database to be ready.
func (c *Container) WaitForDB(ctx context.Context) bool {
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}

// RunMigrations runs database migrations.
func (c *Container) RunMigrations(connectionURL string) error {
	return database.RunMigrations(connectionURL, c.Logger)
}
