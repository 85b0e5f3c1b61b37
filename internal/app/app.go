// Package app owns the process lifecycle: it opens the store pools, builds
// the services and the HTTP router, and tears everything down on shutdown.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sharecook/recipes-api/internal/api"
	"github.com/sharecook/recipes-api/internal/core/service"
	mongostore "github.com/sharecook/recipes-api/internal/infrastructure/db/mongo"
	"github.com/sharecook/recipes-api/internal/infrastructure/db/postgres"
	redisstore "github.com/sharecook/recipes-api/internal/infrastructure/db/redis"
	"github.com/sharecook/recipes-api/internal/infrastructure/http/handlers"
	"github.com/sharecook/recipes-api/internal/pkg/config"
)

type App struct {
	cfg *config.Config
	log zerolog.Logger

	db          *sql.DB
	mongoClient *mongo.Client
	mongoDB     *mongo.Database
	redis       *goredis.Client
}

// New connects to PostgreSQL, MongoDB and Redis. Pools opened before a
// failing connection are closed again.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (_ *App, err error) {
	a := &App{cfg: cfg, log: log}
	defer func() {
		if err != nil {
			a.Close(context.Background())
		}
	}()

	a.db, err = postgres.Connect(ctx, postgres.Config{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Msg("connected to postgres")

	a.mongoClient, a.mongoDB, err = mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	a.redis, err = redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	return a, nil
}

// Bootstrap creates the relational schema and the comment indexes. Both steps
// are idempotent.
func (a *App) Bootstrap(ctx context.Context) error {
	if err := postgres.EnsureSchema(ctx, a.db); err != nil {
		return err
	}
	if err := mongostore.NewCommentRepository(a.mongoDB).EnsureIndexes(ctx); err != nil {
		return err
	}
	a.log.Info().Msg("schema and indexes ready")
	return nil
}

// Router wires repositories, services and handlers into an Echo instance.
func (a *App) Router() *echo.Echo {
	users := postgres.NewUserRepository(a.db)
	recipes := postgres.NewRecipeRepository(a.db)
	comments := mongostore.NewCommentRepository(a.mongoDB)
	tokens := service.NewTokenService(a.cfg.JWTSecret)

	return api.NewRouter(api.Services{
		Auth:        service.NewAuthService(users, tokens, a.log),
		Recipes:     service.NewRecipeService(recipes, a.log),
		Comments:    service.NewCommentService(comments, users, a.log),
		Tokens:      tokens,
		Idempotency: redisstore.NewIdempotencyStore(a.redis),
		Readiness: map[string]handlers.Check{
			"postgres": handlers.PostgresCheck(a.db),
			"mongodb":  handlers.MongoCheck(a.mongoClient),
			"redis":    handlers.RedisCheck(a.redis),
		},
	}, api.Options{
		Logger:         a.log,
		AllowedOrigins: a.cfg.CORSOrigins,
	})
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests
// within the configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	e := a.Router()
	addr := ":" + a.cfg.Port

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", addr).Str("env", a.cfg.Env).Msg("http server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Close releases every pool that was opened. Errors are logged.
func (a *App) Close(ctx context.Context) {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn().Err(err).Msg("redis close")
		}
	}
	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			a.log.Warn().Err(err).Msg("mongodb disconnect")
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn().Err(err).Msg("postgres close")
		}
	}
}
