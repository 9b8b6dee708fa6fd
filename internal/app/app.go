package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/knowledgestack/backend/internal/catalog"
	"github.com/knowledgestack/backend/internal/config"
	"github.com/knowledgestack/backend/internal/db/repository"
	"github.com/knowledgestack/backend/internal/game"
	"github.com/knowledgestack/backend/internal/history"
	"github.com/knowledgestack/backend/internal/logging"
	"github.com/knowledgestack/backend/internal/progress"
	"github.com/knowledgestack/backend/internal/server"
)

// Application aggregates shared infrastructure (DB, Redis, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// New bootstraps config, logger, Postgres, Redis, the question catalog and the
// HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.SSLMode)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	questionRepo := repository.NewQuestionRepository(pool)
	playerRepo := repository.NewPlayerRepository(pool)

	store, err := loadCatalog(ctx, cfg, questionRepo, logger)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("questions", store.Len()).Msg("question catalog loaded")

	hist := history.New(history.NewRedisStore(redisClient, ""))
	engine := game.NewEngine(store, hist, nil, logger)
	shuffler := game.NewShuffler(nil)
	progressSvc := progress.NewService(playerRepo, logger)

	gameHandlers := game.NewHTTPHandlers(store, engine, shuffler, logger)
	progressHandlers := progress.NewHTTPHandlers(progressSvc, logger)

	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, gameHandlers, progressHandlers)

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// loadCatalog prefers the imported catalog in Postgres and falls back to the
// remote/local bundle source when the table is empty or unreadable.
func loadCatalog(ctx context.Context, cfg *config.App, repo *repository.QuestionRepository, logger zerolog.Logger) (*catalog.Store, error) {
	questions, err := repo.ListAll(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("catalog load from postgres failed, trying bundle source")
	}
	if len(questions) == 0 {
		source := catalog.NewSource(
			cfg.Catalog.RemoteURL,
			cfg.Catalog.LocalPath,
			&http.Client{Timeout: cfg.Catalog.FetchTimeout},
			logger,
		)
		questions, err = source.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	}

	store := catalog.NewStore()
	if err := store.Load(questions); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return store, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
