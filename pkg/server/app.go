package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/crossmarket/crossmarket/internal/handler/api"
	"github.com/crossmarket/crossmarket/internal/repository"
	"github.com/crossmarket/crossmarket/internal/usecase"
	"github.com/crossmarket/crossmarket/pkg/cache"
	"github.com/crossmarket/crossmarket/pkg/config"
	xhttp "github.com/crossmarket/crossmarket/pkg/http"
	"github.com/crossmarket/crossmarket/pkg/logger"
	"github.com/crossmarket/crossmarket/pkg/metrics"
	"github.com/crossmarket/crossmarket/pkg/sqlite"
)

// App owns the wiring and lifecycle of the dashboard service.
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	store  *sqlite.Client
	cache  cache.Service
	server *xhttp.Server
}

// New builds the application from configuration: logger, store discovery,
// cache, repository, usecases, and the HTTP server.
func New(cfg *config.Config) (*App, error) {
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	path := cfg.Store.Path
	if path == "" {
		path, err = sqlite.Discover(cfg.Store.Candidates)
		if err != nil {
			return nil, err
		}
	}

	store, err := sqlite.NewClient(sqlite.WithPath(path))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Info("store opened", logger.String("path", path))

	cacheSvc, err := buildCache(cfg, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	recorder := metrics.New()

	repo := repository.New(store.DB(), cacheSvc,
		repository.WithQueryTimeout(cfg.Store.QueryTimeout),
		repository.WithCacheTTL(cfg.Cache.TTL),
		repository.WithMetrics(recorder),
	)

	handler := api.NewDashboardHandler(
		log,
		usecase.NewOverview(repo, log),
		usecase.NewCatalog(repo, log),
		usecase.NewTopCoins(repo, log),
		store,
	)

	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(log),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetricsPath(cfg.Metrics.Path))
	}

	return &App{
		cfg:    cfg,
		log:    log,
		store:  store,
		cache:  cacheSvc,
		server: xhttp.NewServer(handler, opts...),
	}, nil
}

func buildCache(cfg *config.Config, log *logger.Logger) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize)), nil
	}

	redisCache, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Cache.Redis.Addr),
		cache.WithRedisAuth(cfg.Cache.Redis.Password, cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("init redis cache: %w", err)
	}
	log.Info("redis cache enabled", logger.String("addr", cfg.Cache.Redis.Addr))

	return cache.NewLayeredCache(redisCache,
		cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize)), nil
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	if err := a.server.Start(); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	a.log.Info("shutting down", logger.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	return a.Shutdown(ctx)
}

// Shutdown stops the HTTP server and releases the cache and store.
func (a *App) Shutdown(ctx context.Context) error {
	var firstErr error

	if err := a.server.Stop(ctx); err != nil {
		firstErr = err
	}
	if err := a.cache.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := a.store.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
