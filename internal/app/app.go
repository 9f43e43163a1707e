package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"api_ledger/internal/api/handlers"
	"api_ledger/internal/api/middlew"
	"api_ledger/internal/config"
	"api_ledger/internal/db"
	"api_ledger/internal/karma"
	"api_ledger/internal/repository/postgres"
	"api_ledger/internal/server"
	"api_ledger/internal/service"
	"api_ledger/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type App struct {
	log    *slog.Logger
	cfg    *config.Config
	server *server.Server
	pool   *pgxpool.Pool
	redis  *redis.Client
}

func NewApp() (*App, error) {
	log := logger.NewLogger()
	log.Info("initializing application")

	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Info("configuration loaded", slog.String("port", cfg.HTTPPort))

	log.Info("running database migrations")
	if err := db.RunMigrations(cfg.DB.MigrationURL(), "migrations"); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("migrations applied")

	pool, err := db.NewPool(context.Background(), cfg.DB.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}
	log.Info("database connection established")

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			// The cache is an optimization; the service runs without it.
			log.Warn("redis unreachable, read cache disabled", slog.String("error", err.Error()))
			redisClient = nil
		} else {
			log.Info("redis connection established", slog.String("addr", cfg.Redis.Addr))
		}
	}

	srv := server.NewServer(cfg.HTTPPort)
	log.Info("server initialized", slog.String("port", cfg.HTTPPort))

	srv.Router.Use(middleware.RequestID)
	srv.Router.Use(middlew.WithLogger(log))
	srv.Router.Use(middleware.RealIP)
	srv.Router.Use(middleware.Recoverer)

	return &App{
		log:    log,
		cfg:    cfg,
		server: srv,
		pool:   pool,
		redis:  redisClient,
	}, nil
}

func (a *App) BuildLayers() {
	walletRepo := postgres.NewWalletRepository(a.pool)
	userRepo := postgres.NewUserRepository(a.pool)

	cache := service.NewWalletCache(a.redis, a.cfg.Redis.CacheTTL)
	walletService := service.NewWalletService(walletRepo, a.pool, cache)

	karmaClient := karma.NewClient(a.cfg.Adjutor.BaseURL, a.cfg.Adjutor.APIKey, a.cfg.Adjutor.Timeout)
	userService := service.NewUserService(userRepo, walletRepo, a.pool, karmaClient, a.log)

	walletHandler := handlers.NewWalletHandler(walletService)
	userHandler := handlers.NewUserHandler(userService)

	a.server.Router.Get("/health", handlers.Health)
	a.server.Router.Post("/users", userHandler.Onboard)

	a.server.Router.Route("/wallet", func(r chi.Router) {
		r.Use(middlew.FauxAuth(userRepo, walletRepo))
		r.Post("/fund", walletHandler.Fund)
		r.Post("/withdraw", walletHandler.Withdraw)
		r.Post("/transfer", walletHandler.Transfer)
		r.Get("/balance", walletHandler.Balance)
		r.Get("/transactions", walletHandler.TransactionHistory)
	})

	a.log.Info("layers built and routes registered")
}

func (a *App) Run() error {
	a.log.Info("server starting")

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-shutdownChan:
		a.log.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	a.log.Info("application stopping")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Error("failed to stop http server", slog.String("error", err.Error()))
	}

	a.log.Info("closing database connection")
	a.pool.Close()

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("failed to close redis client", slog.String("error", err.Error()))
		}
	}

	a.log.Info("application stopped")
	return nil
}
