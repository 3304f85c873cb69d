// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/templates/energy-service/internal/admin"
	"github.com/carterperez-dev/templates/energy-service/internal/auth"
	"github.com/carterperez-dev/templates/energy-service/internal/config"
	"github.com/carterperez-dev/templates/energy-service/internal/core"
	"github.com/carterperez-dev/templates/energy-service/internal/health"
	"github.com/carterperez-dev/templates/energy-service/internal/ledger"
	"github.com/carterperez-dev/templates/energy-service/internal/middleware"
	"github.com/carterperez-dev/templates/energy-service/internal/server"
	"github.com/carterperez-dev/templates/energy-service/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := core.Migrate(ctx, db.DB.DB); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	redisConn, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	sessions, err := newSessionBackend(cfg, redisConn.Client)
	if err != nil {
		return err
	}
	logger.Info("session backend initialized", "mode", cfg.Session.Mode)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	policy := auth.NewBootstrapPolicy(cfg.Bootstrap)
	authSvc := auth.NewService(userSvc, sessions.issuer, policy)
	authHandler := auth.NewHandler(authSvc)
	gate := auth.NewGate(userSvc)

	ledgerRepo := ledger.NewRepository(db.DB)
	ledgerSvc := ledger.NewService(ledgerRepo, cfg.Ledger.DefaultReason)

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redisConn},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Ledger:     ledgerSvc,
		DBStats:    db.Stats,
		RedisStats: redisConn.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redisConn.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(
		middleware.NewRateLimiter(redisConn.Client, middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen:   true,
			BypassFunc: middleware.IsPreflight,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))

	healthHandler.RegisterRoutes(router)

	if sessions.jwks != nil {
		router.Get("/.well-known/jwks.json", sessions.jwks)
	}

	authLimiter := middleware.NewRateLimiter(
		redisConn.Client,
		middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.AuthRequests,
				cfg.RateLimit.AuthBurst,
				cfg.RateLimit.Window,
			),
			KeyFunc:  middleware.KeyByPrefix("auth", middleware.KeyByIP),
			FailOpen: true,
		},
	).Handler
	requireSession := middleware.RequireSession(sessions.validator)
	adminOnly := middleware.RequireAdmin(gate)

	authHandler.RegisterRoutes(router, authLimiter, requireSession)
	userHandler.RegisterAdminRoutes(router, adminOnly)
	adminHandler.RegisterRoutes(router, adminOnly)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redisConn.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

type sessionBackend struct {
	issuer    auth.SessionIssuer
	validator auth.SessionValidator
	jwks      http.HandlerFunc
}

func newSessionBackend(
	cfg *config.Config,
	client *redis.Client,
) (*sessionBackend, error) {
	switch cfg.Session.Mode {
	case config.SessionModeOpaque:
		return &sessionBackend{
			issuer:    auth.NewOpaqueIssuer(cfg.Session.TokenBytes),
			validator: auth.PresenceValidator{},
		}, nil
	case config.SessionModeRegistry:
		registry := auth.NewRegistry(
			client,
			cfg.Session.TokenBytes,
			cfg.Session.TTL,
		)
		return &sessionBackend{issuer: registry, validator: registry}, nil
	case config.SessionModeJWT:
		jwtManager, err := auth.NewJWTManager(cfg.JWT)
		if err != nil {
			return nil, err
		}
		slog.Info("JWT manager initialized",
			"algorithm", "ES256",
			"key_id", jwtManager.GetKeyID(),
		)
		return &sessionBackend{
			issuer:    jwtManager,
			validator: jwtManager,
			jwks:      jwtManager.GetJWKSHandler(),
		}, nil
	default:
		return nil, fmt.Errorf("unknown session mode %q", cfg.Session.Mode)
	}
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
