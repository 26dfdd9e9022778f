package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/suagrafica/portal/internal/agent"
	portalcfg "github.com/suagrafica/portal/internal/config"
	"github.com/suagrafica/portal/internal/httpserver"
	"github.com/suagrafica/portal/internal/metrics"
	"github.com/suagrafica/portal/internal/models"
	"github.com/suagrafica/portal/internal/repo"
	"github.com/suagrafica/portal/internal/service"
	"github.com/suagrafica/portal/internal/session"
	pkgdb "github.com/suagrafica/portal/pkg/db"
	"github.com/suagrafica/portal/pkg/events"
	"github.com/suagrafica/portal/pkg/logging"
	loggingmw "github.com/suagrafica/portal/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := portalcfg.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, pkgdb.Options{DSN: cfg.DatabaseURL, ReplicaDSN: cfg.DatabaseReplicaURL})
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	if cfg.AutoMigrate {
		if err := repo.Migrate(db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := metrics.RegisterDB(sqlDB, "portal"); err != nil {
			logger.Warn("db_metrics_register_failed", "error", err)
		}
	}

	sessions, err := openSessions(cfg)
	if err != nil {
		log.Fatalf("sessions: %v", err)
	}

	producer := events.New(cfg.KafkaBrokers)

	store := &repo.GormRepo{DB: db}
	accounts := &service.AccountService{
		Repo:           store,
		Sessions:       sessions,
		CustomerSecret: cfg.JWTAccessSecret,
		CustomerTTL:    cfg.CustomerTokenTTL,
		Debug: service.DebugAuth{
			Enabled: cfg.AuthDebugMode,
			Tokens:  cfg.AuthDebugTokens,
			AdminID: cfg.AuthDebugAdminID,
		},
	}
	catalog := &service.CatalogService{Repo: store}
	orders := &service.OrderService{
		Repo:           store,
		Events:         producer,
		Topic:          cfg.OrderEventsTopic,
		Statuses:       models.NewStatusSet(cfg.ExtraOrderStatuses...),
		PaymentBaseURL: cfg.PaymentLinkBaseURL,
	}

	provider := newProvider(cfg, logger)
	chatAgent := agent.New(provider, catalog, orders, agent.Config{
		CallTimeout:      cfg.AgentCallTimeout,
		FinalizeFallback: cfg.AgentFinalizeFallback,
	})
	if cfg.AuthDebugMode {
		logger.Warn("auth_debug_mode_enabled", "tokens", len(cfg.AuthDebugTokens))
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.ErrorHandler
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(metrics.Middleware())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		Accounts:       &httpserver.AccountHTTP{Svc: accounts},
		Products:       &httpserver.ProductHTTP{Svc: catalog},
		Orders:         &httpserver.OrderHTTP{Svc: orders},
		Chat:           &httpserver.ChatHTTP{Agent: chatAgent},
		AdminResolver:  accounts,
		CustomerSecret: cfg.JWTAccessSecret,
		ChatRateLimit:  cfg.ChatRateLimit,
		Ready: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			if err := sqlDB.PingContext(ctx); err != nil {
				return err
			}
			if p, ok := sessions.(interface{ Ping(context.Context) error }); ok {
				return p.Ping(ctx)
			}
			return nil
		},
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      2 * cfg.AgentCallTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http_listen", "addr", srv.Addr, "agent_available", chatAgent.Available())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_shutdown_failed", "error", err)
	}
	if err := sessions.Close(shutdownCtx); err != nil {
		logger.Warn("sessions_close_failed", "error", err)
	}
	if err := producer.Close(); err != nil {
		logger.Warn("producer_close_failed", "error", err)
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Warn("db_close_failed", "error", err)
	}

	logger.Info("portal_stopped")
}

func openSessions(cfg portalcfg.ServiceConfig) (session.Registry, error) {
	if cfg.RedisURL == "" {
		return session.NewMemoryRegistry(), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return session.NewRedisRegistry(ctx, cfg.RedisURL, cfg.SessionTTL)
}

// newProvider returns nil when no API key is configured; the agent then
// answers every turn with the degraded reply.
func newProvider(cfg portalcfg.ServiceConfig, logger *slog.Logger) agent.Provider {
	if cfg.GeminiAPIKey == "" {
		logger.Warn("agent_provider_disabled", "reason", "GEMINI_API_KEY not set")
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	g, err := agent.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Error("agent_provider_init_failed", "error", err)
		return nil
	}
	return agent.WithBreaker(g, "gemini", logger)
}
