package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"vehicle-inference-service/internal/adapters/primary/http/handlers"
	"vehicle-inference-service/internal/adapters/primary/http/middleware"
	"vehicle-inference-service/internal/adapters/secondary/artifacts"
	"vehicle-inference-service/internal/adapters/secondary/metrics"
	"vehicle-inference-service/internal/adapters/secondary/postgres"
	"vehicle-inference-service/internal/adapters/secondary/session"
	"vehicle-inference-service/internal/adapters/secondary/sqlite"
	"vehicle-inference-service/internal/config"
	"vehicle-inference-service/internal/core/ports/output"
	"vehicle-inference-service/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Artifacts are loaded once; any failure stops start-up.
	store, err := artifacts.Load(context.Background(), &cfg.Artifacts)
	if err != nil {
		log.Fatalf("load artifacts: %v", err)
	}
	defer store.Close()

	accounts, closeAccounts, err := openAccountStore(context.Background(), &cfg.Database)
	if err != nil {
		log.Fatalf("open account store: %v", err)
	}
	defer closeAccounts()

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	recorder := metrics.NewRecorder()
	sessions := session.NewJWTIssuer(&cfg.Session)

	// Core Services (Application Layer)
	validator := services.NewValidator(store.Reference(), cfg.Inference.ValidatePriceCategories)
	engine := services.NewInferenceEngine(store, cfg.Inference.Timeout, recorder)
	fuelSvc := services.NewFuelEfficiencyService(validator, engine)
	priceSvc := services.NewCarPriceService(validator, engine)
	catalogSvc := services.NewCatalogService(store.Reference())
	accountSvc := services.NewAccountService(accounts, sessions, 0)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(fuelSvc, priceSvc, catalogSvc, accountSvc, handlers.Options{
		CookieName:      cfg.Session.CookieName,
		CookieSecure:    cfg.Session.Secure,
		SessionTTL:      cfg.Session.TTL,
		LegacyAlways200: cfg.Inference.LegacyAlways200,
	})

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), middleware.Metrics(recorder), gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(recorder.Registry(), promhttp.HandlerOpts{})))
	h.RegisterRoutes(router)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

// openAccountStore picks Postgres when DATABASE_URL is set and falls back to
// a local SQLite file.
func openAccountStore(ctx context.Context, cfg *config.DatabaseConfig) (ports.AccountRepository, func(), error) {
	if !cfg.UsePostgres() {
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("path", cfg.SQLitePath).Info("using sqlite account store")
		return db, func() { _ = db.Close() }, nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse db config: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create db pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping db: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	log.Info("database connection established")
	return postgres.NewAccountRepository(pool), pool.Close, nil
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
