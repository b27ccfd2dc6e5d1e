package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/condostore/pos-backend/api/routes"
	authsvc "github.com/condostore/pos-backend/internal/auth"
	cartsvc "github.com/condostore/pos-backend/internal/cart"
	catalogsvc "github.com/condostore/pos-backend/internal/catalog"
	checkoutsvc "github.com/condostore/pos-backend/internal/checkout"
	dashboardsvc "github.com/condostore/pos-backend/internal/dashboard"
	journalsvc "github.com/condostore/pos-backend/internal/journal"
	residentsvc "github.com/condostore/pos-backend/internal/residents"
	"github.com/condostore/pos-backend/internal/storeapi"
	"github.com/condostore/pos-backend/pkg/config"
	"github.com/condostore/pos-backend/pkg/db"
	"github.com/condostore/pos-backend/pkg/logger"
	"github.com/condostore/pos-backend/pkg/metrics"
	pkgredis "github.com/condostore/pos-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "pos-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "pos-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.Journal, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap journal database", err)
		os.Exit(1)
	}
	if err := dbClient.AutoMigrate(ctx); err != nil {
		logg.Error(ctx, "failed to migrate journal schema", err)
		os.Exit(1)
	}

	var redisClient *pkgredis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = pkgredis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(ctx, "redis not configured, checkout idempotency guard disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	saleMetrics := metrics.NewSaleMetrics(registry)

	upstream, err := storeapi.NewClient(cfg.Upstream, logg)
	if err != nil {
		logg.Error(ctx, "failed to build settlement backend client", err)
		os.Exit(1)
	}

	catalogService, err := catalogsvc.NewService(upstream, logg, saleMetrics)
	if err != nil {
		logg.Error(ctx, "failed to build catalog service", err)
		os.Exit(1)
	}

	residentService, err := residentsvc.NewService(upstream, logg)
	if err != nil {
		logg.Error(ctx, "failed to build residents service", err)
		os.Exit(1)
	}

	sessionStore, err := cartsvc.NewStore(cfg.Sessions, logg)
	if err != nil {
		logg.Error(ctx, "failed to build session store", err)
		os.Exit(1)
	}
	go sessionStore.Sweep(ctx)

	cartService, err := cartsvc.NewService(sessionStore, catalogService, residentService, logg, saleMetrics)
	if err != nil {
		logg.Error(ctx, "failed to build cart service", err)
		os.Exit(1)
	}

	journalService, err := journalsvc.NewService(journalsvc.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(ctx, "failed to build journal service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(sessionStore, upstream, catalogService, journalService, logg, saleMetrics)
	if err != nil {
		logg.Error(ctx, "failed to build checkout service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(cfg.JWT, upstream, logg)
	if err != nil {
		logg.Error(ctx, "failed to build auth service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboardsvc.NewService(upstream, logg)
	if err != nil {
		logg.Error(ctx, "failed to build dashboard service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Cfg:       cfg,
		Logg:      logg,
		JournalDB: dbClient,
		Redis:     redisClient,
		Metrics:   registry,
		Auth:      authService,
		Catalog:   catalogService,
		Cart:      cartService,
		Checkout:  checkoutService,
		Residents: residentService,
		Dashboard: dashboardService,
		Journal:   journalService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	startCtx := logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "addr": addr})
	logg.Info(startCtx, "starting pos api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(startCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(startCtx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
	closeErr = multierr.Append(closeErr, dbClient.Close())
	if redisClient != nil {
		closeErr = multierr.Append(closeErr, redisClient.Close())
	}
	if closeErr != nil {
		logg.Error(startCtx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(startCtx, "shutdown complete")
}
