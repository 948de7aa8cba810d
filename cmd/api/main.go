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

	"github.com/sellgrid/sellermock/api/routes"
	"github.com/sellgrid/sellermock/internal/catalog"
	"github.com/sellgrid/sellermock/internal/feeds"
	"github.com/sellgrid/sellermock/internal/fees"
	"github.com/sellgrid/sellermock/internal/inventory"
	"github.com/sellgrid/sellermock/internal/invoices"
	"github.com/sellgrid/sellermock/internal/listings"
	"github.com/sellgrid/sellermock/internal/messaging"
	"github.com/sellgrid/sellermock/internal/orders"
	"github.com/sellgrid/sellermock/internal/sales"
	"github.com/sellgrid/sellermock/pkg/config"
	"github.com/sellgrid/sellermock/pkg/db"
	"github.com/sellgrid/sellermock/pkg/logger"
	"github.com/sellgrid/sellermock/pkg/metrics"
	"github.com/sellgrid/sellermock/pkg/migrate"
	"github.com/sellgrid/sellermock/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, rate limiting disabled")
	}

	conn := dbClient.DB()

	inventoryService, err := inventory.NewService(inventory.NewRepository(conn))
	exitOnErr(logg, "inventory service", err)

	salesService, err := sales.NewService(sales.NewRepository(conn))
	exitOnErr(logg, "sales service", err)

	listingsService, err := listings.NewService(listings.NewRepository(conn))
	exitOnErr(logg, "listings service", err)

	ordersService, err := orders.NewService(orders.NewRepository(conn))
	exitOnErr(logg, "orders service", err)

	feedsRepo := feeds.NewRepository(conn)
	feedsService, err := feeds.NewService(feedsRepo, cfg.Mock)
	exitOnErr(logg, "feeds service", err)

	reportsService, err := feeds.NewReportService(feedsRepo, cfg.Mock)
	exitOnErr(logg, "reports service", err)

	invoicesService, err := invoices.NewService(invoices.NewRepository(conn), cfg.Mock)
	exitOnErr(logg, "invoices service", err)

	messagingService, err := messaging.NewService(messaging.NewRepository(conn))
	exitOnErr(logg, "messaging service", err)

	feesService, err := fees.NewService(fees.NewRepository(conn))
	exitOnErr(logg, "fees service", err)

	catalogService, err := catalog.NewService(catalog.NewRepository(conn))
	exitOnErr(logg, "catalog service", err)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	handler := routes.NewRouter(
		cfg,
		logg,
		httpMetrics,
		registry,
		dbClient,
		redisClient,
		inventoryService,
		salesService,
		listingsService,
		ordersService,
		feedsService,
		reportsService,
		invoicesService,
		messagingService,
		feesService,
		catalogService,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stop:
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server stopped")
	}
}

func exitOnErr(logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+resource, err)
	os.Exit(1)
}
