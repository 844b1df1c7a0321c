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

	"github.com/angelmondragon/marketplace-checkout/api/routes"
	"github.com/angelmondragon/marketplace-checkout/internal/catalog"
	"github.com/angelmondragon/marketplace-checkout/internal/checkout"
	"github.com/angelmondragon/marketplace-checkout/internal/inventory"
	"github.com/angelmondragon/marketplace-checkout/internal/orders"
	"github.com/angelmondragon/marketplace-checkout/internal/orders/ordernumber"
	"github.com/angelmondragon/marketplace-checkout/internal/payments"
	"github.com/angelmondragon/marketplace-checkout/internal/sellers"
	"github.com/angelmondragon/marketplace-checkout/pkg/config"
	"github.com/angelmondragon/marketplace-checkout/pkg/db"
	"github.com/angelmondragon/marketplace-checkout/pkg/logger"
	"github.com/angelmondragon/marketplace-checkout/pkg/metrics"
	"github.com/angelmondragon/marketplace-checkout/pkg/migrate"
	"github.com/angelmondragon/marketplace-checkout/pkg/outbox"
	"github.com/angelmondragon/marketplace-checkout/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, redisClient.Close()) }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	checkoutMetrics := metrics.NewCheckoutMetrics(reg)

	svc, err := buildCheckoutService(cfg, logg, dbClient, checkoutMetrics)
	if err != nil {
		return err
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			Checkout:    svc,
			Orders:      orders.NewRepository(dbClient.DB()),
			MetricsFrom: reg,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func buildCheckoutService(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, m *metrics.CheckoutMetrics) (checkout.Service, error) {
	conn := dbClient.DB()

	validator, err := checkout.NewValidator(catalog.NewRepository(conn), sellers.NewRepository(conn))
	if err != nil {
		return nil, err
	}
	rate, err := cfg.Checkout.TaxRateDecimal()
	if err != nil {
		return nil, err
	}
	pricer, err := checkout.NewPricer(rate, cfg.Checkout.FlatShippingCents)
	if err != nil {
		return nil, err
	}
	persister, err := orders.NewPersister(ordernumber.Random{}, cfg.Checkout.OrderNumberAttempts, m)
	if err != nil {
		return nil, err
	}

	return checkout.NewService(checkout.Deps{
		Tx:          dbClient,
		Validator:   validator,
		Pricer:      pricer,
		Orders:      persister,
		Payments:    payments.NewInitiator(payments.UUIDKeys{}),
		Inventory:   inventory.NewAdjuster(m),
		Outbox:      outbox.NewService(outbox.NewRepository(conn), logg),
		Metrics:     m,
		Logger:      logg,
		MaxParallel: cfg.Checkout.MaxParallelGroups,
	})
}
