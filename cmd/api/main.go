package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dapursupply/erp-backend/api/routes"
	"github.com/dapursupply/erp-backend/internal/bom"
	"github.com/dapursupply/erp-backend/internal/catalog"
	"github.com/dapursupply/erp-backend/internal/dashboard"
	"github.com/dapursupply/erp-backend/internal/invoice"
	"github.com/dapursupply/erp-backend/internal/manufacturing"
	"github.com/dapursupply/erp-backend/internal/partners"
	"github.com/dapursupply/erp-backend/internal/purchase"
	"github.com/dapursupply/erp-backend/internal/rfq"
	"github.com/dapursupply/erp-backend/internal/sales"
	"github.com/dapursupply/erp-backend/internal/stock"
	"github.com/dapursupply/erp-backend/pkg/config"
	"github.com/dapursupply/erp-backend/pkg/db"
	"github.com/dapursupply/erp-backend/pkg/logger"
	"github.com/dapursupply/erp-backend/pkg/metrics"
	"github.com/dapursupply/erp-backend/pkg/migrate"
	"github.com/dapursupply/erp-backend/pkg/redis"
	"github.com/dapursupply/erp-backend/pkg/refcode"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	requireResource(logg, "database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	err = migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient)
	requireResource(logg, "migrations", err)

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		requireResource(logg, "redis", err)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	gormDB := dbClient.DB()
	codes := refcode.NewGenerator()
	ledger := stock.NewLedger()

	catalogService, err := catalog.NewService(catalog.NewRepository(gormDB))
	requireResource(logg, "catalog service", err)

	partnersService, err := partners.NewService(
		partners.NewCustomerRepository(gormDB),
		partners.NewVendorRepository(gormDB),
	)
	requireResource(logg, "partners service", err)

	bomService, err := bom.NewService(bom.NewRepository(gormDB))
	requireResource(logg, "bom service", err)

	rfqService, err := rfq.NewService(rfq.NewRepository(gormDB), codes)
	requireResource(logg, "rfq service", err)

	purchaseRepo := purchase.NewRepository(gormDB)
	purchaseService, err := purchase.NewService(purchaseRepo, dbClient, ledger, codes)
	requireResource(logg, "purchase service", err)

	salesRepo := sales.NewRepository(gormDB)
	salesService, err := sales.NewService(salesRepo, dbClient, codes)
	requireResource(logg, "sales service", err)

	deliveryService, err := sales.NewDeliveryService(
		sales.NewDeliveryRepository(gormDB),
		salesRepo,
		dbClient,
		ledger,
		codes,
	)
	requireResource(logg, "delivery service", err)

	manufacturingService, err := manufacturing.NewService(
		manufacturing.NewRepository(gormDB),
		dbClient,
		bomService,
		ledger,
		codes,
	)
	requireResource(logg, "manufacturing service", err)

	invoiceService, err := invoice.NewService(
		invoice.NewRepository(gormDB),
		salesService,
		purchaseRepo,
		codes,
	)
	requireResource(logg, "invoice service", err)

	dashboardService, err := dashboard.NewService(
		dashboard.NewRepository(gormDB),
		invoiceService,
		catalogService,
		dashboard.NewRedisCache(redisClient),
		cfg.Dashboard,
	)
	requireResource(logg, "dashboard service", err)

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

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
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisPinger(redisClient),
			registry,
			httpMetrics,
			catalogService,
			partnersService,
			bomService,
			rfqService,
			purchaseService,
			salesService,
			deliveryService,
			manufacturingService,
			invoiceService,
			dashboardService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// redisPinger avoids handing the router a typed nil when redis is disabled.
func redisPinger(client *redis.Client) redis.Pinger {
	if client == nil {
		return nil
	}
	return client
}

func requireResource(logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
