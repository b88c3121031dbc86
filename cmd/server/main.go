package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cashbookapp "github.com/printshop/backend/internal/application/cashbook"
	catalogapp "github.com/printshop/backend/internal/application/catalog"
	debtapp "github.com/printshop/backend/internal/application/debt"
	inventoryapp "github.com/printshop/backend/internal/application/inventory"
	invoicingapp "github.com/printshop/backend/internal/application/invoicing"
	partnerapp "github.com/printshop/backend/internal/application/partner"
	reportapp "github.com/printshop/backend/internal/application/report"
	"github.com/printshop/backend/internal/infrastructure/cache"
	"github.com/printshop/backend/internal/infrastructure/config"
	"github.com/printshop/backend/internal/infrastructure/logger"
	"github.com/printshop/backend/internal/infrastructure/persistence"
	"github.com/printshop/backend/internal/infrastructure/telemetry"
	"github.com/printshop/backend/internal/interfaces/http/handler"
	"github.com/printshop/backend/internal/interfaces/http/middleware"
	"github.com/printshop/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting printshop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	// Tracing is optional; a disabled config yields a no-op provider.
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			SlowQueryThresh: 200 * time.Millisecond,
			DBSystem:        "postgresql",
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}

	// Repositories
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	balanceRepo := persistence.NewGormCashBalanceRepository(db.DB)
	movementRepo := persistence.NewGormCashMovementRepository(db.DB)
	debtRepo := persistence.NewGormDebtRepository(db.DB)
	debtAccountRepo := persistence.NewGormDebtAccountRepository(db.DB)
	inventoryItemRepo := persistence.NewGormInventoryItemRepository(db.DB)
	inventoryMovementRepo := persistence.NewGormInventoryMovementRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	uow := persistence.NewUnitOfWork(db.DB)

	// The report cache is best-effort: without Redis the dashboard is
	// computed from the database on every request.
	var reportCache reportapp.ReportCache
	if redisCache, err := cache.NewRedisReportCache(cfg.Redis, cache.WithCacheLogger(log)); err != nil {
		log.Warn("Redis unavailable, report caching disabled", zap.Error(err))
	} else {
		reportCache = redisCache
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
	}

	// Application services
	invoiceService := invoicingapp.NewInvoiceService(
		invoiceRepo, supplierRepo, customerRepo, productRepo, balanceRepo, movementRepo, uow)
	cashbookService := cashbookapp.NewService(balanceRepo, movementRepo, uow)
	debtService := debtapp.NewService(debtRepo, debtAccountRepo, balanceRepo, movementRepo, uow)
	supplierService := partnerapp.NewSupplierService(supplierRepo, invoiceRepo, balanceRepo, movementRepo, uow)
	customerService := partnerapp.NewCustomerService(customerRepo)
	productService := catalogapp.NewProductService(productRepo)
	inventoryService := inventoryapp.NewService(inventoryItemRepo, inventoryMovementRepo, uow)
	reportService := reportapp.NewService(reportRepo, reportCache, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.TraceRequestID())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORS(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	router.New(engine, router.WithAPIVersion("v1")).Register(
		handler.NewSystemHandler(db.DB, version),
		handler.NewInvoiceHandler(invoiceService),
		handler.NewCashbookHandler(cashbookService),
		handler.NewDebtHandler(debtService),
		handler.NewSupplierHandler(supplierService),
		handler.NewCustomerHandler(customerService),
		handler.NewProductHandler(productService),
		handler.NewInventoryHandler(inventoryService),
		handler.NewReportHandler(reportService),
	).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
