package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ledgerapp "github.com/fuelstation/backend/internal/application/ledger"
	salesapp "github.com/fuelstation/backend/internal/application/sales"
	shiftapp "github.com/fuelstation/backend/internal/application/shift"
	voucherapp "github.com/fuelstation/backend/internal/application/voucher"
	"github.com/fuelstation/backend/internal/domain/ledger"
	"github.com/fuelstation/backend/internal/domain/shared"
	"github.com/fuelstation/backend/internal/infrastructure/cache"
	"github.com/fuelstation/backend/internal/infrastructure/config"
	"github.com/fuelstation/backend/internal/infrastructure/logger"
	"github.com/fuelstation/backend/internal/infrastructure/persistence"
	"github.com/fuelstation/backend/internal/interfaces/http/handler"
	"github.com/fuelstation/backend/internal/interfaces/http/middleware"
	"github.com/fuelstation/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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

	log.Info("Starting Fuel Station Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	voucherRepo := persistence.NewGormVoucherRepository(db.DB)
	shiftCloseRepo := persistence.NewGormShiftCloseRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	creditSaleRepo := persistence.NewGormCreditSaleRepository(db.DB)

	// Initialize application services
	numberGenerator := ledger.NewAccountNumberGenerator(cfg.Ledger.AccountNumberPrefix)
	accountService := ledgerapp.NewAccountService(accountRepo, numberGenerator)
	queryService := ledgerapp.NewQueryService(accountRepo, transactionRepo, creditSaleRepo, voucherRepo)

	voucherEngine := voucherapp.NewEngine(persistence.NewGormVoucherTransactionScope(db.DB))
	if cfg.Idempotency.Enabled {
		// Production must not silently degrade to a per-process store.
		storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis,
			cache.WithLogger(log),
			cache.WithInMemoryFallback(cfg.App.Env != "production"),
		)
		store, err := storeFactory.CreateStore(cfg.Idempotency.Store)
		if err != nil {
			log.Fatal("Failed to create idempotency store", zap.Error(err))
		}
		voucherEngine.SetIdempotencyStore(store, shared.IdempotencyConfig{
			Enabled: true,
			TTL:     cfg.Idempotency.TTL,
		})
		log.Info("Voucher idempotency enabled",
			zap.String("store", cfg.Idempotency.Store),
			zap.Duration("ttl", cfg.Idempotency.TTL),
		)
	}

	closeService := shiftapp.NewCloseService(
		persistence.NewGormShiftTransactionScope(db.DB),
		shiftCloseRepo, saleRepo, creditSaleRepo, voucherRepo,
	)
	salesService := salesapp.NewService(
		saleRepo, creditSaleRepo, accountRepo,
		salesapp.NewLoggingStockNotifier(log),
	)

	// Initialize HTTP handlers
	accountHandler := handler.NewAccountHandler(accountService)
	voucherHandler := handler.NewVoucherHandler(voucherEngine)
	ledgerHandler := handler.NewLedgerHandler(queryService)
	shiftHandler := handler.NewShiftHandler(closeService)
	salesHandler := handler.NewSalesHandler(salesService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/healthz", systemHandler.Healthz)

	// Setup API routes
	router.NewRouter(engine).
		Register(accountHandler).
		Register(voucherHandler).
		Register(ledgerHandler).
		Register(shiftHandler).
		Register(salesHandler).
		Register(systemHandler).
		Setup()

	// Create HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
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
