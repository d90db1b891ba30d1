// Package main is the entry point for the stock management API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/DhimiMohamed/stock-management/internal/domain/auth"
	"github.com/DhimiMohamed/stock-management/internal/domain/catalogs/category"
	"github.com/DhimiMohamed/stock-management/internal/domain/catalogs/product"
	"github.com/DhimiMohamed/stock-management/internal/domain/ledger"
	"github.com/DhimiMohamed/stock-management/internal/domain/reports"
	v1 "github.com/DhimiMohamed/stock-management/internal/infrastructure/http/v1"
	"github.com/DhimiMohamed/stock-management/internal/infrastructure/storage/postgres"
	"github.com/DhimiMohamed/stock-management/internal/infrastructure/storage/postgres/auth_repo"
	"github.com/DhimiMohamed/stock-management/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/DhimiMohamed/stock-management/internal/infrastructure/storage/postgres/ledger_repo"
	"github.com/DhimiMohamed/stock-management/internal/infrastructure/storage/postgres/report_repo"
	"github.com/DhimiMohamed/stock-management/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting stock management server")

	// --- Database ---
	dsn := mustEnv("DATABASE_URL")
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Timezone for calendar days ---
	loc := time.Local
	if tz := getEnv("APP_TIMEZONE", ""); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			log.Fatalw("invalid APP_TIMEZONE", "timezone", tz, "error", err)
		}
	}

	// --- Repositories ---
	userRepo := auth_repo.NewUserRepo(txManager)
	categoryRepo := catalog_repo.NewCategoryRepo(txManager)
	productRepo := catalog_repo.NewProductRepo(txManager)
	entryRepo := ledger_repo.NewStockEntryRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Services ---
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(mustEnv("JWT_SECRET")))
	authService := auth.NewService(userRepo, jwtService, log)

	cacheTTL := getEnvDuration("LEDGER_CACHE_TTL", 30*time.Second)
	ledgerService := ledger.NewService(entryRepo, productRepo, txManager,
		ledger.NewCache(cacheTTL), auditService, loc, log)

	categoryService := category.NewService(categoryRepo, log)
	productService := product.NewService(productRepo, ledgerService, txManager, log)

	margin := decimal.NewFromInt(int64(getEnvInt("SALE_MARGIN_PERCENT", 20)))
	reportsService := reports.NewService(reportRepo, margin, loc, log)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:            pool.Pool,
		Logger:          log,
		JWTValidator:    jwtService,
		AuthService:     authService,
		CategoryService: categoryService,
		ProductService:  productService,
		LedgerService:   ledgerService,
		ReportsService:  reportsService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Periodic pool stats for operators
	statsCtx, stopStats := context.WithCancel(ctx)
	defer stopStats()
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-statsCtx.Done():
				return
			case <-ticker.C:
				postgres.LogPoolStats(statsCtx, pool.Pool)
			}
		}
	}()

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
