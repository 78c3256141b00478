package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/gudang-erp/gudang-erp/internal/app"
	"github.com/gudang-erp/gudang-erp/internal/auth"
	"github.com/gudang-erp/gudang-erp/internal/expenses"
	"github.com/gudang-erp/gudang-erp/internal/finance"
	"github.com/gudang-erp/gudang-erp/internal/masterdata/products"
	"github.com/gudang-erp/gudang-erp/internal/masterdata/suppliers"
	"github.com/gudang-erp/gudang-erp/internal/observability"
	"github.com/gudang-erp/gudang-erp/internal/payroll"
	"github.com/gudang-erp/gudang-erp/internal/platform/cache"
	"github.com/gudang-erp/gudang-erp/internal/platform/db"
	"github.com/gudang-erp/gudang-erp/internal/procurement"
	"github.com/gudang-erp/gudang-erp/internal/sales"
	"github.com/gudang-erp/gudang-erp/internal/shared"
	"github.com/gudang-erp/gudang-erp/jobs"
	"github.com/gudang-erp/gudang-erp/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, statement cache disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	tokenIssuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo, tokenIssuer)
	authHandler := auth.NewHandler(logger, authService)
	requireAuth := auth.RequireAuth(tokenIssuer)

	suppliersRepo := suppliers.NewRepository(dbpool)
	suppliersService := suppliers.NewService(suppliersRepo)
	suppliersHandler := suppliers.NewHandler(logger, suppliersService)

	productsRepo := products.NewRepository(dbpool)
	productsService := products.NewService(productsRepo)
	productsHandler := products.NewHandler(logger, productsService)

	procurementRepo := procurement.NewRepository(dbpool)
	procurementService := procurement.NewService(procurementRepo)
	procurementHandler := procurement.NewHandler(logger, procurementService)

	expensesRepo := expenses.NewRepository(dbpool)
	expensesService := expenses.NewService(expensesRepo, procurementService)
	expensesHandler := expenses.NewHandler(logger, expensesService)

	payrollRepo := payroll.NewRepository(dbpool)
	payrollService := payroll.NewService(payrollRepo)
	payrollHandler := payroll.NewHandler(logger, payrollService)

	salesRepo := sales.NewRepository(dbpool)
	salesService := sales.NewService(salesRepo)
	salesHandler := sales.NewHandler(logger, salesService)

	statementCache := finance.NewStatementCache(redisClient, cfg.StatementCacheTTL)
	financeService := finance.NewService(
		logger,
		finance.NewRevenueAggregator(salesRepo),
		finance.NewCostAggregator(expensesRepo, payrollRepo, procurementRepo),
		finance.NewStatementRepository(dbpool),
		statementCache,
		metrics,
	)
	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()
	enqueueWarmup := func(ctx context.Context, period shared.Period) error {
		_, err := jobsClient.EnqueuePnLWarmup(ctx, period)
		return err
	}

	financeHandler := finance.NewHandler(logger, financeService, report.BuildPnLPDF, enqueueWarmup)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		AuthHandler:        authHandler,
		AuthMiddleware:     requireAuth,
		SuppliersHandler:   suppliersHandler,
		ProductsHandler:    productsHandler,
		ProcurementHandler: procurementHandler,
		ExpensesHandler:    expensesHandler,
		PayrollHandler:     payrollHandler,
		SalesHandler:       salesHandler,
		FinanceHandler:     financeHandler,
		JobHandler:         jobHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
