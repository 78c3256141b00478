package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/gudang-erp/gudang-erp/internal/app"
	"github.com/gudang-erp/gudang-erp/internal/expenses"
	"github.com/gudang-erp/gudang-erp/internal/finance"
	"github.com/gudang-erp/gudang-erp/internal/payroll"
	"github.com/gudang-erp/gudang-erp/internal/platform/cache"
	"github.com/gudang-erp/gudang-erp/internal/platform/db"
	"github.com/gudang-erp/gudang-erp/internal/procurement"
	"github.com/gudang-erp/gudang-erp/internal/sales"
	"github.com/gudang-erp/gudang-erp/internal/shared"
	"github.com/gudang-erp/gudang-erp/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

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

	salesRepo := sales.NewRepository(pool)
	expensesRepo := expenses.NewRepository(pool)
	payrollRepo := payroll.NewRepository(pool)
	procurementRepo := procurement.NewRepository(pool)

	financeService := finance.NewService(
		logger,
		finance.NewRevenueAggregator(salesRepo),
		finance.NewCostAggregator(expensesRepo, payrollRepo, procurementRepo),
		finance.NewStatementRepository(pool),
		finance.NewStatementCache(redisClient, cfg.StatementCacheTTL),
		nil,
	)

	warmupJob := jobs.NewPnLWarmupJob(financeService, logger, nil)

	// Empty payload means the previous calendar month.
	warmupTask, err := jobs.NewPnLWarmupTask(shared.Period{})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskPnLWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "15 1 1 * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("starting worker")
	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
