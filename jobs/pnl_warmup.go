package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/gudang-erp/gudang-erp/internal/finance"
	jobmetrics "github.com/gudang-erp/gudang-erp/internal/jobs"
	"github.com/gudang-erp/gudang-erp/internal/shared"
)

// PnLWarmupJob regenerates the statement for a period so reads hit a fresh
// cache. Defaults to the previous calendar month when the payload is empty.
type PnLWarmupJob struct {
	Finance *finance.Service
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewPnLWarmupJob initialises the warmup handler.
func NewPnLWarmupJob(svc *finance.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *PnLWarmupJob {
	return &PnLWarmupJob{
		Finance: svc,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the warmup.
func (j *PnLWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Finance == nil {
		return errors.New("pnl warmup: handler not configured")
	}
	var payload PnLWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	period := shared.Period{Month: payload.Month, Year: payload.Year}
	if payload.Month == 0 && payload.Year == 0 {
		// Step back from the first of the month so date normalization
		// cannot skip short months (31 Mar - 1 month lands in March).
		now := j.clock()
		prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
		period = shared.Period{Month: int(prev.Month()), Year: prev.Year()}
	}
	if err := period.Validate(); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskPnLWarmup)
	st, err := j.Finance.Generate(ctx, period)
	if err = tracker.End(err); err != nil {
		j.logger().Error("pnl warmup failed", slog.String("period", period.String()), slog.Any("error", err))
		return err
	}
	j.logger().Info("pnl warmup complete",
		slog.String("period", period.String()),
		slog.String("net_profit", st.NetProfit.String()),
	)
	return nil
}

func (j *PnLWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return jobmetrics.NewMetrics(nil)
}

func (j *PnLWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
