package finance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gudang-erp/gudang-erp/internal/observability"
	"github.com/gudang-erp/gudang-erp/internal/shared"
)

// Service orchestrates statement generation and retrieval. Generation is a
// full overwrite of the period's statement; there is no incremental path.
type Service struct {
	logger  *slog.Logger
	revenue *RevenueAggregator
	costs   *CostAggregator
	store   StatementRepository
	cache   *StatementCache
	metrics *observability.Metrics
	now     func() time.Time
}

// NewService constructs the finance service. metrics and cache may be nil.
func NewService(logger *slog.Logger, revenue *RevenueAggregator, costs *CostAggregator, store StatementRepository, cache *StatementCache, metrics *observability.Metrics) *Service {
	return &Service{
		logger:  logger,
		revenue: revenue,
		costs:   costs,
		store:   store,
		cache:   cache,
		metrics: metrics,
		now:     time.Now,
	}
}

// Generate aggregates the period's records, builds the statement, and
// overwrites the stored statement for that period. Revenue and cost
// aggregation hit independent tables and run concurrently.
func (s *Service) Generate(ctx context.Context, period shared.Period) (Statement, error) {
	if err := period.Validate(); err != nil {
		s.metrics.ObservePnLGeneration("invalid_input")
		return Statement{}, err
	}

	var (
		revenue Revenue
		costs   Costs
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		revenue, err = s.revenue.Aggregate(gctx, period)
		return err
	})
	g.Go(func() error {
		var err error
		costs, err = s.costs.Aggregate(gctx, period)
		return err
	})
	if err := g.Wait(); err != nil {
		s.metrics.ObservePnLGeneration("aggregation_failure")
		s.logger.Error("statement aggregation failed", slog.String("period", period.String()), slog.Any("error", err))
		return Statement{}, err
	}

	statement := BuildStatement(period, revenue, costs, s.now())
	if err := s.store.Upsert(ctx, statement); err != nil {
		s.metrics.ObservePnLGeneration("store_failure")
		return Statement{}, fmt.Errorf("%w: persist statement: %v", ErrAggregation, err)
	}
	s.cache.Set(ctx, statement)
	s.metrics.ObservePnLGeneration("success")
	s.logger.Info("statement generated",
		slog.String("period", period.String()),
		slog.String("net_profit", statement.NetProfit.String()),
	)
	return statement, nil
}

// Retrieve returns the most recently generated statement for the period, or
// shared.ErrNotFound when generation has never run for it.
func (s *Service) Retrieve(ctx context.Context, period shared.Period) (Statement, error) {
	if err := period.Validate(); err != nil {
		return Statement{}, err
	}
	if statement, ok := s.cache.Get(ctx, period); ok {
		return statement, nil
	}
	statement, err := s.store.Get(ctx, period)
	if err != nil {
		return Statement{}, err
	}
	s.cache.Set(ctx, statement)
	return statement, nil
}
