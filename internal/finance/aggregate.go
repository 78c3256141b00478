package finance

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gudang-erp/gudang-erp/internal/shared"
)

// SalesSource exposes the revenue sums the aggregator needs. The sales
// repository satisfies this.
type SalesSource interface {
	SumSalesByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error)
	SumOtherIncomeByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error)
}

// ExpenseSource totals direct expenses excluding the INVENTORY category.
type ExpenseSource interface {
	SumNonInventoryByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error)
}

// SalarySource totals salary payments for a period.
type SalarySource interface {
	SumByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error)
}

// PurchaseSource totals purchase prices for a period; this is the
// authoritative inventory cost.
type PurchaseSource interface {
	SumByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error)
}

// RevenueAggregator sums sales revenue and other income for a period.
type RevenueAggregator struct {
	sales SalesSource
}

// NewRevenueAggregator constructs a RevenueAggregator.
func NewRevenueAggregator(sales SalesSource) *RevenueAggregator {
	return &RevenueAggregator{sales: sales}
}

// Aggregate reads both revenue sums for the period. A period with no records
// yields zeros, not an error.
func (a *RevenueAggregator) Aggregate(ctx context.Context, period shared.Period) (Revenue, error) {
	salesSum, err := a.sales.SumSalesByPeriod(ctx, period)
	if err != nil {
		return Revenue{}, fmt.Errorf("%w: sales: %v", ErrAggregation, err)
	}
	otherSum, err := a.sales.SumOtherIncomeByPeriod(ctx, period)
	if err != nil {
		return Revenue{}, fmt.Errorf("%w: other income: %v", ErrAggregation, err)
	}
	return Revenue{
		Sales:        salesSum,
		OtherIncome:  otherSum,
		TotalRevenue: salesSum.Add(otherSum),
	}, nil
}

// CostAggregator sums direct expenses, salaries and the recomputed inventory
// cost for a period.
type CostAggregator struct {
	expenses  ExpenseSource
	salaries  SalarySource
	purchases PurchaseSource
}

// NewCostAggregator constructs a CostAggregator.
func NewCostAggregator(expenses ExpenseSource, salaries SalarySource, purchases PurchaseSource) *CostAggregator {
	return &CostAggregator{expenses: expenses, salaries: salaries, purchases: purchases}
}

// Aggregate computes the cost side of the statement. Inventory-category
// expense rows are excluded from the direct sum and replaced by the purchase
// total, so the stale stored snapshot never double counts.
func (a *CostAggregator) Aggregate(ctx context.Context, period shared.Period) (Costs, error) {
	direct, err := a.expenses.SumNonInventoryByPeriod(ctx, period)
	if err != nil {
		return Costs{}, fmt.Errorf("%w: expenses: %v", ErrAggregation, err)
	}
	inventory, err := a.purchases.SumByPeriod(ctx, period)
	if err != nil {
		return Costs{}, fmt.Errorf("%w: purchases: %v", ErrAggregation, err)
	}
	salaries, err := a.salaries.SumByPeriod(ctx, period)
	if err != nil {
		return Costs{}, fmt.Errorf("%w: salaries: %v", ErrAggregation, err)
	}
	return Costs{
		Expenses: direct.Add(inventory),
		Salaries: salaries,
	}, nil
}
