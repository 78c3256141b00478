// Package finance implements the profit and loss generation engine: period
// aggregation of revenue and cost records, statement building, and the
// per-period statement store.
package finance

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gudang-erp/gudang-erp/internal/shared"
)

// ErrAggregation indicates an underlying record store failed during statement
// generation. Callers may re-issue the generate request; nothing is retried
// internally.
var ErrAggregation = errors.New("aggregation failed")

// Revenue is the income side of a statement.
type Revenue struct {
	Sales        decimal.Decimal `json:"sales"`
	OtherIncome  decimal.Decimal `json:"other_income"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// Costs is the expense side of a statement. Expenses already include the
// recomputed inventory cost for the period.
type Costs struct {
	Expenses decimal.Decimal `json:"expenses"`
	Salaries decimal.Decimal `json:"salaries"`
}

// Statement is the persisted profit and loss result for one period.
type Statement struct {
	Period      shared.Period   `json:"period"`
	Revenue     Revenue         `json:"revenue"`
	Expenses    Costs           `json:"expenses"`
	NetProfit   decimal.Decimal `json:"net_profit"`
	GeneratedAt time.Time       `json:"generated_at"`
}
