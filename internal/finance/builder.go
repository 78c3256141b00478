package finance

import (
	"time"

	"github.com/gudang-erp/gudang-erp/internal/shared"
)

// BuildStatement combines aggregated revenue and costs into a statement. Pure
// and deterministic apart from the caller-supplied timestamp.
func BuildStatement(period shared.Period, revenue Revenue, costs Costs, generatedAt time.Time) Statement {
	revenue.TotalRevenue = revenue.Sales.Add(revenue.OtherIncome)
	net := revenue.TotalRevenue.Sub(costs.Expenses).Sub(costs.Salaries)
	return Statement{
		Period:      period,
		Revenue:     revenue,
		Expenses:    costs,
		NetProfit:   net,
		GeneratedAt: generatedAt.UTC(),
	}
}
