package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gudang-erp/gudang-erp/internal/shared"
)

// StatementRepository persists at most one statement per period.
type StatementRepository interface {
	// Upsert writes the statement for its period, atomically replacing any
	// prior statement for the same period.
	Upsert(ctx context.Context, statement Statement) error
	Get(ctx context.Context, period shared.Period) (Statement, error)
}

type statementRepository struct {
	db *pgxpool.Pool
}

// NewStatementRepository constructs a PostgreSQL statement repository.
func NewStatementRepository(db *pgxpool.Pool) StatementRepository {
	return &statementRepository{db: db}
}

// Upsert relies on the (year, month) unique key: concurrent generates for the
// same period serialize on the row, last writer wins.
func (r *statementRepository) Upsert(ctx context.Context, st Statement) error {
	const query = `INSERT INTO pnl_statements (year, month, sales, other_income, total_revenue, expenses, salaries, net_profit, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (year, month) DO UPDATE SET
			sales = EXCLUDED.sales,
			other_income = EXCLUDED.other_income,
			total_revenue = EXCLUDED.total_revenue,
			expenses = EXCLUDED.expenses,
			salaries = EXCLUDED.salaries,
			net_profit = EXCLUDED.net_profit,
			generated_at = EXCLUDED.generated_at`
	_, err := r.db.Exec(ctx, query,
		st.Period.Year, st.Period.Month,
		st.Revenue.Sales, st.Revenue.OtherIncome, st.Revenue.TotalRevenue,
		st.Expenses.Expenses, st.Expenses.Salaries,
		st.NetProfit, st.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("finance: upsert statement %s: %w", st.Period, err)
	}
	return nil
}

func (r *statementRepository) Get(ctx context.Context, period shared.Period) (Statement, error) {
	const query = `SELECT sales::text, other_income::text, total_revenue::text, expenses::text, salaries::text, net_profit::text, generated_at
		FROM pnl_statements WHERE year = $1 AND month = $2`
	var (
		rawSales, rawOther, rawTotal, rawExpenses, rawSalaries, rawNet string
		st                                                             Statement
	)
	err := r.db.QueryRow(ctx, query, period.Year, period.Month).
		Scan(&rawSales, &rawOther, &rawTotal, &rawExpenses, &rawSalaries, &rawNet, &st.GeneratedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Statement{}, shared.ErrNotFound
	}
	if err != nil {
		return Statement{}, err
	}
	st.Period = period
	for _, field := range []struct {
		raw string
		dst *decimal.Decimal
	}{
		{rawSales, &st.Revenue.Sales},
		{rawOther, &st.Revenue.OtherIncome},
		{rawTotal, &st.Revenue.TotalRevenue},
		{rawExpenses, &st.Expenses.Expenses},
		{rawSalaries, &st.Expenses.Salaries},
		{rawNet, &st.NetProfit},
	} {
		value, err := decimal.NewFromString(field.raw)
		if err != nil {
			return Statement{}, fmt.Errorf("finance: non-numeric stored amount %q: %w", field.raw, err)
		}
		*field.dst = value
	}
	return st, nil
}
