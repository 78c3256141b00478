package expenses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gudang-erp/gudang-erp/internal/platform/httpx"
	"github.com/gudang-erp/gudang-erp/internal/shared"
)

type Repository interface {
	ListByPeriod(ctx context.Context, period shared.Period) ([]Expense, error)
	Get(ctx context.Context, id int64) (Expense, error)
	Create(ctx context.Context, expense Expense) (Expense, error)
	Update(ctx context.Context, id int64, expense Expense) error
	Delete(ctx context.Context, id int64) error
	// SumNonInventoryByPeriod totals expense amounts dated in the period,
	// excluding INVENTORY rows. The aggregator recomputes the inventory cost
	// from purchases instead of trusting the stored snapshot.
	SumNonInventoryByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const expenseColumns = `id, expense_date, category, description, payment_method, amount, created_at, updated_at`

func (r *repository) ListByPeriod(ctx context.Context, period shared.Period) ([]Expense, error) {
	start, end := period.Bounds()
	rows, err := r.db.Query(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE expense_date >= $1 AND expense_date < $2 ORDER BY expense_date, id`,
		start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.Date, &e.Category, &e.Description, &e.PaymentMethod, &e.Amount, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Expense, error) {
	var e Expense
	err := r.db.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id).
		Scan(&e.ID, &e.Date, &e.Category, &e.Description, &e.PaymentMethod, &e.Amount, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Expense{}, httpx.ErrNotFound
	}
	return e, err
}

func (r *repository) Create(ctx context.Context, expense Expense) (Expense, error) {
	const query = `INSERT INTO expenses (expense_date, category, description, payment_method, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query, expense.Date, expense.Category, expense.Description, expense.PaymentMethod, expense.Amount, now, now).Scan(&expense.ID)
	if err != nil {
		return Expense{}, err
	}
	expense.CreatedAt = now
	expense.UpdatedAt = now
	return expense, nil
}

func (r *repository) Update(ctx context.Context, id int64, expense Expense) error {
	const query = `UPDATE expenses SET expense_date = $1, category = $2, description = $3, payment_method = $4, amount = $5, updated_at = $6 WHERE id = $7`
	tag, err := r.db.Exec(ctx, query, expense.Date, expense.Category, expense.Description, expense.PaymentMethod, expense.Amount, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) SumNonInventoryByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error) {
	start, end := period.Bounds()
	var raw string
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)::text FROM expenses WHERE expense_date >= $1 AND expense_date < $2 AND category <> $3`,
		start, end, CategoryInventory,
	).Scan(&raw)
	if err != nil {
		return decimal.Zero, err
	}
	sum, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("expenses: non-numeric expense sum %q: %w", raw, err)
	}
	return sum, nil
}
