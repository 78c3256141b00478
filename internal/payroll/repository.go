package payroll

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
	ListByPeriod(ctx context.Context, period shared.Period) ([]Salary, error)
	Get(ctx context.Context, id int64) (Salary, error)
	Create(ctx context.Context, salary Salary) (Salary, error)
	Update(ctx context.Context, id int64, salary Salary) error
	Delete(ctx context.Context, id int64) error
	SumByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const salaryColumns = `id, employee_name, pay_date, amount, created_at, updated_at`

func (r *repository) ListByPeriod(ctx context.Context, period shared.Period) ([]Salary, error) {
	start, end := period.Bounds()
	rows, err := r.db.Query(ctx,
		`SELECT `+salaryColumns+` FROM salaries WHERE pay_date >= $1 AND pay_date < $2 ORDER BY pay_date, id`,
		start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var salaries []Salary
	for rows.Next() {
		var s Salary
		if err := rows.Scan(&s.ID, &s.EmployeeName, &s.PayDate, &s.Amount, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		salaries = append(salaries, s)
	}
	return salaries, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Salary, error) {
	var s Salary
	err := r.db.QueryRow(ctx, `SELECT `+salaryColumns+` FROM salaries WHERE id = $1`, id).
		Scan(&s.ID, &s.EmployeeName, &s.PayDate, &s.Amount, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Salary{}, httpx.ErrNotFound
	}
	return s, err
}

func (r *repository) Create(ctx context.Context, salary Salary) (Salary, error) {
	const query = `INSERT INTO salaries (employee_name, pay_date, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query, salary.EmployeeName, salary.PayDate, salary.Amount, now, now).Scan(&salary.ID)
	if err != nil {
		return Salary{}, err
	}
	salary.CreatedAt = now
	salary.UpdatedAt = now
	return salary, nil
}

func (r *repository) Update(ctx context.Context, id int64, salary Salary) error {
	const query = `UPDATE salaries SET employee_name = $1, pay_date = $2, amount = $3, updated_at = $4 WHERE id = $5`
	tag, err := r.db.Exec(ctx, query, salary.EmployeeName, salary.PayDate, salary.Amount, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM salaries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) SumByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error) {
	start, end := period.Bounds()
	var raw string
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)::text FROM salaries WHERE pay_date >= $1 AND pay_date < $2`,
		start, end,
	).Scan(&raw)
	if err != nil {
		return decimal.Zero, err
	}
	sum, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("payroll: non-numeric salary sum %q: %w", raw, err)
	}
	return sum, nil
}
