package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gudang-erp/gudang-erp/internal/platform/httpx"
	"github.com/gudang-erp/gudang-erp/internal/shared"
)

type Repository interface {
	ListSalesByPeriod(ctx context.Context, period shared.Period) ([]Sale, error)
	CreateSale(ctx context.Context, sale Sale) (Sale, error)
	DeleteSale(ctx context.Context, id int64) error
	SumSalesByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error)

	ListOtherIncomeByPeriod(ctx context.Context, period shared.Period) ([]OtherIncome, error)
	CreateOtherIncome(ctx context.Context, income OtherIncome) (OtherIncome, error)
	DeleteOtherIncome(ctx context.Context, id int64) error
	SumOtherIncomeByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) ListSalesByPeriod(ctx context.Context, period shared.Period) ([]Sale, error) {
	start, end := period.Bounds()
	rows, err := r.db.Query(ctx,
		`SELECT id, invoice_no, sale_date, amount, created_at, updated_at FROM sales WHERE sale_date >= $1 AND sale_date < $2 ORDER BY sale_date, id`,
		start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Sale
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.InvoiceNo, &s.SaleDate, &s.Amount, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repository) CreateSale(ctx context.Context, sale Sale) (Sale, error) {
	const query = `INSERT INTO sales (invoice_no, sale_date, amount, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query, sale.InvoiceNo, sale.SaleDate, sale.Amount, now, now).Scan(&sale.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Sale{}, httpx.ErrDuplicate
		}
		return Sale{}, err
	}
	sale.CreatedAt = now
	sale.UpdatedAt = now
	return sale, nil
}

func (r *repository) DeleteSale(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) SumSalesByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error) {
	start, end := period.Bounds()
	return r.sum(ctx, `SELECT COALESCE(SUM(amount), 0)::text FROM sales WHERE sale_date >= $1 AND sale_date < $2`, start, end)
}

func (r *repository) ListOtherIncomeByPeriod(ctx context.Context, period shared.Period) ([]OtherIncome, error) {
	start, end := period.Bounds()
	rows, err := r.db.Query(ctx,
		`SELECT id, source, received_date, amount, created_at, updated_at FROM other_income WHERE received_date >= $1 AND received_date < $2 ORDER BY received_date, id`,
		start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OtherIncome
	for rows.Next() {
		var o OtherIncome
		if err := rows.Scan(&o.ID, &o.Source, &o.ReceivedDate, &o.Amount, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *repository) CreateOtherIncome(ctx context.Context, income OtherIncome) (OtherIncome, error) {
	const query = `INSERT INTO other_income (source, received_date, amount, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	now := time.Now()
	if err := r.db.QueryRow(ctx, query, income.Source, income.ReceivedDate, income.Amount, now, now).Scan(&income.ID); err != nil {
		return OtherIncome{}, err
	}
	income.CreatedAt = now
	income.UpdatedAt = now
	return income, nil
}

func (r *repository) DeleteOtherIncome(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM other_income WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) SumOtherIncomeByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error) {
	start, end := period.Bounds()
	return r.sum(ctx, `SELECT COALESCE(SUM(amount), 0)::text FROM other_income WHERE received_date >= $1 AND received_date < $2`, start, end)
}

func (r *repository) sum(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	var raw string
	if err := r.db.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		return decimal.Zero, err
	}
	sum, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sales: non-numeric sum %q: %w", raw, err)
	}
	return sum, nil
}
