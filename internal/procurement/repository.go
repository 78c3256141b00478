package procurement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gudang-erp/gudang-erp/internal/platform/httpx"
	"github.com/gudang-erp/gudang-erp/internal/shared"
)

type Repository interface {
	ListByPeriod(ctx context.Context, period shared.Period) ([]Purchase, error)
	Get(ctx context.Context, id int64) (Purchase, error)
	Create(ctx context.Context, purchase Purchase) (Purchase, error)
	Update(ctx context.Context, id int64, purchase Purchase) error
	Delete(ctx context.Context, id int64) error
	// SumByPeriod totals purchase prices dated inside the period. The profit
	// and loss cost aggregator treats this value as the authoritative
	// inventory cost for the period.
	SumByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const purchaseColumns = `p.id, p.supplier_id, s.name, p.item_name, p.purchase_date, p.price, p.created_at, p.updated_at`

func (r *repository) ListByPeriod(ctx context.Context, period shared.Period) ([]Purchase, error) {
	start, end := period.Bounds()
	query := `SELECT ` + purchaseColumns + `
		FROM purchases p
		JOIN suppliers s ON s.id = p.supplier_id
		WHERE p.purchase_date >= $1 AND p.purchase_date < $2
		ORDER BY p.purchase_date, p.id`
	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []Purchase
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ID, &p.SupplierID, &p.SupplierName, &p.ItemName, &p.PurchaseDate, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases p JOIN suppliers s ON s.id = p.supplier_id WHERE p.id = $1`
	var p Purchase
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.SupplierID, &p.SupplierName, &p.ItemName, &p.PurchaseDate, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Purchase{}, httpx.ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, purchase Purchase) (Purchase, error) {
	const query = `INSERT INTO purchases (supplier_id, item_name, purchase_date, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query, purchase.SupplierID, purchase.ItemName, purchase.PurchaseDate, purchase.Price, now, now).Scan(&purchase.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Purchase{}, fmt.Errorf("%w: supplier %d does not exist", httpx.ErrValidation, purchase.SupplierID)
		}
		return Purchase{}, err
	}
	purchase.CreatedAt = now
	purchase.UpdatedAt = now
	return purchase, nil
}

func (r *repository) Update(ctx context.Context, id int64, purchase Purchase) error {
	const query = `UPDATE purchases SET supplier_id = $1, item_name = $2, purchase_date = $3, price = $4, updated_at = $5 WHERE id = $6`
	tag, err := r.db.Exec(ctx, query, purchase.SupplierID, purchase.ItemName, purchase.PurchaseDate, purchase.Price, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM purchases WHERE id = $1`, id)
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
		`SELECT COALESCE(SUM(price), 0)::text FROM purchases WHERE purchase_date >= $1 AND purchase_date < $2`,
		start, end,
	).Scan(&raw)
	if err != nil {
		return decimal.Zero, err
	}
	sum, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("procurement: non-numeric purchase sum %q: %w", raw, err)
	}
	return sum, nil
}
