package products

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gudang-erp/gudang-erp/internal/masterdata/shared"
	"github.com/gudang-erp/gudang-erp/internal/platform/httpx"
)

type memoryProductRepo struct {
	items  map[int64]Product
	nextID int64
}

func newMemoryProductRepo() *memoryProductRepo {
	return &memoryProductRepo{items: make(map[int64]Product)}
}

func (r *memoryProductRepo) List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error) {
	out := make([]Product, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (r *memoryProductRepo) Get(ctx context.Context, id int64) (Product, error) {
	p, ok := r.items[id]
	if !ok {
		return Product{}, httpx.ErrNotFound
	}
	return p, nil
}

func (r *memoryProductRepo) Create(ctx context.Context, product Product) (Product, error) {
	r.nextID++
	product.ID = r.nextID
	r.items[product.ID] = product
	return product, nil
}

func (r *memoryProductRepo) Update(ctx context.Context, id int64, product Product) error {
	if _, ok := r.items[id]; !ok {
		return httpx.ErrNotFound
	}
	product.ID = id
	r.items[id] = product
	return nil
}

func (r *memoryProductRepo) AdjustStock(ctx context.Context, id int64, delta int) error {
	p, ok := r.items[id]
	if !ok {
		return httpx.ErrNotFound
	}
	p.StockQty += delta
	r.items[id] = p
	return nil
}

func (r *memoryProductRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func TestProductServiceValidation(t *testing.T) {
	svc := NewService(newMemoryProductRepo())

	_, err := svc.Create(context.Background(), Product{Name: "Tepung"})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(context.Background(), Product{SKU: "TP-01", Name: "Tepung", SellPrice: decimal.NewFromInt(-1)})
	require.ErrorIs(t, err, httpx.ErrValidation)

	created, err := svc.Create(context.Background(), Product{SKU: "TP-01", Name: "Tepung", SellPrice: decimal.NewFromInt(12000)})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
}

func TestProductServiceStockCannotGoNegative(t *testing.T) {
	repo := newMemoryProductRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), Product{SKU: "TP-01", Name: "Tepung", StockQty: 5})
	require.NoError(t, err)

	require.NoError(t, svc.AdjustStock(context.Background(), created.ID, -5))
	err = svc.AdjustStock(context.Background(), created.ID, -1)
	require.ErrorIs(t, err, httpx.ErrValidation)
}
