package procurement

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gudang-erp/gudang-erp/internal/platform/httpx"
	"github.com/gudang-erp/gudang-erp/internal/shared"
)

type memoryPurchaseRepo struct {
	items  map[int64]Purchase
	nextID int64
}

func newMemoryPurchaseRepo() *memoryPurchaseRepo {
	return &memoryPurchaseRepo{items: make(map[int64]Purchase)}
}

func (r *memoryPurchaseRepo) ListByPeriod(ctx context.Context, period shared.Period) ([]Purchase, error) {
	var out []Purchase
	for _, p := range r.items {
		if period.Contains(p.PurchaseDate) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryPurchaseRepo) Get(ctx context.Context, id int64) (Purchase, error) {
	p, ok := r.items[id]
	if !ok {
		return Purchase{}, httpx.ErrNotFound
	}
	return p, nil
}

func (r *memoryPurchaseRepo) Create(ctx context.Context, purchase Purchase) (Purchase, error) {
	r.nextID++
	purchase.ID = r.nextID
	r.items[purchase.ID] = purchase
	return purchase, nil
}

func (r *memoryPurchaseRepo) Update(ctx context.Context, id int64, purchase Purchase) error {
	if _, ok := r.items[id]; !ok {
		return httpx.ErrNotFound
	}
	purchase.ID = id
	r.items[id] = purchase
	return nil
}

func (r *memoryPurchaseRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memoryPurchaseRepo) SumByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.items {
		if period.Contains(p.PurchaseDate) {
			sum = sum.Add(p.Price)
		}
	}
	return sum, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPurchaseValidation(t *testing.T) {
	svc := NewService(newMemoryPurchaseRepo())

	cases := []Purchase{
		{ItemName: "Tepung", PurchaseDate: date(2025, 3, 1), Price: decimal.NewFromInt(100)},
		{SupplierID: 1, PurchaseDate: date(2025, 3, 1), Price: decimal.NewFromInt(100)},
		{SupplierID: 1, ItemName: "Tepung", Price: decimal.NewFromInt(100)},
		{SupplierID: 1, ItemName: "Tepung", PurchaseDate: date(2025, 3, 1)},
		{SupplierID: 1, ItemName: "Tepung", PurchaseDate: date(2025, 3, 1), Price: decimal.NewFromInt(-5)},
	}
	for i, c := range cases {
		_, err := svc.Create(context.Background(), c)
		require.ErrorIs(t, err, httpx.ErrValidation, "case %d", i)
	}

	_, err := svc.Create(context.Background(), Purchase{
		SupplierID: 1, ItemName: "Tepung", PurchaseDate: date(2025, 3, 1), Price: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
}

func TestMonthlyTotalScopesToPeriod(t *testing.T) {
	repo := newMemoryPurchaseRepo()
	svc := NewService(repo)

	mustCreate := func(day time.Time, price string) {
		t.Helper()
		amount, err := decimal.NewFromString(price)
		require.NoError(t, err)
		_, err = svc.Create(context.Background(), Purchase{SupplierID: 1, ItemName: "Bahan", PurchaseDate: day, Price: amount})
		require.NoError(t, err)
	}

	mustCreate(date(2025, 3, 1), "500.00")
	mustCreate(date(2025, 3, 31), "300.00")
	mustCreate(date(2025, 4, 1), "999.99")
	mustCreate(date(2025, 2, 28), "111.11")

	total, err := svc.MonthlyTotal(context.Background(), shared.Period{Month: 3, Year: 2025})
	require.NoError(t, err)
	require.True(t, total.Equal(decimal.RequireFromString("800.00")), "got %s", total)
}

func TestMonthlyTotalEmptyPeriodIsZero(t *testing.T) {
	svc := NewService(newMemoryPurchaseRepo())
	total, err := svc.MonthlyTotal(context.Background(), shared.Period{Month: 1, Year: 2030})
	require.NoError(t, err)
	require.True(t, total.IsZero())
}

func TestMonthlyTotalRejectsInvalidPeriod(t *testing.T) {
	svc := NewService(newMemoryPurchaseRepo())
	_, err := svc.MonthlyTotal(context.Background(), shared.Period{Month: 13, Year: 2025})
	require.ErrorIs(t, err, shared.ErrInvalidPeriod)
}
