package sales

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gudang-erp/gudang-erp/internal/platform/httpx"
	"github.com/gudang-erp/gudang-erp/internal/shared"
)

type memorySalesRepo struct {
	sales  map[int64]Sale
	income map[int64]OtherIncome
	nextID int64
}

func newMemorySalesRepo() *memorySalesRepo {
	return &memorySalesRepo{sales: make(map[int64]Sale), income: make(map[int64]OtherIncome)}
}

func (r *memorySalesRepo) ListSalesByPeriod(ctx context.Context, period shared.Period) ([]Sale, error) {
	var out []Sale
	for _, s := range r.sales {
		if period.Contains(s.SaleDate) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memorySalesRepo) CreateSale(ctx context.Context, sale Sale) (Sale, error) {
	r.nextID++
	sale.ID = r.nextID
	r.sales[sale.ID] = sale
	return sale, nil
}

func (r *memorySalesRepo) DeleteSale(ctx context.Context, id int64) error {
	if _, ok := r.sales[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.sales, id)
	return nil
}

func (r *memorySalesRepo) SumSalesByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, s := range r.sales {
		if period.Contains(s.SaleDate) {
			sum = sum.Add(s.Amount)
		}
	}
	return sum, nil
}

func (r *memorySalesRepo) ListOtherIncomeByPeriod(ctx context.Context, period shared.Period) ([]OtherIncome, error) {
	var out []OtherIncome
	for _, oi := range r.income {
		if period.Contains(oi.ReceivedDate) {
			out = append(out, oi)
		}
	}
	return out, nil
}

func (r *memorySalesRepo) CreateOtherIncome(ctx context.Context, income OtherIncome) (OtherIncome, error) {
	r.nextID++
	income.ID = r.nextID
	r.income[income.ID] = income
	return income, nil
}

func (r *memorySalesRepo) DeleteOtherIncome(ctx context.Context, id int64) error {
	if _, ok := r.income[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.income, id)
	return nil
}

func (r *memorySalesRepo) SumOtherIncomeByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, oi := range r.income {
		if period.Contains(oi.ReceivedDate) {
			sum = sum.Add(oi.Amount)
		}
	}
	return sum, nil
}

func TestCreateSaleValidation(t *testing.T) {
	svc := NewService(newMemorySalesRepo())
	saleDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateSale(context.Background(), Sale{SaleDate: saleDate, Amount: decimal.NewFromInt(10)})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.CreateSale(context.Background(), Sale{InvoiceNo: "INV-2025-001", Amount: decimal.NewFromInt(10)})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.CreateSale(context.Background(), Sale{InvoiceNo: "INV-2025-001", SaleDate: saleDate, Amount: decimal.NewFromInt(-5)})
	require.ErrorIs(t, err, httpx.ErrValidation)

	created, err := svc.CreateSale(context.Background(), Sale{InvoiceNo: "INV-2025-001", SaleDate: saleDate, Amount: decimal.RequireFromString("150.00")})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
}

func TestSalesPeriodSums(t *testing.T) {
	repo := newMemorySalesRepo()
	svc := NewService(repo)

	mustSale := func(invoice string, date time.Time, amount string) {
		_, err := svc.CreateSale(context.Background(), Sale{
			InvoiceNo: invoice,
			SaleDate:  date,
			Amount:    decimal.RequireFromString(amount),
		})
		require.NoError(t, err)
	}
	mustSale("INV-2025-001", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "6000.00")
	mustSale("INV-2025-002", time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC), "4000.00")
	mustSale("INV-2025-003", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), "999.00")

	period := shared.Period{Month: 3, Year: 2025}
	sum, err := repo.SumSalesByPeriod(context.Background(), period)
	require.NoError(t, err)
	require.True(t, sum.Equal(decimal.RequireFromString("10000.00")), "got %s", sum)

	list, err := svc.ListSales(context.Background(), period)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestOtherIncomeLifecycle(t *testing.T) {
	repo := newMemorySalesRepo()
	svc := NewService(repo)

	_, err := svc.CreateOtherIncome(context.Background(), OtherIncome{ReceivedDate: time.Now(), Amount: decimal.NewFromInt(10)})
	require.ErrorIs(t, err, httpx.ErrValidation)

	created, err := svc.CreateOtherIncome(context.Background(), OtherIncome{
		Source:       "Sewa etalase",
		ReceivedDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Amount:       decimal.RequireFromString("250.00"),
	})
	require.NoError(t, err)

	sum, err := repo.SumOtherIncomeByPeriod(context.Background(), shared.Period{Month: 3, Year: 2025})
	require.NoError(t, err)
	require.True(t, sum.Equal(decimal.RequireFromString("250.00")))

	require.NoError(t, svc.DeleteOtherIncome(context.Background(), created.ID))
	require.ErrorIs(t, svc.DeleteOtherIncome(context.Background(), created.ID), httpx.ErrNotFound)
}
