package expenses

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gudang-erp/gudang-erp/internal/platform/httpx"
	"github.com/gudang-erp/gudang-erp/internal/shared"
)

type memoryExpenseRepo struct {
	items  map[int64]Expense
	nextID int64
}

func newMemoryExpenseRepo() *memoryExpenseRepo {
	return &memoryExpenseRepo{items: make(map[int64]Expense)}
}

func (r *memoryExpenseRepo) ListByPeriod(ctx context.Context, period shared.Period) ([]Expense, error) {
	var out []Expense
	for _, e := range r.items {
		if period.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memoryExpenseRepo) Get(ctx context.Context, id int64) (Expense, error) {
	e, ok := r.items[id]
	if !ok {
		return Expense{}, httpx.ErrNotFound
	}
	return e, nil
}

func (r *memoryExpenseRepo) Create(ctx context.Context, expense Expense) (Expense, error) {
	r.nextID++
	expense.ID = r.nextID
	r.items[expense.ID] = expense
	return expense, nil
}

func (r *memoryExpenseRepo) Update(ctx context.Context, id int64, expense Expense) error {
	if _, ok := r.items[id]; !ok {
		return httpx.ErrNotFound
	}
	expense.ID = id
	r.items[id] = expense
	return nil
}

func (r *memoryExpenseRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memoryExpenseRepo) SumNonInventoryByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range r.items {
		if e.Category != CategoryInventory && period.Contains(e.Date) {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

type fixedCoster struct {
	total decimal.Decimal
	calls int
}

func (c *fixedCoster) MonthlyTotal(ctx context.Context, period shared.Period) (decimal.Decimal, error) {
	c.calls++
	return c.total, nil
}

func transfer() *string {
	m := "TRANSFER"
	return &m
}

func TestCreateRequiresPaymentMethodForDirectExpenses(t *testing.T) {
	svc := NewService(newMemoryExpenseRepo(), &fixedCoster{})

	_, err := svc.Create(context.Background(), Expense{
		Date:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Category: CategoryUtilities,
		Amount:   decimal.NewFromInt(100),
	})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(context.Background(), Expense{
		Date:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Category:      CategoryUtilities,
		PaymentMethod: transfer(),
		Amount:        decimal.NewFromInt(100),
	})
	require.NoError(t, err)
}

func TestCreateRejectsUnknownCategoryAndNegativeAmount(t *testing.T) {
	svc := NewService(newMemoryExpenseRepo(), &fixedCoster{})

	_, err := svc.Create(context.Background(), Expense{
		Date:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Category:      Category("GROCERIES"),
		PaymentMethod: transfer(),
		Amount:        decimal.NewFromInt(100),
	})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(context.Background(), Expense{
		Date:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Category:      CategoryUtilities,
		PaymentMethod: transfer(),
		Amount:        decimal.NewFromInt(-100),
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateInventoryExpenseSnapshotsPurchaseTotal(t *testing.T) {
	coster := &fixedCoster{total: decimal.RequireFromString("800.00")}
	svc := NewService(newMemoryExpenseRepo(), coster)

	created, err := svc.Create(context.Background(), Expense{
		Date:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Category: CategoryInventory,
		// Submitted amount is ignored in favour of the computed total.
		Amount: decimal.NewFromInt(123456),
	})
	require.NoError(t, err)
	require.Equal(t, 1, coster.calls)
	require.True(t, created.Amount.Equal(decimal.RequireFromString("800.00")), "got %s", created.Amount)
}

func TestCreateInventoryExpenseRejectsPaymentMethod(t *testing.T) {
	svc := NewService(newMemoryExpenseRepo(), &fixedCoster{})

	_, err := svc.Create(context.Background(), Expense{
		Date:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Category:      CategoryInventory,
		PaymentMethod: transfer(),
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestSumNonInventoryExcludesInventoryRows(t *testing.T) {
	repo := newMemoryExpenseRepo()
	coster := &fixedCoster{total: decimal.RequireFromString("800.00")}
	svc := NewService(repo, coster)

	_, err := svc.Create(context.Background(), Expense{
		Date:          time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Category:      CategoryUtilities,
		PaymentMethod: transfer(),
		Amount:        decimal.RequireFromString("1200.50"),
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), Expense{
		Date:     time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC),
		Category: CategoryInventory,
	})
	require.NoError(t, err)

	sum, err := repo.SumNonInventoryByPeriod(context.Background(), shared.Period{Month: 3, Year: 2025})
	require.NoError(t, err)
	require.True(t, sum.Equal(decimal.RequireFromString("1200.50")), "got %s", sum)
}
