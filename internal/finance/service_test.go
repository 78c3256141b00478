package finance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gudang-erp/gudang-erp/internal/shared"
)

type fakeSales struct {
	sales decimal.Decimal
	other decimal.Decimal
	err   error
}

func (f *fakeSales) SumSalesByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error) {
	return f.sales, f.err
}

func (f *fakeSales) SumOtherIncomeByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error) {
	return f.other, f.err
}

type fakeExpenses struct {
	direct decimal.Decimal
	err    error
}

func (f *fakeExpenses) SumNonInventoryByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error) {
	return f.direct, f.err
}

type fakeSalaries struct {
	total decimal.Decimal
	err   error
}

func (f *fakeSalaries) SumByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error) {
	return f.total, f.err
}

type fakePurchases struct {
	total decimal.Decimal
	err   error
}

func (f *fakePurchases) SumByPeriod(ctx context.Context, period shared.Period) (decimal.Decimal, error) {
	return f.total, f.err
}

type memoryStatementStore struct {
	items   map[shared.Period]Statement
	upserts int
	err     error
}

func newMemoryStatementStore() *memoryStatementStore {
	return &memoryStatementStore{items: make(map[shared.Period]Statement)}
}

func (s *memoryStatementStore) Upsert(ctx context.Context, st Statement) error {
	if s.err != nil {
		return s.err
	}
	s.upserts++
	s.items[st.Period] = st
	return nil
}

func (s *memoryStatementStore) Get(ctx context.Context, period shared.Period) (Statement, error) {
	st, ok := s.items[period]
	if !ok {
		return Statement{}, shared.ErrNotFound
	}
	return st, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService(sales *fakeSales, expenses *fakeExpenses, salaries *fakeSalaries, purchases *fakePurchases, store StatementRepository) *Service {
	return NewService(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		NewRevenueAggregator(sales),
		NewCostAggregator(expenses, salaries, purchases),
		store,
		nil,
		nil,
	)
}

func TestGenerateComputesStatement(t *testing.T) {
	store := newMemoryStatementStore()
	svc := newTestService(
		&fakeSales{sales: dec("10000.00"), other: decimal.Zero},
		&fakeExpenses{direct: dec("1200.50")},
		&fakeSalaries{total: dec("4000.00")},
		&fakePurchases{total: dec("800.00")},
		store,
	)

	period := shared.Period{Month: 3, Year: 2025}
	st, err := svc.Generate(context.Background(), period)
	require.NoError(t, err)

	require.True(t, st.Revenue.Sales.Equal(dec("10000.00")))
	require.True(t, st.Revenue.TotalRevenue.Equal(dec("10000.00")))
	require.True(t, st.Expenses.Expenses.Equal(dec("2000.50")), "got %s", st.Expenses.Expenses)
	require.True(t, st.Expenses.Salaries.Equal(dec("4000.00")))
	require.True(t, st.NetProfit.Equal(dec("3999.50")), "got %s", st.NetProfit)
	require.Equal(t, period, st.Period)
	require.False(t, st.GeneratedAt.IsZero())

	stored, err := store.Get(context.Background(), period)
	require.NoError(t, err)
	require.True(t, stored.NetProfit.Equal(st.NetProfit))
}

func TestGenerateEmptyPeriodYieldsZeros(t *testing.T) {
	store := newMemoryStatementStore()
	svc := newTestService(
		&fakeSales{sales: decimal.Zero, other: decimal.Zero},
		&fakeExpenses{direct: decimal.Zero},
		&fakeSalaries{total: decimal.Zero},
		&fakePurchases{total: decimal.Zero},
		store,
	)

	st, err := svc.Generate(context.Background(), shared.Period{Month: 1, Year: 2030})
	require.NoError(t, err)
	require.True(t, st.Revenue.TotalRevenue.IsZero())
	require.True(t, st.Expenses.Expenses.IsZero())
	require.True(t, st.Expenses.Salaries.IsZero())
	require.True(t, st.NetProfit.IsZero())
	require.Equal(t, 1, store.upserts)
}

func TestGenerateIsIdempotentApartFromTimestamp(t *testing.T) {
	store := newMemoryStatementStore()
	svc := newTestService(
		&fakeSales{sales: dec("250.75"), other: dec("10.25")},
		&fakeExpenses{direct: dec("99.99")},
		&fakeSalaries{total: dec("50.00")},
		&fakePurchases{total: dec("12.01")},
		store,
	)

	period := shared.Period{Month: 7, Year: 2025}
	first, err := svc.Generate(context.Background(), period)
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), period)
	require.NoError(t, err)

	first.GeneratedAt = time.Time{}
	second.GeneratedAt = time.Time{}
	require.Equal(t, first, second)
	require.Equal(t, 2, store.upserts)
	require.Len(t, store.items, 1)
}

func TestGenerateOverwritesAfterDataChange(t *testing.T) {
	store := newMemoryStatementStore()
	sales := &fakeSales{sales: dec("100.00"), other: decimal.Zero}
	svc := newTestService(
		sales,
		&fakeExpenses{direct: decimal.Zero},
		&fakeSalaries{total: decimal.Zero},
		&fakePurchases{total: decimal.Zero},
		store,
	)

	period := shared.Period{Month: 5, Year: 2025}
	_, err := svc.Generate(context.Background(), period)
	require.NoError(t, err)

	sales.sales = dec("175.00")
	st, err := svc.Generate(context.Background(), period)
	require.NoError(t, err)
	require.True(t, st.NetProfit.Equal(dec("175.00")))

	stored, err := svc.Retrieve(context.Background(), period)
	require.NoError(t, err)
	require.True(t, stored.NetProfit.Equal(dec("175.00")))
}

func TestGenerateInvalidPeriodHasNoSideEffects(t *testing.T) {
	store := newMemoryStatementStore()
	svc := newTestService(
		&fakeSales{sales: dec("1.00")},
		&fakeExpenses{},
		&fakeSalaries{},
		&fakePurchases{},
		store,
	)

	for _, period := range []shared.Period{
		{Month: 0, Year: 2025},
		{Month: 13, Year: 2025},
		{Month: 3, Year: 0},
		{Month: 3, Year: -1},
	} {
		_, err := svc.Generate(context.Background(), period)
		require.ErrorIs(t, err, shared.ErrInvalidPeriod, "period %+v", period)
	}
	require.Equal(t, 0, store.upserts)
}

func TestGenerateSurfacesAggregationFailure(t *testing.T) {
	store := newMemoryStatementStore()
	svc := newTestService(
		&fakeSales{err: errors.New("connection refused")},
		&fakeExpenses{},
		&fakeSalaries{},
		&fakePurchases{},
		store,
	)

	_, err := svc.Generate(context.Background(), shared.Period{Month: 3, Year: 2025})
	require.ErrorIs(t, err, ErrAggregation)
	require.Equal(t, 0, store.upserts)
}

func TestGenerateWrapsStoreFailure(t *testing.T) {
	store := newMemoryStatementStore()
	store.err = errors.New("disk full")
	svc := newTestService(
		&fakeSales{sales: dec("1.00")},
		&fakeExpenses{},
		&fakeSalaries{},
		&fakePurchases{},
		store,
	)

	_, err := svc.Generate(context.Background(), shared.Period{Month: 3, Year: 2025})
	require.ErrorIs(t, err, ErrAggregation)
}

func TestRetrieveBeforeGenerate(t *testing.T) {
	svc := newTestService(
		&fakeSales{},
		&fakeExpenses{},
		&fakeSalaries{},
		&fakePurchases{},
		newMemoryStatementStore(),
	)

	_, err := svc.Retrieve(context.Background(), shared.Period{Month: 2, Year: 2025})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCostAggregatorUsesPurchasesForInventory(t *testing.T) {
	agg := NewCostAggregator(
		&fakeExpenses{direct: dec("500.00")},
		&fakeSalaries{total: dec("300.00")},
		&fakePurchases{total: dec("800.00")},
	)

	costs, err := agg.Aggregate(context.Background(), shared.Period{Month: 3, Year: 2025})
	require.NoError(t, err)
	// Direct expenses and the recomputed purchase total, regardless of what
	// any stored inventory snapshot says.
	require.True(t, costs.Expenses.Equal(dec("1300.00")))
	require.True(t, costs.Salaries.Equal(dec("300.00")))
}
