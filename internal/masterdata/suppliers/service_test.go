package suppliers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gudang-erp/gudang-erp/internal/masterdata/shared"
	"github.com/gudang-erp/gudang-erp/internal/platform/httpx"
)

type memoryRepo struct {
	items  map[int64]Supplier
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[int64]Supplier)}
}

func (r *memoryRepo) List(ctx context.Context, filters shared.ListFilters) ([]Supplier, int, error) {
	out := make([]Supplier, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	return out, len(out), nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Supplier, error) {
	s, ok := r.items[id]
	if !ok {
		return Supplier{}, httpx.ErrNotFound
	}
	return s, nil
}

func (r *memoryRepo) Create(ctx context.Context, supplier Supplier) (Supplier, error) {
	for _, existing := range r.items {
		if existing.Code == supplier.Code {
			return Supplier{}, httpx.ErrDuplicate
		}
	}
	r.nextID++
	supplier.ID = r.nextID
	r.items[supplier.ID] = supplier
	return supplier, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, supplier Supplier) error {
	if _, ok := r.items[id]; !ok {
		return httpx.ErrNotFound
	}
	supplier.ID = id
	r.items[id] = supplier
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func TestServiceCreateValidatesRequiredFields(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), Supplier{Name: "CV Maju"})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(context.Background(), Supplier{Code: "SUP-01"})
	require.ErrorIs(t, err, httpx.ErrValidation)

	created, err := svc.Create(context.Background(), Supplier{Code: "SUP-01", Name: "CV Maju"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
}

func TestServiceCreateRejectsDuplicateCode(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), Supplier{Code: "SUP-01", Name: "CV Maju"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), Supplier{Code: "SUP-01", Name: "CV Lain"})
	require.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestServiceGetRejectsInvalidID(t *testing.T) {
	svc := NewService(newMemoryRepo())
	_, err := svc.Get(context.Background(), 0)
	require.ErrorIs(t, err, httpx.ErrValidation)
	_, err = svc.Get(context.Background(), 99)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}
