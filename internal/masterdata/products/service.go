package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/gudang-erp/gudang-erp/internal/masterdata/shared"
	"github.com/gudang-erp/gudang-erp/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, fmt.Errorf("%w: invalid product ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, product Product) (Product, error) {
	if err := s.validate(product); err != nil {
		return Product{}, err
	}
	return s.repo.Create(ctx, product)
}

func (s *Service) Update(ctx context.Context, id int64, product Product) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid product ID", httpx.ErrValidation)
	}
	if err := s.validate(product); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, product)
}

// AdjustStock applies a stock movement; negative deltas must not drive the
// on-hand quantity below zero.
func (s *Service) AdjustStock(ctx context.Context, id int64, delta int) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid product ID", httpx.ErrValidation)
	}
	if delta < 0 {
		current, err := s.repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if current.StockQty+delta < 0 {
			return fmt.Errorf("%w: stock cannot go negative", httpx.ErrValidation)
		}
	}
	return s.repo.AdjustStock(ctx, id, delta)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid product ID", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) validate(p Product) error {
	if strings.TrimSpace(p.SKU) == "" {
		return fmt.Errorf("%w: product SKU is required", httpx.ErrValidation)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", httpx.ErrValidation)
	}
	if p.SellPrice.IsNegative() {
		return fmt.Errorf("%w: sell price cannot be negative", httpx.ErrValidation)
	}
	return nil
}
