package procurement

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gudang-erp/gudang-erp/internal/platform/httpx"
	"github.com/gudang-erp/gudang-erp/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByPeriod(ctx context.Context, period shared.Period) ([]Purchase, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	return s.repo.ListByPeriod(ctx, period)
}

func (s *Service) Get(ctx context.Context, id int64) (Purchase, error) {
	if id <= 0 {
		return Purchase{}, fmt.Errorf("%w: invalid purchase ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, purchase Purchase) (Purchase, error) {
	if err := s.validate(purchase); err != nil {
		return Purchase{}, err
	}
	return s.repo.Create(ctx, purchase)
}

func (s *Service) Update(ctx context.Context, id int64, purchase Purchase) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid purchase ID", httpx.ErrValidation)
	}
	if err := s.validate(purchase); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, purchase)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid purchase ID", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

// MonthlyTotal returns the sum of purchase prices in the period. The expense
// form calls this before submitting an inventory-category entry.
func (s *Service) MonthlyTotal(ctx context.Context, period shared.Period) (decimal.Decimal, error) {
	if err := period.Validate(); err != nil {
		return decimal.Zero, err
	}
	return s.repo.SumByPeriod(ctx, period)
}

func (s *Service) validate(p Purchase) error {
	if p.SupplierID <= 0 {
		return fmt.Errorf("%w: supplier is required", httpx.ErrValidation)
	}
	if strings.TrimSpace(p.ItemName) == "" {
		return fmt.Errorf("%w: item name is required", httpx.ErrValidation)
	}
	if p.PurchaseDate.IsZero() {
		return fmt.Errorf("%w: purchase date is required", httpx.ErrValidation)
	}
	if !p.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", httpx.ErrValidation)
	}
	return nil
}
