package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/gudang-erp/gudang-erp/internal/platform/httpx"
	"github.com/gudang-erp/gudang-erp/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListSales(ctx context.Context, period shared.Period) ([]Sale, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	return s.repo.ListSalesByPeriod(ctx, period)
}

func (s *Service) CreateSale(ctx context.Context, sale Sale) (Sale, error) {
	if strings.TrimSpace(sale.InvoiceNo) == "" {
		return Sale{}, fmt.Errorf("%w: invoice number is required", httpx.ErrValidation)
	}
	if sale.SaleDate.IsZero() {
		return Sale{}, fmt.Errorf("%w: sale date is required", httpx.ErrValidation)
	}
	if sale.Amount.IsNegative() {
		return Sale{}, fmt.Errorf("%w: amount cannot be negative", httpx.ErrValidation)
	}
	return s.repo.CreateSale(ctx, sale)
}

func (s *Service) DeleteSale(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid sale ID", httpx.ErrValidation)
	}
	return s.repo.DeleteSale(ctx, id)
}

func (s *Service) ListOtherIncome(ctx context.Context, period shared.Period) ([]OtherIncome, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	return s.repo.ListOtherIncomeByPeriod(ctx, period)
}

func (s *Service) CreateOtherIncome(ctx context.Context, income OtherIncome) (OtherIncome, error) {
	if strings.TrimSpace(income.Source) == "" {
		return OtherIncome{}, fmt.Errorf("%w: income source is required", httpx.ErrValidation)
	}
	if income.ReceivedDate.IsZero() {
		return OtherIncome{}, fmt.Errorf("%w: received date is required", httpx.ErrValidation)
	}
	if income.Amount.IsNegative() {
		return OtherIncome{}, fmt.Errorf("%w: amount cannot be negative", httpx.ErrValidation)
	}
	return s.repo.CreateOtherIncome(ctx, income)
}

func (s *Service) DeleteOtherIncome(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid income ID", httpx.ErrValidation)
	}
	return s.repo.DeleteOtherIncome(ctx, id)
}
