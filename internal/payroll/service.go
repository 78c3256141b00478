package payroll

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

func (s *Service) ListByPeriod(ctx context.Context, period shared.Period) ([]Salary, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	return s.repo.ListByPeriod(ctx, period)
}

func (s *Service) Get(ctx context.Context, id int64) (Salary, error) {
	if id <= 0 {
		return Salary{}, fmt.Errorf("%w: invalid salary ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, salary Salary) (Salary, error) {
	if err := s.validate(salary); err != nil {
		return Salary{}, err
	}
	return s.repo.Create(ctx, salary)
}

func (s *Service) Update(ctx context.Context, id int64, salary Salary) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid salary ID", httpx.ErrValidation)
	}
	if err := s.validate(salary); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, salary)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid salary ID", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) validate(salary Salary) error {
	if strings.TrimSpace(salary.EmployeeName) == "" {
		return fmt.Errorf("%w: employee name is required", httpx.ErrValidation)
	}
	if salary.PayDate.IsZero() {
		return fmt.Errorf("%w: pay date is required", httpx.ErrValidation)
	}
	if salary.Amount.IsNegative() {
		return fmt.Errorf("%w: amount cannot be negative", httpx.ErrValidation)
	}
	return nil
}
