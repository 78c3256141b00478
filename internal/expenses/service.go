package expenses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gudang-erp/gudang-erp/internal/platform/httpx"
	"github.com/gudang-erp/gudang-erp/internal/shared"
)

// InventoryCoster supplies the computed purchase total for a period. The
// procurement service satisfies this.
type InventoryCoster interface {
	MonthlyTotal(ctx context.Context, period shared.Period) (decimal.Decimal, error)
}

type Service struct {
	repo   Repository
	coster InventoryCoster
}

func NewService(repo Repository, coster InventoryCoster) *Service {
	return &Service{repo: repo, coster: coster}
}

func (s *Service) ListByPeriod(ctx context.Context, period shared.Period) ([]Expense, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	return s.repo.ListByPeriod(ctx, period)
}

func (s *Service) Get(ctx context.Context, id int64) (Expense, error) {
	if id <= 0 {
		return Expense{}, fmt.Errorf("%w: invalid expense ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// Create stores an expense record. For INVENTORY entries the submitted amount
// is ignored and replaced with the purchase total of the record's period; the
// statement generator recomputes this total anyway, so the stored value is a
// display snapshot.
func (s *Service) Create(ctx context.Context, expense Expense) (Expense, error) {
	if err := s.validate(expense); err != nil {
		return Expense{}, err
	}
	if expense.Category == CategoryInventory {
		period := periodOf(expense.Date)
		total, err := s.coster.MonthlyTotal(ctx, period)
		if err != nil {
			return Expense{}, fmt.Errorf("expenses: snapshot inventory cost: %w", err)
		}
		expense.Amount = total
	}
	return s.repo.Create(ctx, expense)
}

func (s *Service) Update(ctx context.Context, id int64, expense Expense) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid expense ID", httpx.ErrValidation)
	}
	if err := s.validate(expense); err != nil {
		return err
	}
	if expense.Category == CategoryInventory {
		total, err := s.coster.MonthlyTotal(ctx, periodOf(expense.Date))
		if err != nil {
			return fmt.Errorf("expenses: snapshot inventory cost: %w", err)
		}
		expense.Amount = total
	}
	return s.repo.Update(ctx, id, expense)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid expense ID", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) validate(e Expense) error {
	if e.Date.IsZero() {
		return fmt.Errorf("%w: expense date is required", httpx.ErrValidation)
	}
	if _, err := ParseCategory(string(e.Category)); err != nil {
		return err
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("%w: amount cannot be negative", httpx.ErrValidation)
	}
	hasMethod := e.PaymentMethod != nil && strings.TrimSpace(*e.PaymentMethod) != ""
	if e.Category == CategoryInventory {
		if hasMethod {
			return fmt.Errorf("%w: inventory expenses must not carry a payment method", httpx.ErrValidation)
		}
		return nil
	}
	if !hasMethod {
		return fmt.Errorf("%w: payment method is required for %s expenses", httpx.ErrValidation, e.Category)
	}
	return nil
}

func periodOf(t time.Time) shared.Period {
	t = t.UTC()
	return shared.Period{Month: int(t.Month()), Year: t.Year()}
}
