// Package expenses manages direct expense records. The INVENTORY category is
// special: its amount is a snapshot of the purchase total for the record's
// period and it carries no payment method.
package expenses

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gudang-erp/gudang-erp/internal/platform/httpx"
)

// Category classifies an expense record.
type Category string

const (
	CategoryUtilities          Category = "UTILITIES"
	CategoryMaintenanceRepairs Category = "MAINTENANCE_REPAIRS"
	CategoryTransportation     Category = "TRANSPORTATION"
	CategoryInventory          Category = "INVENTORY"
	CategoryOther              Category = "OTHER"
)

// ParseCategory validates a raw category value.
func ParseCategory(raw string) (Category, error) {
	switch Category(raw) {
	case CategoryUtilities, CategoryMaintenanceRepairs, CategoryTransportation, CategoryInventory, CategoryOther:
		return Category(raw), nil
	}
	return "", fmt.Errorf("%w: unknown expense category %q", httpx.ErrValidation, raw)
}

// Expense represents a direct expense record.
type Expense struct {
	ID            int64           `json:"id"`
	Date          time.Time       `json:"date"`
	Category      Category        `json:"category"`
	Description   string          `json:"description"`
	PaymentMethod *string         `json:"payment_method,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
