package procurement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase represents one purchased line item from a supplier. Purchases are
// the source records for the auto-computed inventory cost.
type Purchase struct {
	ID           int64           `json:"id"`
	SupplierID   int64           `json:"supplier_id"`
	SupplierName string          `json:"supplier_name,omitempty"`
	ItemName     string          `json:"item_name"`
	PurchaseDate time.Time       `json:"purchase_date"`
	Price        decimal.Decimal `json:"price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
