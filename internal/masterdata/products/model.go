package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a sellable or producible item.
type Product struct {
	ID           int64           `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	SellPrice    decimal.Decimal `json:"sell_price"`
	StockQty     int             `json:"stock_qty"`
	ReorderLevel int             `json:"reorder_level"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
