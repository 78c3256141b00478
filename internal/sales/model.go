// Package sales manages sales revenue records and other income records, the
// two revenue sources of the profit and loss statement.
package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale represents one recorded sale.
type Sale struct {
	ID        int64           `json:"id"`
	InvoiceNo string          `json:"invoice_no"`
	SaleDate  time.Time       `json:"sale_date"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// OtherIncome represents revenue outside regular sales.
type OtherIncome struct {
	ID           int64           `json:"id"`
	Source       string          `json:"source"`
	ReceivedDate time.Time       `json:"received_date"`
	Amount       decimal.Decimal `json:"amount"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
