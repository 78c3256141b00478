package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Salary represents one salary payment to an employee.
type Salary struct {
	ID           int64           `json:"id"`
	EmployeeName string          `json:"employee_name"`
	PayDate      time.Time       `json:"pay_date"`
	Amount       decimal.Decimal `json:"amount"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
