// Package report renders generated profit and loss statements as PDF
// documents for download.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gudang-erp/gudang-erp/internal/finance"
)

var printer = message.NewPrinter(language.Indonesian)

func formatAmount(d decimal.Decimal) string {
	f, _ := d.Float64()
	return printer.Sprintf("%.2f", f)
}

// BuildPnLPDF renders a single-page PDF for a statement.
func BuildPnLPDF(st finance.Statement) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, "Laporan Laba Rugi")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Periode: %s", st.Period.String()))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Dibuat: %s", st.GeneratedAt.Format(time.RFC3339)))
	pdf.Ln(10)

	row := func(label string, amount decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(90, 6, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, formatAmount(amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	row("Penjualan", st.Revenue.Sales, false)
	row("Pendapatan Lain", st.Revenue.OtherIncome, false)
	row("Total Pendapatan", st.Revenue.TotalRevenue, true)
	row("Beban Operasional", st.Expenses.Expenses, false)
	row("Gaji", st.Expenses.Salaries, false)
	row("Laba Bersih", st.NetProfit, true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
