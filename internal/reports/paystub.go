package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"paycalc/internal/domain/payroll"
)

// WritePayStub renders one calculation result as a PDF pay stub.
func WritePayStub(w io.Writer, result *payroll.Result, generatedAt time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Pay Stub")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", result.EmployeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.Cell(0, 8, fmt.Sprintf("Gross pay: %.2f", result.GrossPay))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Taxable wages: %.2f", result.TaxableWages))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Taxes withheld")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	for _, name := range sortedKeys(result.TaxesWithheld) {
		pdf.Cell(0, 8, fmt.Sprintf("  %s: %.2f", name, result.TaxesWithheld[name]))
		pdf.Ln(7)
	}

	if len(result.EmployeeDeductions) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Deductions")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 12)
		for _, name := range sortedKeys(result.EmployeeDeductions) {
			pdf.Cell(0, 8, fmt.Sprintf("  %s: %.2f", name, result.EmployeeDeductions[name]))
			pdf.Ln(7)
		}
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net pay: %.2f", result.NetPay))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pay stub for %s: %w", result.EmployeeID, err)
	}
	return nil
}
