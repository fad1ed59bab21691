package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"paycalc/internal/domain/payroll"
)

// WriteRegister renders a preview as a payroll register CSV: one row
// per employee plus a totals row.
func WriteRegister(w io.Writer, preview *payroll.Preview) error {
	writer := csv.NewWriter(w)
	header := []string{"employeeId", "grossPay", "taxableWages", "federalTax", "stateTax", "totalDeductions", "netPay"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write register header: %w", err)
	}

	for _, result := range preview.Results {
		var deductions float64
		for _, amount := range result.EmployeeDeductions {
			deductions += amount
		}
		row := []string{
			result.EmployeeID,
			money(result.GrossPay),
			money(result.TaxableWages),
			money(result.TaxesWithheld["federal"]),
			money(result.TaxesWithheld["state"]),
			money(deductions),
			money(result.NetPay),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write register row for %s: %w", result.EmployeeID, err)
		}
	}

	totals := []string{
		"TOTAL",
		money(preview.TotalGross),
		"",
		money(preview.TaxesWithheld["federal"]),
		money(preview.TaxesWithheld["state"]),
		"",
		money(preview.TotalNet),
	}
	if err := writer.Write(totals); err != nil {
		return fmt.Errorf("write register totals: %w", err)
	}

	writer.Flush()
	return writer.Error()
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// sortedKeys keeps map-backed report sections in a stable order.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
