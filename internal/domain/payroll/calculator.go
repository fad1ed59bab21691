package payroll

import (
	"context"
	"math"
	"strings"
	"unicode"

	"paycalc/internal/domain/taxtable"
)

// Calculator maps one employee's raw pay inputs to an itemized
// gross-to-net result. Pure given a table version: identical inputs
// produce identical results, which is what makes the output auditable.
type Calculator struct {
	tables         *taxtable.Store
	version        string
	periodsPerYear float64
}

func NewCalculator(tables *taxtable.Store, version string, periodsPerYear int) *Calculator {
	if periodsPerYear <= 0 {
		periodsPerYear = 26
	}
	return &Calculator{tables: tables, version: version, periodsPerYear: float64(periodsPerYear)}
}

func (c *Calculator) Version() string {
	return c.version
}

// Calculate runs the request against the calculator's default table
// version.
func (c *Calculator) Calculate(ctx context.Context, req Request) (*Result, error) {
	return c.CalculateVersion(ctx, c.version, req)
}

// CalculateVersion runs the full gross-to-net pipeline in fixed step
// order. Table errors propagate unmodified and abort the calculation;
// a partial result is never returned.
func (c *Calculator) CalculateVersion(ctx context.Context, version string, req Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	table, err := c.tables.Table(ctx, version)
	if err != nil {
		return nil, err
	}

	audit := &trail{}

	grossPay := 0.0
	for _, earning := range req.Earnings {
		amount := earning.Amount()
		grossPay += amount
		audit.add("earning:"+earning.Category, titled(earning.Category)+" pay", amount, map[string]float64{
			"hours": earning.Hours,
			"rate":  earning.Rate,
		})
	}
	grossPay = round2(grossPay)

	taxableWages, deductionTotals, postTax := resolveDeductions(grossPay, req.Deductions, audit)

	withheld, err := c.withhold(table, taxableWages, req.TaxProfile, audit)
	if err != nil {
		return nil, err
	}

	netAfterTax := taxableWages - withheld["federal"] - withheld["state"]
	for _, deduction := range postTax {
		netAfterTax = math.Max(netAfterTax-deduction.Value, 0)
		audit.add("post_tax_deduction", deduction.Name, deduction.Value, map[string]float64{
			"priority": float64(deduction.Priority),
		})
	}

	employer := employerTaxes(table, taxableWages)

	return &Result{
		EmployeeID:         req.EmployeeID,
		GrossPay:           grossPay,
		TaxableWages:       taxableWages,
		TaxesWithheld:      withheld,
		EmployeeDeductions: deductionTotals,
		EmployerTaxes:      employer,
		NetPay:             round2(math.Max(netAfterTax, 0)),
		Explanations:       audit.lines,
	}, nil
}

func titled(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
