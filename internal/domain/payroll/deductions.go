package payroll

import (
	"math"
	"sort"
)

// postTaxDeduction is a deferred deduction with its value fixed at the
// time the pre-tax basis passed over it.
type postTaxDeduction struct {
	Deduction
	Value float64
}

// resolveDeductions folds over the deductions in (priority, name) order,
// carrying the running taxable basis. Percent deductions compute against
// the current basis, so earlier pre-tax deductions change what later
// ones see; that ordering is part of the contract, not an accident of
// iteration. Pre-tax values reduce the basis immediately (floored at 0),
// post-tax values are queued for application against net pay.
func resolveDeductions(grossWages float64, deductions []Deduction, audit *trail) (taxableWages float64, totals map[string]float64, postTax []postTaxDeduction) {
	ordered := make([]Deduction, len(deductions))
	copy(ordered, deductions)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority < ordered[j].Priority
		}
		return ordered[i].Name < ordered[j].Name
	})

	totals = make(map[string]float64, len(ordered))
	basis := grossWages
	for _, deduction := range ordered {
		value := deduction.ComputeValue(basis)
		if deduction.PreTax {
			basis = math.Max(basis-value, 0)
		} else {
			postTax = append(postTax, postTaxDeduction{Deduction: deduction, Value: value})
		}
		totals[deduction.Name] = value
		audit.add("deduction", deduction.Name, value, map[string]float64{
			"priority": float64(deduction.Priority),
			"basis":    basis,
		})
	}
	return basis, totals, postTax
}
