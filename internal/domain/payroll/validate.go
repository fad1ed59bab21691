package payroll

import (
	"fmt"
	"strings"
)

// validateRequest rejects malformed input before any computation runs.
// Table lookups are not checked here; those fail during calculation
// with their own error types.
func validateRequest(req Request) error {
	if strings.TrimSpace(req.EmployeeID) == "" {
		return fmt.Errorf("%w: employeeId is required", ErrInvalidRequest)
	}
	for i, earning := range req.Earnings {
		if earning.Hours < 0 {
			return fmt.Errorf("%w: earnings[%d] has negative hours", ErrInvalidRequest, i)
		}
		if earning.Rate < 0 {
			return fmt.Errorf("%w: earnings[%d] has negative rate", ErrInvalidRequest, i)
		}
	}
	for i, deduction := range req.Deductions {
		if strings.TrimSpace(deduction.Name) == "" {
			return fmt.Errorf("%w: deductions[%d] has no name", ErrInvalidRequest, i)
		}
		if deduction.Amount < 0 {
			return fmt.Errorf("%w: deduction %q has negative amount", ErrInvalidRequest, deduction.Name)
		}
		switch deduction.Calculation {
		case "", CalcFlat, CalcPercent:
		default:
			return fmt.Errorf("%w: deduction %q has unknown calculation %q", ErrInvalidRequest, deduction.Name, deduction.Calculation)
		}
		if deduction.Limit != nil && *deduction.Limit < 0 {
			return fmt.Errorf("%w: deduction %q has negative limit", ErrInvalidRequest, deduction.Name)
		}
	}
	if strings.TrimSpace(req.TaxProfile.FilingStatus) == "" {
		return fmt.Errorf("%w: taxProfile.filingStatus is required", ErrInvalidRequest)
	}
	if req.TaxProfile.Allowances < 0 {
		return fmt.Errorf("%w: taxProfile.allowances must not be negative", ErrInvalidRequest)
	}
	return nil
}
