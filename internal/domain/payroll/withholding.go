package payroll

import (
	"math"

	"paycalc/internal/domain/taxtable"
)

// applyBrackets walks the brackets in ascending cap order, taxing the
// slice of amount between consecutive caps at each bracket's marginal
// rate. Amount above the last cap is taxed at the last bracket's rate;
// no bracket is implicitly unbounded except the last one by convention.
func applyBrackets(amount float64, brackets []taxtable.Bracket) float64 {
	remaining := amount
	lastCap := 0.0
	total := 0.0
	for _, bracket := range brackets {
		taxableAtRate := math.Max(math.Min(remaining, bracket.UpTo-lastCap), 0)
		total += taxableAtRate * bracket.Rate
		remaining -= taxableAtRate
		lastCap = bracket.UpTo
		if remaining <= 0 {
			break
		}
	}
	if remaining > 0 && len(brackets) > 0 {
		total += remaining * brackets[len(brackets)-1].Rate
	}
	return round2(total)
}

// withhold computes federal and state withholding for the taxable wages.
// The per-period allowance reduction is applied before bracket lookup.
// An empty state simply yields zero state tax; an unknown state fails
// the whole calculation.
func (c *Calculator) withhold(table *taxtable.Table, taxableWages float64, profile TaxProfile, audit *trail) (map[string]float64, error) {
	allowance := table.AllowanceFor(taxtable.LevelFederal, "")
	adjusted := math.Max(taxableWages-allowance*float64(profile.Allowances)/c.periodsPerYear, 0)
	brackets, err := table.BracketsFor(taxtable.LevelFederal, profile.FilingStatus, "")
	if err != nil {
		return nil, err
	}
	federal := applyBrackets(adjusted, brackets)
	audit.add("federal_tax", "Federal withholding", federal, map[string]float64{
		"adjustedWages": adjusted,
	})

	state := 0.0
	if profile.State != "" {
		stateAllowance := table.AllowanceFor(taxtable.LevelState, profile.State)
		stateAdjusted := math.Max(taxableWages-stateAllowance*float64(profile.Allowances)/c.periodsPerYear, 0)
		stateBrackets, err := table.BracketsFor(taxtable.LevelState, profile.FilingStatus, profile.State)
		if err != nil {
			return nil, err
		}
		state = applyBrackets(stateAdjusted, stateBrackets)
		audit.add("state_tax", profile.State+" withholding", state, map[string]float64{
			"adjustedWages": stateAdjusted,
		})
	}

	return map[string]float64{"federal": federal, "state": state}, nil
}

// employerTaxes applies each configured flat-rate employer tax against
// the taxable wages, capped at the tax's wage base when one is set.
// Informational only; never affects the employee's net pay.
func employerTaxes(table *taxtable.Table, taxableWages float64) map[string]float64 {
	taxes := make(map[string]float64, len(table.EmployerTaxes))
	for name, cfg := range table.EmployerTaxes {
		basis := taxableWages
		if cfg.WageBase > 0 && basis > cfg.WageBase {
			basis = cfg.WageBase
		}
		taxes[name] = round2(basis * cfg.Rate)
	}
	return taxes
}
