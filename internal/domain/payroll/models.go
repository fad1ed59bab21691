package payroll

import "math"

const (
	CalcFlat    = "flat"
	CalcPercent = "percent"
)

// round2 is the single rounding policy for currency amounts:
// half away from zero, to cents.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type EarningLine struct {
	Category string  `json:"category"`
	Hours    float64 `json:"hours"`
	Rate     float64 `json:"rate"`
}

func (e EarningLine) Amount() float64 {
	return round2(e.Hours * e.Rate)
}

type Deduction struct {
	Priority    int      `json:"priority"`
	Name        string   `json:"name"`
	Amount      float64  `json:"amount"`
	Calculation string   `json:"calculation,omitempty"`
	PreTax      bool     `json:"appliesPreTax"`
	Limit       *float64 `json:"limit,omitempty"`
}

// ComputeValue evaluates the deduction against the given basis. Percent
// deductions multiply the basis; flat deductions ignore it. The result
// is capped at Limit when one is set.
func (d Deduction) ComputeValue(basis float64) float64 {
	raw := d.Amount
	if d.Calculation == CalcPercent {
		raw = basis * d.Amount
	}
	if d.Limit != nil && raw > *d.Limit {
		raw = *d.Limit
	}
	return round2(raw)
}

type TaxProfile struct {
	FilingStatus string `json:"filingStatus"`
	Allowances   int    `json:"allowances"`
	State        string `json:"state,omitempty"`
}

// Request is one employee's raw pay inputs for a single period. The
// calculator treats it as read-only.
type Request struct {
	EmployeeID      string             `json:"employeeId"`
	Earnings        []EarningLine      `json:"earnings"`
	Deductions      []Deduction        `json:"deductions,omitempty"`
	TaxProfile      TaxProfile         `json:"taxProfile"`
	CustomTaxInputs map[string]float64 `json:"customTaxInputs,omitempty"`
}

// ExplanationLine is one ordered audit record of a computation step.
type ExplanationLine struct {
	Code    string             `json:"code"`
	Label   string             `json:"label"`
	Amount  float64            `json:"amount"`
	Details map[string]float64 `json:"details,omitempty"`
}

type Result struct {
	EmployeeID         string             `json:"employeeId"`
	GrossPay           float64            `json:"grossPay"`
	TaxableWages       float64            `json:"taxableWages"`
	TaxesWithheld      map[string]float64 `json:"taxesWithheld"`
	EmployeeDeductions map[string]float64 `json:"employeeDeductions"`
	EmployerTaxes      map[string]float64 `json:"employerTaxes"`
	NetPay             float64            `json:"netPay"`
	Explanations       []ExplanationLine  `json:"explanations"`
}

func (r *Result) TotalWithheld() float64 {
	var total float64
	for _, v := range r.TaxesWithheld {
		total += v
	}
	for _, v := range r.EmployeeDeductions {
		total += v
	}
	return round2(total)
}

// trail accumulates explanation lines in emission order.
type trail struct {
	lines []ExplanationLine
}

func (t *trail) add(code, label string, amount float64, details map[string]float64) {
	t.lines = append(t.lines, ExplanationLine{Code: code, Label: label, Amount: amount, Details: details})
}
