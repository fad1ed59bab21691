package payroll

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Preview is the run-level rollup of a batch of employee calculations.
type Preview struct {
	Results       []*Result          `json:"results"`
	EmployerTaxes map[string]float64 `json:"employerTaxes"`
	TaxesWithheld map[string]float64 `json:"taxesWithheld"`
	TotalGross    float64            `json:"totalGross"`
	TotalNet      float64            `json:"totalNet"`
}

// Aggregator fans a batch of requests through the calculator. Employee
// calculations are independent, so they run in parallel up to the
// worker limit; results land by input index, keeping output order and
// totals deterministic.
type Aggregator struct {
	calc    *Calculator
	workers int
}

func NewAggregator(calc *Calculator, workers int) *Aggregator {
	if workers <= 0 {
		workers = 1
	}
	return &Aggregator{calc: calc, workers: workers}
}

// Run previews the batch against the given table version ("" means the
// calculator default). Failure policy is all-or-nothing: the first
// failing employee aborts the preview with a BatchError naming them.
func (a *Aggregator) Run(ctx context.Context, version string, requests []Request) (*Preview, error) {
	if version == "" {
		version = a.calc.Version()
	}

	results := make([]*Result, len(requests))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(a.workers)
	for i, req := range requests {
		i, req := i, req
		group.Go(func() error {
			result, err := a.calc.CalculateVersion(ctx, version, req)
			if err != nil {
				var batchErr *BatchError
				if errors.As(err, &batchErr) {
					return err
				}
				return &BatchError{EmployeeID: req.EmployeeID, Err: err}
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	preview := &Preview{
		Results:       results,
		EmployerTaxes: make(map[string]float64),
		TaxesWithheld: make(map[string]float64),
	}
	var gross, net float64
	for _, result := range results {
		gross += result.GrossPay
		net += result.NetPay
		for name, amount := range result.EmployerTaxes {
			preview.EmployerTaxes[name] += amount
		}
		for name, amount := range result.TaxesWithheld {
			preview.TaxesWithheld[name] += amount
		}
	}
	// Round once at the end, not per increment, to avoid compounding
	// drift across the batch.
	preview.TotalGross = round2(gross)
	preview.TotalNet = round2(net)
	for name, amount := range preview.EmployerTaxes {
		preview.EmployerTaxes[name] = round2(amount)
	}
	for name, amount := range preview.TaxesWithheld {
		preview.TaxesWithheld[name] = round2(amount)
	}
	return preview, nil
}
