// Package engine ties the calculation packages together: resolve parameters,
// run the threshold model, quote the available rate, and classify readiness.
// It owns the bulk recalculation fan-out and is the only writer of the
// decision cache.
package engine

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"refi_engine/pkg/core/params"
	"refi_engine/pkg/core/pricing"
	"refi_engine/pkg/core/store"
	"refi_engine/pkg/core/threshold"
	"refi_engine/pkg/models"
)

const defaultWorkers = 8

// Engine evaluates client records against the current defaults and pricing
// configuration. All fields are read-only once the engine is in use.
type Engine struct {
	Defaults         params.Defaults
	GridConventional pricing.PricingGrid
	GridFHA          pricing.PricingGrid
	StateAdjustments map[string]float64
	Cache            store.DecisionCache
	Workers          int
}

// Evaluation bundles everything one calculation pass produces for a client.
type Evaluation struct {
	Economic  params.Economic             `json:"economic"`
	Threshold threshold.TriggerResult     `json:"threshold"`
	Rate      pricing.RateResult          `json:"rate"`
	Readiness threshold.ReadinessDecision `json:"readiness"`
	Decision  models.Decision             `json:"decision"`
}

func (e *Engine) baseRateFor(loanType pricing.LoanType) float64 {
	if loanType == pricing.LoanFHA {
		return e.Defaults.BaseRateFHA
	}
	return e.Defaults.BaseRateConventional
}

// GridFor returns the pricing grid matching a loan type.
func (e *Engine) GridFor(loanType pricing.LoanType) pricing.PricingGrid {
	if loanType == pricing.LoanFHA {
		return e.GridFHA
	}
	return e.GridConventional
}

func (e *Engine) stateAdjustment(state string) float64 {
	if e.StateAdjustments == nil {
		return 0
	}
	return e.StateAdjustments[state]
}

// Evaluate runs the full calculation for one client: trigger rate from the
// threshold model, available rate from pricing, readiness from the two.
func (e *Engine) Evaluate(rec *models.ClientRecord) (*Evaluation, error) {
	if rec == nil {
		return nil, fmt.Errorf("nil client record")
	}
	if err := rec.Loan.Validate(); err != nil {
		return nil, fmt.Errorf("client %s: %w", rec.ID, err)
	}

	eco := params.Resolve(e.Defaults, rec.Overrides)

	trig := threshold.ComputeTrigger(threshold.TriggerInput{
		CurrentRate:      rec.Loan.Rate,
		RemainingBalance: rec.Loan.Balance,
		RemainingYears:   rec.Loan.RemainingYears,
		DiscountRate:     eco.DiscountRate,
		Volatility:       eco.Volatility,
		TaxRate:          eco.TaxRate,
		FixedCost:        eco.FixedCost,
		Points:           eco.Points,
		ProbMoving:       eco.ProbMoving,
		InflationRate:    eco.Inflation,
	})

	rate := pricing.ComputeAvailableRate(pricing.RateInput{
		BaseRate:        e.baseRateFor(rec.Loan.LoanType),
		CreditScore:     rec.Loan.CreditScore,
		LTV:             rec.Loan.LTV,
		LoanAmount:      rec.Loan.LoanAmount,
		LoanType:        rec.Loan.LoanType,
		Property:        rec.Loan.PropertyType,
		Occupancy:       rec.Loan.Occupancy,
		StateAdjustment: e.stateAdjustment(rec.Loan.State),
	})

	readiness := threshold.CheckReadiness(trig.TriggerRate, rate.FinalRateDecimal)

	status := readiness.Status
	if status == threshold.StatusMissingData && e.inputsPresent(rec) && !trig.Defined() {
		// The data was there; the solve itself left the real domain.
		status = threshold.StatusCalcFailed
	}

	decision := models.Decision{
		Status:         status,
		IsReady:        readiness.IsReady,
		OptimalDropBPS: models.NullIfNaN(trig.OptimalThresholdBPS),
		TriggerRate:    models.NullIfNaN(trig.TriggerRate),
		AvailableRate:  models.NullIfNaN(rate.FinalRateDecimal),
		Difference:     models.NullIfNaN(readiness.Difference),
		Message:        readiness.Message,
		CheckedAt:      time.Now(),
	}

	return &Evaluation{
		Economic:  eco,
		Threshold: trig,
		Rate:      rate,
		Readiness: readiness,
		Decision:  decision,
	}, nil
}

// inputsPresent reports whether the loan fields the solve depends on were
// actually supplied. Used to tell a failed calculation apart from a record
// that was never filled in.
func (e *Engine) inputsPresent(rec *models.ClientRecord) bool {
	l := rec.Loan
	return l.Balance > 0 && l.Rate > 0 && l.RemainingYears > 0 &&
		!math.IsNaN(l.Balance) && !math.IsNaN(l.Rate)
}

// BulkResult summarizes one recalculation run.
type BulkResult struct {
	BatchID     string        `json:"batch_id"`
	Total       int           `json:"total"`
	Ready       int           `json:"ready"`
	NotReady    int           `json:"not_ready"`
	MissingData int           `json:"missing_data"`
	Failed      int           `json:"failed"`
	Elapsed     time.Duration `json:"elapsed"`
}

// RecalculateAll re-evaluates every record with bounded concurrency, stamps
// each decision with the batch ID, and writes the decision cache. Records
// are mutated in place; this is the one code path allowed to touch the cache.
func (e *Engine) RecalculateAll(ctx context.Context, records []*models.ClientRecord) BulkResult {
	workers := e.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	batchID := uuid.New().String()
	start := time.Now()
	fmt.Printf("[ENGINE] Bulk recalculation %s: %d clients, %d workers\n", batchID, len(records), workers)

	var wg sync.WaitGroup
	var mu sync.Mutex
	res := BulkResult{BatchID: batchID, Total: len(records)}

	sem := make(chan struct{}, workers)
	for _, rec := range records {
		select {
		case <-ctx.Done():
			fmt.Printf("[ENGINE] Bulk recalculation %s cancelled: %v\n", batchID, ctx.Err())
			res.Elapsed = time.Since(start)
			wg.Wait()
			return res
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(rec *models.ClientRecord) {
			defer wg.Done()
			defer func() { <-sem }()

			decision := e.evaluateForBulk(rec)
			decision.BatchID = batchID
			rec.Decision = &decision
			rec.UpdatedAt = time.Now()

			if e.Cache != nil && rec.ID != "" {
				if err := e.Cache.Set(ctx, rec.ID, &decision); err != nil {
					fmt.Printf("[ENGINE] Cache write failed for %s: %v\n", rec.ID, err)
				}
			}

			mu.Lock()
			switch decision.Status {
			case threshold.StatusReady:
				res.Ready++
			case threshold.StatusNotReady:
				res.NotReady++
			case threshold.StatusMissingData:
				res.MissingData++
			default:
				res.Failed++
			}
			mu.Unlock()
		}(rec)
	}

	wg.Wait()
	res.Elapsed = time.Since(start)
	fmt.Printf("[ENGINE] Bulk recalculation %s done in %s: %d ready, %d not ready, %d missing, %d failed\n",
		batchID, res.Elapsed, res.Ready, res.NotReady, res.MissingData, res.Failed)
	return res
}

func (e *Engine) evaluateForBulk(rec *models.ClientRecord) models.Decision {
	ev, err := e.Evaluate(rec)
	if err != nil {
		return models.Decision{
			Status:    threshold.StatusCalcFailed,
			Message:   err.Error(),
			CheckedAt: time.Now(),
		}
	}
	return ev.Decision
}
