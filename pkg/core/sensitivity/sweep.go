package sensitivity

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"refi_engine/pkg/core/threshold"
)

// Base holds the anchor scenario a sweep perturbs one axis at a time.
// Lambda and kappa are re-derived per point on the axes that affect them,
// exactly as a single-scenario solve would derive them.
type Base struct {
	M         float64 `json:"m"`
	I0        float64 `json:"i0"`
	Gamma     int     `json:"gamma"`
	Rho       float64 `json:"rho"`
	Sigma     float64 `json:"sigma"`
	Tau       float64 `json:"tau"`
	Mu        float64 `json:"mu"`
	Pi        float64 `json:"pi"`
	Points    float64 `json:"points"`
	FixedCost float64 `json:"fixed_cost"`
}

func (b Base) lambda() float64 {
	return threshold.Lambda(b.Mu, b.I0, b.Gamma, b.Pi)
}

func (b Base) kappa() float64 {
	return threshold.Kappa(b.M, b.Points, b.FixedCost)
}

func (b Base) solveInput(m, lambda, sigma, kappa, tau float64) threshold.SolveInput {
	return threshold.SolveInput{
		M:      m,
		Rho:    b.Rho,
		Lambda: lambda,
		Sigma:  sigma,
		Kappa:  kappa,
		Tau:    tau,
	}
}

// Default axes. Callers pass nil (or 0 counts) to get these; the API layer
// always does.
var (
	DefaultMortgageSizes = []float64{100000, 150000, 200000, 250000, 300000, 400000, 500000, 750000, 1000000}
	DefaultTaxRates      = []float64{0, 0.10, 0.15, 0.22, 0.24, 0.28, 0.32, 0.35, 0.37}
	DefaultMoveRates     = []float64{0.05, 0.0667, 0.10, 0.1333, 0.20, 0.25, 0.333}
	DefaultFixedCosts    = []float64{0, 500, 1000, 1500, 2000, 2500, 3000, 4000, 5000}
)

const (
	defaultSigmaMin   = 0.005
	defaultSigmaMax   = 0.025
	defaultSigmaSteps = 50
	closingCostMax    = 15000
	closingCostStep   = 500
	remainingYearsMin = 5
	remainingYearsMax = 30
)

// MortgageSizeRow compares the exact threshold against both approximations at
// one balance. All three are in basis points of required rate drop.
type MortgageSizeRow struct {
	M        float64 `json:"m"`
	ExactBPS float64 `json:"exact_bps"`
	SqrtBPS  float64 `json:"sqrt_bps"`
	NPVBPS   float64 `json:"npv_bps"`
}

// SweepMortgageSize re-derives kappa at each balance (points scale with the
// balance, fixed costs do not) and solves all three rules.
func SweepMortgageSize(base Base, sizes []float64) []MortgageSizeRow {
	if sizes == nil {
		sizes = DefaultMortgageSizes
	}
	lambda := base.lambda()

	rows := make([]MortgageSizeRow, len(sizes))
	for i, m := range sizes {
		kappa := threshold.Kappa(m, base.Points, base.FixedCost)
		in := base.solveInput(m, lambda, base.Sigma, kappa, base.Tau)
		rows[i] = MortgageSizeRow{
			M:        m,
			ExactBPS: threshold.BPS(threshold.Solve(in).XStar),
			SqrtBPS:  threshold.BPS(threshold.SqrtApproximation(in)),
			NPVBPS:   threshold.BPS(threshold.NPVThreshold(in)),
		}
	}
	return rows
}

// VolatilityRow holds the exact and square-root thresholds at one sigma.
type VolatilityRow struct {
	Sigma    float64 `json:"sigma"`
	ExactBPS float64 `json:"exact_bps"`
	SqrtBPS  float64 `json:"sqrt_bps"`
}

// SweepVolatility samples steps points evenly over [min, max]. Zero or
// negative steps selects the default 50-point grid over [0.005, 0.025].
func SweepVolatility(base Base, min, max float64, steps int) []VolatilityRow {
	if steps <= 0 {
		min, max, steps = defaultSigmaMin, defaultSigmaMax, defaultSigmaSteps
	}
	sigmas := floats.Span(make([]float64, steps), min, max)
	lambda := base.lambda()
	kappa := base.kappa()

	rows := make([]VolatilityRow, len(sigmas))
	for i, sigma := range sigmas {
		in := base.solveInput(base.M, lambda, sigma, kappa, base.Tau)
		rows[i] = VolatilityRow{
			Sigma:    sigma,
			ExactBPS: threshold.BPS(threshold.Solve(in).XStar),
			SqrtBPS:  threshold.BPS(threshold.SqrtApproximation(in)),
		}
	}
	return rows
}

// TaxRateRow holds the exact threshold at one marginal tax rate.
type TaxRateRow struct {
	Tau      float64 `json:"tau"`
	ExactBPS float64 `json:"exact_bps"`
}

// SweepTaxRate varies the marginal rate. Kappa is unchanged (it is pre-tax);
// the tax adjustment enters through C(M) inside the solve.
func SweepTaxRate(base Base, taus []float64) []TaxRateRow {
	if taus == nil {
		taus = DefaultTaxRates
	}
	lambda := base.lambda()
	kappa := base.kappa()

	rows := make([]TaxRateRow, len(taus))
	for i, tau := range taus {
		in := base.solveInput(base.M, lambda, base.Sigma, kappa, tau)
		rows[i] = TaxRateRow{Tau: tau, ExactBPS: threshold.BPS(threshold.Solve(in).XStar)}
	}
	return rows
}

// TenureRow holds the exact threshold for one annual move probability mu.
// ExpectedYears is 1/mu, the headline number borrowers reason about.
type TenureRow struct {
	Mu            float64 `json:"mu"`
	ExpectedYears float64 `json:"expected_years"`
	Lambda        float64 `json:"lambda"`
	ExactBPS      float64 `json:"exact_bps"`
}

// SweepTenure re-derives lambda at each mu; everything else stays at base.
func SweepTenure(base Base, mus []float64) []TenureRow {
	if mus == nil {
		mus = DefaultMoveRates
	}
	kappa := base.kappa()

	rows := make([]TenureRow, len(mus))
	for i, mu := range mus {
		lambda := threshold.Lambda(mu, base.I0, base.Gamma, base.Pi)
		in := base.solveInput(base.M, lambda, base.Sigma, kappa, base.Tau)
		rows[i] = TenureRow{
			Mu:            mu,
			ExpectedYears: 1 / mu,
			Lambda:        lambda,
			ExactBPS:      threshold.BPS(threshold.Solve(in).XStar),
		}
	}
	return rows
}

// FixedCostRow holds the exact and NPV thresholds at one fixed-cost level,
// with the implied total dollar cost.
type FixedCostRow struct {
	FixedCost float64 `json:"fixed_cost"`
	Kappa     float64 `json:"kappa"`
	ExactBPS  float64 `json:"exact_bps"`
	NPVBPS    float64 `json:"npv_bps"`
}

// SweepFixedCost varies the fixed component of refinancing cost, keeping
// points constant.
func SweepFixedCost(base Base, costs []float64) []FixedCostRow {
	if costs == nil {
		costs = DefaultFixedCosts
	}
	lambda := base.lambda()

	rows := make([]FixedCostRow, len(costs))
	for i, fc := range costs {
		kappa := threshold.Kappa(base.M, base.Points, fc)
		in := base.solveInput(base.M, lambda, base.Sigma, kappa, base.Tau)
		rows[i] = FixedCostRow{
			FixedCost: fc,
			Kappa:     kappa,
			ExactBPS:  threshold.BPS(threshold.Solve(in).XStar),
			NPVBPS:    threshold.BPS(threshold.NPVThreshold(in)),
		}
	}
	return rows
}

// ClosingCostRow pairs a closing-cost level with the threshold it implies and
// the trigger rate in percent: the market rate at which refinancing becomes
// optimal given the borrower's current note rate.
type ClosingCostRow struct {
	ClosingCost    float64 `json:"closing_cost"`
	ThresholdBPS   float64 `json:"threshold_bps"`
	TriggerRatePct float64 `json:"trigger_rate_pct"`
}

// SweepClosingCost walks fixed costs from 0 to 15000 in 500-dollar steps.
func SweepClosingCost(base Base) []ClosingCostRow {
	lambda := base.lambda()

	rows := make([]ClosingCostRow, 0, closingCostMax/closingCostStep+1)
	for cost := 0.0; cost <= closingCostMax; cost += closingCostStep {
		kappa := threshold.Kappa(base.M, base.Points, cost)
		in := base.solveInput(base.M, lambda, base.Sigma, kappa, base.Tau)
		x := threshold.Solve(in).XStar

		trigger := math.NaN()
		if !math.IsNaN(x) {
			trigger = (base.I0 - math.Abs(x)) * 100
		}
		rows = append(rows, ClosingCostRow{
			ClosingCost:    cost,
			ThresholdBPS:   threshold.BPS(x),
			TriggerRatePct: trigger,
		})
	}
	return rows
}

// RemainingTermRow holds the exact threshold for one remaining term, with the
// lambda that term implies.
type RemainingTermRow struct {
	Years    int     `json:"years"`
	Lambda   float64 `json:"lambda"`
	ExactBPS float64 `json:"exact_bps"`
}

// SweepRemainingTerm re-derives lambda for each remaining term from 5 to 30
// years. Shorter terms amortize faster, raising lambda and the threshold.
func SweepRemainingTerm(base Base) []RemainingTermRow {
	rows := make([]RemainingTermRow, 0, remainingYearsMax-remainingYearsMin+1)
	kappa := base.kappa()

	for years := remainingYearsMin; years <= remainingYearsMax; years++ {
		lambda := threshold.Lambda(base.Mu, base.I0, years, base.Pi)
		in := base.solveInput(base.M, lambda, base.Sigma, kappa, base.Tau)
		rows = append(rows, RemainingTermRow{
			Years:    years,
			Lambda:   lambda,
			ExactBPS: threshold.BPS(threshold.Solve(in).XStar),
		})
	}
	return rows
}
