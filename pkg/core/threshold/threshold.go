package threshold

import (
	"math"
)

// The closed-form optimal refinancing model treats the right to refinance as a
// perpetual American option on the mortgage rate. Solve finds the rate
// differential x* at which the option's value-matching and smooth-pasting
// conditions hold; the two approximations bracket it for display and as
// fallbacks when the exact solve leaves the Lambert W domain.

// overflowGuard is the i0*Gamma product beyond which the amortization term of
// lambda underflows to zero and the exponential would overflow a float64.
const overflowGuard = 100.0

// BPS converts a signed rate differential to basis points, sign-flipped so a
// positive number reads as "required rate drop".
func BPS(x float64) float64 {
	return -x * 10000
}

// Lambda computes the effective annual hazard rate of mortgage termination:
// moving (mu), scheduled amortization of the balance, and inflation erosion.
func Lambda(mu, i0 float64, gamma int, pi float64) float64 {
	g := float64(gamma)
	if i0*g < overflowGuard {
		return mu + i0/(math.Exp(i0*g)-1) + pi
	}
	return mu + pi
}

// Kappa computes the dollar refinancing cost: fixed costs plus points on the
// balance. Tax adjustment happens downstream via C(M) = kappa/(1-tau).
func Kappa(m, points, fixedCost float64) float64 {
	return fixedCost + points*m
}

// SolveInput carries fully resolved parameters for the threshold solve.
// Resolution of defaults/overrides happens at the call boundary, not here.
type SolveInput struct {
	M      float64 // remaining mortgage balance
	Rho    float64 // real discount rate
	Lambda float64
	Sigma  float64 // annual rate volatility
	Kappa  float64 // dollar refinancing cost
	Tau    float64 // marginal tax rate
}

// SolveResult holds the exact threshold and its intermediates. XStar is the
// signed differential (negative: the market rate must drop by |XStar|); it is
// NaN when sigma, tau, M, or the Lambert W argument leave the real domain.
type SolveResult struct {
	XStar float64
	Psi   float64
	Phi   float64
	CM    float64 // tax-adjusted refinancing cost kappa/(1-tau)
}

// Defined reports whether the exact solve produced a real threshold.
func (r SolveResult) Defined() bool {
	return !math.IsNaN(r.XStar) && !math.IsInf(r.XStar, 0)
}

// Solve computes the exact optimal threshold
//
//	x* = -(1/psi) * [phi + W0(-e^-phi)]
//
// with psi = sqrt(2(rho+lambda))/sigma and phi = 1 + psi(rho+lambda)C(M)/M.
// Domain failures (sigma=0, tau=1, M=0, W argument below -1/e) yield NaN
// fields rather than an error: sensitivity sweeps hit these boundaries
// routinely and must keep going.
func Solve(in SolveInput) SolveResult {
	psi := math.Sqrt(2*(in.Rho+in.Lambda)) / in.Sigma
	cm := in.Kappa / (1 - in.Tau)

	res := SolveResult{Psi: psi, CM: cm, Phi: math.NaN(), XStar: math.NaN()}
	if in.M == 0 || math.IsNaN(psi) || math.IsInf(psi, 0) || math.IsInf(cm, 0) || math.IsNaN(cm) {
		return res
	}

	phi := 1 + psi*(in.Rho+in.Lambda)*cm/in.M
	res.Phi = phi

	w := LambertW0(-math.Exp(-phi))
	if math.IsNaN(w) {
		return res
	}

	// phi + W0(-e^-phi) is the threshold magnitude in psi-units; the signed
	// differential is negative (rates must fall).
	res.XStar = -(phi + w) / psi
	return res
}

// SqrtApproximation computes the second-order Taylor approximation
// x ~= -sigma*sqrt(2(rho+lambda) * kappa/(M(1-tau))). Always real-valued;
// useful as a fallback when the exact solve fails numerically.
func SqrtApproximation(in SolveInput) float64 {
	return -in.Sigma * math.Sqrt(in.Kappa/(in.M*(1-in.Tau))) * math.Sqrt(2*(in.Rho+in.Lambda))
}

// NPVThreshold computes the naive break-even rule that ignores option value:
// x = -(rho+lambda)*C(M)/M. Strictly smaller in magnitude than the exact
// threshold; the gap is the value of waiting.
func NPVThreshold(in SolveInput) float64 {
	cm := in.Kappa / (1 - in.Tau)
	return -(in.Rho + in.Lambda) * cm / in.M
}

// TriggerInput carries the inputs for a single trigger-rate calculation.
type TriggerInput struct {
	CurrentRate      float64 // decimal; values > 1 are treated as percent
	RemainingBalance float64
	RemainingYears   int
	DiscountRate     float64
	Volatility       float64
	TaxRate          float64
	FixedCost        float64
	Points           float64 // fraction of balance
	ProbMoving       float64
	InflationRate    float64
}

// TriggerResult is the full diagnostic bundle for a trigger-rate calculation.
// Threshold fields are NaN when the corresponding solve is undefined; callers
// must guard with Defined before formatting.
type TriggerResult struct {
	OptimalThresholdBPS float64 `json:"optimal_threshold_bps"`
	TriggerRate         float64 `json:"trigger_rate"`
	TriggerRatePct      float64 `json:"trigger_rate_pct"`
	XStar               float64 `json:"x_star"`
	SqrtApproxBPS       float64 `json:"sqrt_approx_bps"`
	NPVThresholdBPS     float64 `json:"npv_threshold_bps"`
	Lambda              float64 `json:"lambda"`
	Kappa               float64 `json:"kappa"`
	Psi                 float64 `json:"psi"`
	Phi                 float64 `json:"phi"`
	CM                  float64 `json:"c_m"`
	CurrentRate         float64 `json:"current_rate"`
	CurrentRatePct      float64 `json:"current_rate_pct"`
}

// Defined reports whether the exact threshold (and hence the trigger rate)
// is usable. The approximations remain valid either way.
func (r TriggerResult) Defined() bool {
	return !math.IsNaN(r.XStar) && !math.IsInf(r.XStar, 0)
}

// ComputeTrigger derives lambda and kappa from the borrower inputs and runs
// the exact solve plus both approximations. This is the main entry point for
// the surrounding application.
func ComputeTrigger(in TriggerInput) TriggerResult {
	rate := in.CurrentRate
	if rate > 1 {
		rate = rate / 100
	}

	lambda := Lambda(in.ProbMoving, rate, in.RemainingYears, in.InflationRate)
	kappa := Kappa(in.RemainingBalance, in.Points, in.FixedCost)

	solveIn := SolveInput{
		M:      in.RemainingBalance,
		Rho:    in.DiscountRate,
		Lambda: lambda,
		Sigma:  in.Volatility,
		Kappa:  kappa,
		Tau:    in.TaxRate,
	}

	exact := Solve(solveIn)

	res := TriggerResult{
		OptimalThresholdBPS: BPS(exact.XStar),
		XStar:               exact.XStar,
		SqrtApproxBPS:       BPS(SqrtApproximation(solveIn)),
		NPVThresholdBPS:     BPS(NPVThreshold(solveIn)),
		Lambda:              lambda,
		Kappa:               kappa,
		Psi:                 exact.Psi,
		Phi:                 exact.Phi,
		CM:                  exact.CM,
		CurrentRate:         rate,
		CurrentRatePct:      rate * 100,
		TriggerRate:         math.NaN(),
		TriggerRatePct:      math.NaN(),
	}

	if exact.Defined() {
		res.TriggerRate = rate - math.Abs(exact.XStar)
		res.TriggerRatePct = res.TriggerRate * 100
	}

	return res
}
