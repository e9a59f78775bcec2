package threshold

import (
	"math"
)

// VerifyResult reports how closely a solved threshold satisfies the model's
// first-order condition and value-matching identity, together with the option
// values at zero differential and at the threshold. Used as a diagnostic and
// by tests to validate the closed form.
type VerifyResult struct {
	FirstOrderLHS float64 // e^(psi*x) - psi*x
	FirstOrderRHS float64 // 1 + (C(M)/M) * psi * (rho+lambda)
	MatchLHS      float64 // K * e^(-psi*x)
	MatchRHS      float64 // K - C(M) - x*M/(rho+lambda)
	K             float64 // option scale constant
	ROrigin       float64 // option value R(0) = K
	RThreshold    float64 // option value R(x*)
}

// FirstOrderResidual is |LHS-RHS| of the first-order condition.
func (v VerifyResult) FirstOrderResidual() float64 {
	return math.Abs(v.FirstOrderLHS - v.FirstOrderRHS)
}

// MatchResidual is |LHS-RHS| of the value-matching identity, in dollars.
func (v VerifyResult) MatchResidual() float64 {
	return math.Abs(v.MatchLHS - v.MatchRHS)
}

// Verify substitutes a solved threshold back into the model equations. The
// x used is forced negative (a rate drop) regardless of the sign convention
// of the caller.
func Verify(in SolveInput, res SolveResult) VerifyResult {
	x := -math.Abs(res.XStar)
	rl := in.Rho + in.Lambda

	k := in.M * math.Exp(res.Psi*x) / (res.Psi * rl)

	return VerifyResult{
		FirstOrderLHS: math.Exp(res.Psi*x) - res.Psi*x,
		FirstOrderRHS: 1 + (res.CM/in.M)*res.Psi*rl,
		MatchLHS:      k * math.Exp(-res.Psi*x),
		MatchRHS:      k - res.CM - x*in.M/rl,
		K:             k,
		ROrigin:       k,
		RThreshold:    k * math.Exp(-res.Psi*x),
	}
}
