package simulate

import "math"

// Payment computes the level monthly payment on an amortizing loan. A zero
// rate degenerates to straight-line principal.
func Payment(principal, monthlyRate float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return principal / float64(months)
	}
	denom := 1 - math.Pow(1+monthlyRate, -float64(months))
	return principal * monthlyRate / denom
}

// PaymentAnnual is Payment with the rate quoted annually.
func PaymentAnnual(principal, annualRate float64, months int) float64 {
	return Payment(principal, annualRate/12, months)
}

// RateDropInput describes a simple rate-drop scenario against the optimal
// threshold. Rates are decimals; DropBPS is the candidate reduction.
type RateDropInput struct {
	Balance        float64
	CurrentRate    float64
	RemainingYears int
	DropBPS        float64
	Kappa          float64 // dollar refinancing cost
	ThresholdBPS   float64 // optimal threshold for this loan, NaN if undefined
}

// RateDropResult compares payments before and after a candidate rate drop.
// BreakevenMonths is zero when the drop produces no savings.
type RateDropResult struct {
	NewRate          float64 `json:"new_rate"`
	OldPayment       float64 `json:"old_payment"`
	NewPayment       float64 `json:"new_payment"`
	MonthlySavings   float64 `json:"monthly_savings"`
	BreakevenMonths  float64 `json:"breakeven_months"`
	ExceedsThreshold bool    `json:"exceeds_threshold"`
}

// CompareRateDrop runs the simple payment-and-breakeven comparison for one
// candidate rate drop. The threshold comparison is advisory: a drop can save
// money monthly and still be worth waiting out.
func CompareRateDrop(in RateDropInput) RateDropResult {
	newRate := in.CurrentRate - in.DropBPS/10000
	months := in.RemainingYears * 12

	oldPmt := PaymentAnnual(in.Balance, in.CurrentRate, months)
	newPmt := PaymentAnnual(in.Balance, newRate, months)
	savings := oldPmt - newPmt

	res := RateDropResult{
		NewRate:        newRate,
		OldPayment:     oldPmt,
		NewPayment:     newPmt,
		MonthlySavings: savings,
	}
	if savings > 0 {
		res.BreakevenMonths = in.Kappa / savings
	}
	if !math.IsNaN(in.ThresholdBPS) && in.DropBPS >= in.ThresholdBPS {
		res.ExceedsThreshold = true
	}
	return res
}
