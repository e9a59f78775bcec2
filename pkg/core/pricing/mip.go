package pricing

// FHA loans replace LLPAs with mortgage insurance premiums: a one-time
// upfront premium financed into the loan plus an annual premium tiered on
// term, amount, and LTV.

const upfrontMIPRate = 1.75 // percent, all FHA loans

// MIPResult describes the premiums owed on an FHA loan.
type MIPResult struct {
	UpfrontRate      float64 `json:"upfront_mip_rate"`
	UpfrontAmount    float64 `json:"upfront_mip_amount"`
	AnnualRate       float64 `json:"annual_mip_rate"`
	MonthlyMIP       float64 `json:"monthly_mip"`
	Duration         string  `json:"mip_duration"`
	TotalLoanWithMIP float64 `json:"total_loan_with_ufmip"`
}

// ComputeFHAMIP computes FHA premiums. The annual rate has four tiers on
// (term > 15y) x (amount <= base limit), each split at 90% LTV; LTV at or
// below 90 also caps the premium at 11 years instead of life of loan.
func ComputeFHAMIP(ltv, loanAmount float64, termYears int) MIPResult {
	var annual float64
	if termYears > 15 {
		if loanAmount <= FHABaseLimit {
			annual = 0.55
			if ltv <= 90 {
				annual = 0.50
			}
		} else {
			annual = 0.75
			if ltv <= 90 {
				annual = 0.70
			}
		}
	} else {
		if loanAmount <= FHABaseLimit {
			annual = 0.40
			if ltv <= 90 {
				annual = 0.15
			}
		} else {
			annual = 0.65
			if ltv <= 90 {
				annual = 0.40
			}
		}
	}

	upfront := loanAmount * upfrontMIPRate / 100
	duration := "Life of loan"
	if ltv <= 90 {
		duration = "11 years"
	}

	return MIPResult{
		UpfrontRate:      upfrontMIPRate,
		UpfrontAmount:    upfront,
		AnnualRate:       annual,
		MonthlyMIP:       loanAmount * annual / 100 / 12,
		Duration:         duration,
		TotalLoanWithMIP: loanAmount + upfront,
	}
}
