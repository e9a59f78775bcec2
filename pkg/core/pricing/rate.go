package pricing

// LoanType distinguishes the pricing regime: conventional loans price LLPAs
// into the rate, FHA loans take base plus state adjustment only.
type LoanType string

const (
	LoanConventional LoanType = "Conventional"
	LoanFHA          LoanType = "FHA"
)

// RateInput describes a borrower for rate quoting. BaseRate and
// StateAdjustment are percentages (6.5 means 6.5%).
type RateInput struct {
	BaseRate        float64
	CreditScore     int
	LTV             float64
	LoanAmount      float64
	LoanType        LoanType
	Property        PropertyType
	Occupancy       Occupancy
	StateAdjustment float64
}

// RateResult is the quoted rate with its breakdown. FinalRate is a
// percentage; FinalRateDecimal the same value divided by 100 for feeding the
// threshold model.
type RateResult struct {
	BaseRate         float64    `json:"base_rate"`
	TotalLLPA        float64    `json:"total_llpa"`
	StateAdjustment  float64    `json:"state_adjustment"`
	FinalRate        float64    `json:"final_rate"`
	FinalRateDecimal float64    `json:"final_rate_decimal"`
	LoanType         LoanType   `json:"loan_type"`
	Adjustments      LLPAResult `json:"adjustments"`
	Note             string     `json:"note,omitempty"`
}

// ComputeAvailableRate quotes the rate available to a borrower today.
// Conventional quotes price as rate/term refinances, since this engine exists
// to evaluate refinancing.
func ComputeAvailableRate(in RateInput) RateResult {
	if in.LoanType == LoanFHA {
		final := in.BaseRate + in.StateAdjustment
		return RateResult{
			BaseRate:         in.BaseRate,
			StateAdjustment:  in.StateAdjustment,
			FinalRate:        final,
			FinalRateDecimal: final / 100,
			LoanType:         LoanFHA,
			Note:             "FHA does not have LLPAs",
		}
	}

	adj := ComputeLLPA(LLPAInput{
		CreditScore: in.CreditScore,
		LTV:         in.LTV,
		LoanAmount:  in.LoanAmount,
		LoanPurpose: PurposeRateTerm,
		Property:    in.Property,
		Occupancy:   in.Occupancy,
	})

	final := in.BaseRate + adj.Total + in.StateAdjustment
	return RateResult{
		BaseRate:         in.BaseRate,
		TotalLLPA:        adj.Total,
		StateAdjustment:  in.StateAdjustment,
		FinalRate:        final,
		FinalRateDecimal: final / 100,
		LoanType:         LoanConventional,
		Adjustments:      adj,
	}
}
