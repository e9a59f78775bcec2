package pricing

// LoanPurpose selects the base credit score / LTV matrix.
type LoanPurpose string

const (
	PurposePurchase LoanPurpose = "Purchase"
	PurposeRateTerm LoanPurpose = "Rate/Term Refinance"
	PurposeCashOut  LoanPurpose = "Cash-Out Refinance"
)

// PropertyType values recognized by the property adjustment table. Anything
// else (notably "Single Family") carries no adjustment.
type PropertyType string

const (
	PropertySingleFamily PropertyType = "Single Family"
	PropertyCondo        PropertyType = "Condo"
	PropertyTwoUnit      PropertyType = "2-Unit"
	PropertyThreeUnit    PropertyType = "3-Unit"
	PropertyFourUnit     PropertyType = "4-Unit"
	PropertyManufactured PropertyType = "Manufactured Home"
)

// Occupancy values recognized by the occupancy adjustment table.
type Occupancy string

const (
	OccupancyPrimary    Occupancy = "Primary Residence"
	OccupancySecondHome Occupancy = "Second Home"
	OccupancyInvestment Occupancy = "Investment Property"
)

// LLPAInput describes a conventional loan for pricing. CLTV of zero means no
// subordinate financing (it is treated as equal to LTV).
type LLPAInput struct {
	CreditScore int
	LTV         float64 // percent, e.g. 80.0
	CLTV        float64 // percent; 0 means same as LTV
	LoanAmount  float64
	LoanPurpose LoanPurpose
	Property    PropertyType
	Occupancy   Occupancy
	IsARM       bool

	// Waiver flags. Either one zeroes every adjustment.
	IsHomeReady               bool
	IsFirstTimeBuyerLowIncome bool
}

// LLPAResult is the per-category breakdown. Values are points (percent of
// loan amount).
type LLPAResult struct {
	CreditScoreLTV       float64 `json:"credit_score_ltv"`
	PropertyType         float64 `json:"property_type"`
	Occupancy            float64 `json:"occupancy"`
	HighBalance          float64 `json:"high_balance"`
	SubordinateFinancing float64 `json:"subordinate_financing"`
	Total                float64 `json:"total_llpa"`
	WaiverApplied        bool    `json:"llpa_waiver_applied"`
	WaiverReason         string  `json:"waiver_reason,omitempty"`
}

// creditScoreLTVAdjustment picks the base matrix by loan purpose. Cash-out
// uses the capped bucket set; unknown purposes price at zero.
func creditScoreLTVAdjustment(score int, ltv float64, purpose LoanPurpose) float64 {
	scoreBucket := CreditScoreBucket(score)

	switch purpose {
	case PurposePurchase:
		return lookup(purchaseCreditScoreLTV, scoreBucket, LTVBucket(ltv))
	case PurposeRateTerm:
		return lookup(limitedCashoutCreditScoreLTV, scoreBucket, LTVBucket(ltv))
	case PurposeCashOut:
		return lookup(cashoutCreditScoreLTV, scoreBucket, LTVBucketCashOut(ltv))
	}
	return 0
}

// ltvBucketFor returns the bucket set matching the purpose: cash-out loans
// use the capped columns for every category, not just the base matrix.
func ltvBucketFor(ltv float64, purpose LoanPurpose) string {
	if purpose == PurposeCashOut {
		return LTVBucketCashOut(ltv)
	}
	return LTVBucket(ltv)
}

func propertyTypeAdjustment(property PropertyType, ltv float64, purpose LoanPurpose) float64 {
	bucket := ltvBucketFor(ltv, purpose)

	switch property {
	case PropertyCondo:
		return condoAdjustment[bucket]
	case PropertyTwoUnit, PropertyThreeUnit, PropertyFourUnit:
		return multiUnitAdjustment[bucket]
	case PropertyManufactured:
		return manufacturedAdjustment[bucket]
	}
	return 0
}

func occupancyAdjustment(occupancy Occupancy, ltv float64, purpose LoanPurpose) float64 {
	bucket := ltvBucketFor(ltv, purpose)

	switch occupancy {
	case OccupancyInvestment:
		return investmentPropertyAdjustment[bucket]
	case OccupancySecondHome:
		return secondHomeAdjustment[bucket]
	}
	return 0
}

// highBalanceAdjustment applies above the conforming limit; the high-balance
// columns always use the full bucket set regardless of purpose.
func highBalanceAdjustment(loanAmount, ltv float64, isARM bool) float64 {
	if loanAmount <= ConformingLimit2025 {
		return 0
	}
	bucket := LTVBucket(ltv)
	if isARM {
		return highBalanceARM[bucket]
	}
	return highBalanceFixed[bucket]
}

// subordinateAdjustment applies only when the combined LTV exceeds the first
// lien LTV; the column is keyed on the first lien LTV.
func subordinateAdjustment(ltv, cltv float64) float64 {
	if cltv <= ltv {
		return 0
	}
	return subordinateFinancingAdjustment[LTVBucket(ltv)]
}

// ComputeLLPA prices a conventional loan against the full adjustment grid.
func ComputeLLPA(in LLPAInput) LLPAResult {
	if in.IsHomeReady || in.IsFirstTimeBuyerLowIncome {
		reason := "HomeReady"
		if !in.IsHomeReady {
			reason = "First-Time Buyer Low Income"
		}
		return LLPAResult{WaiverApplied: true, WaiverReason: reason}
	}

	cltv := in.CLTV
	if cltv == 0 {
		cltv = in.LTV
	}

	res := LLPAResult{
		CreditScoreLTV:       creditScoreLTVAdjustment(in.CreditScore, in.LTV, in.LoanPurpose),
		PropertyType:         propertyTypeAdjustment(in.Property, in.LTV, in.LoanPurpose),
		Occupancy:            occupancyAdjustment(in.Occupancy, in.LTV, in.LoanPurpose),
		HighBalance:          highBalanceAdjustment(in.LoanAmount, in.LTV, in.IsARM),
		SubordinateFinancing: subordinateAdjustment(in.LTV, cltv),
	}
	res.Total = res.CreditScoreLTV + res.PropertyType + res.Occupancy +
		res.HighBalance + res.SubordinateFinancing

	return res
}
