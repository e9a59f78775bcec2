package simulate

import "math"

// The net-benefit timeline runs both loans' actual amortization schedules
// side by side and tracks three views of the refinancing gain: invested
// savings at the investment rate (future value), discounted savings (present
// value), and the model's closed-form benefit for the same horizon. The
// closed form assumes an infinite interest differential annuity, so the
// schedules and the formula diverge late in the term; showing all three is
// the point.

// NetBenefitInput describes a refinance for month-by-month simulation.
// Rates are decimals. RateReduction is the drop (positive), also a decimal.
type NetBenefitInput struct {
	Balance        float64
	CurrentRate    float64
	RateReduction  float64
	RemainingYears int
	NewTermYears   int
	ClosingCosts   float64
	DiscountRate   float64
	InvestRate     float64
	Tau            float64
	Lambda         float64 // annual hazard rate, used when IncludePrepay
	IncludePrepay  bool
}

// NetBenefitPoint is one month of the timeline.
type NetBenefitPoint struct {
	Month          int     `json:"month"`
	Year           float64 `json:"year"`
	BalanceOld     float64 `json:"balance_old"`
	BalanceNew     float64 `json:"balance_new"`
	MonthlySavings float64 `json:"monthly_savings"`
	FVNetBenefit   float64 `json:"fv_net_benefit"`
	PVNetBenefit   float64 `json:"pv_net_benefit"`
	PaperFormula   float64 `json:"paper_formula"`
	SurvivalProb   float64 `json:"survival_prob"`
}

// NetBenefitResult carries the full timeline plus its summary metrics.
// Breakeven months are 0 when the series never crosses zero in the horizon.
type NetBenefitResult struct {
	Timeline        []NetBenefitPoint `json:"timeline"`
	PaymentOld      float64           `json:"payment_old"`
	PaymentNew      float64           `json:"payment_new"`
	BreakevenFV     int               `json:"breakeven_fv_months"`
	BreakevenPV     int               `json:"breakeven_pv_months"`
	FinalFV         float64           `json:"final_fv"`
	InfiniteHorizon float64           `json:"infinite_horizon_benefit"`
}

// SimulateNetBenefit runs the timeline over max(old term, new term) months.
func SimulateNetBenefit(in NetBenefitInput) NetBenefitResult {
	nOld := in.RemainingYears * 12
	nNew := in.NewTermYears * 12
	horizon := nOld
	if nNew > horizon {
		horizon = nNew
	}

	rOld := in.CurrentRate / 12
	rNew := (in.CurrentRate - in.RateReduction) / 12
	rDisc := in.DiscountRate / 12
	rInv := in.InvestRate / 12

	pmtOld := Payment(in.Balance, rOld, nOld)
	pmtNew := Payment(in.Balance, rNew, nNew)

	effLambda := 0.0
	if in.IncludePrepay {
		effLambda = in.Lambda
	}

	balOld := in.Balance
	balNew := in.Balance
	invested := 0.0
	pvSavings := 0.0
	survival := 1.0

	res := NetBenefitResult{
		Timeline:   make([]NetBenefitPoint, 0, horizon),
		PaymentOld: pmtOld,
		PaymentNew: pmtNew,
		InfiniteHorizon: in.RateReduction*in.Balance*(1-in.Tau)/(in.DiscountRate+effLambda) -
			in.ClosingCosts,
	}

	for month := 1; month <= horizon; month++ {
		var afterTaxOld, afterTaxNew float64

		if month <= nOld && balOld > 0 {
			interest := balOld * rOld
			balOld = math.Max(0, balOld-(pmtOld-interest))
			afterTaxOld = pmtOld - interest*in.Tau
		}
		if month <= nNew && balNew > 0 {
			interest := balNew * rNew
			balNew = math.Max(0, balNew-(pmtNew-interest))
			afterTaxNew = pmtNew - interest*in.Tau
		}

		savings := afterTaxOld - afterTaxNew
		invested = invested*(1+rInv) + savings
		pvSavings += savings / math.Pow(1+rDisc, float64(month))

		if in.IncludePrepay {
			survival *= 1 - in.Lambda/12
		}

		tYears := float64(month) / 12
		paper := (in.RateReduction*in.Balance*(1-in.Tau)/(in.DiscountRate+effLambda))*
			(1-math.Exp(-(in.DiscountRate+effLambda)*tYears)) - in.ClosingCosts

		fv := invested - in.ClosingCosts
		pv := pvSavings - in.ClosingCosts

		if res.BreakevenFV == 0 && fv >= 0 {
			res.BreakevenFV = month
		}
		if res.BreakevenPV == 0 && pv >= 0 {
			res.BreakevenPV = month
		}

		res.Timeline = append(res.Timeline, NetBenefitPoint{
			Month:          month,
			Year:           tYears,
			BalanceOld:     balOld,
			BalanceNew:     balNew,
			MonthlySavings: savings,
			FVNetBenefit:   fv,
			PVNetBenefit:   pv,
			PaperFormula:   paper,
			SurvivalProb:   survival,
		})
	}

	if n := len(res.Timeline); n > 0 {
		res.FinalFV = res.Timeline[n-1].FVNetBenefit
	}
	return res
}
