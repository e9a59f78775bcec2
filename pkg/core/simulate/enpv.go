package simulate

import "math"

// Expected net present value of a refinance under prepayment risk. The loan
// dies in month t with probability survival(t)*SMM; the ENPV is the
// mortality-weighted sum of the discounted net advantage at each possible
// death month, evaluated over a 30-year horizon.

const enpvHorizonMonths = 360

// ENPVInput describes a refinance scenario for expected-value analysis.
// Rates and CPR are decimals.
type ENPVInput struct {
	Balance        float64
	CurrentRate    float64
	NewRate        float64
	RemainingYears float64
	NewTermYears   float64
	ClosingCosts   float64
	FinanceCosts   bool // roll closing costs into the new balance
	InvestRate     float64
	DiscountRate   float64
	CPR            float64
	Tau            float64
	IncludeTax     bool
}

// ENPVMonth is one month of the advantage history.
type ENPVMonth struct {
	Month          int     `json:"month"`
	PaymentOld     float64 `json:"p_old"`
	PaymentNew     float64 `json:"p_new"`
	MonthlySavings float64 `json:"pmt_sav_t"`
	CumSavings     float64 `json:"cum_sav"`
	InvestBalance  float64 `json:"inv_bal"`
	BalanceOld     float64 `json:"bal_old"`
	BalanceNew     float64 `json:"bal_new"`
	BalanceAdv     float64 `json:"balance_adv"`
	TotalAdv       float64 `json:"total_adv"`
}

// ENPVResult is the full analysis output. BreakevenMonth is 0 when the
// advantage never turns positive within the simulated horizon.
type ENPVResult struct {
	ENPV           float64     `json:"enpv"`
	SMM            float64     `json:"smm"`
	PaymentOld     float64     `json:"payment_old"`
	PaymentNew     float64     `json:"payment_new"`
	GammaMonth     int         `json:"gamma_month"`
	BreakevenMonth int         `json:"breakeven_month"`
	History        []ENPVMonth `json:"history"`
}

// SMM converts an annual conditional prepayment rate to its single monthly
// mortality.
func SMM(cpr float64) float64 {
	return 1 - math.Pow(1-cpr, 1.0/12)
}

// ComputeENPV simulates both loans to the longer of the two terms and folds
// the advantage path into a mortality-weighted expected value.
//
// Before the old loan's payoff month the advantage is invested savings plus
// the balance differential. From payoff onward the borrower who kept the old
// loan banks its freed-up payment, so the comparison flips to two savings
// accounts: the refinancer's account net of the remaining new balance against
// the stayer's account.
func ComputeENPV(in ENPVInput) ENPVResult {
	nOld := int(math.Round(in.RemainingYears * 12))
	nNew := int(math.Round(in.NewTermYears * 12))
	horizon := nOld
	if nNew > horizon {
		horizon = nNew
	}
	gammaMonth := nOld

	rOld := in.CurrentRate / 12
	rNew := in.NewRate / 12
	rInv := in.InvestRate / 12
	rDisc := in.DiscountRate / 12

	tau := 0.0
	if in.IncludeTax {
		tau = in.Tau
	}

	newPrincipal := in.Balance
	// Unfinanced costs come out of pocket at closing and reduce the
	// advantage by a constant; financed costs ride in the new balance.
	upfront := in.ClosingCosts
	if in.FinanceCosts {
		newPrincipal += in.ClosingCosts
		upfront = 0
	}

	pmtOld := Payment(in.Balance, rOld, nOld)
	pmtNew := Payment(newPrincipal, rNew, nNew)

	balOld := in.Balance
	balNew := newPrincipal
	cumSav := 0.0
	invBal := 0.0
	opt1Sav := 0.0
	opt2Sav := 0.0

	res := ENPVResult{
		SMM:        SMM(in.CPR),
		PaymentOld: pmtOld,
		PaymentNew: pmtNew,
		GammaMonth: gammaMonth,
		History:    make([]ENPVMonth, 0, horizon),
	}

	for t := 1; t <= horizon; t++ {
		var pOld, pNew float64

		if t <= nOld && balOld > 0 {
			interest := rOld * balOld
			balOld = math.Max(0, balOld-(pmtOld-interest))
			pOld = pmtOld - interest*tau
		} else {
			balOld = 0
		}

		if t <= nNew && balNew > 0 {
			interest := rNew * balNew
			balNew = math.Max(0, balNew-(pmtNew-interest))
			pNew = pmtNew - interest*tau
		} else {
			balNew = 0
		}

		savings := pOld - pNew
		cumSav += savings

		var totalAdv, displayBal float64
		switch {
		case t < gammaMonth:
			invBal = invBal*(1+rInv) + savings
			totalAdv = invBal + (balOld - balNew)
			displayBal = invBal
		case t == gammaMonth:
			invBal = invBal*(1+rInv) + savings
			opt2Sav = invBal
			opt1Sav = 0
			totalAdv = invBal + (balOld - balNew)
			displayBal = invBal
		default:
			// The stayer's loan is gone; they bank the old payment.
			opt1Sav = opt1Sav*(1+rInv) + pmtOld
			opt2Sav = opt2Sav * (1 + rInv)
			totalAdv = (opt2Sav - balNew) - opt1Sav
			displayBal = opt2Sav
		}
		totalAdv -= upfront

		if res.BreakevenMonth == 0 && totalAdv >= 0 {
			res.BreakevenMonth = t
		}

		res.History = append(res.History, ENPVMonth{
			Month:          t,
			PaymentOld:     pOld,
			PaymentNew:     pNew,
			MonthlySavings: savings,
			CumSavings:     cumSav,
			InvestBalance:  displayBal,
			BalanceOld:     balOld,
			BalanceNew:     balNew,
			BalanceAdv:     balOld - balNew,
			TotalAdv:       totalAdv,
		})
	}

	// Discount the advantage path, padding past the horizon by holding the
	// last value so the mortality weights always cover 360 months.
	pv := make([]float64, enpvHorizonMonths)
	lastPV := 0.0
	for t := 0; t < enpvHorizonMonths; t++ {
		if t < len(res.History) {
			rec := res.History[t]
			lastPV = rec.TotalAdv / math.Pow(1+rDisc, float64(rec.Month))
		}
		pv[t] = lastPV
	}

	survival := 1.0
	enpv := 0.0
	for t := 0; t < enpvHorizonMonths; t++ {
		mortality := survival * res.SMM
		if t == enpvHorizonMonths-1 && survival*(1-res.SMM) > 0.001 {
			// Fold the residual survival into the final month so the
			// weights sum to one.
			mortality = survival
		}
		enpv += pv[t] * mortality
		survival *= 1 - res.SMM
	}
	res.ENPV = enpv

	return res
}
