package simulate

import "math"

// Thirty-year rent-vs-buy comparison. The buyer's costs run through an
// actual amortization schedule with PMI keyed to the original purchase
// price; the renter banks the down payment, the closing costs, and every
// year's cost difference at the investment return. Both sides settle
// capital gains at exit.

const rentBuyYears = 30

// pmiCutoffLTV is the loan-to-original-price ratio below which PMI ends.
const pmiCutoffLTV = 0.78

// RentBuyInput describes the purchase and the rental alternative. Rates and
// percentages are decimals of the relevant base (home value, loan, or sale
// price).
type RentBuyInput struct {
	HomePrice        float64
	DownPaymentPct   float64
	MortgageRate     float64
	AppreciationRate float64

	RentPctOfPrice   float64 // annual rent as share of home price
	RentIncrease     float64
	RentersInsurance float64 // annual dollars

	InvestmentReturn float64
	InflationRate    float64

	PropertyTaxRate   float64
	MaintenanceRate   float64
	HomeInsuranceRate float64
	HOAMonthly        float64
	PMIRate           float64

	YearsBeforeMove int
	BuyingCostsPct  float64
	SellingCostsPct float64
	MovingCost      float64

	MarginalTaxRate   float64
	ItemizeDeductions bool
	CapitalGainsRate  float64
	CapGainsExclusion float64
}

// RentBuyYear is one year of the comparison.
type RentBuyYear struct {
	Year           int     `json:"year"`
	HomeValue      float64 `json:"home_value"`
	LoanBalance    float64 `json:"loan_balance"`
	LTV            float64 `json:"ltv"`
	PMI            float64 `json:"pmi"`
	BuyEquity      float64 `json:"buy_equity"`
	BuyAnnualCost  float64 `json:"buy_annual_cost"`
	BuyNetWorth    float64 `json:"buy_net_worth"`
	RentAnnualCost float64 `json:"rent_annual_cost"`
	RentInvested   float64 `json:"rent_invested"`
	RentNetWorth   float64 `json:"rent_net_worth"`
}

// RentBuyResult summarizes the 30-year horizon. CrossoverYear and
// PMIDropoffYear are 0 when the event never happens.
type RentBuyResult struct {
	MonthlyMortgage   float64       `json:"monthly_mortgage"`
	MonthlyRent       float64       `json:"monthly_rent"`
	InitialLTV        float64       `json:"initial_ltv"`
	BuyFinalNetWorth  float64       `json:"buy_final_net_worth"`
	RentFinalNetWorth float64       `json:"rent_final_net_worth"`
	BuyAdvantage      float64       `json:"buy_advantage"`
	TotalPMIPaid      float64       `json:"total_pmi_paid"`
	PMIDropoffYear    int           `json:"pmi_dropoff_year"`
	CrossoverYear     int           `json:"crossover_year"`
	CapitalGainsTax   float64       `json:"capital_gains_tax"`
	Years             []RentBuyYear `json:"years"`
}

// SimulateRentBuy runs the comparison. Moves recur every YearsBeforeMove
// years (except in the final year); each move pays selling, buying, and
// moving costs and resets the PMI reference price to the then-current value.
func SimulateRentBuy(in RentBuyInput) RentBuyResult {
	downPayment := in.HomePrice * in.DownPaymentPct
	loanAmount := in.HomePrice - downPayment
	monthlyRate := in.MortgageRate / 12
	numPayments := rentBuyYears * 12

	initialLTV := 0.0
	if in.HomePrice > 0 {
		initialLTV = loanAmount / in.HomePrice
	}

	monthlyMortgage := 0.0
	if loanAmount > 0 && monthlyRate > 0 {
		growth := math.Pow(1+monthlyRate, float64(numPayments))
		monthlyMortgage = loanAmount * monthlyRate * growth / (growth - 1)
	}

	buyingCosts := in.HomePrice * in.BuyingCostsPct
	monthlyRent := in.HomePrice * in.RentPctOfPrice / 12

	res := RentBuyResult{
		MonthlyMortgage: monthlyMortgage,
		MonthlyRent:     monthlyRent,
		InitialLTV:      initialLTV,
		Years:           make([]RentBuyYear, 0, rentBuyYears),
	}

	homeValue := in.HomePrice
	loanBalance := loanAmount
	originalPrice := in.HomePrice // PMI reference, reset on each move
	rentInvested := downPayment + buyingCosts
	cumTransactionCosts := 0.0
	totalContrib := downPayment + buyingCosts

	prevBuyNW := downPayment - buyingCosts
	prevRentNW := rentInvested

	for year := 1; year <= rentBuyYears; year++ {
		newHomeValue := homeValue * (1 + in.AppreciationRate)

		var annualInterest, annualPMI float64
		for m := 0; m < 12; m++ {
			if loanBalance <= 0 {
				break
			}
			interest := loanBalance * monthlyRate
			principal := math.Min(monthlyMortgage-interest, loanBalance)
			annualInterest += interest

			if loanBalance/originalPrice > pmiCutoffLTV {
				annualPMI += loanBalance * in.PMIRate / 12
			}

			loanBalance -= principal
		}
		loanBalance = math.Max(0, loanBalance)
		res.TotalPMIPaid += annualPMI

		ltv := 0.0
		if originalPrice > 0 {
			ltv = loanBalance / originalPrice
		}
		if res.PMIDropoffYear == 0 && ltv <= pmiCutoffLTV {
			res.PMIDropoffYear = year
		}

		propertyTax := homeValue * in.PropertyTaxRate
		maintenance := homeValue * in.MaintenanceRate
		homeInsurance := homeValue * in.HomeInsuranceRate
		hoa := in.HOAMonthly * 12

		taxSavings := 0.0
		if in.ItemizeDeductions {
			taxSavings = annualInterest * in.MarginalTaxRate
		}

		transactionCosts := 0.0
		if in.YearsBeforeMove > 0 && year%in.YearsBeforeMove == 0 && year < rentBuyYears {
			transactionCosts = newHomeValue*in.SellingCostsPct +
				newHomeValue*in.BuyingCostsPct + in.MovingCost
			originalPrice = newHomeValue
		}
		cumTransactionCosts += transactionCosts

		buyCost := monthlyMortgage*12 + propertyTax + maintenance + homeInsurance +
			hoa + annualPMI - taxSavings + transactionCosts

		equity := newHomeValue - loanBalance
		buyNetWorth := equity - cumTransactionCosts

		rentCost := monthlyRent*12*math.Pow(1+in.RentIncrease, float64(year-1)) +
			in.RentersInsurance*math.Pow(1+in.InflationRate, float64(year-1))
		if in.YearsBeforeMove > 0 && year%in.YearsBeforeMove == 0 && year < rentBuyYears {
			rentCost += in.MovingCost
		}

		costDiff := buyCost - rentCost
		rentInvested = rentInvested*(1+in.InvestmentReturn) + costDiff
		if costDiff > 0 {
			totalContrib += costDiff
		}
		rentNetWorth := rentInvested

		res.Years = append(res.Years, RentBuyYear{
			Year:           year,
			HomeValue:      newHomeValue,
			LoanBalance:    loanBalance,
			LTV:            ltv,
			PMI:            annualPMI,
			BuyEquity:      equity,
			BuyAnnualCost:  buyCost,
			BuyNetWorth:    buyNetWorth,
			RentAnnualCost: rentCost,
			RentInvested:   rentInvested,
			RentNetWorth:   rentNetWorth,
		})

		if res.CrossoverYear == 0 {
			if (buyNetWorth > rentNetWorth && prevBuyNW <= prevRentNW) ||
				(buyNetWorth < rentNetWorth && prevBuyNW >= prevRentNW) {
				res.CrossoverYear = year
			}
		}
		prevBuyNW = buyNetWorth
		prevRentNW = rentNetWorth

		homeValue = newHomeValue
	}

	// Settle both sides at exit.
	appreciation := homeValue - in.HomePrice
	taxableGain := math.Max(0, appreciation-in.CapGainsExclusion)
	res.CapitalGainsTax = taxableGain * in.CapitalGainsRate
	sellingCosts := homeValue * in.SellingCostsPct

	finalEquity := homeValue - loanBalance
	res.BuyFinalNetWorth = finalEquity - sellingCosts - res.CapitalGainsTax

	investGains := rentInvested - totalContrib
	rentCapGainsTax := math.Max(0, investGains) * in.CapitalGainsRate
	res.RentFinalNetWorth = rentInvested - rentCapGainsTax

	res.BuyAdvantage = res.BuyFinalNetWorth - res.RentFinalNetWorth
	return res
}
