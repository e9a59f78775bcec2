package simulate

import (
	"math"

	"refi_engine/pkg/core/threshold"
)

// PointsLadderInput sweeps discount-point levels on a single loan: each half
// point bought reduces the rate by a fixed amount and costs 1% of the
// balance.
type PointsLadderInput struct {
	Balance           float64
	BaseRate          float64 // decimal, zero-point rate
	ReductionPerPoint float64 // decimal, e.g. 0.0025
	MaxPoints         float64
	FixedCosts        float64
	TermYears         int

	// Threshold model parameters, for the per-level optimal threshold.
	DiscountRate float64
	Lambda       float64
	Sigma        float64
	Tau          float64
}

// PointsLevel is one row of the ladder.
type PointsLevel struct {
	Points          float64 `json:"points"`
	Rate            float64 `json:"rate"`
	PointCost       float64 `json:"point_cost"`
	TotalClosing    float64 `json:"total_closing"`
	MonthlyPayment  float64 `json:"monthly_payment"`
	TotalInterest   float64 `json:"total_interest"`
	TotalCost       float64 `json:"total_cost"`
	ThresholdBPS    float64 `json:"threshold_bps"`
	BreakevenMonths float64 `json:"breakeven_months"` // vs zero points; 0 for the base row or no savings
}

// PointsLadderResult is the swept ladder with the cost-minimizing level.
type PointsLadderResult struct {
	Levels        []PointsLevel `json:"levels"`
	OptimalPoints float64       `json:"optimal_points"`
}

// RunPointsLadder prices every half-point level from zero to MaxPoints.
// TotalCost is lifetime interest plus closing, the quantity minimized.
func RunPointsLadder(in PointsLadderInput) PointsLadderResult {
	months := in.TermYears * 12
	basePmt := PaymentAnnual(in.Balance, in.BaseRate, months)

	var res PointsLadderResult
	bestCost := math.Inf(1)

	for pts := 0.0; pts <= in.MaxPoints+1e-9; pts += 0.5 {
		rate := in.BaseRate - pts*in.ReductionPerPoint
		pointCost := pts * in.Balance / 100
		totalClosing := in.FixedCosts + pointCost

		pmt := PaymentAnnual(in.Balance, rate, months)
		totalInterest := pmt*float64(months) - in.Balance
		totalCost := totalInterest + totalClosing

		solve := threshold.Solve(threshold.SolveInput{
			M:      in.Balance,
			Rho:    in.DiscountRate,
			Lambda: in.Lambda,
			Sigma:  in.Sigma,
			Kappa:  totalClosing,
			Tau:    in.Tau,
		})

		level := PointsLevel{
			Points:         pts,
			Rate:           rate,
			PointCost:      pointCost,
			TotalClosing:   totalClosing,
			MonthlyPayment: pmt,
			TotalInterest:  totalInterest,
			TotalCost:      totalCost,
			ThresholdBPS:   threshold.BPS(solve.XStar),
		}
		if pts > 0 {
			if savings := basePmt - pmt; savings > 0 {
				level.BreakevenMonths = pointCost / savings
			}
		}

		res.Levels = append(res.Levels, level)
		if totalCost < bestCost {
			bestCost = totalCost
			res.OptimalPoints = pts
		}
	}

	return res
}

// Scenario is one rate/cost combination on a purchase quote. Cost can be
// negative for a lender credit.
type Scenario struct {
	Rate       float64 `json:"rate"` // decimal
	ActualCost float64 `json:"actual_cost"`
}

// ScenarioEconomics holds the shared parameters for scenario pricing.
type ScenarioEconomics struct {
	LoanAmount   float64
	ParRate      float64 // decimal
	ParCost      float64
	TermYears    int
	Tau          float64
	DiscountRate float64
	InvestRate   float64
	MoveProb     float64 // annual
	Inflation    float64
	Sigma        float64
}

// lambda for a purchase quote, using the par rate as the note rate.
func (e ScenarioEconomics) lambda() float64 {
	return threshold.Lambda(e.MoveProb, e.ParRate, e.TermYears, e.Inflation)
}

// ScenarioRow scores one scenario against the par quote: the threshold model
// says how big a drop the cost above par would justify, and the simple
// perpetuity formula prices the net benefit.
type ScenarioRow struct {
	Rate             float64 `json:"rate"`
	ActualCost       float64 `json:"actual_cost"`
	CostAbovePar     float64 `json:"cost_above_par"`
	OptimalDropBPS   float64 `json:"optimal_drop_bps"`
	ActualDropBPS    float64 `json:"actual_drop_bps"`
	DifferenceBPS    float64 `json:"difference_bps"`
	SimpleNetBenefit float64 `json:"simple_net_benefit"`
}

// ScoreScenarios evaluates each rate/cost combination against par.
func ScoreScenarios(eco ScenarioEconomics, scenarios []Scenario) []ScenarioRow {
	lambda := eco.lambda()

	rows := make([]ScenarioRow, 0, len(scenarios))
	for _, s := range scenarios {
		costAbovePar := s.ActualCost - eco.ParCost

		solve := threshold.Solve(threshold.SolveInput{
			M:      eco.LoanAmount,
			Rho:    eco.DiscountRate,
			Lambda: lambda,
			Sigma:  eco.Sigma,
			Kappa:  math.Abs(costAbovePar),
			Tau:    eco.Tau,
		})

		optimalDrop := threshold.BPS(solve.XStar)
		actualDrop := (eco.ParRate - s.Rate) * 10000

		x := s.Rate - eco.ParRate
		netBenefit := (-x*eco.LoanAmount*(1-eco.Tau))/(eco.DiscountRate+lambda) - s.ActualCost

		rows = append(rows, ScenarioRow{
			Rate:             s.Rate,
			ActualCost:       s.ActualCost,
			CostAbovePar:     costAbovePar,
			OptimalDropBPS:   optimalDrop,
			ActualDropBPS:    actualDrop,
			DifferenceBPS:    actualDrop - optimalDrop,
			SimpleNetBenefit: netBenefit,
		})
	}
	return rows
}

// CompareResult is the month-by-month comparison of two scenarios with the
// closing cost of each financed into its principal. Positive advantage means
// the first scenario wins.
type CompareResult struct {
	Payment1           float64 `json:"payment_1"`
	Payment2           float64 `json:"payment_2"`
	BreakevenMonth     int     `json:"breakeven_month"` // 0 when never
	SavingsAtBreakeven float64 `json:"savings_at_breakeven"`
	FinalSavings       float64 `json:"final_savings"`
	FinalBalance1      float64 `json:"final_balance_1"`
	FinalBalance2      float64 `json:"final_balance_2"`
	EndOfTermAdvantage float64 `json:"end_of_term_advantage"`
	ENPV               float64 `json:"enpv"`
}

// CompareScenarios simulates both quotes to term from the first scenario's
// perspective: the first chooser banks the payments they avoid relative to
// the second quote, net of the balance differential between the two financed
// principals. The ENPV weights the discounted position by move-probability
// mortality.
func CompareScenarios(eco ScenarioEconomics, s1, s2 Scenario) CompareResult {
	months := eco.TermYears * 12

	principal1 := eco.LoanAmount + s1.ActualCost
	principal2 := eco.LoanAmount + s2.ActualCost
	r1 := s1.Rate / 12
	r2 := s2.Rate / 12
	rInv := eco.InvestRate / 12

	pmt1 := Payment(principal1, r1, months)
	pmt2 := Payment(principal2, r2, months)

	smm := SMM(eco.MoveProb)

	bal1 := principal1
	bal2 := principal2
	savings := 0.0
	survival := 1.0
	enpv := 0.0

	res := CompareResult{Payment1: pmt1, Payment2: pmt2}

	for month := 1; month <= months; month++ {
		int1 := bal1 * r1
		bal1 -= pmt1 - int1
		int2 := bal2 * r2
		bal2 -= pmt2 - int2

		diff := pmt2 - pmt1
		if eco.Tau > 0 {
			diff = (pmt2 - int2*eco.Tau) - (pmt1 - int1*eco.Tau)
		}

		savings = savings*(1+rInv) + diff
		netPosition := savings + (bal2 - bal1)

		if res.BreakevenMonth == 0 && netPosition >= 0 {
			res.BreakevenMonth = month
			res.SavingsAtBreakeven = savings
		}

		pv := netPosition / math.Pow(1+eco.DiscountRate/12, float64(month))
		enpv += pv * survival * smm
		survival *= 1 - smm
	}

	res.FinalSavings = savings
	res.FinalBalance1 = bal1
	res.FinalBalance2 = bal2
	res.EndOfTermAdvantage = savings + (bal2 - bal1)
	res.ENPV = enpv

	return res
}
