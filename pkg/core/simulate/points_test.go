package simulate

import (
	"math"
	"testing"
)

func ladderInput() PointsLadderInput {
	return PointsLadderInput{
		Balance:           400000,
		BaseRate:          0.06,
		ReductionPerPoint: 0.0025,
		MaxPoints:         2,
		FixedCosts:        2000,
		TermYears:         30,
		DiscountRate:      0.05,
		Lambda:            0.1459,
		Sigma:             0.0109,
		Tau:               0.28,
	}
}

func TestRunPointsLadder(t *testing.T) {
	res := RunPointsLadder(ladderInput())

	// 0, 0.5, 1.0, 1.5, 2.0.
	if len(res.Levels) != 5 {
		t.Fatalf("ladder has %d levels, want 5", len(res.Levels))
	}

	base := res.Levels[0]
	if base.Points != 0 || base.PointCost != 0 || base.BreakevenMonths != 0 {
		t.Errorf("base row: %+v", base)
	}
	if math.Abs(base.TotalClosing-2000) > 1e-9 {
		t.Errorf("base closing = %v, want 2000", base.TotalClosing)
	}

	for i := 1; i < len(res.Levels); i++ {
		cur, prev := res.Levels[i], res.Levels[i-1]
		if cur.Rate >= prev.Rate {
			t.Errorf("rate not decreasing at level %v", cur.Points)
		}
		if cur.MonthlyPayment >= prev.MonthlyPayment {
			t.Errorf("payment not decreasing at level %v", cur.Points)
		}
		if cur.TotalInterest >= prev.TotalInterest {
			t.Errorf("lifetime interest not decreasing at level %v", cur.Points)
		}
		if cur.BreakevenMonths <= 0 {
			t.Errorf("no breakeven at level %v", cur.Points)
		}
	}

	two := res.Levels[4]
	if math.Abs(two.PointCost-8000) > 1e-9 {
		t.Errorf("2-point cost = %v, want 8000", two.PointCost)
	}
	if math.Abs(two.Rate-0.055) > 1e-12 {
		t.Errorf("2-point rate = %v, want 0.055", two.Rate)
	}

	// Over 30 years the interest saved dwarfs the point cost.
	if res.OptimalPoints != 2 {
		t.Errorf("optimal points = %v, want 2 (max reduction wins over full term)", res.OptimalPoints)
	}
}

func scenarioEco() ScenarioEconomics {
	return ScenarioEconomics{
		LoanAmount:   400000,
		ParRate:      0.06,
		ParCost:      1000,
		TermYears:    30,
		Tau:          0.28,
		DiscountRate: 0.05,
		InvestRate:   0.05,
		MoveProb:     0.10,
		Inflation:    0.03,
		Sigma:        0.0109,
	}
}

func TestScoreScenarios(t *testing.T) {
	eco := scenarioEco()
	rows := ScoreScenarios(eco, []Scenario{
		{Rate: 0.06, ActualCost: 1000}, // par
		{Rate: 0.055, ActualCost: 9000},
		{Rate: 0.065, ActualCost: -7000},
	})
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	par := rows[0]
	if par.CostAbovePar != 0 || par.ActualDropBPS != 0 {
		t.Errorf("par row: %+v", par)
	}
	// At x=0 the perpetuity term vanishes; net benefit is minus the cost.
	if math.Abs(par.SimpleNetBenefit-(-1000)) > 1e-6 {
		t.Errorf("par net benefit = %v, want -1000", par.SimpleNetBenefit)
	}

	buyDown := rows[1]
	if buyDown.CostAbovePar != 8000 {
		t.Errorf("buy-down cost above par = %v, want 8000", buyDown.CostAbovePar)
	}
	if math.Abs(buyDown.ActualDropBPS-50) > 1e-9 {
		t.Errorf("buy-down actual drop = %v bps, want 50", buyDown.ActualDropBPS)
	}
	lambda := eco.lambda()
	wantNB := (0.005*400000*0.72)/(0.05+lambda) - 9000
	if math.Abs(buyDown.SimpleNetBenefit-wantNB) > 1e-6 {
		t.Errorf("buy-down net benefit = %v, want %v", buyDown.SimpleNetBenefit, wantNB)
	}

	credit := rows[2]
	if credit.ActualDropBPS != -50 {
		t.Errorf("credit actual drop = %v bps, want -50", credit.ActualDropBPS)
	}
}

func TestCompareScenariosIdentical(t *testing.T) {
	eco := scenarioEco()
	s := Scenario{Rate: 0.06, ActualCost: 1000}
	res := CompareScenarios(eco, s, s)

	if res.Payment1 != res.Payment2 {
		t.Errorf("identical scenarios differ in payment: %v vs %v", res.Payment1, res.Payment2)
	}
	if math.Abs(res.EndOfTermAdvantage) > 1e-6 {
		t.Errorf("identical scenarios advantage = %v, want 0", res.EndOfTermAdvantage)
	}
	if math.Abs(res.ENPV) > 1e-6 {
		t.Errorf("identical scenarios ENPV = %v, want 0", res.ENPV)
	}
	// A zero position qualifies as breakeven immediately.
	if res.BreakevenMonth != 1 {
		t.Errorf("breakeven = %d, want 1", res.BreakevenMonth)
	}
}

func TestCompareScenariosBuyDown(t *testing.T) {
	eco := scenarioEco()
	res := CompareScenarios(eco,
		Scenario{Rate: 0.055, ActualCost: 9000},
		Scenario{Rate: 0.06, ActualCost: 1000},
	)

	// Lower rate on a larger financed principal still pays less per month.
	if res.Payment1 >= res.Payment2 {
		t.Errorf("buy-down payment %v not below par payment %v", res.Payment1, res.Payment2)
	}

	// Advantage identity.
	want := res.FinalSavings + (res.FinalBalance2 - res.FinalBalance1)
	if math.Abs(res.EndOfTermAdvantage-want) > 1e-9 {
		t.Errorf("advantage identity broken: %v vs %v", res.EndOfTermAdvantage, want)
	}

	// Holding for the full 30-year term, the buy-down wins.
	if res.EndOfTermAdvantage <= 0 {
		t.Errorf("end-of-term advantage = %v, want positive", res.EndOfTermAdvantage)
	}
	if res.BreakevenMonth == 0 {
		t.Error("no breakeven found within the term")
	}
}
