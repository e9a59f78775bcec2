package sensitivity

import (
	"math"
	"testing"

	"refi_engine/pkg/core/threshold"
)

// Anchor scenario: $400k balance at 6.5% with 25 years left, $6,000 fixed
// cost and no points. The exact threshold for this scenario is about 134.5
// bps (trigger rate near 5.155%), which several sweeps must reproduce at
// their base point.
func sweepBase() Base {
	return Base{
		M:         400000,
		I0:        0.065,
		Gamma:     25,
		Rho:       0.05,
		Sigma:     0.0109,
		Tau:       0.28,
		Mu:        0.10,
		Pi:        0.03,
		Points:    0,
		FixedCost: 6000,
	}
}

const anchorExactBPS = 134.5

func TestSweepMortgageSize(t *testing.T) {
	rows := SweepMortgageSize(sweepBase(), nil)
	if len(rows) != len(DefaultMortgageSizes) {
		t.Fatalf("got %d rows, want %d", len(rows), len(DefaultMortgageSizes))
	}

	for i, row := range rows {
		if math.IsNaN(row.ExactBPS) {
			t.Fatalf("row %d: exact threshold is NaN", i)
		}
		if row.NPVBPS > row.SqrtBPS+1e-9 || row.SqrtBPS > row.ExactBPS+1e-9 {
			t.Errorf("row %d (M=%.0f): want NPV <= sqrt <= exact, got %.1f / %.1f / %.1f",
				i, row.M, row.NPVBPS, row.SqrtBPS, row.ExactBPS)
		}
		if i > 0 && row.ExactBPS >= rows[i-1].ExactBPS {
			t.Errorf("threshold not decreasing in balance: %.1f bps at M=%.0f after %.1f at M=%.0f",
				row.ExactBPS, row.M, rows[i-1].ExactBPS, rows[i-1].M)
		}
	}

	// The $400k row is the anchor scenario itself.
	for _, row := range rows {
		if row.M == 400000 {
			if math.Abs(row.ExactBPS-anchorExactBPS) > 1.0 {
				t.Errorf("anchor row exact = %.2f bps, want ~%.1f", row.ExactBPS, anchorExactBPS)
			}
			if math.Abs(row.SqrtBPS-98.5) > 1.0 {
				t.Errorf("anchor row sqrt = %.2f bps, want ~98.5", row.SqrtBPS)
			}
			if math.Abs(row.NPVBPS-40.8) > 1.0 {
				t.Errorf("anchor row npv = %.2f bps, want ~40.8", row.NPVBPS)
			}
		}
	}
}

func TestSweepVolatility(t *testing.T) {
	rows := SweepVolatility(sweepBase(), 0, 0, 0)
	if len(rows) != 50 {
		t.Fatalf("got %d rows, want 50", len(rows))
	}
	if rows[0].Sigma != 0.005 || rows[49].Sigma != 0.025 {
		t.Fatalf("sigma endpoints = %v, %v, want 0.005, 0.025", rows[0].Sigma, rows[49].Sigma)
	}

	for i := 1; i < len(rows); i++ {
		if rows[i].ExactBPS <= rows[i-1].ExactBPS {
			t.Fatalf("exact threshold not increasing in sigma at row %d", i)
		}
		if rows[i].SqrtBPS <= rows[i-1].SqrtBPS {
			t.Fatalf("sqrt threshold not increasing in sigma at row %d", i)
		}
	}

	// The square-root rule is linear in sigma.
	ratio := rows[49].SqrtBPS / rows[0].SqrtBPS
	if math.Abs(ratio-5.0) > 1e-9 {
		t.Errorf("sqrt rule ratio over [0.005, 0.025] = %v, want 5", ratio)
	}
}

func TestSweepTaxRate(t *testing.T) {
	rows := SweepTaxRate(sweepBase(), nil)
	if len(rows) != len(DefaultTaxRates) {
		t.Fatalf("got %d rows, want %d", len(rows), len(DefaultTaxRates))
	}

	for i := 1; i < len(rows); i++ {
		if rows[i].ExactBPS <= rows[i-1].ExactBPS {
			t.Errorf("threshold not increasing in tau: %.2f at %.2f after %.2f at %.2f",
				rows[i].ExactBPS, rows[i].Tau, rows[i-1].ExactBPS, rows[i-1].Tau)
		}
	}

	for _, row := range rows {
		if row.Tau == 0.28 && math.Abs(row.ExactBPS-anchorExactBPS) > 1.0 {
			t.Errorf("tau=0.28 row = %.2f bps, want ~%.1f", row.ExactBPS, anchorExactBPS)
		}
	}
}

func TestSweepTenure(t *testing.T) {
	base := sweepBase()
	rows := SweepTenure(base, nil)
	if len(rows) != len(DefaultMoveRates) {
		t.Fatalf("got %d rows, want %d", len(rows), len(DefaultMoveRates))
	}

	for i, row := range rows {
		wantLambda := threshold.Lambda(row.Mu, base.I0, base.Gamma, base.Pi)
		if math.Abs(row.Lambda-wantLambda) > 1e-12 {
			t.Errorf("row %d: lambda = %v, want %v", i, row.Lambda, wantLambda)
		}
		if math.Abs(row.ExpectedYears-1/row.Mu) > 1e-12 {
			t.Errorf("row %d: expected years = %v, want %v", i, row.ExpectedYears, 1/row.Mu)
		}
		// Higher move probability shortens the horizon and raises the bar.
		if i > 0 && row.ExactBPS <= rows[i-1].ExactBPS {
			t.Errorf("threshold not increasing in mu at row %d", i)
		}
	}

	for _, row := range rows {
		if row.Mu == 0.10 && math.Abs(row.ExactBPS-anchorExactBPS) > 1.0 {
			t.Errorf("mu=0.10 row = %.2f bps, want ~%.1f", row.ExactBPS, anchorExactBPS)
		}
	}
}

func TestSweepFixedCost(t *testing.T) {
	rows := SweepFixedCost(sweepBase(), nil)
	if len(rows) != len(DefaultFixedCosts) {
		t.Fatalf("got %d rows, want %d", len(rows), len(DefaultFixedCosts))
	}

	for i, row := range rows {
		if row.Kappa != row.FixedCost {
			t.Errorf("row %d: kappa = %.0f, want %.0f with zero points", i, row.Kappa, row.FixedCost)
		}
		if i > 0 {
			if row.ExactBPS <= rows[i-1].ExactBPS {
				t.Errorf("exact threshold not increasing in cost at row %d", i)
			}
			if row.NPVBPS <= rows[i-1].NPVBPS {
				t.Errorf("npv threshold not increasing in cost at row %d", i)
			}
		}
	}

	// Zero cost means refinancing is free and any drop at all is worth taking.
	if math.Abs(rows[0].ExactBPS) > 1.0 {
		t.Errorf("zero-cost threshold = %.3f bps, want ~0", rows[0].ExactBPS)
	}
	if rows[0].NPVBPS != 0 {
		t.Errorf("zero-cost npv threshold = %v, want 0", rows[0].NPVBPS)
	}
}

func TestSweepClosingCost(t *testing.T) {
	base := sweepBase()
	rows := SweepClosingCost(base)
	if len(rows) != 31 {
		t.Fatalf("got %d rows, want 31 (0 to 15000 step 500)", len(rows))
	}
	if rows[0].ClosingCost != 0 || rows[30].ClosingCost != 15000 {
		t.Fatalf("cost endpoints = %v, %v", rows[0].ClosingCost, rows[30].ClosingCost)
	}

	for i := 1; i < len(rows); i++ {
		if rows[i].ThresholdBPS <= rows[i-1].ThresholdBPS {
			t.Fatalf("threshold not increasing in closing cost at row %d", i)
		}
		if rows[i].TriggerRatePct >= rows[i-1].TriggerRatePct {
			t.Fatalf("trigger rate not decreasing in closing cost at row %d", i)
		}
	}

	// At $6,000 the curve passes through the anchor scenario.
	row := rows[12]
	if row.ClosingCost != 6000 {
		t.Fatalf("row 12 cost = %v, want 6000", row.ClosingCost)
	}
	if math.Abs(row.ThresholdBPS-anchorExactBPS) > 1.0 {
		t.Errorf("threshold at $6000 = %.2f bps, want ~%.1f", row.ThresholdBPS, anchorExactBPS)
	}
	if math.Abs(row.TriggerRatePct-5.155) > 0.02 {
		t.Errorf("trigger rate at $6000 = %.4f%%, want ~5.155%%", row.TriggerRatePct)
	}

	// Free refinancing triggers as soon as rates dip below the note rate.
	if math.Abs(rows[0].TriggerRatePct-base.I0*100) > 0.01 {
		t.Errorf("zero-cost trigger = %.4f%%, want ~%.2f%%", rows[0].TriggerRatePct, base.I0*100)
	}
}

func TestSweepRemainingTerm(t *testing.T) {
	base := sweepBase()
	rows := SweepRemainingTerm(base)
	if len(rows) != 26 {
		t.Fatalf("got %d rows, want 26 (5 to 30 years)", len(rows))
	}
	if rows[0].Years != 5 || rows[25].Years != 30 {
		t.Fatalf("year endpoints = %d, %d", rows[0].Years, rows[25].Years)
	}

	for i := 1; i < len(rows); i++ {
		// Faster amortization on short terms raises lambda and the bar.
		if rows[i].Lambda >= rows[i-1].Lambda {
			t.Fatalf("lambda not decreasing in years at row %d", i)
		}
		if rows[i].ExactBPS >= rows[i-1].ExactBPS {
			t.Fatalf("threshold not decreasing in years at row %d", i)
		}
	}

	row := rows[20]
	if row.Years != 25 {
		t.Fatalf("row 20 years = %d, want 25", row.Years)
	}
	if math.Abs(row.ExactBPS-anchorExactBPS) > 1.0 {
		t.Errorf("25-year row = %.2f bps, want ~%.1f", row.ExactBPS, anchorExactBPS)
	}
}
