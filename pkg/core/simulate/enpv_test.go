package simulate

import (
	"math"
	"testing"
)

func enpvInput() ENPVInput {
	return ENPVInput{
		Balance:        400000,
		CurrentRate:    0.065,
		NewRate:        0.055,
		RemainingYears: 25,
		NewTermYears:   30,
		ClosingCosts:   6000,
		InvestRate:     0.05,
		DiscountRate:   0.05,
		CPR:            0.10,
		Tau:            0.28,
		IncludeTax:     true,
	}
}

func TestSMM(t *testing.T) {
	// 10% CPR compounds back from its monthly rate.
	smm := SMM(0.10)
	if math.Abs(math.Pow(1-smm, 12)-0.90) > 1e-12 {
		t.Errorf("(1-SMM)^12 = %v, want 0.90", math.Pow(1-smm, 12))
	}
	if SMM(0) != 0 {
		t.Errorf("SMM(0) = %v, want 0", SMM(0))
	}
}

func TestComputeENPV(t *testing.T) {
	res := ComputeENPV(enpvInput())

	if res.GammaMonth != 300 {
		t.Errorf("gamma month = %d, want 300", res.GammaMonth)
	}
	if len(res.History) != 360 {
		t.Fatalf("history has %d months, want 360", len(res.History))
	}
	if res.PaymentNew >= res.PaymentOld {
		t.Errorf("new payment %v not below old %v", res.PaymentNew, res.PaymentOld)
	}

	// A full point of rate cut on 400k against $6000 is clearly positive.
	if res.ENPV <= 0 {
		t.Errorf("ENPV = %v, want positive", res.ENPV)
	}
	if res.BreakevenMonth == 0 || res.BreakevenMonth > 72 {
		t.Errorf("breakeven = %d months, want within 6 years", res.BreakevenMonth)
	}

	// Both loans amortize to zero by their terms.
	if res.History[299].BalanceOld > 1e-4 {
		t.Errorf("old balance at month 300 = %v, want 0", res.History[299].BalanceOld)
	}
	if res.History[359].BalanceNew > 1e-4 {
		t.Errorf("new balance at month 360 = %v, want 0", res.History[359].BalanceNew)
	}
}

func TestComputeENPVZeroCPR(t *testing.T) {
	// With no prepayment, all probability mass folds into month 360, so the
	// ENPV is exactly the discounted terminal advantage.
	in := enpvInput()
	in.CPR = 0
	res := ComputeENPV(in)

	last := res.History[359]
	want := last.TotalAdv / math.Pow(1+in.DiscountRate/12, 360)
	if math.Abs(res.ENPV-want) > 1e-6 {
		t.Errorf("zero-CPR ENPV = %v, want discounted terminal advantage %v", res.ENPV, want)
	}
}

func TestComputeENPVProbabilityConservation(t *testing.T) {
	// Mortality weights including the terminal fold must sum to one.
	smm := SMM(0.10)
	survival := 1.0
	sum := 0.0
	for t2 := 0; t2 < 360; t2++ {
		m := survival * smm
		if t2 == 359 && survival*(1-smm) > 0.001 {
			m = survival
		}
		sum += m
		survival *= 1 - smm
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("mortality weights sum to %v, want 1", sum)
	}
}

func TestComputeENPVClosingCostTreatment(t *testing.T) {
	// Paid-at-closing costs depress the advantage from month one.
	cash := enpvInput()
	free := cash
	free.ClosingCosts = 0
	resCash := ComputeENPV(cash)
	resFree := ComputeENPV(free)

	gap := resFree.History[0].TotalAdv - resCash.History[0].TotalAdv
	if math.Abs(gap-6000) > 1e-6 {
		t.Errorf("month-1 advantage gap = %v, want 6000", gap)
	}

	// Financed costs ride in the balance instead: no upfront hit, but a
	// bigger new loan and payment.
	financed := cash
	financed.FinanceCosts = true
	resFin := ComputeENPV(financed)
	if resFin.PaymentNew <= resCash.PaymentNew {
		t.Errorf("financed payment %v not above cash payment %v", resFin.PaymentNew, resCash.PaymentNew)
	}
	if resFin.History[0].BalanceAdv >= resCash.History[0].BalanceAdv {
		t.Errorf("financed balance advantage should start lower")
	}
}

func TestComputeENPVRegimeSwitch(t *testing.T) {
	res := ComputeENPV(enpvInput())

	// Before gamma both loans pay; at month 301 the stayer banks the old
	// payment while the refinancer still owes on the new loan.
	pre := res.History[298]
	post := res.History[300]

	if pre.PaymentOld <= 0 || pre.PaymentNew <= 0 {
		t.Errorf("pre-gamma payments: old=%v new=%v, want both positive", pre.PaymentOld, pre.PaymentNew)
	}
	if post.PaymentOld != 0 {
		t.Errorf("post-gamma old payment = %v, want 0", post.PaymentOld)
	}
	if post.PaymentNew <= 0 {
		t.Errorf("post-gamma new payment = %v, want positive", post.PaymentNew)
	}

	// Post-gamma savings run negative: only the new payment remains.
	if post.MonthlySavings >= 0 {
		t.Errorf("post-gamma savings = %v, want negative", post.MonthlySavings)
	}
}
