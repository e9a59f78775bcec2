package pricing

import (
	"math"
	"testing"
)

func TestCreditScoreBucketBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{800, ">=780"},
		{780, ">=780"},
		{779, "760-779"},
		{760, "760-779"},
		{759, "740-759"},
		{640, "640-659"},
		{639, "<=639"},
		{500, "<=639"},
	}
	for _, c := range cases {
		if got := CreditScoreBucket(c.score); got != c.want {
			t.Errorf("CreditScoreBucket(%d) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestLTVBucketBoundaries(t *testing.T) {
	cases := []struct {
		ltv  float64
		want string
	}{
		{25, "<=30"},
		{30, "<=30"},
		{30.01, "30.01-60"},
		{80, "75.01-80"},
		{80.01, "80.01-85"},
		{95, "90.01-95"},
		{96.5, ">95"},
	}
	for _, c := range cases {
		if got := LTVBucket(c.ltv); got != c.want {
			t.Errorf("LTVBucket(%v) = %q, want %q", c.ltv, got, c.want)
		}
	}
}

func TestLTVBucketCashOutCap(t *testing.T) {
	// Everything above 75 collapses into the top cash-out column.
	for _, ltv := range []float64{76, 80, 90, 97} {
		if got := LTVBucketCashOut(ltv); got != "75.01-80" {
			t.Errorf("LTVBucketCashOut(%v) = %q, want 75.01-80", ltv, got)
		}
	}
	if got := LTVBucketCashOut(75); got != "70.01-75" {
		t.Errorf("LTVBucketCashOut(75) = %q, want 70.01-75", got)
	}
}

func TestComputeLLPARateTerm(t *testing.T) {
	res := ComputeLLPA(LLPAInput{
		CreditScore: 700,
		LTV:         80,
		LoanAmount:  400000,
		LoanPurpose: PurposeRateTerm,
		Property:    PropertySingleFamily,
		Occupancy:   OccupancyPrimary,
	})

	if res.CreditScoreLTV != 1.875 {
		t.Errorf("credit score/LTV = %v, want 1.875", res.CreditScoreLTV)
	}
	if res.PropertyType != 0 || res.Occupancy != 0 || res.HighBalance != 0 || res.SubordinateFinancing != 0 {
		t.Errorf("unexpected side adjustments: %+v", res)
	}
	if res.Total != 1.875 {
		t.Errorf("total = %v, want 1.875", res.Total)
	}
}

func TestComputeLLPAAllCategories(t *testing.T) {
	// High-balance investment condo with a second lien stacks every category.
	res := ComputeLLPA(LLPAInput{
		CreditScore: 700,
		LTV:         80,
		CLTV:        90,
		LoanAmount:  900000,
		LoanPurpose: PurposeRateTerm,
		Property:    PropertyCondo,
		Occupancy:   OccupancyInvestment,
	})

	if res.CreditScoreLTV != 1.875 {
		t.Errorf("credit score/LTV = %v, want 1.875", res.CreditScoreLTV)
	}
	if res.PropertyType != 0.750 {
		t.Errorf("property = %v, want 0.750", res.PropertyType)
	}
	if res.Occupancy != 3.375 {
		t.Errorf("occupancy = %v, want 3.375", res.Occupancy)
	}
	if res.HighBalance != 1.000 {
		t.Errorf("high balance = %v, want 1.000", res.HighBalance)
	}
	if res.SubordinateFinancing != 1.125 {
		t.Errorf("subordinate = %v, want 1.125", res.SubordinateFinancing)
	}
	want := 1.875 + 0.750 + 3.375 + 1.000 + 1.125
	if math.Abs(res.Total-want) > 1e-9 {
		t.Errorf("total = %v, want %v", res.Total, want)
	}
}

func TestComputeLLPACashOut(t *testing.T) {
	// Cash-out at 78% LTV: capped bucket set, top column.
	res := ComputeLLPA(LLPAInput{
		CreditScore: 740,
		LTV:         78,
		LoanAmount:  400000,
		LoanPurpose: PurposeCashOut,
		Property:    PropertySingleFamily,
		Occupancy:   OccupancyPrimary,
	})
	if res.CreditScoreLTV != 2.375 {
		t.Errorf("cash-out credit score/LTV = %v, want 2.375", res.CreditScoreLTV)
	}
}

func TestComputeLLPAHighBalanceARM(t *testing.T) {
	fixed := ComputeLLPA(LLPAInput{
		CreditScore: 780, LTV: 80, LoanAmount: 900000,
		LoanPurpose: PurposeRateTerm, Property: PropertySingleFamily, Occupancy: OccupancyPrimary,
	})
	arm := ComputeLLPA(LLPAInput{
		CreditScore: 780, LTV: 80, LoanAmount: 900000, IsARM: true,
		LoanPurpose: PurposeRateTerm, Property: PropertySingleFamily, Occupancy: OccupancyPrimary,
	})

	if fixed.HighBalance != 1.000 {
		t.Errorf("fixed high balance = %v, want 1.000", fixed.HighBalance)
	}
	if arm.HighBalance != 2.500 {
		t.Errorf("ARM high balance = %v, want 2.500", arm.HighBalance)
	}
}

func TestComputeLLPAConformingBoundary(t *testing.T) {
	// Exactly at the conforming limit is not high balance.
	res := ComputeLLPA(LLPAInput{
		CreditScore: 780, LTV: 60, LoanAmount: ConformingLimit2025,
		LoanPurpose: PurposeRateTerm, Property: PropertySingleFamily, Occupancy: OccupancyPrimary,
	})
	if res.HighBalance != 0 {
		t.Errorf("high balance at limit = %v, want 0", res.HighBalance)
	}
}

func TestComputeLLPAWaivers(t *testing.T) {
	base := LLPAInput{
		CreditScore: 640, LTV: 95, LoanAmount: 900000, CLTV: 100,
		LoanPurpose: PurposeRateTerm, Property: PropertyCondo, Occupancy: OccupancyInvestment,
	}

	hr := base
	hr.IsHomeReady = true
	res := ComputeLLPA(hr)
	if !res.WaiverApplied || res.Total != 0 || res.WaiverReason != "HomeReady" {
		t.Errorf("HomeReady waiver: %+v", res)
	}

	ftb := base
	ftb.IsFirstTimeBuyerLowIncome = true
	res = ComputeLLPA(ftb)
	if !res.WaiverApplied || res.Total != 0 || res.WaiverReason != "First-Time Buyer Low Income" {
		t.Errorf("first-time buyer waiver: %+v", res)
	}
}

func TestComputeFHAMIP(t *testing.T) {
	cases := []struct {
		name         string
		ltv, amount  float64
		term         int
		wantAnnual   float64
		wantDuration string
	}{
		{"30y high LTV under limit", 96.5, 500000, 30, 0.55, "Life of loan"},
		{"30y low LTV under limit", 85, 500000, 30, 0.50, "11 years"},
		{"30y high LTV over limit", 96.5, 800000, 30, 0.75, "Life of loan"},
		{"30y low LTV over limit", 85, 800000, 30, 0.70, "11 years"},
		{"15y low LTV under limit", 88, 400000, 15, 0.15, "11 years"},
		{"15y high LTV under limit", 95, 400000, 15, 0.40, "Life of loan"},
		{"15y high LTV over limit", 95, 800000, 15, 0.65, "Life of loan"},
		{"boundary LTV 90", 90, 500000, 30, 0.50, "11 years"},
	}

	for _, c := range cases {
		res := ComputeFHAMIP(c.ltv, c.amount, c.term)
		if res.AnnualRate != c.wantAnnual {
			t.Errorf("%s: annual = %v, want %v", c.name, res.AnnualRate, c.wantAnnual)
		}
		if res.Duration != c.wantDuration {
			t.Errorf("%s: duration = %q, want %q", c.name, res.Duration, c.wantDuration)
		}
		if math.Abs(res.UpfrontAmount-c.amount*0.0175) > 1e-9 {
			t.Errorf("%s: upfront = %v, want %v", c.name, res.UpfrontAmount, c.amount*0.0175)
		}
		wantMonthly := c.amount * c.wantAnnual / 100 / 12
		if math.Abs(res.MonthlyMIP-wantMonthly) > 1e-9 {
			t.Errorf("%s: monthly = %v, want %v", c.name, res.MonthlyMIP, wantMonthly)
		}
	}
}

func TestComputeAvailableRateConventional(t *testing.T) {
	res := ComputeAvailableRate(RateInput{
		BaseRate:    6.5,
		CreditScore: 700,
		LTV:         80,
		LoanAmount:  400000,
		LoanType:    LoanConventional,
		Property:    PropertySingleFamily,
		Occupancy:   OccupancyPrimary,
	})

	if res.TotalLLPA != 1.875 {
		t.Errorf("total LLPA = %v, want 1.875", res.TotalLLPA)
	}
	if math.Abs(res.FinalRate-8.375) > 1e-9 {
		t.Errorf("final rate = %v, want 8.375", res.FinalRate)
	}
	if math.Abs(res.FinalRateDecimal-0.08375) > 1e-12 {
		t.Errorf("final rate decimal = %v, want 0.08375", res.FinalRateDecimal)
	}
}

func TestComputeAvailableRateFHA(t *testing.T) {
	// FHA skips LLPAs entirely, even for a weak profile.
	res := ComputeAvailableRate(RateInput{
		BaseRate:        6.0,
		CreditScore:     600,
		LTV:             96.5,
		LoanAmount:      400000,
		LoanType:        LoanFHA,
		StateAdjustment: 0.125,
	})

	if res.TotalLLPA != 0 {
		t.Errorf("FHA total LLPA = %v, want 0", res.TotalLLPA)
	}
	if math.Abs(res.FinalRate-6.125) > 1e-9 {
		t.Errorf("FHA final rate = %v, want 6.125", res.FinalRate)
	}
}
