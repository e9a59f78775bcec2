package pricing

// Loan-level price adjustment matrices, Fannie Mae LLPA grid dated 11.17.2025.
// Values are points (percent of loan amount). FHA loans carry no LLPA; they
// price mortgage insurance premiums instead (see mip.go).

// 2025 loan limits.
const (
	ConformingLimit2025  = 806500
	HighBalanceLimit2025 = 1209750

	FHAFloor2025   = 498257
	FHACeiling2025 = 1149825

	// FHABaseLimit is the MIP tier break on loan amount. It predates the
	// 2025 conforming limit and is not derived from it.
	FHABaseLimit = 726200
)

// Purchase money loans.
var purchaseCreditScoreLTV = map[string]map[string]float64{
	">=780": {
		"<=30": 0.000, "30.01-60": 0.000, "60.01-70": 0.000, "70.01-75": 0.000,
		"75.01-80": 0.375, "80.01-85": 0.375, "85.01-90": 0.250, "90.01-95": 0.250, ">95": 0.125,
	},
	"760-779": {
		"<=30": 0.000, "30.01-60": 0.000, "60.01-70": 0.000, "70.01-75": 0.250,
		"75.01-80": 0.625, "80.01-85": 0.625, "85.01-90": 0.500, "90.01-95": 0.500, ">95": 0.250,
	},
	"740-759": {
		"<=30": 0.000, "30.01-60": 0.000, "60.01-70": 0.125, "70.01-75": 0.375,
		"75.01-80": 0.875, "80.01-85": 1.000, "85.01-90": 0.750, "90.01-95": 0.625, ">95": 0.500,
	},
	"720-739": {
		"<=30": 0.000, "30.01-60": 0.000, "60.01-70": 0.250, "70.01-75": 0.750,
		"75.01-80": 1.250, "80.01-85": 1.250, "85.01-90": 1.000, "90.01-95": 0.875, ">95": 0.750,
	},
	"700-719": {
		"<=30": 0.000, "30.01-60": 0.000, "60.01-70": 0.375, "70.01-75": 0.875,
		"75.01-80": 1.375, "80.01-85": 1.500, "85.01-90": 1.250, "90.01-95": 1.125, ">95": 0.875,
	},
	"680-699": {
		"<=30": 0.000, "30.01-60": 0.000, "60.01-70": 0.625, "70.01-75": 1.125,
		"75.01-80": 1.750, "80.01-85": 1.875, "85.01-90": 1.500, "90.01-95": 1.375, ">95": 1.125,
	},
	"660-679": {
		"<=30": 0.000, "30.01-60": 0.000, "60.01-70": 0.750, "70.01-75": 1.375,
		"75.01-80": 1.875, "80.01-85": 2.125, "85.01-90": 1.750, "90.01-95": 1.625, ">95": 1.250,
	},
	"640-659": {
		"<=30": 0.000, "30.01-60": 0.000, "60.01-70": 1.125, "70.01-75": 1.500,
		"75.01-80": 2.250, "80.01-85": 2.500, "85.01-90": 2.000, "90.01-95": 1.875, ">95": 1.500,
	},
	"<=639": {
		"<=30": 0.000, "30.01-60": 0.125, "60.01-70": 1.500, "70.01-75": 2.125,
		"75.01-80": 2.750, "80.01-85": 2.875, "85.01-90": 2.625, "90.01-95": 2.250, ">95": 1.750,
	},
}

// Limited cash-out (rate/term) refinance.
var limitedCashoutCreditScoreLTV = map[string]map[string]float64{
	">=780": {
		"<=30": 0.000, "30.01-60": 0.000, "60.01-70": 0.000, "70.01-75": 0.125,
		"75.01-80": 0.500, "80.01-85": 0.625, "85.01-90": 0.500, "90.01-95": 0.375, ">95": 0.375,
	},
	"760-779": {
		"<=30": 0.000, "30.01-60": 0.000, "60.01-70": 0.125, "70.01-75": 0.375,
		"75.01-80": 0.875, "80.01-85": 1.000, "85.01-90": 0.750, "90.01-95": 0.625, ">95": 0.625,
	},
	"740-759": {
		"<=30": 0.000, "30.01-60": 0.000, "60.01-70": 0.250, "70.01-75": 0.750,
		"75.01-80": 1.125, "80.01-85": 1.375, "85.01-90": 1.125, "90.01-95": 1.000, ">95": 1.000,
	},
	"720-739": {
		"<=30": 0.000, "30.01-60": 0.000, "60.01-70": 0.500, "70.01-75": 1.000,
		"75.01-80": 1.625, "80.01-85": 1.750, "85.01-90": 1.500, "90.01-95": 1.250, ">95": 1.250,
	},
	"700-719": {
		"<=30": 0.000, "30.01-60": 0.000, "60.01-70": 0.625, "70.01-75": 1.250,
		"75.01-80": 1.875, "80.01-85": 2.125, "85.01-90": 1.750, "90.01-95": 1.625, ">95": 1.625,
	},
	"680-699": {
		"<=30": 0.000, "30.01-60": 0.000, "60.01-70": 0.875, "70.01-75": 1.625,
		"75.01-80": 2.250, "80.01-85": 2.500, "85.01-90": 2.125, "90.01-95": 1.750, ">95": 1.750,
	},
	"660-679": {
		"<=30": 0.000, "30.01-60": 0.125, "60.01-70": 1.125, "70.01-75": 1.875,
		"75.01-80": 2.500, "80.01-85": 3.000, "85.01-90": 2.375, "90.01-95": 2.125, ">95": 2.125,
	},
	"640-659": {
		"<=30": 0.000, "30.01-60": 0.250, "60.01-70": 1.375, "70.01-75": 2.125,
		"75.01-80": 2.875, "80.01-85": 3.375, "85.01-90": 2.875, "90.01-95": 2.500, ">95": 2.500,
	},
	"<=639": {
		"<=30": 0.000, "30.01-60": 0.375, "60.01-70": 1.750, "70.01-75": 2.500,
		"75.01-80": 3.500, "80.01-85": 3.875, "85.01-90": 3.625, "90.01-95": 2.500, ">95": 2.500,
	},
}

// Cash-out refinance, capped at 80% LTV.
var cashoutCreditScoreLTV = map[string]map[string]float64{
	">=780": {
		"<=30": 0.375, "30.01-60": 0.375, "60.01-70": 0.625, "70.01-75": 0.875, "75.01-80": 1.375,
	},
	"760-779": {
		"<=30": 0.375, "30.01-60": 0.375, "60.01-70": 0.875, "70.01-75": 1.250, "75.01-80": 1.875,
	},
	"740-759": {
		"<=30": 0.375, "30.01-60": 0.375, "60.01-70": 1.000, "70.01-75": 1.625, "75.01-80": 2.375,
	},
	"720-739": {
		"<=30": 0.375, "30.01-60": 0.500, "60.01-70": 1.375, "70.01-75": 2.000, "75.01-80": 2.750,
	},
	"700-719": {
		"<=30": 0.375, "30.01-60": 0.500, "60.01-70": 1.625, "70.01-75": 2.625, "75.01-80": 3.250,
	},
	"680-699": {
		"<=30": 0.375, "30.01-60": 0.625, "60.01-70": 2.000, "70.01-75": 2.875, "75.01-80": 3.750,
	},
	"660-679": {
		"<=30": 0.375, "30.01-60": 0.875, "60.01-70": 2.750, "70.01-75": 4.000, "75.01-80": 4.750,
	},
	"640-659": {
		"<=30": 0.375, "30.01-60": 1.375, "60.01-70": 3.125, "70.01-75": 4.625, "75.01-80": 5.125,
	},
	"<=639": {
		"<=30": 0.375, "30.01-60": 1.375, "60.01-70": 3.375, "70.01-75": 4.875, "75.01-80": 5.125,
	},
}

// Property type adjustments.
var (
	condoAdjustment = map[string]float64{
		"<=30": 0.000, "30.01-60": 0.000, "60.01-70": 0.125, "70.01-75": 0.125,
		"75.01-80": 0.750, "80.01-85": 0.750, "85.01-90": 0.750, "90.01-95": 0.750, ">95": 0.750,
	}

	multiUnitAdjustment = map[string]float64{
		"<=30": 0.000, "30.01-60": 0.000, "60.01-70": 0.375, "70.01-75": 0.375,
		"75.01-80": 0.625, "80.01-85": 0.625, "85.01-90": 0.625, "90.01-95": 0.625, ">95": 0.625,
	}

	manufacturedAdjustment = map[string]float64{
		"<=30": 0.500, "30.01-60": 0.500, "60.01-70": 0.500, "70.01-75": 0.500,
		"75.01-80": 0.500, "80.01-85": 0.500, "85.01-90": 0.500, "90.01-95": 0.500, ">95": 0.500,
	}
)

// Occupancy adjustments. Investment and second-home columns are identical on
// the current grid but are kept separate because they diverge in some vintages.
var (
	investmentPropertyAdjustment = map[string]float64{
		"<=30": 1.125, "30.01-60": 1.125, "60.01-70": 1.625, "70.01-75": 2.125,
		"75.01-80": 3.375, "80.01-85": 4.125, "85.01-90": 4.125, "90.01-95": 4.125, ">95": 4.125,
	}

	secondHomeAdjustment = map[string]float64{
		"<=30": 1.125, "30.01-60": 1.125, "60.01-70": 1.625, "70.01-75": 2.125,
		"75.01-80": 3.375, "80.01-85": 4.125, "85.01-90": 4.125, "90.01-95": 4.125, ">95": 4.125,
	}
)

// High balance adjustments, applied above the conforming limit.
var (
	highBalanceFixed = map[string]float64{
		"<=30": 0.500, "30.01-60": 0.500, "60.01-70": 0.750, "70.01-75": 0.750,
		"75.01-80": 1.000, "80.01-85": 1.000, "85.01-90": 1.000, "90.01-95": 1.000, ">95": 1.000,
	}

	highBalanceARM = map[string]float64{
		"<=30": 1.250, "30.01-60": 1.250, "60.01-70": 1.500, "70.01-75": 1.500,
		"75.01-80": 2.500, "80.01-85": 2.500, "85.01-90": 2.500, "90.01-95": 2.750, ">95": 2.750,
	}
)

// Subordinate financing, applied when CLTV exceeds LTV.
var subordinateFinancingAdjustment = map[string]float64{
	"<=30": 0.625, "30.01-60": 0.625, "60.01-70": 0.625, "70.01-75": 0.875,
	"75.01-80": 1.125, "80.01-85": 1.125, "85.01-90": 1.125, "90.01-95": 1.875, ">95": 1.875,
}

// FHA minimum credit scores by down payment tier.
const (
	FHAMinScore35Down = 580
	FHAMinScore10Down = 500
)
