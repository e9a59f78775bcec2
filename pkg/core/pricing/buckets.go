package pricing

import "fmt"

// Bucket labels follow the Fannie Mae matrix row/column headers so LLPA
// breakdowns render with the same wording loan officers see on the grid.

// LTVBucket maps an LTV percentage to its matrix column. Bounds are half-open
// on the low side: 80.0 prices in "75.01-80", 80.01 in "80.01-85".
func LTVBucket(ltv float64) string {
	switch {
	case ltv <= 30:
		return "<=30"
	case ltv <= 60:
		return "30.01-60"
	case ltv <= 70:
		return "60.01-70"
	case ltv <= 75:
		return "70.01-75"
	case ltv <= 80:
		return "75.01-80"
	case ltv <= 85:
		return "80.01-85"
	case ltv <= 90:
		return "85.01-90"
	case ltv <= 95:
		return "90.01-95"
	default:
		return ">95"
	}
}

// LTVBucketCashOut is the cash-out refinance column set, which tops out at
// 80% LTV. Anything above 75 prices in the last column.
func LTVBucketCashOut(ltv float64) string {
	switch {
	case ltv <= 30:
		return "<=30"
	case ltv <= 60:
		return "30.01-60"
	case ltv <= 70:
		return "60.01-70"
	case ltv <= 75:
		return "70.01-75"
	default:
		return "75.01-80"
	}
}

// CreditScoreBucket maps a credit score to its matrix row. Lower bounds are
// inclusive: 780 lands in ">=780", 779 in "760-779".
func CreditScoreBucket(score int) string {
	switch {
	case score >= 780:
		return ">=780"
	case score >= 760:
		return "760-779"
	case score >= 740:
		return "740-759"
	case score >= 720:
		return "720-739"
	case score >= 700:
		return "700-719"
	case score >= 680:
		return "680-699"
	case score >= 660:
		return "660-679"
	case score >= 640:
		return "640-659"
	default:
		return "<=639"
	}
}

// lookup reads a matrix cell, failing loudly on a label mismatch since the
// bucket functions and the matrices must stay in sync.
func lookup(matrix map[string]map[string]float64, scoreBucket, ltvBucket string) float64 {
	row, ok := matrix[scoreBucket]
	if !ok {
		panic(fmt.Sprintf("pricing: unknown credit score bucket %q", scoreBucket))
	}
	v, ok := row[ltvBucket]
	if !ok {
		panic(fmt.Sprintf("pricing: unknown LTV bucket %q", ltvBucket))
	}
	return v
}
