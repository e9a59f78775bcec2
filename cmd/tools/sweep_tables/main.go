package main

import (
	"flag"
	"fmt"

	"refi_engine/pkg/core/sensitivity"
)

// Prints the standard sensitivity tables for a reference scenario. Useful
// for sanity-checking threshold behavior after touching the solver.
func main() {
	m := flag.Float64("m", 400000, "mortgage balance")
	i0 := flag.Float64("rate", 0.065, "current mortgage rate (decimal)")
	gamma := flag.Int("years", 25, "remaining term in years")
	cost := flag.Float64("cost", 2000, "fixed refinancing cost")
	points := flag.Float64("points", 0.01, "points as a fraction of balance")
	flag.Parse()

	base := sensitivity.Base{
		M:         *m,
		I0:        *i0,
		Gamma:     *gamma,
		Rho:       0.05,
		Sigma:     0.0109,
		Tau:       0.28,
		Mu:        0.10,
		Pi:        0.03,
		Points:    *points,
		FixedCost: *cost,
	}

	fmt.Println("=== Threshold by Mortgage Size ===")
	fmt.Printf("%12s %10s %10s %10s\n", "Balance", "Exact", "Sqrt", "NPV")
	for _, row := range sensitivity.SweepMortgageSize(base, nil) {
		fmt.Printf("%12.0f %10.1f %10.1f %10.1f\n", row.M, row.ExactBPS, row.SqrtBPS, row.NPVBPS)
	}

	fmt.Println("\n=== Threshold by Marginal Tax Rate ===")
	fmt.Printf("%8s %10s\n", "Tax", "Exact")
	for _, row := range sensitivity.SweepTaxRate(base, nil) {
		fmt.Printf("%8.2f %10.1f\n", row.Tau, row.ExactBPS)
	}

	fmt.Println("\n=== Threshold by Expected Tenure ===")
	fmt.Printf("%8s %10s %10s %10s\n", "Mu", "ExpYears", "Lambda", "Exact")
	for _, row := range sensitivity.SweepTenure(base, nil) {
		fmt.Printf("%8.3f %10.1f %10.4f %10.1f\n", row.Mu, row.ExpectedYears, row.Lambda, row.ExactBPS)
	}

	fmt.Println("\n=== Threshold by Fixed Cost ===")
	fmt.Printf("%10s %10s %10s %10s\n", "Cost", "Kappa", "Exact", "NPV")
	for _, row := range sensitivity.SweepFixedCost(base, nil) {
		fmt.Printf("%10.0f %10.0f %10.1f %10.1f\n", row.FixedCost, row.Kappa, row.ExactBPS, row.NPVBPS)
	}

	fmt.Println("\n=== Trigger Rate by Total Closing Cost ===")
	fmt.Printf("%10s %12s %12s\n", "Cost", "Threshold", "Trigger%")
	for _, row := range sensitivity.SweepClosingCost(base) {
		fmt.Printf("%10.0f %12.1f %12.3f\n", row.ClosingCost, row.ThresholdBPS, row.TriggerRatePct)
	}

	fmt.Println("\n=== Threshold by Remaining Term ===")
	fmt.Printf("%8s %10s %10s\n", "Years", "Lambda", "Exact")
	for _, row := range sensitivity.SweepRemainingTerm(base) {
		fmt.Printf("%8d %10.4f %10.1f\n", row.Years, row.Lambda, row.ExactBPS)
	}
}
