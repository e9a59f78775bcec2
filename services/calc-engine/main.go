package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"refi_engine/pkg/core/pricing"
	"refi_engine/pkg/core/simulate"
	"refi_engine/pkg/core/threshold"
	"refi_engine/pkg/models"
)

// One-shot calculator for scripting: feed a JSON payload on the command
// line, get JSON back on stdout. NaN-capable outputs cross as null.

func main() {
	mode := flag.String("mode", "threshold", "Mode: threshold, rate, verify, or enpv")
	dataStr := flag.String("data", "", "JSON data payload")
	flag.Parse()

	if *dataStr == "" {
		fmt.Println("Error: No data provided")
		os.Exit(1)
	}

	switch *mode {
	case "threshold":
		runThreshold(*dataStr)
	case "rate":
		runRate(*dataStr)
	case "verify":
		runVerify(*dataStr)
	case "enpv":
		runENPV(*dataStr)
	default:
		fmt.Printf("Unknown mode: %s\n", *mode)
		os.Exit(1)
	}
}

type thresholdPayload struct {
	CurrentRate      float64 `json:"current_rate"`
	RemainingBalance float64 `json:"remaining_balance"`
	RemainingYears   int     `json:"remaining_years"`
	DiscountRate     float64 `json:"discount_rate"`
	Volatility       float64 `json:"volatility"`
	TaxRate          float64 `json:"tax_rate"`
	FixedCost        float64 `json:"fixed_cost"`
	Points           float64 `json:"points"`
	ProbMoving       float64 `json:"prob_moving"`
	InflationRate    float64 `json:"inflation_rate"`
}

func (p thresholdPayload) triggerInput() threshold.TriggerInput {
	return threshold.TriggerInput{
		CurrentRate:      p.CurrentRate,
		RemainingBalance: p.RemainingBalance,
		RemainingYears:   p.RemainingYears,
		DiscountRate:     p.DiscountRate,
		Volatility:       p.Volatility,
		TaxRate:          p.TaxRate,
		FixedCost:        p.FixedCost,
		Points:           p.Points,
		ProbMoving:       p.ProbMoving,
		InflationRate:    p.InflationRate,
	}
}

func decodePayload(dataStr string) thresholdPayload {
	var p thresholdPayload
	if err := json.Unmarshal([]byte(dataStr), &p); err != nil {
		fmt.Printf("Error unmarshaling data: %v\n", err)
		os.Exit(1)
	}
	return p
}

func runThreshold(dataStr string) {
	p := decodePayload(dataStr)
	res := threshold.ComputeTrigger(p.triggerInput())

	out := map[string]*float64{
		"optimal_threshold_bps": models.NullIfNaN(res.OptimalThresholdBPS),
		"trigger_rate":          models.NullIfNaN(res.TriggerRate),
		"trigger_rate_pct":      models.NullIfNaN(res.TriggerRatePct),
		"x_star":                models.NullIfNaN(res.XStar),
		"sqrt_approx_bps":       models.NullIfNaN(res.SqrtApproxBPS),
		"npv_threshold_bps":     models.NullIfNaN(res.NPVThresholdBPS),
		"lambda":                models.NullIfNaN(res.Lambda),
		"kappa":                 models.NullIfNaN(res.Kappa),
	}
	emit(out)
}

type ratePayload struct {
	BaseRate        float64              `json:"base_rate"`
	CreditScore     int                  `json:"credit_score"`
	LTV             float64              `json:"ltv"`
	LoanAmount      float64              `json:"loan_amount"`
	LoanType        pricing.LoanType     `json:"loan_type"`
	PropertyType    pricing.PropertyType `json:"property_type"`
	Occupancy       pricing.Occupancy    `json:"occupancy"`
	StateAdjustment float64              `json:"state_adjustment"`
}

func runRate(dataStr string) {
	var p ratePayload
	if err := json.Unmarshal([]byte(dataStr), &p); err != nil {
		fmt.Printf("Error unmarshaling data: %v\n", err)
		os.Exit(1)
	}

	res := pricing.ComputeAvailableRate(pricing.RateInput{
		BaseRate:        p.BaseRate,
		CreditScore:     p.CreditScore,
		LTV:             p.LTV,
		LoanAmount:      p.LoanAmount,
		LoanType:        p.LoanType,
		Property:        p.PropertyType,
		Occupancy:       p.Occupancy,
		StateAdjustment: p.StateAdjustment,
	})
	emit(res)
}

func runVerify(dataStr string) {
	p := decodePayload(dataStr)
	trig := threshold.ComputeTrigger(p.triggerInput())
	if !trig.Defined() {
		fmt.Println("Error: threshold undefined, nothing to verify")
		os.Exit(1)
	}

	solveIn := threshold.SolveInput{
		M:      p.RemainingBalance,
		Rho:    p.DiscountRate,
		Lambda: trig.Lambda,
		Sigma:  p.Volatility,
		Kappa:  trig.Kappa,
		Tau:    p.TaxRate,
	}
	v := threshold.Verify(solveIn, threshold.Solve(solveIn))
	emit(v)
}

func runENPV(dataStr string) {
	var in simulate.ENPVInput
	if err := json.Unmarshal([]byte(dataStr), &in); err != nil {
		fmt.Printf("Error unmarshaling data: %v\n", err)
		os.Exit(1)
	}

	res := simulate.ComputeENPV(in)
	out := map[string]interface{}{
		"enpv":            models.NullIfNaN(res.ENPV),
		"smm":             models.NullIfNaN(res.SMM),
		"payment_old":     models.NullIfNaN(res.PaymentOld),
		"payment_new":     models.NullIfNaN(res.PaymentNew),
		"gamma_month":     res.GammaMonth,
		"breakeven_month": res.BreakevenMonth,
	}
	emit(out)
}

func emit(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
