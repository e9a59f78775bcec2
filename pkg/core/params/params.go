// Package params resolves the economic parameters a calculation runs with.
// Admin-level defaults (YAML file or stored settings) are merged with
// per-client overrides exactly once, at the call boundary; everything under
// pkg/core receives fully resolved values and never consults a default.
package params

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"refi_engine/pkg/core/pricing"
)

// Defaults carries the admin-configurable model parameters and base rates.
// Rates that read as percents in the admin UI (base rates) stay percents
// here; model parameters are decimals.
type Defaults struct {
	DiscountRate float64 `yaml:"discount_rate" json:"discount_rate"`
	Volatility   float64 `yaml:"volatility" json:"volatility"`
	TaxRate      float64 `yaml:"tax_rate" json:"tax_rate"`
	FixedCost    float64 `yaml:"fixed_cost" json:"fixed_cost"`
	Points       float64 `yaml:"points" json:"points"`
	ProbMoving   float64 `yaml:"prob_moving" json:"prob_moving"`
	Inflation    float64 `yaml:"inflation" json:"inflation"`

	BaseRateConventional float64 `yaml:"base_rate_conventional" json:"base_rate_conventional"`
	BaseRateFHA          float64 `yaml:"base_rate_fha" json:"base_rate_fha"`
}

// StandardDefaults returns the built-in parameter set used when no defaults
// file or stored settings exist.
func StandardDefaults() Defaults {
	return Defaults{
		DiscountRate:         0.05,
		Volatility:           0.0109,
		TaxRate:              0.28,
		FixedCost:            2000,
		Points:               0.01,
		ProbMoving:           0.10,
		Inflation:            0.03,
		BaseRateConventional: 6.5,
		BaseRateFHA:          6.25,
	}
}

// LoadDefaults reads a YAML defaults file. Fields the file omits keep their
// built-in values, so a partial file is fine.
func LoadDefaults(path string) (Defaults, error) {
	d := StandardDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("read defaults file: %w", err)
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("parse defaults file: %w", err)
	}
	return d, nil
}

// Overrides holds per-client parameter overrides. Nil means "use the
// default"; zero is a legitimate override value (a 0% tax rate is real),
// which is why these are pointers.
type Overrides struct {
	DiscountRate *float64 `json:"discount_rate,omitempty"`
	Volatility   *float64 `json:"volatility,omitempty"`
	TaxRate      *float64 `json:"tax_rate,omitempty"`
	FixedCost    *float64 `json:"fixed_cost,omitempty"`
	Points       *float64 `json:"points,omitempty"`
	ProbMoving   *float64 `json:"prob_moving,omitempty"`
	Inflation    *float64 `json:"inflation,omitempty"`
}

// Economic is a fully resolved parameter set. No field is optional past this
// point.
type Economic struct {
	DiscountRate float64 `json:"discount_rate"`
	Volatility   float64 `json:"volatility"`
	TaxRate      float64 `json:"tax_rate"`
	FixedCost    float64 `json:"fixed_cost"`
	Points       float64 `json:"points"`
	ProbMoving   float64 `json:"prob_moving"`
	Inflation    float64 `json:"inflation"`
}

func orDefault(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}

// Resolve merges defaults with a client's overrides.
func Resolve(d Defaults, o Overrides) Economic {
	return Economic{
		DiscountRate: orDefault(o.DiscountRate, d.DiscountRate),
		Volatility:   orDefault(o.Volatility, d.Volatility),
		TaxRate:      orDefault(o.TaxRate, d.TaxRate),
		FixedCost:    orDefault(o.FixedCost, d.FixedCost),
		Points:       orDefault(o.Points, d.Points),
		ProbMoving:   orDefault(o.ProbMoving, d.ProbMoving),
		Inflation:    orDefault(o.Inflation, d.Inflation),
	}
}

// LoanProfile is the loan-side input for a single client: what they owe, at
// what rate, and the attributes that drive pricing.
type LoanProfile struct {
	Balance        float64 `json:"current_mortgage_balance"`
	Rate           float64 `json:"current_mortgage_rate"` // decimal
	RemainingYears int     `json:"remaining_years"`

	LoanType      pricing.LoanType     `json:"loan_type"`
	CreditScore   int                  `json:"credit_score"`
	PropertyValue float64              `json:"property_value"`
	LoanAmount    float64              `json:"loan_amount"`
	LTV           float64              `json:"ltv"`
	State         string               `json:"state"`
	PropertyType  pricing.PropertyType `json:"property_type"`
	Occupancy     pricing.Occupancy    `json:"occupancy"`
	Purpose       pricing.LoanPurpose  `json:"loan_purpose"`
}

// Validate reports the first structural problem with a profile, or nil.
// NaN-valued numerics are legal here; the calculation layer classifies them
// as missing data rather than rejecting the record.
func (p LoanProfile) Validate() error {
	if p.Balance < 0 {
		return fmt.Errorf("negative mortgage balance %.2f", p.Balance)
	}
	if p.RemainingYears < 0 {
		return fmt.Errorf("negative remaining term %d", p.RemainingYears)
	}
	if p.LTV < 0 || p.LTV > 200 {
		return fmt.Errorf("ltv %.2f out of range", p.LTV)
	}
	switch p.LoanType {
	case pricing.LoanConventional, pricing.LoanFHA, "":
	default:
		return fmt.Errorf("unknown loan type %q", p.LoanType)
	}
	return nil
}
