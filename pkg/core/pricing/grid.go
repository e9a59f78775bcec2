package pricing

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/hjson/hjson-go/v4"
)

// A pricing grid maps note rates to points for a clean borrower (high credit,
// low LTV). Grids are entered by hand in admin settings, so parsing is
// lenient: trailing commas, comments, and unquoted keys are accepted, and a
// grid that still fails to parse quotes as empty rather than erroring.

// PricingGrid maps a rate string (e.g. "6.125") to signed points. Negative
// points are a lender credit.
type PricingGrid map[string]float64

// ParseGrid parses a hand-entered grid. Malformed input or non-numeric
// values yield an empty grid.
func ParseGrid(data []byte) PricingGrid {
	if len(data) == 0 {
		return PricingGrid{}
	}

	var raw map[string]interface{}
	if err := hjson.Unmarshal(data, &raw); err != nil {
		return PricingGrid{}
	}

	grid := make(PricingGrid, len(raw))
	for rateStr, v := range raw {
		if _, err := strconv.ParseFloat(rateStr, 64); err != nil {
			return PricingGrid{}
		}
		points, ok := v.(float64)
		if !ok {
			return PricingGrid{}
		}
		grid[rateStr] = points
	}
	return grid
}

// RateQuote is one row of the rate menu for a specific borrower.
type RateQuote struct {
	Rate        float64 `json:"rate"`
	RateStr     string  `json:"rate_str"`
	BasePoints  float64 `json:"base_points"`
	LLPAPoints  float64 `json:"llpa_points"`
	TotalPoints float64 `json:"total_points"`
	TotalCost   float64 `json:"total_cost"`
	IsPar       bool    `json:"is_par"`
	HasCredit   bool    `json:"has_credit"`
	HasCost     bool    `json:"has_cost"`
}

// RateMenu prices every grid row for a borrower by folding their LLPA into
// the clean-borrower points. Rows come back sorted by rate, highest first.
// llpaPoints is zero for FHA borrowers.
func (g PricingGrid) RateMenu(llpaPoints, loanAmount float64) []RateQuote {
	if len(g) == 0 {
		return nil
	}

	quotes := make([]RateQuote, 0, len(g))
	for rateStr, basePoints := range g {
		rate, err := strconv.ParseFloat(rateStr, 64)
		if err != nil {
			continue
		}
		total := basePoints + llpaPoints
		quotes = append(quotes, RateQuote{
			Rate:        rate,
			RateStr:     fmt.Sprintf("%.3f%%", rate),
			BasePoints:  basePoints,
			LLPAPoints:  llpaPoints,
			TotalPoints: total,
			TotalCost:   total * loanAmount / 100,
			IsPar:       math.Abs(basePoints) < 0.001,
			HasCredit:   total < 0,
			HasCost:     total > 0,
		})
	}

	sort.Slice(quotes, func(i, j int) bool { return quotes[i].Rate > quotes[j].Rate })
	return quotes
}

// ParResult locates the zero-point rate for a borrower. BorrowerParRate is
// the grid row whose total points (LLPA included) are closest to zero;
// GridParRate is the clean-borrower par row, NaN if the grid has none.
type ParResult struct {
	BorrowerParRate   float64     `json:"borrower_par_rate"`
	BorrowerParPoints float64     `json:"borrower_par_points"`
	GridParRate       float64     `json:"grid_par_rate"`
	LLPAAdjustment    float64     `json:"llpa_adjustment"`
	AllRates          []RateQuote `json:"all_rates"`
}

// ParRate finds the borrower's par rate in a priced menu. Returns ok=false
// when the menu is empty.
func ParRate(menu []RateQuote) (ParResult, bool) {
	if len(menu) == 0 {
		return ParResult{}, false
	}

	best := menu[0]
	for _, q := range menu[1:] {
		if math.Abs(q.TotalPoints) < math.Abs(best.TotalPoints) {
			best = q
		}
	}

	gridPar := math.NaN()
	for _, q := range menu {
		if q.IsPar {
			gridPar = q.Rate
			break
		}
	}

	return ParResult{
		BorrowerParRate:   best.Rate,
		BorrowerParPoints: best.TotalPoints,
		GridParRate:       gridPar,
		LLPAAdjustment:    best.LLPAPoints,
		AllRates:          menu,
	}, true
}

// BudgetResult is the outcome of shopping a rate menu against a closing cost
// budget. WithinBudget is false when even the cheapest row costs more than
// the budget; the highest rate (largest credit) is returned as the fallback.
type BudgetResult struct {
	Rate         float64 `json:"rate"`
	Points       float64 `json:"points"`
	Cost         float64 `json:"cost"`
	WithinBudget bool    `json:"within_budget"`
	Message      string  `json:"message"`
}

// BestRateForBudget finds the lowest rate whose total cost fits the budget.
// The budget can be negative to require a minimum lender credit.
func BestRateForBudget(menu []RateQuote, targetCost float64) (BudgetResult, bool) {
	if len(menu) == 0 {
		return BudgetResult{}, false
	}

	var best *RateQuote
	for i := range menu {
		q := &menu[i]
		if q.TotalCost > targetCost {
			continue
		}
		if best == nil || q.Rate < best.Rate {
			best = q
		}
	}

	if best == nil {
		// Nothing affordable; the top row carries the most credit.
		top := menu[0]
		return BudgetResult{
			Rate:    top.Rate,
			Points:  top.TotalPoints,
			Cost:    top.TotalCost,
			Message: "No rates available within budget. Showing highest rate (most credit).",
		}, true
	}

	return BudgetResult{
		Rate:         best.Rate,
		Points:       best.TotalPoints,
		Cost:         best.TotalCost,
		WithinBudget: true,
		Message:      fmt.Sprintf("Best rate within $%.0f budget", targetCost),
	}, true
}
