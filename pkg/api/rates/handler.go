package rates

import (
	"encoding/json"
	"net/http"

	"refi_engine/pkg/core/params"
	"refi_engine/pkg/core/pricing"
	"refi_engine/pkg/engine"
	"refi_engine/pkg/models"
)

// Handler serves rate quoting and the pricing-grid menu.
type Handler struct {
	Engine *engine.Engine
}

// NewHandler creates a rates handler bound to an engine.
func NewHandler(e *engine.Engine) *Handler {
	return &Handler{Engine: e}
}

type RatesRequest struct {
	Loan params.LoanProfile `json:"loan"`
	// TargetCost, when set, asks for the best grid rate whose total cost
	// fits the budget.
	TargetCost *float64 `json:"target_cost,omitempty"`
}

// ParJSON is pricing.ParResult with the grid par rate nullable: a grid with
// no zero-point row has no par to report.
type ParJSON struct {
	BorrowerParRate   float64  `json:"borrower_par_rate"`
	BorrowerParPoints float64  `json:"borrower_par_points"`
	GridParRate       *float64 `json:"grid_par_rate"`
	LLPAAdjustment    float64  `json:"llpa_adjustment"`
}

type RatesResponse struct {
	Rate   pricing.RateResult    `json:"rate"`
	Menu   []pricing.RateQuote   `json:"menu"`
	Par    *ParJSON              `json:"par,omitempty"`
	Budget *pricing.BudgetResult `json:"budget,omitempty"`
}

// HandleRates quotes the available rate and, when a grid is configured,
// the full rate/points menu for the posted loan.
func (h *Handler) HandleRates(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	var req RatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Loan.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec := &models.ClientRecord{Loan: req.Loan}
	ev, err := h.Engine.Evaluate(rec)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := RatesResponse{Rate: ev.Rate}

	grid := h.Engine.GridFor(req.Loan.LoanType)
	if len(grid) > 0 {
		menu := grid.RateMenu(ev.Rate.TotalLLPA, req.Loan.LoanAmount)
		resp.Menu = menu

		if par, ok := pricing.ParRate(menu); ok {
			resp.Par = &ParJSON{
				BorrowerParRate:   par.BorrowerParRate,
				BorrowerParPoints: par.BorrowerParPoints,
				GridParRate:       models.NullIfNaN(par.GridParRate),
				LLPAAdjustment:    par.LLPAAdjustment,
			}
		}
		if req.TargetCost != nil {
			if budget, ok := pricing.BestRateForBudget(menu, *req.TargetCost); ok {
				resp.Budget = &budget
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
