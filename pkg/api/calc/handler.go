package calc

import (
	"encoding/json"
	"fmt"
	"net/http"

	"refi_engine/pkg/core/params"
	"refi_engine/pkg/core/pricing"
	"refi_engine/pkg/core/sensitivity"
	"refi_engine/pkg/core/threshold"
	"refi_engine/pkg/engine"
	"refi_engine/pkg/models"
)

// Handler serves the calculation endpoints.
type Handler struct {
	Engine *engine.Engine
}

// NewHandler creates a calc handler bound to an engine.
func NewHandler(e *engine.Engine) *Handler {
	return &Handler{Engine: e}
}

type ThresholdRequest struct {
	Loan      params.LoanProfile `json:"loan"`
	Overrides params.Overrides   `json:"overrides"`
}

// ThresholdDiagnostics is the JSON-safe form of a trigger calculation.
// Every numeric that can be NaN crosses the wire as a pointer; null means
// the solve could not produce it.
type ThresholdDiagnostics struct {
	OptimalThresholdBPS *float64 `json:"optimal_threshold_bps"`
	TriggerRate         *float64 `json:"trigger_rate"`
	TriggerRatePct      *float64 `json:"trigger_rate_pct"`
	XStar               *float64 `json:"x_star"`
	SqrtApproxBPS       *float64 `json:"sqrt_approx_bps"`
	NPVThresholdBPS     *float64 `json:"npv_threshold_bps"`
	Lambda              *float64 `json:"lambda"`
	Kappa               *float64 `json:"kappa"`
	Psi                 *float64 `json:"psi"`
	Phi                 *float64 `json:"phi"`
	CM                  *float64 `json:"c_m"`
	CurrentRatePct      *float64 `json:"current_rate_pct"`
}

func diagnosticsJSON(t threshold.TriggerResult) ThresholdDiagnostics {
	return ThresholdDiagnostics{
		OptimalThresholdBPS: models.NullIfNaN(t.OptimalThresholdBPS),
		TriggerRate:         models.NullIfNaN(t.TriggerRate),
		TriggerRatePct:      models.NullIfNaN(t.TriggerRatePct),
		XStar:               models.NullIfNaN(t.XStar),
		SqrtApproxBPS:       models.NullIfNaN(t.SqrtApproxBPS),
		NPVThresholdBPS:     models.NullIfNaN(t.NPVThresholdBPS),
		Lambda:              models.NullIfNaN(t.Lambda),
		Kappa:               models.NullIfNaN(t.Kappa),
		Psi:                 models.NullIfNaN(t.Psi),
		Phi:                 models.NullIfNaN(t.Phi),
		CM:                  models.NullIfNaN(t.CM),
		CurrentRatePct:      models.NullIfNaN(t.CurrentRatePct),
	}
}

// ReadinessJSON mirrors threshold.ReadinessDecision with nullable numerics.
type ReadinessJSON struct {
	Status        threshold.ReadinessStatus `json:"status"`
	IsReady       bool                      `json:"is_ready"`
	Difference    *float64                  `json:"difference"`
	DifferenceBPS *float64                  `json:"difference_bps"`
	Message       string                    `json:"message"`
}

func readinessJSON(d threshold.ReadinessDecision) ReadinessJSON {
	return ReadinessJSON{
		Status:        d.Status,
		IsReady:       d.IsReady,
		Difference:    models.NullIfNaN(d.Difference),
		DifferenceBPS: models.NullIfNaN(d.DifferenceBPS),
		Message:       d.Message,
	}
}

type ThresholdResponse struct {
	Economic  params.Economic      `json:"economic"`
	Threshold ThresholdDiagnostics `json:"threshold"`
	Rate      pricing.RateResult   `json:"rate"`
	Readiness ReadinessJSON        `json:"readiness"`
	Decision  models.Decision      `json:"decision"`
}

// HandleThreshold computes the full decision bundle for a posted loan.
func (h *Handler) HandleThreshold(w http.ResponseWriter, r *http.Request) {
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

	var req ThresholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rec := &models.ClientRecord{Loan: req.Loan, Overrides: req.Overrides}
	ev, err := h.Engine.Evaluate(rec)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := ThresholdResponse{
		Economic:  ev.Economic,
		Threshold: diagnosticsJSON(ev.Threshold),
		Rate:      ev.Rate,
		Readiness: readinessJSON(ev.Readiness),
		Decision:  ev.Decision,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

type SensitivityRequest struct {
	Analysis string           `json:"analysis"`
	Base     sensitivity.Base `json:"base"`
}

// Sweep rows re-encoded with nullable thresholds. Sweeps hit domain
// boundaries routinely (tau = 1, sigma = 0), so NaN rows are expected.
type sweepRow struct {
	X        float64  `json:"x"`
	ExactBPS *float64 `json:"exact_bps"`
	SqrtBPS  *float64 `json:"sqrt_bps,omitempty"`
	NPVBPS   *float64 `json:"npv_bps,omitempty"`
	Extra    *float64 `json:"extra,omitempty"`
}

type SensitivityResponse struct {
	Analysis string     `json:"analysis"`
	XLabel   string     `json:"x_label"`
	Rows     []sweepRow `json:"rows"`
}

// HandleSensitivity runs one named sweep around a posted base scenario.
func (h *Handler) HandleSensitivity(w http.ResponseWriter, r *http.Request) {
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

	var req SensitivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp := SensitivityResponse{Analysis: req.Analysis}
	switch req.Analysis {
	case "mortgage_size":
		resp.XLabel = "mortgage_size"
		for _, row := range sensitivity.SweepMortgageSize(req.Base, nil) {
			resp.Rows = append(resp.Rows, sweepRow{
				X:        row.M,
				ExactBPS: models.NullIfNaN(row.ExactBPS),
				SqrtBPS:  models.NullIfNaN(row.SqrtBPS),
				NPVBPS:   models.NullIfNaN(row.NPVBPS),
			})
		}
	case "volatility":
		resp.XLabel = "sigma"
		for _, row := range sensitivity.SweepVolatility(req.Base, 0, 0, 0) {
			resp.Rows = append(resp.Rows, sweepRow{
				X:        row.Sigma,
				ExactBPS: models.NullIfNaN(row.ExactBPS),
				SqrtBPS:  models.NullIfNaN(row.SqrtBPS),
			})
		}
	case "tax_rate":
		resp.XLabel = "tau"
		for _, row := range sensitivity.SweepTaxRate(req.Base, nil) {
			resp.Rows = append(resp.Rows, sweepRow{
				X:        row.Tau,
				ExactBPS: models.NullIfNaN(row.ExactBPS),
			})
		}
	case "tenure":
		resp.XLabel = "expected_years"
		for _, row := range sensitivity.SweepTenure(req.Base, nil) {
			resp.Rows = append(resp.Rows, sweepRow{
				X:        row.ExpectedYears,
				ExactBPS: models.NullIfNaN(row.ExactBPS),
				Extra:    models.NullIfNaN(row.Lambda),
			})
		}
	case "fixed_cost":
		resp.XLabel = "fixed_cost"
		for _, row := range sensitivity.SweepFixedCost(req.Base, nil) {
			resp.Rows = append(resp.Rows, sweepRow{
				X:        row.FixedCost,
				ExactBPS: models.NullIfNaN(row.ExactBPS),
				NPVBPS:   models.NullIfNaN(row.NPVBPS),
			})
		}
	case "closing_cost":
		resp.XLabel = "closing_cost"
		for _, row := range sensitivity.SweepClosingCost(req.Base) {
			resp.Rows = append(resp.Rows, sweepRow{
				X:        row.ClosingCost,
				ExactBPS: models.NullIfNaN(row.ThresholdBPS),
				Extra:    models.NullIfNaN(row.TriggerRatePct),
			})
		}
	case "remaining_term":
		resp.XLabel = "years"
		for _, row := range sensitivity.SweepRemainingTerm(req.Base) {
			resp.Rows = append(resp.Rows, sweepRow{
				X:        float64(row.Years),
				ExactBPS: models.NullIfNaN(row.ExactBPS),
				Extra:    models.NullIfNaN(row.Lambda),
			})
		}
	default:
		http.Error(w, fmt.Sprintf("Unknown analysis: %s", req.Analysis), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
