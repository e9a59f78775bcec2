package admin

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"refi_engine/pkg/core/params"
	"refi_engine/pkg/core/pricing"
	"refi_engine/pkg/core/store"
	"refi_engine/pkg/engine"
)

// Handler serves the admin configuration endpoints: model defaults and the
// pricing grids. Changes apply to the live engine immediately and are
// persisted when a settings repo is configured; recalculation stays a
// separate, explicit step.
type Handler struct {
	Engine   *engine.Engine
	Settings *store.SettingsRepo
}

// NewHandler creates an admin handler.
func NewHandler(e *engine.Engine, settings *store.SettingsRepo) *Handler {
	return &Handler{Engine: e, Settings: settings}
}

// HandleSettings gets (GET) or replaces (PUT/POST) the model defaults.
func (h *Handler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	switch r.Method {
	case "GET":
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(h.Engine.Defaults)

	case "PUT", "POST":
		var d params.Defaults
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		h.Engine.Defaults = d
		if h.Settings != nil {
			if err := h.Settings.SaveDefaults(r.Context(), d); err != nil {
				fmt.Printf("[ADMIN] Failed to persist defaults: %v\n", err)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(d)

	default:
		http.Error(w, "GET or PUT required", http.StatusMethodNotAllowed)
	}
}

type gridRequest struct {
	LoanType pricing.LoanType `json:"loan_type"`
	GridText string           `json:"grid_text"`
}

type gridResponse struct {
	LoanType pricing.LoanType    `json:"loan_type"`
	Rates    int                 `json:"rates"`
	Grid     pricing.PricingGrid `json:"grid"`
}

// HandleGrid replaces the pricing grid for a loan type. The posted text goes
// through the lenient parser; malformed text yields an empty grid rather
// than an error, and the response shows what actually parsed.
func (h *Handler) HandleGrid(w http.ResponseWriter, r *http.Request) {
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

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}
	var req gridRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	grid := pricing.ParseGrid([]byte(req.GridText))
	if req.LoanType == pricing.LoanFHA {
		h.Engine.GridFHA = grid
	} else {
		h.Engine.GridConventional = grid
	}

	if h.Settings != nil {
		if err := h.Settings.SaveGridText(r.Context(), req.LoanType, req.GridText); err != nil {
			fmt.Printf("[ADMIN] Failed to persist grid: %v\n", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(gridResponse{
		LoanType: req.LoanType,
		Rates:    len(grid),
		Grid:     grid,
	})
}
