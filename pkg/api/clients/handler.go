package clients

import (
	"encoding/json"
	"fmt"
	"net/http"

	"refi_engine/pkg/core/store"
	"refi_engine/pkg/engine"
)

// Handler serves readiness lookups and bulk recalculation.
type Handler struct {
	Engine *engine.Engine
	Repo   *store.ClientsRepo
	Cache  store.DecisionCache
}

// NewHandler creates a clients handler.
func NewHandler(e *engine.Engine, repo *store.ClientsRepo, cache store.DecisionCache) *Handler {
	return &Handler{Engine: e, Repo: repo, Cache: cache}
}

// HandleReadiness returns the latest decision for a client. The cached
// decision from the last bulk run is preferred; a cache miss falls back to
// loading the record and evaluating on the spot (without writing the cache).
func (h *Handler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "GET" {
		http.Error(w, "GET required", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id query parameter required", http.StatusBadRequest)
		return
	}

	if h.Cache != nil {
		if d, ok := h.Cache.Get(r.Context(), id); ok {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(d)
			return
		}
	}

	if h.Repo == nil {
		http.Error(w, "persistence not configured", http.StatusServiceUnavailable)
		return
	}

	rec, err := h.Repo.Load(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	ev, err := h.Engine.Evaluate(rec)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ev.Decision)
}

// HandleRecalculate runs a bulk recalculation over every stored client,
// persists the updated records, and reports the batch summary.
func (h *Handler) HandleRecalculate(w http.ResponseWriter, r *http.Request) {
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

	if h.Repo == nil {
		http.Error(w, "persistence not configured", http.StatusServiceUnavailable)
		return
	}

	records, err := h.Repo.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	res := h.Engine.RecalculateAll(r.Context(), records)

	saved := 0
	for _, rec := range records {
		if err := h.Repo.Save(r.Context(), rec); err != nil {
			fmt.Printf("[CLIENTS] Failed to persist %s after recalc: %v\n", rec.ID, err)
			continue
		}
		saved++
	}
	fmt.Printf("[CLIENTS] Recalc batch %s: %d/%d records persisted\n", res.BatchID, saved, res.Total)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
