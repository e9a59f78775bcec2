package calc

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"refi_engine/pkg/core/params"
	"refi_engine/pkg/engine"
)

func newTestHandler() *Handler {
	return NewHandler(&engine.Engine{Defaults: params.StandardDefaults()})
}

func TestHandleThreshold_OK(t *testing.T) {
	h := newTestHandler()

	body := []byte(`{
		"loan": {
			"current_mortgage_balance": 400000,
			"current_mortgage_rate": 0.065,
			"remaining_years": 25,
			"loan_type": "Conventional",
			"credit_score": 780,
			"loan_amount": 300000,
			"ltv": 60,
			"property_type": "Single Family",
			"occupancy": "Primary Residence",
			"loan_purpose": "Rate/Term Refinance"
		}
	}`)

	req := httptest.NewRequest(http.MethodPost, "/api/threshold", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	h.HandleThreshold(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp ThresholdResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}

	if resp.Threshold.OptimalThresholdBPS == nil {
		t.Fatal("optimal threshold missing from response")
	}
	if bps := *resp.Threshold.OptimalThresholdBPS; bps < 130 || bps > 140 {
		t.Errorf("optimal threshold = %.1f bps, want ~134.5", bps)
	}
	if resp.Readiness.Status != "not_ready" {
		t.Errorf("status = %s, want not_ready at a 6.5%% quote", resp.Readiness.Status)
	}
}

// A failed solve must come back as null fields in valid JSON, never as a
// marshalling error.
func TestHandleThreshold_UndefinedSolve(t *testing.T) {
	h := newTestHandler()

	body := []byte(`{
		"loan": {
			"current_mortgage_balance": 400000,
			"current_mortgage_rate": 0.065,
			"remaining_years": 25,
			"loan_type": "Conventional",
			"credit_score": 780,
			"loan_amount": 300000,
			"ltv": 60
		},
		"overrides": {"volatility": 0}
	}`)

	req := httptest.NewRequest(http.MethodPost, "/api/threshold", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	h.HandleThreshold(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp ThresholdResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.Threshold.XStar != nil {
		t.Errorf("x_star should be null at sigma=0, got %v", *resp.Threshold.XStar)
	}
	if resp.Decision.Status != "calc_failed" {
		t.Errorf("status = %s, want calc_failed", resp.Decision.Status)
	}
}

func TestHandleThreshold_BadRequest(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/threshold", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	h.HandleThreshold(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad body, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/threshold", nil)
	w = httptest.NewRecorder()
	h.HandleThreshold(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for GET, got %d", w.Code)
	}
}

func TestHandleSensitivity(t *testing.T) {
	h := newTestHandler()

	base := `"base": {
		"m": 400000, "i0": 0.065, "gamma": 25, "rho": 0.05, "sigma": 0.0109,
		"tau": 0.28, "mu": 0.10, "pi": 0.03, "points": 0, "fixed_cost": 6000
	}`

	cases := []struct {
		analysis string
		wantRows int
	}{
		{"mortgage_size", 9},
		{"volatility", 50},
		{"tax_rate", 9},
		{"tenure", 7},
		{"fixed_cost", 9},
		{"closing_cost", 31},
		{"remaining_term", 26},
	}

	for _, tc := range cases {
		body := []byte(`{"analysis": "` + tc.analysis + `", ` + base + `}`)
		req := httptest.NewRequest(http.MethodPost, "/api/sensitivity", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		h.HandleSensitivity(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d: %s", tc.analysis, w.Code, w.Body.String())
		}
		var resp SensitivityResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: invalid JSON: %v", tc.analysis, err)
		}
		if len(resp.Rows) != tc.wantRows {
			t.Errorf("%s: got %d rows, want %d", tc.analysis, len(resp.Rows), tc.wantRows)
		}
	}
}

func TestHandleSensitivity_UnknownAnalysis(t *testing.T) {
	h := newTestHandler()

	body := []byte(`{"analysis": "phase_of_moon", "base": {"m": 400000}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/sensitivity", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	h.HandleSensitivity(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown analysis, got %d", w.Code)
	}
}
