package store

import (
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	"refi_engine/pkg/core/threshold"
	"refi_engine/pkg/models"
)

func TestMockDecisionCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMockDecisionCache()

	if _, ok := cache.Get(ctx, "missing"); ok {
		t.Fatal("empty cache returned a decision")
	}

	drop := 134.5
	d := &models.Decision{
		Status:         threshold.StatusReady,
		IsReady:        true,
		OptimalDropBPS: &drop,
		BatchID:        "batch-1",
		CheckedAt:      time.Now(),
	}
	if err := cache.Set(ctx, "client-1", d); err != nil {
		t.Fatal(err)
	}

	got, ok := cache.Get(ctx, "client-1")
	if !ok {
		t.Fatal("decision not found after Set")
	}
	if got.Status != threshold.StatusReady || !got.IsReady {
		t.Errorf("got status %s ready=%v", got.Status, got.IsReady)
	}
	if got.OptimalDropBPS == nil || *got.OptimalDropBPS != 134.5 {
		t.Errorf("optimal drop = %v, want 134.5", got.OptimalDropBPS)
	}
	if cache.Len() != 1 {
		t.Errorf("len = %d, want 1", cache.Len())
	}

	// Overwrite replaces, not appends.
	d2 := &models.Decision{Status: threshold.StatusNotReady}
	if err := cache.Set(ctx, "client-1", d2); err != nil {
		t.Fatal(err)
	}
	got, _ = cache.Get(ctx, "client-1")
	if got.Status != threshold.StatusNotReady {
		t.Errorf("overwrite not applied, status %s", got.Status)
	}
	if cache.Len() != 1 {
		t.Errorf("len after overwrite = %d, want 1", cache.Len())
	}
}

// Decisions travel through Redis as JSON, where NaN is not representable.
// The pointer convention must round-trip nil for uncomputable values.
func TestDecisionJSONRoundTrip(t *testing.T) {
	d := &models.Decision{
		Status:         threshold.StatusMissingData,
		OptimalDropBPS: models.NullIfNaN(math.NaN()),
		TriggerRate:    models.NullIfNaN(0.05155),
		Message:        "Missing rate data",
	}

	jsonData, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var back models.Decision
	if err := json.Unmarshal(jsonData, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if back.OptimalDropBPS != nil {
		t.Errorf("NaN field should round-trip as nil, got %v", *back.OptimalDropBPS)
	}
	if back.TriggerRate == nil || math.Abs(*back.TriggerRate-0.05155) > 1e-12 {
		t.Errorf("trigger rate lost in round trip: %v", back.TriggerRate)
	}
	if !math.IsNaN(models.OrNaN(back.OptimalDropBPS)) {
		t.Error("OrNaN(nil) should be NaN")
	}
}
