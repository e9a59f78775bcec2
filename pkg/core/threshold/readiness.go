package threshold

import (
	"fmt"
	"math"
)

// ReadinessStatus distinguishes a genuine negative differential from the two
// degenerate states the surrounding application must render differently:
// inputs that were never computed, and a solve that failed numerically.
type ReadinessStatus string

const (
	StatusReady       ReadinessStatus = "ready"
	StatusNotReady    ReadinessStatus = "not_ready"
	StatusMissingData ReadinessStatus = "missing_data"
	StatusCalcFailed  ReadinessStatus = "calc_failed"
)

// ReadinessDecision is the one quantity the surrounding CRM persists:
// trigger_rate - available_rate, and whether that difference is positive.
type ReadinessDecision struct {
	Status        ReadinessStatus `json:"status"`
	IsReady       bool            `json:"is_ready"`
	Difference    float64         `json:"difference"`
	DifferenceBPS float64         `json:"difference_bps"`
	Message       string          `json:"message"`
}

// CheckReadiness compares a trigger rate against the rate available to the
// borrower today. NaN inputs mean the corresponding rate has not been
// computed; they produce a missing-data decision, not a not-ready one.
func CheckReadiness(triggerRate, availableRate float64) ReadinessDecision {
	if math.IsNaN(triggerRate) || math.IsNaN(availableRate) {
		return ReadinessDecision{
			Status:        StatusMissingData,
			Difference:    math.NaN(),
			DifferenceBPS: math.NaN(),
			Message:       "Missing rate data",
		}
	}

	diff := triggerRate - availableRate
	diffBPS := diff * 10000

	if diff > 0 {
		return ReadinessDecision{
			Status:        StatusReady,
			IsReady:       true,
			Difference:    diff,
			DifferenceBPS: diffBPS,
			Message:       fmt.Sprintf("Ready to refinance: available rate is %.0f bps below trigger.", diffBPS),
		}
	}

	return ReadinessDecision{
		Status:        StatusNotReady,
		Difference:    diff,
		DifferenceBPS: diffBPS,
		Message:       fmt.Sprintf("Not ready: rates need to drop %.0f more bps.", -diffBPS),
	}
}
