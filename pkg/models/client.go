package models

import (
	"math"
	"time"

	"refi_engine/pkg/core/params"
	"refi_engine/pkg/core/threshold"
)

// ClientRecord is the unit of work for the whole system: one borrower, their
// loan, any per-client parameter overrides, and the latest decision computed
// for them.
type ClientRecord struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`

	Loan      params.LoanProfile `json:"loan"`
	Overrides params.Overrides   `json:"overrides"`

	Decision *Decision `json:"decision,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Decision is the persisted outcome of a calculation run. Numeric fields are
// pointers because JSON has no NaN: null marks a value the run could not
// produce.
type Decision struct {
	Status         threshold.ReadinessStatus `json:"status"`
	IsReady        bool                      `json:"is_ready"`
	OptimalDropBPS *float64                  `json:"optimal_drop_bps"`
	TriggerRate    *float64                  `json:"trigger_rate"`
	AvailableRate  *float64                  `json:"available_rate"`
	Difference     *float64                  `json:"difference"`
	Message        string                    `json:"message,omitempty"`
	BatchID        string                    `json:"batch_id,omitempty"`
	CheckedAt      time.Time                 `json:"checked_at"`
}

// NullIfNaN converts a computed value to its JSON-safe form.
func NullIfNaN(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// OrNaN is the inverse of NullIfNaN for code that wants the numeric
// convention back.
func OrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
