package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"refi_engine/pkg/core/params"
	"refi_engine/pkg/core/pricing"
)

// Setting keys. Pricing grids are stored as raw grid text per loan type so
// the lenient parser sees exactly what the admin typed.
const (
	settingDefaults         = "model_defaults"
	settingGridConventional = "pricing_grid_conventional"
	settingGridFHA          = "pricing_grid_fha"
)

// SettingsRepo stores admin settings as one JSONB value per key.
//
// Schema assumption (managed outside this package):
//
//	CREATE TABLE IF NOT EXISTS admin_settings (
//	  key TEXT PRIMARY KEY,
//	  value JSONB,
//	  updated_at TIMESTAMPTZ
//	);
type SettingsRepo struct{}

// NewSettingsRepo creates a new repository instance.
func NewSettingsRepo() *SettingsRepo {
	return &SettingsRepo{}
}

func (r *SettingsRepo) set(ctx context.Context, key string, value interface{}) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal setting %s: %w", key, err)
	}

	query := `
		INSERT INTO admin_settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key)
		DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := pool.Exec(ctx, query, key, jsonData, time.Now()); err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}

func (r *SettingsRepo) get(ctx context.Context, key string, out interface{}) (bool, error) {
	pool := GetPool()
	if pool == nil {
		return false, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx, `SELECT value FROM admin_settings WHERE key = $1`, key).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to load setting %s: %w", key, err)
	}
	if err := json.Unmarshal(jsonData, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal setting %s: %w", key, err)
	}
	return true, nil
}

// SaveDefaults persists the admin parameter defaults.
func (r *SettingsRepo) SaveDefaults(ctx context.Context, d params.Defaults) error {
	return r.set(ctx, settingDefaults, d)
}

// LoadDefaults returns the stored defaults, or fallback when none were
// ever saved.
func (r *SettingsRepo) LoadDefaults(ctx context.Context, fallback params.Defaults) (params.Defaults, error) {
	d := fallback
	if _, err := r.get(ctx, settingDefaults, &d); err != nil {
		return fallback, err
	}
	return d, nil
}

func gridKey(loanType pricing.LoanType) string {
	if loanType == pricing.LoanFHA {
		return settingGridFHA
	}
	return settingGridConventional
}

// SaveGridText stores the raw pricing-grid text for a loan type.
func (r *SettingsRepo) SaveGridText(ctx context.Context, loanType pricing.LoanType, text string) error {
	return r.set(ctx, gridKey(loanType), text)
}

// LoadGrid parses the stored grid text for a loan type. A never-saved or
// malformed grid comes back empty, not as an error.
func (r *SettingsRepo) LoadGrid(ctx context.Context, loanType pricing.LoanType) (pricing.PricingGrid, error) {
	var text string
	found, err := r.get(ctx, gridKey(loanType), &text)
	if err != nil {
		return pricing.PricingGrid{}, err
	}
	if !found {
		return pricing.PricingGrid{}, nil
	}
	return pricing.ParseGrid([]byte(text)), nil
}
