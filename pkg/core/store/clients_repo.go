package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"refi_engine/pkg/models"
)

// ClientsRepo stores client records as a single JSONB blob per client.
// Searchable identity columns are duplicated out of the blob; everything
// else lives in record_json.
//
// Schema assumption (managed outside this package):
//
//	CREATE TABLE IF NOT EXISTS clients (
//	  id UUID PRIMARY KEY,
//	  first_name TEXT,
//	  last_name TEXT,
//	  record_json JSONB,
//	  updated_at TIMESTAMPTZ
//	);
type ClientsRepo struct{}

// NewClientsRepo creates a new repository instance.
func NewClientsRepo() *ClientsRepo {
	return &ClientsRepo{}
}

// Save upserts a client record. A record without an ID gets one assigned.
func (r *ClientsRepo) Save(ctx context.Context, rec *models.ClientRecord) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
		rec.CreatedAt = time.Now()
	}
	rec.UpdatedAt = time.Now()

	jsonData, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal client record: %w", err)
	}

	query := `
		INSERT INTO clients (id, first_name, last_name, record_json, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			record_json = EXCLUDED.record_json,
			updated_at = EXCLUDED.updated_at;
	`

	_, err = pool.Exec(ctx, query, rec.ID, rec.FirstName, rec.LastName, jsonData, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

// Load retrieves one client by ID.
func (r *ClientsRepo) Load(ctx context.Context, id string) (*models.ClientRecord, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx, `SELECT record_json FROM clients WHERE id = $1`, id).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no client found for id %s", id)
		}
		return nil, fmt.Errorf("failed to load client: %w", err)
	}

	var rec models.ClientRecord
	if err := json.Unmarshal(jsonData, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal client record: %w", err)
	}
	return &rec, nil
}

// List returns all client records, most recently updated first.
func (r *ClientsRepo) List(ctx context.Context) ([]*models.ClientRecord, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx, `SELECT record_json FROM clients ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var records []*models.ClientRecord
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		var rec models.ClientRecord
		if err := json.Unmarshal(jsonData, &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal client record: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
