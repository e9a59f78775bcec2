package store

import (
	"context"
	"sync"

	"refi_engine/pkg/models"
)

// MockDecisionCache is an in-memory DecisionCache for tests and for running
// without Redis.
type MockDecisionCache struct {
	mu   sync.RWMutex
	data map[string]*models.Decision
}

// NewMockDecisionCache creates an empty in-memory cache.
func NewMockDecisionCache() *MockDecisionCache {
	return &MockDecisionCache{
		data: make(map[string]*models.Decision),
	}
}

func (m *MockDecisionCache) Get(ctx context.Context, clientID string) (*models.Decision, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.data[clientID]
	return d, ok
}

func (m *MockDecisionCache) Set(ctx context.Context, clientID string, d *models.Decision) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[clientID] = d
	return nil
}

// Len reports how many decisions are cached.
func (m *MockDecisionCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
