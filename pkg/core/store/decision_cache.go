package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"refi_engine/pkg/models"
)

// DecisionCache holds the latest decision per client for dashboard reads.
// It is written only by an explicit bulk recalculation, never as a side
// effect of an ad-hoc calculation.
type DecisionCache interface {
	Get(ctx context.Context, clientID string) (*models.Decision, bool)
	Set(ctx context.Context, clientID string, d *models.Decision) error
}

func decisionKey(clientID string) string {
	return "decision:" + clientID
}

// RedisDecisionCache backs the cache with Redis. Entries expire after a day;
// a stale decision is worse than a recomputed one.
type RedisDecisionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDecisionCache connects to the given Redis address.
func NewRedisDecisionCache(addr string) *RedisDecisionCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisDecisionCache{
		client: rdb,
		ttl:    24 * time.Hour,
	}
}

func (r *RedisDecisionCache) Get(ctx context.Context, clientID string) (*models.Decision, bool) {
	val, err := r.client.Get(ctx, decisionKey(clientID)).Result()
	if err != nil {
		return nil, false
	}
	var d models.Decision
	if err := json.Unmarshal([]byte(val), &d); err != nil {
		return nil, false
	}
	return &d, true
}

func (r *RedisDecisionCache) Set(ctx context.Context, clientID string, d *models.Decision) error {
	jsonData, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal decision: %w", err)
	}
	return r.client.Set(ctx, decisionKey(clientID), string(jsonData), r.ttl).Err()
}
