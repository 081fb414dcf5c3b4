package snhingestor

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// HotCache keeps the latest value of each sensor in Redis so dashboards
// can poll without touching Postgres. It is strictly best-effort: a nil
// cache or a Redis failure never affects the pipeline.
type HotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewHotCache wraps a Redis client. ttl bounds how long a dead sensor's
// value lingers.
func NewHotCache(client *redis.Client, ttl time.Duration) *HotCache {
	return &HotCache{client: client, ttl: ttl}
}

func sensorKey(sensorID int64) string {
	return fmt.Sprintf("sensor:last:%d", sensorID)
}

// SetLatest stores the latest value for a sensor
func (c *HotCache) SetLatest(ctx context.Context, sensorID int64, value float64) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, sensorKey(sensorID), value, c.ttl).Err()
}

// GetLatest returns the cached latest value for a sensor, if present
func (c *HotCache) GetLatest(ctx context.Context, sensorID int64) (float64, bool, error) {
	if c == nil || c.client == nil {
		return 0, false, nil
	}
	value, err := c.client.Get(ctx, sensorKey(sensorID)).Float64()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}
