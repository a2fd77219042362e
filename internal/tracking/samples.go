package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/config"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
)

// RedisSampleCache keeps the latest location sample per tech so dispatcher
// views can read positions without touching the sample stream.
type RedisSampleCache struct {
	cfg *config.Config
	rdb *redis.Client
}

func NewRedisSampleCache(cfg *config.Config, rdb *redis.Client) *RedisSampleCache {
	return &RedisSampleCache{cfg: cfg, rdb: rdb}
}

func sampleKey(techID int64) string {
	return fmt.Sprintf("latest_location_%d", techID)
}

func (c *RedisSampleCache) SetLatest(ctx context.Context, sample *domain.LocationSample) error {
	body, err := json.Marshal(sample)
	if err != nil {
		return err
	}

	expiration := time.Duration(c.cfg.Redis.SampleExpiration) * time.Second
	return c.rdb.Set(ctx, sampleKey(sample.TechID), body, expiration).Err()
}

func (c *RedisSampleCache) GetLatest(ctx context.Context, techID int64) (*domain.LocationSample, error) {
	body, err := c.rdb.Get(ctx, sampleKey(techID)).Bytes()
	if err != nil {
		return nil, err
	}

	sample := &domain.LocationSample{}
	if err := json.Unmarshal(body, sample); err != nil {
		return nil, err
	}

	return sample, nil
}
