package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"peacemaker/internal/model"

	"github.com/redis/go-redis/v9"
)

// ResultCache handles Redis operations for finished analyses
type ResultCache interface {
	Get(ctx context.Context, scaleName, topic, text string) (*model.Analysis, error)
	Set(ctx context.Context, analysis *model.Analysis) error
}

type resultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache creates a new result cache
func NewResultCache(client *redis.Client, ttl time.Duration) ResultCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &resultCache{
		client: client,
		ttl:    ttl,
	}
}

// Key identifies an analysis by its inputs; the text itself never appears in the key
func Key(scaleName, topic, text string) string {
	sum := sha256.Sum256([]byte(scaleName + "\x00" + topic + "\x00" + text))
	return fmt.Sprintf("analysis:%s:%s", scaleName, hex.EncodeToString(sum[:]))
}

func (c *resultCache) Get(ctx context.Context, scaleName, topic, text string) (*model.Analysis, error) {
	data, err := c.client.Get(ctx, Key(scaleName, topic, text)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var analysis model.Analysis
	if err := json.Unmarshal([]byte(data), &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// Degraded results are not cached so a later request can get a real score
func (c *resultCache) Set(ctx context.Context, analysis *model.Analysis) error {
	if analysis.Degraded {
		return nil
	}
	data, err := json.Marshal(analysis)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, Key(analysis.Scale, analysis.Topic, analysis.Text), data, c.ttl).Err()
}
