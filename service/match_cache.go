package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"ui-design-gallery/models"
)

const matchCachePrefix = "codematch:"

// RedisMatchCache keeps saved code matches in Redis as JSON
type RedisMatchCache struct {
	rdb *redis.Client
}

// NewRedisMatchCache creates a new RedisMatchCache
func NewRedisMatchCache(rdb *redis.Client) *RedisMatchCache {
	return &RedisMatchCache{rdb: rdb}
}

var _ MatchCache = (*RedisMatchCache)(nil)

// Get returns the cached match for hash. Misses and Redis errors both report false.
func (c *RedisMatchCache) Get(ctx context.Context, hash string) (*models.CodeMatch, bool) {
	data, err := c.rdb.Get(ctx, matchCachePrefix+hash).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("⚠️  Redis GET failed for code match %s: %v", hash, err)
		}
		return nil, false
	}

	var match models.CodeMatch
	if err := json.Unmarshal(data, &match); err != nil {
		log.Printf("⚠️  Discarding corrupt cached code match %s: %v", hash, err)
		return nil, false
	}
	return &match, true
}

// Set caches match under its hash for ttl
func (c *RedisMatchCache) Set(ctx context.Context, match *models.CodeMatch, ttl time.Duration) {
	data, err := json.Marshal(match)
	if err != nil {
		log.Printf("⚠️  Could not encode code match %s: %v", match.Hash, err)
		return
	}
	if err := c.rdb.Set(ctx, matchCachePrefix+match.Hash, data, ttl).Err(); err != nil {
		log.Printf("⚠️  Redis SET failed for code match %s: %v", match.Hash, err)
	}
}
