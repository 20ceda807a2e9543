package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
)

const defaultVersionKey = "catalog:version"

// ListingCache is a read-through cache for rendered catalog listings. Every key
// is namespaced by a version counter, so Bump invalidates all pages with one INCR.
type ListingCache struct {
	log        *logger.Logger
	rdb        *goredis.Client
	versionKey string
}

// NewListingCache connects to addr and verifies the connection with a ping.
func NewListingCache(log *logger.Logger, addr string) (*ListingCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newListingCache(log, rdb, defaultVersionKey), nil
}

func newListingCache(log *logger.Logger, rdb *goredis.Client, versionKey string) *ListingCache {
	return &ListingCache{
		log:        log.With("service", "RedisListingCache"),
		rdb:        rdb,
		versionKey: versionKey,
	}
}

// Version reads the current namespace counter. An unset counter is version 0;
// a read failure reports false so the caller bypasses the cache.
func (c *ListingCache) Version(ctx context.Context) (int64, bool) {
	if c == nil || c.rdb == nil {
		return 0, false
	}
	raw, err := c.rdb.Get(ctx, c.versionKey).Result()
	if errors.Is(err, goredis.Nil) {
		return 0, true
	}
	if err == nil {
		var v int64
		if v, err = strconv.ParseInt(raw, 10, 64); err == nil {
			return v, true
		}
	}
	c.log.Warn("listing cache version read failed", "error", err)
	return 0, false
}

func (c *ListingCache) entryKey(version int64, key string) string {
	return fmt.Sprintf("catalog:v%d:%s", version, key)
}

func (c *ListingCache) Get(ctx context.Context, version int64, key string) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, c.entryKey(version, key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn("listing cache get failed", "key", key, "error", err)
		return nil, false
	}
	return raw, true
}

// Set stores val under the version the caller read at, even if a Bump has
// happened since. Entries under a stale version are never read again.
func (c *ListingCache) Set(ctx context.Context, version int64, key string, val []byte, ttl time.Duration) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, c.entryKey(version, key), val, ttl).Err(); err != nil {
		c.log.Warn("listing cache set failed", "key", key, "error", err)
	}
}

// Bump moves every reader to a fresh namespace. Old entries expire on their TTL.
func (c *ListingCache) Bump(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Incr(ctx, c.versionKey).Err(); err != nil {
		c.log.Warn("listing cache bump failed", "error", err)
	}
}

func (c *ListingCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
