package catalog

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/coursecatalog-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/coursecatalog-backend/internal/domain/aggregates"
)

// memCache is an in-process ListingCache with the same versioned namespace as
// the Redis cache.
type memCache struct {
	mu      sync.Mutex
	version int64
	data    map[string][]byte
	hits    int
	bumps   int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func memKey(version int64, key string) string {
	return strconv.FormatInt(version, 10) + "|" + key
}

func (c *memCache) Version(context.Context) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version, true
}

func (c *memCache) Get(_ context.Context, version int64, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[memKey(version, key)]
	if ok {
		c.hits++
	}
	return v, ok
}

func (c *memCache) Set(_ context.Context, version int64, key string, val []byte, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[memKey(version, key)] = val
}

func (c *memCache) Bump(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	c.bumps++
}

func (c *memCache) entries() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

func newTestUsecases(t *testing.T) (Usecases, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	return NewFromDB(db, testutil.Logger(t), Options{}), db
}

func newCachedUsecases(t *testing.T) (Usecases, *gorm.DB, *memCache) {
	t.Helper()
	db := testutil.DB(t)
	cache := newMemCache()
	return NewFromDB(db, testutil.Logger(t), Options{Cache: cache}), db, cache
}

func requireCode(t *testing.T, err error, code domainagg.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, domainagg.CodeOf(err), "error: %v", err)
}
