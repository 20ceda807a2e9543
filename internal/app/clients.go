package app

import (
	"fmt"

	"github.com/yungbote/coursecatalog-backend/internal/clients/redis"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
)

type Clients struct {
	// ListingCache is nil when REDIS_ADDR is unset.
	ListingCache *redis.ListingCache
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set; listing cache disabled")
		return Clients{}, nil
	}
	cache, err := redis.NewListingCache(log, cfg.RedisAddr)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis listing cache: %w", err)
	}
	return Clients{ListingCache: cache}, nil
}

func (c Clients) Close() {
	if c.ListingCache != nil {
		_ = c.ListingCache.Close()
	}
}
