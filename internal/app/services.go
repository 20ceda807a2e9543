package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/coursecatalog-backend/internal/modules/catalog"
	"github.com/yungbote/coursecatalog-backend/internal/observability"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
	"github.com/yungbote/coursecatalog-backend/internal/services"
)

type Services struct {
	Auth    services.AuthService
	Catalog catalog.Usecases
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	var cache catalog.ListingCache
	if clients.ListingCache != nil {
		cache = clients.ListingCache
	}

	return Services{
		Auth: services.NewAuthService(log, cfg.JWTSecretKey, cfg.JWTIssuer, cfg.AccessTTL),
		Catalog: catalog.NewFromRepos(db, log, reposet, catalog.Options{
			Cache:    cache,
			Metrics:  metrics,
			PageSize: cfg.CatalogPage,
			CacheTTL: cfg.CacheTTL,
		}),
	}
}
