package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/coursecatalog-backend/internal/http"
	httpH "github.com/yungbote/coursecatalog-backend/internal/http/handlers"
	httpMW "github.com/yungbote/coursecatalog-backend/internal/http/middleware"
	"github.com/yungbote/coursecatalog-backend/internal/observability"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health     *httpH.HealthHandler
	Catalog    *httpH.CatalogHandler
	Enrollment *httpH.EnrollmentHandler
	Wishlist   *httpH.WishlistHandler
	Quiz       *httpH.QuizHandler
	Manage     *httpH.ManageHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(db),
		Catalog:    httpH.NewCatalogHandler(log, services.Catalog),
		Enrollment: httpH.NewEnrollmentHandler(log, services.Catalog),
		Wishlist:   httpH.NewWishlistHandler(log, services.Catalog),
		Quiz:       httpH.NewQuizHandler(log, services.Catalog),
		Manage:     httpH.NewManageHandler(log, services.Catalog),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		AllowedOrigins:    cfg.CORSOrigins,
		AuthMiddleware:    middleware.Auth,
		HealthHandler:     handlers.Health,
		CatalogHandler:    handlers.Catalog,
		EnrollmentHandler: handlers.Enrollment,
		WishlistHandler:   handlers.Wishlist,
		QuizHandler:       handlers.Quiz,
		ManageHandler:     handlers.Manage,
	})
}
