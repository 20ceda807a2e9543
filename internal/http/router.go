package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/coursecatalog-backend/internal/http/handlers"
	httpMW "github.com/yungbote/coursecatalog-backend/internal/http/middleware"
	"github.com/yungbote/coursecatalog-backend/internal/observability"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	AllowedOrigins []string
	ServiceName    string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler     *httpH.HealthHandler
	CatalogHandler    *httpH.CatalogHandler
	EnrollmentHandler *httpH.EnrollmentHandler
	WishlistHandler   *httpH.WishlistHandler
	QuizHandler       *httpH.QuizHandler
	ManageHandler     *httpH.ManageHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = observability.DefaultServiceName
	}
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")

	// Public browsing. Course pages pick up the caller when a token is sent.
	if cfg.CatalogHandler != nil {
		api.GET("/courses", cfg.CatalogHandler.ListCourses)
		api.GET("/courses/suggested", cfg.CatalogHandler.ListSuggested)
		if cfg.AuthMiddleware != nil {
			api.GET("/courses/:slug", cfg.AuthMiddleware.OptionalAuth(), cfg.CatalogHandler.GetCourse)
		} else {
			api.GET("/courses/:slug", cfg.CatalogHandler.GetCourse)
		}
		api.GET("/courses/:slug/modules", cfg.CatalogHandler.ListModules)
		api.GET("/categories", cfg.CatalogHandler.ListCategories)
		api.GET("/categories/:slug/courses", cfg.CatalogHandler.ListCategoryCourses)
	}

	// Quizzes
	if cfg.QuizHandler != nil {
		api.GET("/quizzes/:id", cfg.QuizHandler.GetQuiz)
		api.POST("/quizzes/:id/grade", cfg.QuizHandler.Grade)
	}

	if cfg.AuthMiddleware == nil {
		return r
	}

	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		// Enrollment
		if cfg.EnrollmentHandler != nil {
			protected.POST("/courses/:slug/enroll", cfg.EnrollmentHandler.Enroll)
			protected.POST("/courses/:slug/toggle", cfg.EnrollmentHandler.Toggle)
			protected.POST("/courses/:slug/unenroll", cfg.EnrollmentHandler.Unenroll)
			protected.GET("/me/enrollments", cfg.EnrollmentHandler.ListActive)
		}

		// Wishlist
		if cfg.WishlistHandler != nil {
			protected.POST("/courses/:slug/wishlist", cfg.WishlistHandler.Add)
			protected.DELETE("/courses/:slug/wishlist", cfg.WishlistHandler.Remove)
			protected.GET("/me/wishlist", cfg.WishlistHandler.List)
		}
	}

	manage := protected.Group("/manage")
	manage.Use(cfg.AuthMiddleware.RequireStaff())
	if h := cfg.ManageHandler; h != nil {
		manage.GET("/suggestions", h.ListSuggestions)
		manage.GET("/suggestions/available", h.ListAvailableForSuggestion)
		manage.POST("/suggestions", h.CreateSuggestion)
		manage.DELETE("/suggestions/:id", h.RemoveSuggestion)

		manage.POST("/categories", h.CreateCategory)
		manage.PATCH("/categories/:id", h.UpdateCategory)
		manage.DELETE("/categories/:id", h.DeleteCategory)
		manage.GET("/categories/:id/courses", h.CategoryCourses)
		manage.GET("/categories/:id/courses/available", h.CategoryAvailableCourses)
		manage.POST("/categories/:id/courses", h.AttachCourse)
		manage.DELETE("/categories/:id/courses/:detail_id", h.DetachCourse)

		manage.POST("/courses", h.CreateCourse)
		manage.PUT("/courses/:id/detail", h.PutCourseDetail)
		manage.POST("/courses/:id/modules", h.CreateModule)
		manage.POST("/modules/:id/quizzes", h.CreateQuiz)
		manage.POST("/quizzes/:id/questions", h.CreateQuestion)
	}

	return r
}
