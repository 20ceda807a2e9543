package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/coursecatalog-backend/internal/http/response"
	"github.com/yungbote/coursecatalog-backend/internal/modules/catalog"
	"github.com/yungbote/coursecatalog-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
	"github.com/yungbote/coursecatalog-backend/internal/platform/pagination"
)

// CatalogHandler serves the public browsing routes.
type CatalogHandler struct {
	log      *logger.Logger
	usecases catalog.Usecases
}

func NewCatalogHandler(log *logger.Logger, usecases catalog.Usecases) *CatalogHandler {
	return &CatalogHandler{
		log:      log.With("handler", "CatalogHandler"),
		usecases: usecases,
	}
}

// ListCourses: GET /api/courses?page=N
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))
	out, err := h.usecases.ListRegularCourses(c.Request.Context(), page)
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, out)
}

// ListSuggested: GET /api/courses/suggested
func (h *CatalogHandler) ListSuggested(c *gin.Context) {
	out, err := h.usecases.ListSuggestedCourses(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"items": out})
}

// GetCourse: GET /api/courses/:slug. Anonymous callers get the overview with
// the enrollment and wishlist flags unset.
func (h *CatalogHandler) GetCourse(c *gin.Context) {
	ctx := c.Request.Context()
	out, err := h.usecases.GetCourseOverview(ctx, ctxutil.UserID(ctx), c.Param("slug"))
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, out)
}

// ListModules: GET /api/courses/:slug/modules
func (h *CatalogHandler) ListModules(c *gin.Context) {
	out, err := h.usecases.ListModules(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"modules": out})
}

// ListCategories: GET /api/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	out, err := h.usecases.ListCategories(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"categories": out})
}

// ListCategoryCourses: GET /api/categories/:slug/courses?page=N
func (h *CatalogHandler) ListCategoryCourses(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))
	out, err := h.usecases.ListCoursesByCategory(c.Request.Context(), c.Param("slug"), page)
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, out)
}
