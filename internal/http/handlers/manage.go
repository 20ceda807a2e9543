package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/coursecatalog-backend/internal/http/response"
	"github.com/yungbote/coursecatalog-backend/internal/modules/catalog"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
)

// ManageHandler serves the staff routes under /api/manage.
type ManageHandler struct {
	log      *logger.Logger
	usecases catalog.Usecases
}

func NewManageHandler(log *logger.Logger, usecases catalog.Usecases) *ManageHandler {
	return &ManageHandler{
		log:      log.With("handler", "ManageHandler"),
		usecases: usecases,
	}
}

type createSuggestionRequest struct {
	CourseID uuid.UUID `json:"course_id" binding:"required"`
	Order    int       `json:"order"`
}

type categoryNameRequest struct {
	Name string `json:"name" binding:"required"`
}

type attachCourseRequest struct {
	CourseID uuid.UUID `json:"course_id" binding:"required"`
}

type createQuizRequest struct {
	Title string `json:"title" binding:"required"`
}

// ---- suggestions ----

func (h *ManageHandler) ListSuggestions(c *gin.Context) {
	out, err := h.usecases.ListSuggestedCourses(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"items": out})
}

func (h *ManageHandler) ListAvailableForSuggestion(c *gin.Context) {
	out, err := h.usecases.ListAvailableForSuggestion(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"courses": out})
}

func (h *ManageHandler) CreateSuggestion(c *gin.Context) {
	var req createSuggestionRequest
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.usecases.CreateSuggestion(c.Request.Context(), req.CourseID, req.Order)
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondCreated(c, row)
}

func (h *ManageHandler) RemoveSuggestion(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.usecases.RemoveSuggestion(c.Request.Context(), id); err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- categories ----

func (h *ManageHandler) CreateCategory(c *gin.Context) {
	var req catalog.CreateCategoryInput
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.usecases.CreateCategory(c.Request.Context(), req)
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondCreated(c, row)
}

func (h *ManageHandler) UpdateCategory(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req categoryNameRequest
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.usecases.UpdateCategory(c.Request.Context(), id, req.Name)
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, row)
}

func (h *ManageHandler) DeleteCategory(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.usecases.DeleteCategory(c.Request.Context(), id); err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ManageHandler) CategoryCourses(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	out, err := h.usecases.CoursesInCategory(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"courses": out})
}

func (h *ManageHandler) CategoryAvailableCourses(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	out, err := h.usecases.CoursesNotInCategory(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"courses": out})
}

func (h *ManageHandler) AttachCourse(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req attachCourseRequest
	if !bindJSON(c, &req) {
		return
	}
	attached, err := h.usecases.AttachCategory(c.Request.Context(), id, req.CourseID)
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"attached": attached})
}

func (h *ManageHandler) DetachCourse(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	detailID, ok := uuidParam(c, "detail_id")
	if !ok {
		return
	}
	removed, err := h.usecases.DetachCategory(c.Request.Context(), id, detailID)
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"removed": removed})
}

// ---- authoring ----

func (h *ManageHandler) CreateCourse(c *gin.Context) {
	var req catalog.CreateCourseInput
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.usecases.CreateCourse(c.Request.Context(), req)
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondCreated(c, row)
}

func (h *ManageHandler) PutCourseDetail(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req catalog.CourseDetailInput
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.usecases.UpsertCourseDetail(c.Request.Context(), id, req)
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, row)
}

func (h *ManageHandler) CreateModule(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req catalog.CreateModuleInput
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.usecases.CreateModule(c.Request.Context(), id, req)
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondCreated(c, row)
}

func (h *ManageHandler) CreateQuiz(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req createQuizRequest
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.usecases.CreateQuiz(c.Request.Context(), id, req.Title)
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondCreated(c, row)
}

func (h *ManageHandler) CreateQuestion(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req catalog.CreateQuestionInput
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.usecases.CreateQuestion(c.Request.Context(), id, req)
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondCreated(c, row)
}
