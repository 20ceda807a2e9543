package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/coursecatalog-backend/internal/domain"
	"github.com/yungbote/coursecatalog-backend/internal/http/response"
	"github.com/yungbote/coursecatalog-backend/internal/modules/catalog"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
)

type EnrollmentHandler struct {
	log      *logger.Logger
	usecases catalog.Usecases
}

func NewEnrollmentHandler(log *logger.Logger, usecases catalog.Usecases) *EnrollmentHandler {
	return &EnrollmentHandler{
		log:      log.With("handler", "EnrollmentHandler"),
		usecases: usecases,
	}
}

type enrollmentResponse struct {
	Enrollment types.Enrollment `json:"enrollment"`
	Transition string           `json:"transition"`
}

func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	h.apply(c, h.usecases.Enroll)
}

func (h *EnrollmentHandler) Toggle(c *gin.Context) {
	h.apply(c, h.usecases.ToggleEnrollment)
}

func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	h.apply(c, h.usecases.Unenroll)
}

func (h *EnrollmentHandler) apply(c *gin.Context, fn func(ctx context.Context, userID uuid.UUID, courseSlug string) (catalog.EnrollmentResult, error)) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	res, err := fn(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, enrollmentResponse{
		Enrollment: res.Enrollment,
		Transition: string(res.Transition),
	})
}

// ListActive: GET /api/me/enrollments
func (h *EnrollmentHandler) ListActive(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	rows, err := h.usecases.ListActiveEnrollments(c.Request.Context(), userID)
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"enrollments": rows})
}
