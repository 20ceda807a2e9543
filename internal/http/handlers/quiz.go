package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/coursecatalog-backend/internal/http/response"
	"github.com/yungbote/coursecatalog-backend/internal/modules/catalog"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
)

type QuizHandler struct {
	log      *logger.Logger
	usecases catalog.Usecases
}

func NewQuizHandler(log *logger.Logger, usecases catalog.Usecases) *QuizHandler {
	return &QuizHandler{
		log:      log.With("handler", "QuizHandler"),
		usecases: usecases,
	}
}

// GradeRequest maps question ids to the selected option id. null or a missing
// key leaves the question blank.
type GradeRequest struct {
	Answers map[string]*string `json:"answers"`
}

func (r GradeRequest) parse() (map[uuid.UUID]*uuid.UUID, error) {
	out := make(map[uuid.UUID]*uuid.UUID, len(r.Answers))
	for rawQ, rawO := range r.Answers {
		qid, err := uuid.Parse(rawQ)
		if err != nil {
			return nil, fmt.Errorf("answer key %q is not a question id", rawQ)
		}
		if rawO == nil || *rawO == "" {
			out[qid] = nil
			continue
		}
		oid, err := uuid.Parse(*rawO)
		if err != nil {
			return nil, fmt.Errorf("answer for %s is not an option id", rawQ)
		}
		out[qid] = &oid
	}
	return out, nil
}

// GetQuiz: GET /api/quizzes/:id. Correct flags are never serialised.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	quiz, err := h.usecases.GetQuiz(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, quiz)
}

// Grade: POST /api/quizzes/:id/grade
func (h *QuizHandler) Grade(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req GradeRequest
	if !bindJSON(c, &req) {
		return
	}
	answers, err := req.parse()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	}
	res, err := h.usecases.GradeQuiz(c.Request.Context(), id, answers)
	if err != nil {
		response.RespondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, res)
}
