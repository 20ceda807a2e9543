package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/coursecatalog-backend/internal/domain/aggregates"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
)

func TestStatusFor(t *testing.T) {
	cases := map[domainagg.ErrorCode]int{
		domainagg.CodeNotFound:           http.StatusNotFound,
		domainagg.CodeConflict:           http.StatusConflict,
		domainagg.CodeInvalidOperation:   http.StatusUnprocessableEntity,
		domainagg.CodeInvalidInput:       http.StatusBadRequest,
		domainagg.CodePreconditionFailed: http.StatusPreconditionFailed,
		domainagg.CodeRetryable:          http.StatusServiceUnavailable,
		domainagg.CodeInternal:           http.StatusInternalServerError,
		"":                               http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := StatusFor(code); got != want {
			t.Fatalf("StatusFor(%q) = %d, want %d", code, got, want)
		}
	}
}

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	RespondDomainError(c, logger.Nop(), err)

	var env ErrorEnvelope
	if decErr := json.Unmarshal(rec.Body.Bytes(), &env); decErr != nil {
		t.Fatalf("decode body: %v (%s)", decErr, rec.Body.String())
	}
	return rec, env
}

func TestRespondDomainErrorUsesMessage(t *testing.T) {
	rec, env := respond(t, domainagg.Conflict("Catalog.Category.Create", "category name already exists"))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
	if env.Error.Code != "conflict" || env.Error.Message != "category name already exists" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestRespondDomainErrorHidesInternalDetail(t *testing.T) {
	rec, env := respond(t, errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if env.Error.Code != "internal" || env.Error.Message != "internal error" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}
