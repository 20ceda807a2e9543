package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/coursecatalog-backend/internal/domain/aggregates"
	"github.com/yungbote/coursecatalog-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
)

// StatusFor maps a domain error code to its HTTP status.
func StatusFor(code domainagg.ErrorCode) int {
	switch code {
	case domainagg.CodeNotFound:
		return http.StatusNotFound
	case domainagg.CodeConflict:
		return http.StatusConflict
	case domainagg.CodeInvalidOperation:
		return http.StatusUnprocessableEntity
	case domainagg.CodeInvalidInput:
		return http.StatusBadRequest
	case domainagg.CodePreconditionFailed:
		return http.StatusPreconditionFailed
	case domainagg.CodeRetryable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError writes err using its domain code. Server errors are logged
// and their detail is not echoed to the client.
func RespondDomainError(c *gin.Context, log *logger.Logger, err error) {
	code := domainagg.CodeOf(err)
	if code == "" {
		code = domainagg.CodeInternal
	}
	status := StatusFor(code)
	msg := domainagg.MessageOf(err)
	if status >= http.StatusInternalServerError {
		if log != nil {
			fields := append([]interface{}{"path", c.FullPath(), "code", string(code), "error", err}, ctxutil.LogFields(c.Request.Context())...)
			log.Error("request failed", fields...)
		}
		if status == http.StatusInternalServerError {
			msg = "internal error"
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    string(code),
		},
	})
}
