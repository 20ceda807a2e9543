package aggregates

import (
	"errors"
	"strings"
)

// ErrorCode classifies a failure independently of where it happened. The HTTP
// layer maps each code to one status.
type ErrorCode string

const (
	CodeNotFound           ErrorCode = "not_found"
	CodeConflict           ErrorCode = "conflict"
	CodeInvalidOperation   ErrorCode = "invalid_operation"
	CodeInvalidInput       ErrorCode = "invalid_input"
	CodePreconditionFailed ErrorCode = "precondition_failed"
	CodeRetryable          ErrorCode = "retryable"
	CodeInternal           ErrorCode = "internal"
)

// Error carries a code, the operation that failed and a caller-facing message.
// Message is safe to return to clients; Cause is not.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

// Error renders "op: message (code)", dropping whichever parts are empty.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	head := strings.TrimSpace(e.Op)
	if msg := strings.TrimSpace(e.Message); msg != "" {
		if head != "" {
			head += ": "
		}
		head += msg
	}
	if head == "" {
		return string(e.Code)
	}
	return head + " (" + string(e.Code) + ")"
}

func (e *Error) Unwrap() error { return e.Cause }

func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{Code: code, Op: strings.TrimSpace(op), Message: strings.TrimSpace(message), Cause: cause}
}

// Wrap classifies err under code, reusing its text as the message.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

func NotFound(op, message string) error         { return NewError(CodeNotFound, op, message, nil) }
func Conflict(op, message string) error         { return NewError(CodeConflict, op, message, nil) }
func InvalidInput(op, message string) error     { return NewError(CodeInvalidInput, op, message, nil) }
func InvalidOperation(op, message string) error { return NewError(CodeInvalidOperation, op, message, nil) }

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code && code != "" }

// CodeOf returns the code of the outermost *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

func MessageOf(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return ""
}
