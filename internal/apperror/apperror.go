package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind identifies a stable error category that API clients can branch on.
type Kind string

const (
	KindDuplicateApplication       Kind = "duplicate_application"
	KindInvalidTransition          Kind = "invalid_transition"
	KindApplicationNotFound        Kind = "application_not_found"
	KindInterviewNotFound          Kind = "interview_not_found"
	KindJobNotFound                Kind = "job_not_found"
	KindUnknownQuestion            Kind = "unknown_question"
	KindDuplicateAnswer            Kind = "duplicate_answer"
	KindInterviewAlreadyCompleted  Kind = "interview_already_completed"
	KindEvaluationFailed           Kind = "evaluation_failed"
	KindNotAuthorized              Kind = "not_authorized"
	KindInternal                   Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Is lets errors.Is match on kind so callers can branch without unwrapping.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// Message returns the client-facing message of err, without the wrapped
// cause chain.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

// KindOf extracts the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error kind to the response status used by the handlers.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindDuplicateApplication, KindDuplicateAnswer, KindInterviewAlreadyCompleted:
		return fiber.StatusConflict
	case KindInvalidTransition, KindUnknownQuestion:
		return fiber.StatusUnprocessableEntity
	case KindApplicationNotFound, KindInterviewNotFound, KindJobNotFound:
		return fiber.StatusNotFound
	case KindNotAuthorized:
		return fiber.StatusForbidden
	case KindEvaluationFailed:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// Retryable reports whether the caller may retry the same request.
// Evaluation failures are the only retryable kind; everything else is a
// state conflict that retrying cannot fix.
func Retryable(err error) bool {
	return KindOf(err) == KindEvaluationFailed
}
