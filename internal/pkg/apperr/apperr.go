package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies a business error so handlers can map it to an HTTP status
// without inspecting message strings.
type Kind int

const (
	// KindValidation: malformed or missing input, rejected before any mutation.
	KindValidation Kind = iota
	// KindNotFound: a referenced record does not resolve.
	KindNotFound
	// KindConflict: well-formed input inconsistent with current state
	// (capacity exceeded, duplicate pending request).
	KindConflict
	// KindState: an illegal status transition (e.g. approving a decided request).
	KindState
	// KindInternal: everything else.
	KindInternal
)

// Error is a classified business error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Statef(format string, args ...interface{}) *Error {
	return &Error{Kind: KindState, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

// StatusCode maps an error to the HTTP status the standard error envelope uses.
func StatusCode(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		switch ae.Kind {
		case KindValidation:
			return fiber.StatusBadRequest
		case KindNotFound:
			return fiber.StatusNotFound
		case KindConflict:
			return fiber.StatusConflict
		case KindState:
			return fiber.StatusUnprocessableEntity
		}
	}
	return fiber.StatusInternalServerError
}
