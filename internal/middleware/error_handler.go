package middleware

import (
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/apperr"
	"github.com/cdy-agency/api-sky-solutions/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the global error handler. Returns the standard error format.
// Classified service errors (apperr) keep their taxonomy status; fiber errors
// keep their code; anything else is a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	} else if e, ok := err.(*apperr.Error); ok {
		code = apperr.StatusCode(e)
		message = e.Message
	}

	return response.Error(c, message, code, nil)
}
