package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the global error handler. A *fiber.Error carries its declared
// status and message; anything else becomes a 500 with generic text so internal
// detail never reaches the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Oh No, Something Went Wrong!"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	} else {
		log.Error().Err(err).Str("trace_id", GetTraceID(c)).Str("path", c.Path()).Msg("unhandled error")
	}

	if renderErr := c.Status(code).Render("error", fiber.Map{
		"statusCode":  code,
		"message":     message,
		"currentUser": CurrentUser(c),
	}); renderErr != nil {
		return c.Status(code).SendString(message)
	}
	return nil
}
