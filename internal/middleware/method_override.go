package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// MethodOverride rewrites a POST into the verb named by the "_method" form
// field, so HTML forms can issue PUT and DELETE.
func MethodOverride() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodPost {
			switch m := strings.ToUpper(c.FormValue("_method")); m {
			case fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
				c.Method(m)
			}
		}
		return c.Next()
	}
}
