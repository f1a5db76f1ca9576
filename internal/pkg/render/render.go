package render

import (
	"camphub-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Page renders a view with the session user and the popped one-shot notices
// injected into the bind, so every template sees the same baseline keys.
func Page(c *fiber.Ctx, name string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}
	bind["currentUser"] = middleware.CurrentUser(c)
	bind["success"] = middleware.PopFlash(c, "success")
	bind["error"] = middleware.PopFlash(c, "error")
	return c.Render(name, bind)
}
