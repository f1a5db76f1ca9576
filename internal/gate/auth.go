package gate

import (
	"strings"

	"camphub-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RequireLogin ensures the session resolves to a live user. Otherwise it
// stores the requested path for post-login resumption and redirects to the
// login form. A nested reviews sub-path is stripped from the stored path:
// after login the user lands on the parent listing, not on an action URL that
// would 404.
func RequireLogin(c *fiber.Ctx) Outcome {
	if middleware.CurrentUser(c) != nil {
		return Continue()
	}
	returnTo := c.OriginalURL()
	if i := strings.Index(returnTo, "/reviews"); i != -1 {
		returnTo = returnTo[:i]
	}
	middleware.SetReturnTo(c, returnTo)
	return Redirect("/login", "error", "You must be signed in first!")
}
