package users

import (
	"context"
	"errors"

	"camphub-backend/internal/middleware"
	"camphub-backend/internal/pkg/render"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers bundles the account routes with the service and the session store.
type Handlers struct {
	Service *Service
	Rdb     *redis.Client
	Config  middleware.SessionConfig
}

// RegisterForm GET /register
func (h *Handlers) RegisterForm(c *fiber.Ctx) error {
	return render.Page(c, "users/register", nil)
}

// Register POST /register. Creates the account and logs the new user in
// immediately. A rejected registration flashes the reason and returns to the
// form.
func (h *Handlers) Register(c *fiber.Ctx) error {
	user, err := h.Service.Register(c.Context(), RegisterInput{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameRequired),
			errors.Is(err, ErrInvalidEmail),
			errors.Is(err, ErrPasswordRequired),
			errors.Is(err, ErrEmailTaken),
			errors.Is(err, ErrUsernameTaken):
			middleware.AddFlash(c, "error", err.Error())
			return c.Redirect("/register", fiber.StatusFound)
		default:
			return err
		}
	}

	h.establishSession(c, user.UserID.String(), user.Username, user.Email)
	middleware.AddFlash(c, "success", "Welcome to CampHub!")
	return c.Redirect("/listings", fiber.StatusFound)
}

// LoginForm GET /login
func (h *Handlers) LoginForm(c *fiber.Ctx) error {
	return render.Page(c, "users/login", nil)
}

// Login POST /login. Verifies credentials, starts a fresh session, and
// resumes the originally requested path when one was stored.
func (h *Handlers) Login(c *fiber.Ctx) error {
	user, err := h.Service.Authenticate(c.Context(), c.FormValue("username"), c.FormValue("password"))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			middleware.AddFlash(c, "error", err.Error())
			return c.Redirect("/login", fiber.StatusFound)
		}
		return err
	}

	redirectTo := middleware.PopReturnTo(c)
	if redirectTo == "" {
		redirectTo = "/listings"
	}
	h.establishSession(c, user.UserID.String(), user.Username, user.Email)
	middleware.AddFlash(c, "success", "Welcome back!")
	return c.Redirect(redirectTo, fiber.StatusFound)
}

// Logout POST /logout. Drops the server-side session and its cookie.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	if sid := middleware.GetSessionID(c); sid != "" && h.Rdb != nil {
		h.Rdb.Del(context.Background(), middleware.SessionRedisPrefix+sid)
	}
	middleware.DestroySession(c)

	// A fresh anonymous session carries the goodbye notice across the redirect.
	sid := middleware.RegenerateSessionID(c)
	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = "s:" + sid
	c.Cookie(&cookie)

	middleware.AddFlash(c, "success", "Goodbye!")
	return c.Redirect("/listings", fiber.StatusFound)
}

// establishSession regenerates the session id, binds the user to it, and sets
// the cookie. Regeneration keeps a pre-login session id from surviving login.
func (h *Handlers) establishSession(c *fiber.Ctx, userID, username, email string) {
	sid := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:   userID,
		Username: username,
		Email:    email,
	})
	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = "s:" + sid
	c.Cookie(&cookie)
}
