package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionConfig for the Redis-backed session; cookie and Redis key format match
// connect-redis so a session store can be inspected the same way.
type SessionConfig struct {
	Secret       string
	IsProduction bool
}

const (
	sessionCookieName  = "camp.sid"
	SessionCookieName  = "camp.sid"
	sessionPrefix      = "session:"
	SessionRedisPrefix = "session:" // exported for logout (Del key)
	sessionMaxAge      = 24 * time.Hour

	sessionDataLocal = "session_data"
	sessionIDLocal   = "session_id"
	userLocal        = "user"
)

// SessionUser is the shape stored in the session under "user".
type SessionUser struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SessionWithClient returns a Fiber middleware that loads/saves session state
// from Redis. Cookie "camp.sid" carries an Express-style "s:<id>" value; Redis
// keys are "session:<id>" with a 24h TTL. A session id is created lazily the
// first time a request leaves data behind (a flash, a return path, or a
// login), so anonymous requests cost no Redis writes. Tests inject miniredis.
func SessionWithClient(cfg SessionConfig, rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(sessionCookieName)
		if strings.HasPrefix(sessionID, "s:") {
			parts := strings.SplitN(sessionID[2:], ".", 2)
			sessionID = parts[0]
		}

		var data map[string]interface{}
		if sessionID != "" {
			b, err := rdb.Get(context.Background(), sessionPrefix+sessionID).Bytes()
			if err == nil {
				_ = json.Unmarshal(b, &data)
			}
		}
		if data == nil {
			data = make(map[string]interface{})
		}

		c.Locals(sessionDataLocal, data)
		if u, ok := data[userLocal]; ok {
			c.Locals(userLocal, u)
		} else {
			c.Locals(userLocal, nil)
		}
		c.Locals(sessionIDLocal, sessionID)

		if err := c.Next(); err != nil {
			return err
		}

		sid, _ := c.Locals(sessionIDLocal).(string)
		updated, _ := c.Locals(sessionDataLocal).(map[string]interface{})
		if sid == "" && len(updated) > 0 {
			// First thing worth remembering about this visitor; start a session.
			sid = uuid.New().String()
			c.Locals(sessionIDLocal, sid)
			cookie := SessionCookieConfig(SessionConfig{IsProduction: cfg.IsProduction})
			cookie.Value = "s:" + sid
			c.Cookie(&cookie)
		}
		if sid != "" && updated != nil {
			b, _ := json.Marshal(updated)
			rdb.Set(context.Background(), sessionPrefix+sid, b, sessionMaxAge)
		}
		return nil
	}
}

// GetSessionID returns the current session ID from context (for login/logout).
func GetSessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(sessionIDLocal).(string)
	return sid
}

func sessionData(c *fiber.Ctx) map[string]interface{} {
	data, _ := c.Locals(sessionDataLocal).(map[string]interface{})
	if data == nil {
		data = make(map[string]interface{})
		c.Locals(sessionDataLocal, data)
	}
	return data
}

// CurrentUser returns the logged-in user for this request, or nil.
func CurrentUser(c *fiber.Ctx) *SessionUser {
	switch u := c.Locals(userLocal).(type) {
	case *SessionUser:
		return u
	case map[string]interface{}:
		id, _ := u["user_id"].(string)
		if id == "" {
			return nil
		}
		name, _ := u["username"].(string)
		email, _ := u["email"].(string)
		return &SessionUser{UserID: id, Username: name, Email: email}
	default:
		return nil
	}
}

// SetSessionUser sets the user in the session; call after login/register,
// after RegenerateSessionID.
func SetSessionUser(c *fiber.Ctx, user SessionUser) {
	data := sessionData(c)
	data[userLocal] = map[string]interface{}{
		"user_id":  user.UserID,
		"username": user.Username,
		"email":    user.Email,
	}
	c.Locals(userLocal, data[userLocal])
}

// RegenerateSessionID creates a new session ID and sets it in Locals.
// Cookie value should be "s:"+returned ID.
func RegenerateSessionID(c *fiber.Ctx) string {
	newID := uuid.New().String()
	c.Locals(sessionIDLocal, newID)
	return newID
}

// DestroySession clears user and session data from Locals; caller must clear
// the cookie and the Redis key.
func DestroySession(c *fiber.Ctx) {
	c.Locals(sessionDataLocal, make(map[string]interface{}))
	c.Locals(userLocal, nil)
}

// AddFlash queues a one-shot notice of the given kind ("success" or "error").
func AddFlash(c *fiber.Ctx, kind, message string) {
	data := sessionData(c)
	flash, _ := data["flash"].(map[string]interface{})
	if flash == nil {
		flash = make(map[string]interface{})
		data["flash"] = flash
	}
	switch msgs := flash[kind].(type) {
	case []interface{}:
		flash[kind] = append(msgs, message)
	default:
		flash[kind] = []interface{}{message}
	}
}

// PopFlash returns and clears the queued notices of one kind.
func PopFlash(c *fiber.Ctx, kind string) []string {
	data := sessionData(c)
	flash, _ := data["flash"].(map[string]interface{})
	if flash == nil {
		return nil
	}
	raw, ok := flash[kind]
	if !ok {
		return nil
	}
	delete(flash, kind)
	if len(flash) == 0 {
		delete(data, "flash")
	}
	var out []string
	if msgs, ok := raw.([]interface{}); ok {
		for _, m := range msgs {
			if s, ok := m.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// SetReturnTo remembers the path to resume after login.
func SetReturnTo(c *fiber.Ctx, path string) {
	sessionData(c)["returnTo"] = path
}

// PopReturnTo returns and clears the stored post-login path.
func PopReturnTo(c *fiber.Ctx) string {
	data := sessionData(c)
	path, _ := data["returnTo"].(string)
	delete(data, "returnTo")
	return path
}

// SessionCookieConfig returns cookie options for SetCookie/ClearCookie.
func SessionCookieConfig(cfg SessionConfig) fiber.Cookie {
	return fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   cfg.IsProduction,
		SameSite: "Lax",
	}
}
