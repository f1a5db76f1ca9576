// Package gate implements the request pipeline in front of mutating routes.
// A gate inspects the request and returns an explicit Outcome instead of
// throwing: Continue hands off to the next stage, Redirect intercepts with a
// flash notice, Fail raises a classified error for the central error handler.
// Chain composes gates in a fixed order per route: authentication, then
// authorization for resource-scoped routes, then schema validation.
package gate

import (
	"camphub-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type outcomeKind int

const (
	continueKind outcomeKind = iota
	redirectKind
	failKind
)

// Outcome is the result of one gate: pass, redirect, or classified failure.
type Outcome struct {
	kind      outcomeKind
	to        string
	flashKind string
	flashMsg  string
	status    int
	message   string
}

// Continue passes the request through unchanged.
func Continue() Outcome {
	return Outcome{kind: continueKind}
}

// Redirect intercepts the request with a one-shot notice and a 302 to the
// given path. Authentication and authorization failures end here; they never
// reach the error handler.
func Redirect(to, flashKind, message string) Outcome {
	return Outcome{kind: redirectKind, to: to, flashKind: flashKind, flashMsg: message}
}

// Fail raises a classified failure for the central error handler.
func Fail(status int, message string) Outcome {
	return Outcome{kind: failKind, status: status, message: message}
}

// Gate is one pipeline stage.
type Gate func(*fiber.Ctx) Outcome

// Chain runs gates in order and short-circuits on the first non-Continue
// outcome. On Continue-through it defers to the route handler.
func Chain(gates ...Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, g := range gates {
			switch o := g(c); o.kind {
			case continueKind:
			case redirectKind:
				if o.flashMsg != "" {
					middleware.AddFlash(c, o.flashKind, o.flashMsg)
				}
				return c.Redirect(o.to, fiber.StatusFound)
			case failKind:
				return fiber.NewError(o.status, o.message)
			}
		}
		return c.Next()
	}
}
