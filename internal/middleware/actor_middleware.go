package middleware

import (
	"github.com/fadilmartias/ats-interviewer/internal/model"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Actor is the identity the authentication boundary resolved for a request.
// The gateway in front of this service verifies credentials and forwards the
// result in headers; inside the service the actor is an opaque capability,
// never a role string to branch on.
type Actor struct {
	ID   uuid.UUID
	Role model.UserRole
}

const actorLocalsKey = "actor"

// ResolveActor turns the gateway-provided identity headers into an Actor on
// the request context. Requests without a valid identity are rejected here,
// before any handler runs.
func ResolveActor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Get("X-User-Id"))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "missing or invalid identity")
		}
		role := model.UserRole(c.Get("X-User-Role"))
		switch role {
		case model.RoleAdmin, model.RoleRecruiter, model.RoleCandidate:
		default:
			return fiber.NewError(fiber.StatusUnauthorized, "missing or invalid role")
		}
		c.Locals(actorLocalsKey, Actor{ID: id, Role: role})
		return c.Next()
	}
}

// RequireRole gates a route group on the acting role.
func RequireRole(role model.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := c.Locals(actorLocalsKey).(Actor)
		if !ok || actor.Role != role {
			return fiber.NewError(fiber.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

// ActorFrom returns the resolved actor for the request. Routes behind
// ResolveActor always have one.
func ActorFrom(c *fiber.Ctx) Actor {
	actor, _ := c.Locals(actorLocalsKey).(Actor)
	return actor
}
