package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
)

// HeaderActorID carries the opaque id of the back-office user making the call,
// as asserted by the identity collaborator in front of this service.
const HeaderActorID = "Ax-Actor-Id"

const actorKey = "actor_id"

var reActorID = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)

func validActorID(id string) bool { return reActorID.MatchString(id) }

func isMutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// ActorMiddleware requires a valid Ax-Actor-Id on mutating requests and
// stores it on the context. Reads pass through; a valid header is still
// recorded if present.
func ActorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := strings.TrimSpace(c.Request().Header.Get(HeaderActorID))
			switch {
			case actor != "" && validActorID(actor):
				c.Set(actorKey, actor)
			case !isMutating(c.Request().Method):
			case actor == "":
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing " + HeaderActorID})
			default:
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid " + HeaderActorID})
			}
			return next(c)
		}
	}
}

// ActorID returns the actor recorded by ActorMiddleware, or "".
func ActorID(c echo.Context) string {
	s, _ := c.Get(actorKey).(string)
	return s
}
