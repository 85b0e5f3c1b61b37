package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sharecook/recipes-api/internal/api/metrics"
	"github.com/sharecook/recipes-api/internal/core/domain"
	"github.com/sharecook/recipes-api/internal/core/ports"
)

const actorKey = "actor_id"

// Auth verifies the bearer token and stores the caller's UserID on the
// context. Every failure produces the same 401 body.
func Auth(verifier ports.TokenVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reject := func(reason string) error {
				metrics.TokenRejectionsTotal.Inc()
				log.Debug().Str("path", c.Path()).Str("reason", reason).Msg("request not authenticated")
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			}

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return reject("missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return reject("malformed authorization header")
			}

			identity, err := verifier.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				return reject(err.Error())
			}

			c.Set(actorKey, identity.UserID)
			return next(c)
		}
	}
}

// ActorID returns the identity stored by Auth. ok is false when the route is
// not behind Auth.
func ActorID(c echo.Context) (domain.UserID, bool) {
	id, ok := c.Get(actorKey).(domain.UserID)
	return id, ok
}
