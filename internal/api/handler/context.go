package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sharecook/recipes-api/internal/api/middleware"
	"github.com/sharecook/recipes-api/internal/core/domain"
)

// actor returns the authenticated caller. A route reaching it without the Auth
// middleware is a wiring bug, reported to the client as 401.
func actor(c echo.Context) (domain.UserID, error) {
	id, ok := middleware.ActorID(c)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
	}
	return id, nil
}
