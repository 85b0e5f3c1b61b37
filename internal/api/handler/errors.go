package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sharecook/recipes-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Message string `json:"message"`
}

const internalErrorMessage = "internal server error"

// Classify maps an error to its HTTP status and client-facing message.
// Unknown errors become a 500 with a generic message.
func Classify(err error) (int, string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Reason
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, domain.ErrUnauthenticated.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.ErrForbidden.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, domain.ErrUserNotFound.Error()
	case errors.Is(err, domain.ErrRecipeNotFound):
		return http.StatusNotFound, domain.ErrRecipeNotFound.Error()
	case errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, domain.ErrCommentNotFound.Error()
	case errors.Is(err, domain.ErrInvalidCommentID):
		return http.StatusBadRequest, domain.ErrInvalidCommentID.Error()
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, domain.ErrEmailTaken.Error()
	}
	return http.StatusInternalServerError, internalErrorMessage
}

// renderError writes the classified error. 500s are logged with the real cause.
func renderError(c echo.Context, log zerolog.Logger, err error) error {
	status, msg := Classify(err)
	if status == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Msg("request failed")
	}
	return c.JSON(status, errorResponse{Message: msg})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Message: msg})
}
