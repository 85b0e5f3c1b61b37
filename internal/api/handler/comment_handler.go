package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sharecook/recipes-api/internal/api/metrics"
	"github.com/sharecook/recipes-api/internal/core/domain"
	"github.com/sharecook/recipes-api/internal/core/ports"
)

// CommentHandler handles HTTP requests for comment operations.
type CommentHandler struct {
	service ports.CommentService
	log     zerolog.Logger
}

func NewCommentHandler(service ports.CommentService, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{service: service, log: log}
}

// ListForRecipe handles GET /comments/recipe/:recipeId.
//
// @Summary      List comments of a recipe, newest first
// @Tags         comments
// @Produce      json
// @Param        recipeId  path      string  true  "Recipe id"
// @Success      200       {array}   commentResponse
// @Failure      500       {object}  errorResponse
// @Router       /comments/recipe/{recipeId} [get]
func (h *CommentHandler) ListForRecipe(c echo.Context) error {
	comments, err := h.service.ListForRecipe(c.Request().Context(), c.Param("recipeId"))
	if err != nil {
		return renderError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, toCommentResponses(comments))
}

// Post handles POST /comments/recipe/:recipeId. The recipe id is stored as
// given and is not checked against the recipe store.
//
// @Summary      Comment on a recipe
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        recipeId         path      string          true   "Recipe id"
// @Param        Idempotency-Key  header    string          false  "Replays the first successful response for a repeated key"
// @Param        body             body      commentRequest  true   "Comment"
// @Success      201              {object}  commentResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /comments/recipe/{recipeId} [post]
func (h *CommentHandler) Post(c echo.Context) error {
	author, err := actor(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	comment, err := h.service.Post(c.Request().Context(), ports.PostCommentInput{
		RecipeID: c.Param("recipeId"),
		AuthorID: author,
		Text:     req.Text,
	})
	if err != nil {
		return renderError(c, h.log, err)
	}
	metrics.CommentMutationsTotal.WithLabelValues("create").Inc()

	return c.JSON(http.StatusCreated, toCommentResponse(*comment))
}

// Update handles PUT /comments/:commentId.
//
// @Summary      Edit a comment (owner only)
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        commentId  path      string          true  "Comment id"
// @Param        body       body      commentRequest  true  "New text"
// @Success      200        {object}  commentUpdatedResponse
// @Failure      400        {object}  errorResponse
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /comments/{commentId} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	err = h.service.Edit(c.Request().Context(), ports.EditCommentInput{
		CommentID: c.Param("commentId"),
		ActorID:   caller,
		Text:      req.Text,
	})
	if err != nil {
		countDenial(err, "comment")
		return renderError(c, h.log, err)
	}
	metrics.CommentMutationsTotal.WithLabelValues("update").Inc()

	return c.JSON(http.StatusOK, commentUpdatedResponse{Message: "comment updated", NewText: req.Text})
}

// Delete handles DELETE /comments/:commentId.
//
// @Summary      Delete a comment (owner only)
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        commentId  path      string  true  "Comment id"
// @Success      200        {object}  messageResponse
// @Failure      400        {object}  errorResponse
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /comments/{commentId} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("commentId"), caller); err != nil {
		countDenial(err, "comment")
		return renderError(c, h.log, err)
	}
	metrics.CommentMutationsTotal.WithLabelValues("delete").Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "comment deleted"})
}

func countDenial(err error, resource string) {
	if errors.Is(err, domain.ErrForbidden) {
		metrics.OwnershipDenialsTotal.WithLabelValues(resource).Inc()
	}
}
