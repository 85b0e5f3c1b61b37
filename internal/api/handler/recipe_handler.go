package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sharecook/recipes-api/internal/api/metrics"
	"github.com/sharecook/recipes-api/internal/core/domain"
	"github.com/sharecook/recipes-api/internal/core/ports"
)

// RecipeHandler handles HTTP requests for recipe operations.
type RecipeHandler struct {
	service ports.RecipeService
	log     zerolog.Logger
}

func NewRecipeHandler(service ports.RecipeService, log zerolog.Logger) *RecipeHandler {
	return &RecipeHandler{service: service, log: log}
}

// List handles GET /recipes.
//
// @Summary      List all recipes, newest first
// @Tags         recipes
// @Produce      json
// @Success      200  {array}   recipeResponse
// @Failure      500  {object}  errorResponse
// @Router       /recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	recipes, err := h.service.List(c.Request().Context())
	if err != nil {
		return renderError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, toRecipeResponses(recipes))
}

// Get handles GET /recipes/:id.
//
// @Summary      Get a recipe by id
// @Tags         recipes
// @Produce      json
// @Param        id   path      int  true  "Recipe id"
// @Success      200  {object}  recipeResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	id, ok := recipeID(c)
	if !ok {
		return renderError(c, h.log, domain.ErrRecipeNotFound)
	}
	recipe, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return renderError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, toRecipeResponse(*recipe))
}

// Create handles POST /recipes. The caller becomes the owner.
//
// @Summary      Create a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string         false  "Replays the first successful response for a repeated key"
// @Param        body             body      recipeRequest  true   "Recipe"
// @Success      201              {object}  recipeCreatedResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	owner, err := actor(c)
	if err != nil {
		return err
	}

	var req recipeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	id, err := h.service.Create(c.Request().Context(), ports.CreateRecipeInput{
		Title:        req.Title,
		Instructions: req.Instructions,
		ImageURL:     req.ImageURL,
		OwnerID:      owner,
	})
	if err != nil {
		return renderError(c, h.log, err)
	}
	metrics.RecipeMutationsTotal.WithLabelValues("create").Inc()

	return c.JSON(http.StatusCreated, recipeCreatedResponse{Message: "recipe created", RecipeID: id})
}

// Update handles PUT /recipes/:id.
//
// @Summary      Update a recipe (owner only)
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "Recipe id"
// @Param        body  body      recipeRequest  true  "New recipe content"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /recipes/{id} [put]
func (h *RecipeHandler) Update(c echo.Context) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}

	var req recipeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	id, ok := recipeID(c)
	if !ok {
		return renderError(c, h.log, domain.ErrRecipeNotFound)
	}

	err = h.service.Update(c.Request().Context(), ports.UpdateRecipeInput{
		ID:           id,
		Title:        req.Title,
		Instructions: req.Instructions,
		ImageURL:     req.ImageURL,
		ActorID:      caller,
	})
	if err != nil {
		countDenial(err, "recipe")
		return renderError(c, h.log, err)
	}
	metrics.RecipeMutationsTotal.WithLabelValues("update").Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "recipe updated"})
}

// Delete handles DELETE /recipes/:id.
//
// @Summary      Delete a recipe (owner only)
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Recipe id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}

	id, ok := recipeID(c)
	if !ok {
		return renderError(c, h.log, domain.ErrRecipeNotFound)
	}

	if err := h.service.Delete(c.Request().Context(), id, caller); err != nil {
		countDenial(err, "recipe")
		return renderError(c, h.log, err)
	}
	metrics.RecipeMutationsTotal.WithLabelValues("delete").Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "recipe deleted"})
}

// recipeID parses the :id path parameter. A non-numeric id cannot name a
// stored recipe, so callers treat it as not found.
func recipeID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
