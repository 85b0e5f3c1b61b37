package handler

import (
	"time"

	"github.com/sharecook/recipes-api/internal/core/domain"
)

// --- Request types ---

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// recipeRequest is shared by create and update. An omitted image_url clears it.
type recipeRequest struct {
	Title        string `json:"title"        validate:"required"`
	Instructions string `json:"instructions" validate:"required"`
	ImageURL     string `json:"image_url"`
}

type commentRequest struct {
	Text string `json:"text" validate:"required"`
}

// --- Response types ---

type messageResponse struct {
	Message string `json:"message"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	UserID  int64  `json:"userId"`
}

type recipeCreatedResponse struct {
	Message  string `json:"message"`
	RecipeID int64  `json:"recipeId"`
}

type recipeResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Instructions string    `json:"instructions"`
	ImageURL     *string   `json:"image_url"`
	UserID       int64     `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	Username     string    `json:"username"`
}

type commentResponse struct {
	ID        string     `json:"_id"`
	RecipeID  string     `json:"recipeId"`
	UserID    int64      `json:"userId"`
	Username  string     `json:"username"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type commentUpdatedResponse struct {
	Message string `json:"message"`
	NewText string `json:"newText"`
}

// --- Domain → response ---

func toRecipeResponse(r domain.Recipe) recipeResponse {
	resp := recipeResponse{
		ID:           r.ID,
		Title:        r.Title,
		Instructions: r.Instructions,
		UserID:       int64(r.UserID),
		CreatedAt:    r.CreatedAt,
		Username:     r.Username,
	}
	if r.ImageURL != "" {
		img := r.ImageURL
		resp.ImageURL = &img
	}
	return resp
}

func toRecipeResponses(rs []domain.Recipe) []recipeResponse {
	out := make([]recipeResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, toRecipeResponse(r))
	}
	return out
}

func toCommentResponse(c domain.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		RecipeID:  c.RecipeID,
		UserID:    int64(c.UserID),
		Username:  c.Username,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCommentResponses(cs []domain.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCommentResponse(c))
	}
	return out
}
