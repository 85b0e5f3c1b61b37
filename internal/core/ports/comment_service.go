package ports

import (
	"context"

	"github.com/sharecook/recipes-api/internal/core/domain"
)

type PostCommentInput struct {
	RecipeID string
	AuthorID domain.UserID
	Text     string
}

type EditCommentInput struct {
	CommentID string
	ActorID   domain.UserID
	Text      string
}

type CommentService interface {
	ListForRecipe(ctx context.Context, recipeID string) ([]domain.Comment, error)
	Post(ctx context.Context, in PostCommentInput) (*domain.Comment, error)
	Edit(ctx context.Context, in EditCommentInput) error
	Delete(ctx context.Context, commentID string, actor domain.UserID) error
}
