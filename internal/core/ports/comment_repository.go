package ports

import (
	"context"
	"time"

	"github.com/sharecook/recipes-api/internal/core/domain"
)

// CommentRepository persists comments in the document store. Methods taking
// a comment id return domain.ErrInvalidCommentID for ids the store cannot
// parse and domain.ErrCommentNotFound when nothing matched.
type CommentRepository interface {
	// ListByRecipe returns comments newest first.
	ListByRecipe(ctx context.Context, recipeID string) ([]domain.Comment, error)
	// Insert stores c and sets c.ID.
	Insert(ctx context.Context, c *domain.Comment) error
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	UpdateText(ctx context.Context, id, text string, at time.Time) error
	Delete(ctx context.Context, id string) error
}
