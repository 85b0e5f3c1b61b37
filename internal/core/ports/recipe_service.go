package ports

import (
	"context"

	"github.com/sharecook/recipes-api/internal/core/domain"
)

type CreateRecipeInput struct {
	Title        string
	Instructions string
	ImageURL     string
	OwnerID      domain.UserID
}

type UpdateRecipeInput struct {
	ID           int64
	Title        string
	Instructions string
	ImageURL     string
	ActorID      domain.UserID
}

type RecipeService interface {
	List(ctx context.Context) ([]domain.Recipe, error)
	Get(ctx context.Context, id int64) (*domain.Recipe, error)
	Create(ctx context.Context, in CreateRecipeInput) (int64, error)
	Update(ctx context.Context, in UpdateRecipeInput) error
	Delete(ctx context.Context, id int64, actor domain.UserID) error
}
