package ports

import (
	"context"

	"github.com/sharecook/recipes-api/internal/core/domain"
)

// RecipeRepository persists recipes in the relational store. Reads join the
// owner's username. Update and Delete return domain.ErrRecipeNotFound when no
// row was affected.
type RecipeRepository interface {
	List(ctx context.Context) ([]domain.Recipe, error)
	FindByID(ctx context.Context, id int64) (*domain.Recipe, error)
	Create(ctx context.Context, r *domain.Recipe) (int64, error)
	Update(ctx context.Context, r *domain.Recipe) error
	Delete(ctx context.Context, id int64) error
}
