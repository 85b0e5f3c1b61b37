package ports

import (
	"context"

	"github.com/sharecook/recipes-api/internal/core/domain"
)

// UserRepository is the credential store. Create returns domain.ErrEmailTaken
// when the email is already registered; lookups return domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id domain.UserID) (*domain.User, error)
}
