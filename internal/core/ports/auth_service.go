package ports

import (
	"context"

	"github.com/sharecook/recipes-api/internal/core/domain"
)

// RegisterInput carries the fields accepted by POST /auth/register.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// Identity is what a token asserts about its bearer.
type Identity struct {
	UserID domain.UserID
	Email  string
}

type TokenIssuer interface {
	Issue(identity Identity) (string, error)
}

// TokenVerifier returns domain.ErrUnauthenticated for every kind of invalid
// token so callers cannot tell the failure modes apart.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}
