package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sharecook/recipes-api/internal/core/domain"
	"github.com/sharecook/recipes-api/internal/core/ports"
)

// TokenTTL is the lifetime of every issued token.
const TokenTTL = time.Hour

type tokenClaims struct {
	UserID any    `json:"userId"`
	Email  string `json:"email"`
	// ExpiresAtNano is the exact expiry in Unix nanoseconds. The registered
	// exp claim only carries whole seconds.
	ExpiresAtNano int64 `json:"expNs,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 identity tokens. Tokens are stateless
// and cannot be revoked before they expire.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), now: time.Now}
}

// WithClock replaces the time source used for both issuing and verifying.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

func (s *TokenService) Issue(identity ports.Identity) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("token secret is not configured")
	}
	issued := s.now()
	expires := issued.Add(TokenTTL)
	claims := tokenClaims{
		UserID:        int64(identity.UserID),
		Email:         identity.Email,
		ExpiresAtNano: expires.UnixNano(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(ceilSecond(expires)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify returns domain.ErrUnauthenticated for any token it does not accept.
func (s *TokenService) Verify(raw string) (ports.Identity, error) {
	if raw == "" {
		return ports.Identity{}, domain.ErrUnauthenticated
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !parsed.Valid {
		return ports.Identity{}, domain.ErrUnauthenticated
	}
	if claims.ExpiresAt == nil {
		return ports.Identity{}, domain.ErrUnauthenticated
	}
	deadline := claims.ExpiresAt.Time
	if claims.ExpiresAtNano != 0 {
		deadline = time.Unix(0, claims.ExpiresAtNano)
	}
	// The expiry instant itself is still inside the validity window.
	if s.now().After(deadline) {
		return ports.Identity{}, domain.ErrUnauthenticated
	}

	id, err := domain.ParseUserID(claims.UserID)
	if err != nil {
		return ports.Identity{}, domain.ErrUnauthenticated
	}
	return ports.Identity{UserID: id, Email: claims.Email}, nil
}

// ceilSecond rounds t up to a whole second so exp never precedes the real expiry.
func ceilSecond(t time.Time) time.Time {
	if trunc := t.Truncate(time.Second); !trunc.Equal(t) {
		return trunc.Add(time.Second)
	}
	return t
}
