package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sharecook/recipes-api/internal/core/domain"
	"github.com/sharecook/recipes-api/internal/core/ports"
	"github.com/sharecook/recipes-api/internal/core/service"
)

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	tokens := service.NewTokenService("secret")
	signed, err := tokens.Issue(ports.Identity{UserID: 42, Email: "a@x.com"})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(tokens, zerolog.Nop())(func(c echo.Context) error {
		called = true
		actor, ok := ActorID(c)
		if !ok || actor != domain.UserID(42) {
			t.Fatalf("actor not set, got %v %v", actor, ok)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_LowercaseScheme(t *testing.T) {
	e := echo.New()
	tokens := service.NewTokenService("secret")
	signed, _ := tokens.Issue(ports.Identity{UserID: 1})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+signed)
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	err := Auth(tokens, zerolog.Nop())(func(echo.Context) error {
		called = true
		return nil
	})(c)
	if err != nil || !called {
		t.Fatalf("expected next to run, err=%v", err)
	}
}

func TestAuthMiddleware_RejectsWithSingleMessage(t *testing.T) {
	issuedAt := time.Now().Add(-2 * time.Hour)
	expired, err := service.NewTokenService("secret").
		WithClock(func() time.Time { return issuedAt }).
		Issue(ports.Identity{UserID: 1})
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := service.NewTokenService("other").Issue(ports.Identity{UserID: 1})
	if err != nil {
		t.Fatal(err)
	}

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Token abc",
		"empty token":    "Bearer ",
		"garbage token":  "Bearer not-a-token",
		"expired token":  "Bearer " + expired,
		"wrong key":      "Bearer " + foreign,
	}

	for name, header := range cases {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		c := e.NewContext(req, httptest.NewRecorder())

		err := Auth(service.NewTokenService("secret"), zerolog.Nop())(func(echo.Context) error {
			t.Fatalf("%s: should not reach next", name)
			return nil
		})(c)

		he, ok := err.(*echo.HTTPError)
		if !ok {
			t.Fatalf("%s: expected *echo.HTTPError, got %v", name, err)
		}
		if he.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, he.Code)
		}
		if he.Message != "authentication failed" {
			t.Fatalf("%s: unexpected message %v", name, he.Message)
		}
	}
}

func TestActorID_NotSet(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, ok := ActorID(c); ok {
		t.Fatal("expected no actor")
	}
}
