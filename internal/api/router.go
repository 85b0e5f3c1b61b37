package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/sharecook/recipes-api/docs"
	"github.com/sharecook/recipes-api/internal/api/handler"
	"github.com/sharecook/recipes-api/internal/api/middleware"
	"github.com/sharecook/recipes-api/internal/core/ports"
	"github.com/sharecook/recipes-api/internal/infrastructure/http/handlers"
)

// Services are the collaborators the router exposes over HTTP.
type Services struct {
	Auth     ports.AuthService
	Recipes  ports.RecipeService
	Comments ports.CommentService
	Tokens   ports.TokenVerifier

	// Idempotency may be nil, in which case Idempotency-Key is ignored.
	Idempotency ports.IdempotencyStore

	// Readiness lists the dependency checks behind /health/ready.
	Readiness map[string]handlers.Check
}

type Options struct {
	Logger         zerolog.Logger
	AllowedOrigins []string

	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	log := opts.Logger

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: allowedOrigins(opts.AllowedOrigins),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
			echo.HeaderAuthorization, middleware.HeaderIdempotencyKey,
		},
	}))
	e.Use(echomiddleware.BodyLimit("1M"))

	// --- Metrics ---
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "sharecook",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/health")
		},
	}))
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(svc.Auth, log)
	recipeHandler := handler.NewRecipeHandler(svc.Recipes, log)
	commentHandler := handler.NewCommentHandler(svc.Comments, log)

	authed := []echo.MiddlewareFunc{middleware.Auth(svc.Tokens, log)}
	authedCreate := authed
	if svc.Idempotency != nil {
		authedCreate = append([]echo.MiddlewareFunc{}, authed...)
		authedCreate = append(authedCreate, middleware.Idempotency(svc.Idempotency, log))
	}

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Recipe routes ---
	recipes := e.Group("/recipes")
	recipes.GET("", recipeHandler.List)
	recipes.GET("/:id", recipeHandler.Get)
	recipes.POST("", recipeHandler.Create, authedCreate...)
	recipes.PUT("/:id", recipeHandler.Update, authed...)
	recipes.DELETE("/:id", recipeHandler.Delete, authed...)

	// --- Comment routes ---
	comments := e.Group("/comments")
	comments.GET("/recipe/:recipeId", commentHandler.ListForRecipe)
	comments.POST("/recipe/:recipeId", commentHandler.Post, authedCreate...)
	comments.PUT("/:commentId", commentHandler.Update, authed...)
	comments.DELETE("/:commentId", commentHandler.Delete, authed...)

	// --- Health probes (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(svc.Readiness).Readiness)

	// --- API docs ---
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

func allowedOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
