package middleware

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sharecook/recipes-api/internal/api/metrics"
	"github.com/sharecook/recipes-api/internal/core/ports"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"

	// IdempotencyTTL is how long a successful response stays replayable.
	IdempotencyTTL = 24 * time.Hour

	// reservationTTL bounds how long a crashed request can hold its key.
	reservationTTL = time.Minute

	maxIdempotencyKeyLen = 255
)

// Idempotency replays the first successful response for a repeated
// Idempotency-Key. It must run after Auth: keys are scoped to the caller, the
// method and the request path. The key is reserved before the handler runs, so
// a concurrent duplicate gets 409 instead of a second execution. Store
// failures are logged and the request is handled normally.
func Idempotency(store ports.IdempotencyStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey))
			if key == "" {
				return next(c)
			}
			if len(key) > maxIdempotencyKeyLen {
				return echo.NewHTTPError(http.StatusBadRequest, "idempotency key is too long")
			}

			actor, ok := ActorID(c)
			if !ok {
				return next(c)
			}
			req := c.Request()
			storeKey := actor.String() + ":" + req.Method + ":" + req.URL.Path + ":" + key
			ctx := req.Context()
			storeFailed := func(err error, msg string) {
				metrics.IdempotencyLookupsTotal.WithLabelValues("error").Inc()
				log.Warn().Err(err).Str("idempotency_key", key).Msg(msg)
			}

			reserved, err := store.Reserve(ctx, storeKey, reservationTTL)
			if err != nil {
				storeFailed(err, "idempotency reserve failed")
				return next(c)
			}

			if !reserved {
				stored, found, err := store.Load(ctx, storeKey)
				switch {
				case err != nil:
					storeFailed(err, "idempotency lookup failed")
					return next(c)
				case found && !stored.Pending:
					metrics.IdempotencyLookupsTotal.WithLabelValues("hit").Inc()
					log.Info().Str("idempotency_key", key).Str("path", req.URL.Path).Msg("idempotent replay")
					c.Response().Header().Set(HeaderReplayed, "true")
					return c.Blob(stored.Status, stored.ContentType, stored.Body)
				default:
					metrics.IdempotencyLookupsTotal.WithLabelValues("conflict").Inc()
					return echo.NewHTTPError(http.StatusConflict, "a request with this idempotency key is in progress")
				}
			}
			metrics.IdempotencyLookupsTotal.WithLabelValues("miss").Inc()

			// The reservation must be settled even if the client went away.
			settleCtx := context.WithoutCancel(ctx)
			release := func() {
				if err := store.Release(settleCtx, storeKey); err != nil {
					log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency release failed")
				}
			}

			res := c.Response()
			rec := &bodyRecorder{ResponseWriter: res.Writer}
			res.Writer = rec
			defer func() { res.Writer = rec.ResponseWriter }()

			if err := next(c); err != nil {
				release()
				return err
			}
			if res.Status < 200 || res.Status > 299 {
				release()
				return nil
			}

			resp := ports.StoredResponse{
				Status:      res.Status,
				ContentType: res.Header().Get(echo.HeaderContentType),
				Body:        rec.buf.Bytes(),
			}
			if err := store.Save(settleCtx, storeKey, resp, IdempotencyTTL); err != nil {
				log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency save failed")
				release()
			}
			return nil
		}
	}
}

// bodyRecorder copies everything written to the client.
type bodyRecorder struct {
	http.ResponseWriter
	buf bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}
