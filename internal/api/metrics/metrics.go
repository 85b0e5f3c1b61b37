// Package metrics defines and registers the custom Prometheus metrics for the
// ShareCook API. Metric names, labels and help strings live here only.
//
// All collectors are registered with the default registry on package init via
// promauto; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sharecook"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts registration and login attempts.
// Labels:
//   - action: "register" or "login"
//   - result: "success", "invalid", "conflict" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register/login attempts, by action and result.",
	},
	[]string{"action", "result"},
)

// TokenRejectionsTotal counts bearer tokens refused by the auth middleware.
var TokenRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of requests rejected for a missing or invalid bearer token.",
	},
)

// ── Resource metrics ──────────────────────────────────────────────────────────

// RecipeMutationsTotal counts successful recipe writes.
// Label:
//   - op: "create", "update" or "delete"
var RecipeMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recipe_mutations_total",
		Help:      "Total number of successful recipe writes, by operation.",
	},
	[]string{"op"},
)

// CommentMutationsTotal counts successful comment writes.
// Label:
//   - op: "create", "update" or "delete"
var CommentMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comment_mutations_total",
		Help:      "Total number of successful comment writes, by operation.",
	},
	[]string{"op"},
)

// OwnershipDenialsTotal counts mutations refused because the caller does not
// own the target.
// Label:
//   - resource: "recipe" or "comment"
var OwnershipDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ownership_denials_total",
		Help:      "Total number of mutations denied by the owner check.",
	},
	[]string{"resource"},
)

// ── Idempotency metrics ───────────────────────────────────────────────────────

// IdempotencyLookupsTotal counts Idempotency-Key lookups.
// Label:
//   - result: "hit" (stored response replayed), "miss", "conflict" (key held by a running request) or "error"
var IdempotencyLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotency_lookups_total",
		Help:      "Total number of Idempotency-Key lookups, labelled by result.",
	},
	[]string{"result"},
)
