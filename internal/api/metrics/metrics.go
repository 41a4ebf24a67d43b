// Package metrics defines and registers the custom Prometheus metrics of the
// access gate. It is the single source of truth for metric names, labels and
// help strings.
//
// Metrics are registered with the default Prometheus registry on import via
// promauto; /metrics exposes them together with the echoprometheus request
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gate"

// ── Gate metrics ──────────────────────────────────────────────────────────────

// GateDecisionsTotal counts gate decisions.
// Labels:
//   - route_class: "public", "authenticated_user", "admin_page", "admin_api", "payment_page"
//   - outcome: "allow", "redirect" or "reject"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "decisions_total",
		Help:      "Total number of access gate decisions, by route class and outcome.",
	},
	[]string{"route_class", "outcome"},
)

// SessionRefreshTotal counts session refresh attempts against the auth provider.
// Label:
//   - result: "ok" or "error"
var SessionRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_refresh_total",
		Help:      "Total number of session token refresh attempts, by result.",
	},
	[]string{"result"},
)

// ── Role lookup metrics ───────────────────────────────────────────────────────

// RoleLookupDuration measures profile store lookups.
// Label:
//   - result: "admin", "non_admin", "not_found" or "error"
var RoleLookupDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "role_lookup_duration_seconds",
		Help:      "Duration of role lookups against the profile store.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// RoleCacheTotal counts role cache reads.
// Label:
//   - result: "hit", "miss" or "error"
var RoleCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_cache_total",
		Help:      "Total number of role cache reads, labelled by result (hit/miss/error).",
	},
	[]string{"result"},
)

// ── Admin metrics ─────────────────────────────────────────────────────────────

// AdminActionsTotal counts admin user actions.
// Labels:
//   - action: "promote", "demote", "disable", "enable", "delete"
//   - result: "ok" or "error"
var AdminActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_actions_total",
		Help:      "Total number of admin user actions, by action and result.",
	},
	[]string{"action", "result"},
)
