// Package metrics is the single source of truth for the service's
// Prometheus metric names, labels and help strings. Everything registers
// against the default registry at init; mount promhttp on /metrics to
// expose it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "questboard"

// XPEventsTotal counts authoritative XP increments, labelled by outcome:
// "level_up", "no_change" or "error".
var XPEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "xp_events_total",
		Help:      "Total number of XP increment requests, by outcome.",
	},
	[]string{"outcome"},
)

// SyncTicksTotal counts snapshot deliveries per collection, including the
// immediate first delivery of each subscription.
var SyncTicksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_ticks_total",
		Help:      "Total number of snapshots delivered to subscribers, by collection.",
	},
	[]string{"collection"},
)

// SyncErrorsTotal counts tick cycles that failed to read a snapshot.
var SyncErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_errors_total",
		Help:      "Total number of subscription cycles skipped because the read failed.",
	},
	[]string{"collection"},
)
