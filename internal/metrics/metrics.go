package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "raspadinha"

// Outcome labels for ChancesIssued.
const (
	OutcomeWin  = "win"
	OutcomeLoss = "loss"
)

// Grid warning kinds.
const (
	GridSingleSymbol     = "single_symbol_catalog"
	GridAccidentalTriple = "accidental_triple"
)

var (
	// ChancesIssued counts persisted chances by outcome.
	ChancesIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chances_issued_total",
		Help:      "Scratch chances issued, by outcome.",
	}, []string{"outcome"})

	// InventoryFallbacks counts wins downgraded because the prize stock changed underneath.
	InventoryFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inventory_fallbacks_total",
		Help:      "Wins turned into losses after losing the race for a limited prize.",
	})

	// BatchCounterFailures counts failed best-effort batch counter updates.
	BatchCounterFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batch_counter_failures_total",
		Help:      "Batch counter updates that failed after a chance was issued.",
	})

	// GridWarnings counts grids built from catalogs too small to be clean.
	GridWarnings = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "grid_warnings_total",
		Help:      "Grids that could not avoid an extra triple, by kind.",
	}, []string{"kind"})

	// BatchDrift counts batches whose counters disagreed with the chance ledger.
	BatchDrift = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batch_drift_total",
		Help:      "Batches found with counters out of line during reconciliation.",
	})
)
