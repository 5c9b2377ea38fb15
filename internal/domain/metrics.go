package domain

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"

	m "gooze.dev/pkg/winnow/internal/model"
)

var tracer = otel.Tracer("winnow.domain")

var (
	// mutantOutcomes counts scheduler verdicts by status
	mutantOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "winnow_mutant_outcomes_total",
		Help: "Mutant evaluations by outcome status",
	}, []string{"status"})

	// mutantDuration tracks single mutant execution latency
	mutantDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "winnow_mutant_execution_seconds",
		Help:    "Duration of a single mutant execution in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
	})

	// mutantAlarms counts timeouts and unique exceptions reported to the tracker
	mutantAlarms = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "winnow_mutant_alarms_total",
		Help: "Mutant timeouts and unique exceptions",
	}, []string{"kind"})

	// budgetStops counts scheduler passes stopped by the phase budget
	budgetStops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "winnow_budget_stops_total",
		Help: "Tests whose evaluation stopped on the phase budget or cancellation",
	})

	// selectionSteps counts committed greedy steps by selection mode
	selectionSteps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "winnow_selection_steps_total",
		Help: "Committed greedy selection steps",
	}, []string{"mode"})

	// rescuedAssertions counts assertions added by goal rescue
	rescuedAssertions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "winnow_rescued_assertions_total",
		Help: "Assertions retained by the goal rescue pass",
	})

	// droppedTests counts tests removed by the redundancy filter
	droppedTests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "winnow_dropped_tests_total",
		Help: "Tests removed because another test covers all their goals",
	})

	// mutationScore is the realized score of the last pass per suite
	mutationScore = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "winnow_mutation_score",
		Help: "Realized mutation score of the last minimization pass",
	}, []string{"suite"})
)

// TimeoutTracker is notified of mutants that time out or raise a unique
// exception, so limits can be enforced beyond a single pass.
type TimeoutTracker interface {
	TimedOut(mt m.Mutant)
	RaisedException(mt m.Mutant)
}

type metricsTracker struct{}

// NewMetricsTracker returns a TimeoutTracker that records alarms as metrics.
func NewMetricsTracker() TimeoutTracker {
	return metricsTracker{}
}

func (metricsTracker) TimedOut(_ m.Mutant) {
	mutantAlarms.WithLabelValues("timeout").Inc()
}

func (metricsTracker) RaisedException(_ m.Mutant) {
	mutantAlarms.WithLabelValues("exception").Inc()
}
