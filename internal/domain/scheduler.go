package domain

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gooze.dev/pkg/winnow/internal/adapter"
	m "gooze.dev/pkg/winnow/internal/model"
	pkg "gooze.dev/pkg/winnow/pkg"
)

// MutantExecutionScheduler runs a test against the mutants its original run
// touched and records which assertions detect them.
type MutantExecutionScheduler interface {
	Evaluate(ctx context.Context, tc *m.TestCase, original m.ExecutionResult, budget *PhaseBudget) m.TestVerdict
}

type scheduler struct {
	harness       adapter.Harness
	oracle        adapter.Oracle
	ledger        MutantLedger
	registry      *m.MutantRegistry
	tracker       TimeoutTracker
	journal       pkg.FileSpill[m.MutantOutcome]
	maxPerTest    int
	mutantTimeout time.Duration
	rng           *rand.Rand
}

// NewMutantExecutionScheduler constructs a scheduler. tracker and journal
// may be nil.
func NewMutantExecutionScheduler(
	harness adapter.Harness,
	oracle adapter.Oracle,
	ledger MutantLedger,
	registry *m.MutantRegistry,
	tracker TimeoutTracker,
	journal pkg.FileSpill[m.MutantOutcome],
	cfg Config,
) MutantExecutionScheduler {
	seed := uint64(cfg.Seed)

	return &scheduler{
		harness:       harness,
		oracle:        oracle,
		ledger:        ledger,
		registry:      registry,
		tracker:       tracker,
		journal:       journal,
		maxPerTest:    cfg.MaxMutantsPerTest,
		mutantTimeout: cfg.MutantTimeout,
		rng:           rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *scheduler) Evaluate(ctx context.Context, tc *m.TestCase, original m.ExecutionResult, budget *PhaseBudget) m.TestVerdict {
	ctx, span := tracer.Start(ctx, "scheduler.Evaluate", trace.WithAttributes(
		attribute.String("test", string(tc.ID)),
	))
	defer span.End()

	verdict := m.TestVerdict{Test: tc.ID}

	if tc.IsEmpty() || original.Timeout {
		slog.Debug("Skipping mutant evaluation", "test", tc.ID, "empty", tc.IsEmpty(), "timeout", original.Timeout)

		verdict.Skipped = true

		return verdict
	}

	candidates := s.candidates(tc.ID, original)
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	executed := 0
	stopped := false

	for _, mt := range candidates {
		outcome := m.MutantOutcome{Test: tc.ID, Mutant: mt.ID}

		switch {
		case stopped || budget.Exhausted(ctx):
			if !stopped {
				stopped = true

				budgetStops.Inc()
				slog.Info("Phase budget exhausted", "test", tc.ID, "executed", executed)
			}

			outcome.Status = m.Unresolved
		case s.ledger.Exhausted(mt.ID):
			outcome.Status = m.PreKilled
		case s.maxPerTest > 0 && executed >= s.maxPerTest:
			outcome.Status = m.Unresolved
		default:
			executed++
			outcome = s.execute(ctx, tc, original, mt)
		}

		s.record(&verdict, outcome)
	}

	span.SetAttributes(
		attribute.Int("mutants.candidates", len(candidates)),
		attribute.Int("mutants.executed", executed),
		attribute.Int("mutants.killed", len(verdict.Killed())),
	)

	return verdict
}

// candidates returns the touched mutants known to the registry, without
// duplicates, in first-touched order.
func (s *scheduler) candidates(test m.TestID, original m.ExecutionResult) []m.Mutant {
	seen := m.NewOrderedSet[m.MutantID]()
	out := make([]m.Mutant, 0, len(original.TouchedMutants))

	for _, id := range original.TouchedMutants {
		mt, ok := s.registry.Lookup(id)
		if !ok {
			slog.Debug("Ignoring unknown mutant", "test", test, "mutant", id)
			continue
		}

		if seen.Add(id) {
			out = append(out, mt)
		}
	}

	return out
}

func (s *scheduler) execute(ctx context.Context, tc *m.TestCase, original m.ExecutionResult, mt m.Mutant) m.MutantOutcome {
	outcome := m.MutantOutcome{Test: tc.ID, Mutant: mt.ID}

	runCtx, cancel := ctx, context.CancelFunc(func() {})
	if s.mutantTimeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, s.mutantTimeout)
	}
	defer cancel()

	start := time.Now()
	result, err := s.harness.RunMutant(runCtx, tc, mt)
	mutantDuration.Observe(time.Since(start).Seconds())

	if ctx.Err() != nil {
		outcome.Status = m.Unresolved
		return outcome
	}

	if err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			slog.Error("Mutant evaluation failed", "test", tc.ID, "mutant", mt.ID, "error", err)

			outcome.Status = m.Failed

			return outcome
		}

		result = m.ExecutionResult{Timeout: true}
	} else if runCtx.Err() != nil {
		result.Timeout = true
	}

	switch {
	case result.Timeout:
		state := s.ledger.RecordTimeout(mt.ID)
		if s.tracker != nil {
			s.tracker.TimedOut(mt)
		}

		slog.Debug("Mutant timed out", "test", tc.ID, "mutant", mt.ID, "timeouts", state.Timeouts)

		outcome.Timeout = true
		outcome.Status = m.Killed
	case result.Exception && !original.Exception:
		state := s.ledger.RecordException(mt.ID)
		if s.tracker != nil {
			s.tracker.RaisedException(mt)
		}

		slog.Debug("Mutant raised unique exception", "test", tc.ID, "mutant", mt.ID, "exceptions", state.Exceptions)

		outcome.Exception = true
		outcome.Status = m.Killed
	default:
		cmp := s.oracle.Compare(tc, original, result)
		outcome.Status = m.Survived

		if cmp.Diverged || len(cmp.Detecting) > 0 {
			outcome.Status = m.Killed
			outcome.Detecting = s.markDetecting(tc, mt.ID, cmp.Detecting)
		}
	}

	return outcome
}

// markDetecting adds id to the kill set of every assertion of tc the oracle
// named and returns the ids that were actually attached to tc.
func (s *scheduler) markDetecting(tc *m.TestCase, id m.MutantID, detecting []m.AssertionID) []m.AssertionID {
	named := m.NewOrderedSet(detecting...)

	var out []m.AssertionID

	for _, a := range tc.Assertions() {
		if named.Contains(a.ID) {
			a.AddKilledMutant(id)
			out = append(out, a.ID)
		}
	}

	return out
}

func (s *scheduler) record(verdict *m.TestVerdict, outcome m.MutantOutcome) {
	verdict.Outcomes = append(verdict.Outcomes, outcome)
	mutantOutcomes.WithLabelValues(outcome.Status.String()).Inc()

	if s.journal == nil {
		return
	}

	if err := s.journal.Append(outcome); err != nil {
		slog.Warn("Failed to journal mutant outcome", "test", outcome.Test, "mutant", outcome.Mutant, "error", err)
	}
}
