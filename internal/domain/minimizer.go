package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gooze.dev/pkg/winnow/internal/adapter"
	m "gooze.dev/pkg/winnow/internal/model"
	pkg "gooze.dev/pkg/winnow/pkg"
)

// Minimizer runs one minimization pass over a suite: redundant test removal,
// mutant execution, selection, optional goal rescue and score reconciliation.
// The selected assertions replace each surviving test's attachments.
type Minimizer interface {
	Minimize(ctx context.Context, suite *m.TestSuite, registry *m.MutantRegistry) (m.Report, error)
}

type minimizer struct {
	cfg     Config
	stages  []Stage
	harness adapter.Harness
	oracle  adapter.Oracle
	ledger  MutantLedger
	tracker TimeoutTracker
}

// NewMinimizer validates cfg and constructs a Minimizer. tracker may be nil.
func NewMinimizer(
	cfg Config,
	harness adapter.Harness,
	oracle adapter.Oracle,
	ledger MutantLedger,
	tracker TimeoutTracker,
) (Minimizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stages, err := cfg.SelectionStages()
	if err != nil {
		return nil, err
	}

	if harness == nil || oracle == nil || ledger == nil {
		return nil, errors.New("minimizer requires a harness, an oracle and a ledger")
	}

	return &minimizer{
		cfg:     cfg,
		stages:  stages,
		harness: harness,
		oracle:  oracle,
		ledger:  ledger,
		tracker: tracker,
	}, nil
}

func (mz *minimizer) Minimize(ctx context.Context, suite *m.TestSuite, registry *m.MutantRegistry) (m.Report, error) {
	if suite == nil || registry == nil {
		return m.Report{}, errors.New("minimize: suite and registry are required")
	}

	runID := uuid.NewString()

	ctx, span := tracer.Start(ctx, "minimizer.Minimize", trace.WithAttributes(
		attribute.String("run.id", runID),
		attribute.String("suite", suite.Name),
		attribute.Int("tests", suite.Len()),
	))
	defer span.End()

	candidates := suite.AssertionCount()

	_, dropped := FilterRedundantTests(suite.Tests())
	suite.Remove(dropped...)

	journal, err := pkg.NewFileSpill[m.MutantOutcome](mz.cfg.JournalDir)
	if err != nil {
		slog.Warn("Verdict journal unavailable, keeping outcomes in memory", "error", err)

		journal = nil
	} else {
		defer func() {
			if err := journal.Discard(); err != nil {
				slog.Warn("Failed to discard verdict journal", "path", journal.Path(), "error", err)
			}
		}()
	}

	verdicts := mz.evaluate(ctx, suite, registry, journal)

	idx := NewCandidateAssertionIndex(suite)
	selector := NewGreedySuiteSelector(mz.cfg.SelectionMode, mz.stages)
	sel := selector.Select(ctx, idx, mz.ledger.Exhausted)

	if mz.cfg.RescueEnabled() {
		NewGoalRescuePass(registry).Rescue(ctx, suite.Tests(), idx, sel)
	}

	selections, err := mz.reattach(suite, idx, sel)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return m.Report{}, err
	}

	score := ReconcileScore(registry, suite.Assertions(), mz.ledger.Exhausted)
	mutationScore.WithLabelValues(suite.Name).Set(score.Score)

	summary := verdictSummary(verdicts)
	if journal != nil {
		if fromJournal, err := verdictSummaryFromJournal(journal); err == nil {
			summary = fromJournal
		}
	}

	report := m.Report{
		RunID:             runID,
		Suite:             suite.Name,
		Score:             score.Score,
		KnownMutants:      score.Known,
		KilledMutants:     score.Killed,
		LiveMutants:       score.Live,
		UnresolvedMutants: sortedMutants(sel.UnresolvedMutants),
		UncoveredGoals:    uncoveredGoals(idx, sel),
		DroppedTests:      dropped,
		Selections:        selections,
		Steps:             sel.Steps,
		Verdicts:          summary,
		CandidateCount:    candidates,
		RetainedCount:     sel.Len(),
	}

	span.SetAttributes(
		attribute.Float64("score", report.Score),
		attribute.Int("retained", report.RetainedCount),
		attribute.Int("dropped", len(dropped)),
	)
	span.SetStatus(codes.Ok, "")

	slog.Info("Minimized suite",
		"run", runID,
		"suite", suite.Name,
		"score", report.Score,
		"candidates", candidates,
		"retained", report.RetainedCount,
		"dropped", len(dropped),
	)

	return report, nil
}

func (mz *minimizer) evaluate(
	ctx context.Context,
	suite *m.TestSuite,
	registry *m.MutantRegistry,
	journal pkg.FileSpill[m.MutantOutcome],
) []m.TestVerdict {
	budget := NewPhaseBudget(mz.cfg.PhaseTimeBudget)
	sched := NewMutantExecutionScheduler(mz.harness, mz.oracle, mz.ledger, registry, mz.tracker, journal, mz.cfg)

	verdicts := make([]m.TestVerdict, 0, suite.Len())

	for _, tc := range suite.Tests() {
		original, ok := tc.LastResult()
		if !ok {
			result, err := mz.harness.RunTest(ctx, tc)
			if err != nil {
				slog.Error("Original run failed", "test", tc.ID, "error", err)
				verdicts = append(verdicts, m.TestVerdict{Test: tc.ID, Skipped: true})

				continue
			}

			tc.SetLastResult(result)
			original = result
		}

		verdicts = append(verdicts, sched.Evaluate(ctx, tc, original, budget))
		AttributeOutputGoals(tc)
	}

	return verdicts
}

func (mz *minimizer) reattach(suite *m.TestSuite, idx *CandidateAssertionIndex, sel *Selection) ([]m.TestSelection, error) {
	selections := make([]m.TestSelection, 0, suite.Len())

	for _, tc := range suite.Tests() {
		ids := sel.Assertions(tc.ID)
		list := make([]*m.Assertion, 0, len(ids))

		for _, id := range ids {
			if a, ok := idx.Assertion(id); ok {
				list = append(list, a)
			}
		}

		if err := tc.SetAssertions(list); err != nil {
			slog.Error("Failed to reattach selection", "test", tc.ID, "error", err)
			return nil, fmt.Errorf("reattach %s: %w", tc.ID, err)
		}

		selections = append(selections, m.TestSelection{
			Test:       tc.ID,
			Assertions: ids,
			Rescued:    sel.Rescued(tc.ID),
		})
	}

	return selections, nil
}

// uncoveredGoals returns the goals some candidate evidenced that no retained
// assertion evidences.
func uncoveredGoals(idx *CandidateAssertionIndex, sel *Selection) []m.Goal {
	covered := m.NewOrderedSet[m.Goal]()

	for _, test := range idx.Tests() {
		for _, id := range sel.Assertions(test) {
			for _, g := range idx.Goals(id) {
				covered.Add(g)
			}
		}
	}

	var out []m.Goal

	for _, g := range idx.GoalUniverse() {
		if !covered.Contains(g) {
			out = append(out, g)
		}
	}

	return out
}
