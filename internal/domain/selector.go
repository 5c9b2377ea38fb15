package domain

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	m "gooze.dev/pkg/winnow/internal/model"
)

// Comparator stage names.
const (
	StageSuiteUnique  = "suite-unique"
	StageTestLoad     = "test-load"
	StageLocalUnique  = "local-unique"
	StageContribution = "contribution"
)

// CandidateStats are the greedy metrics of one candidate in one round.
type CandidateStats struct {
	SuiteUnique  int // pool items no other candidate in the suite covers
	TestLoad     int // assertions already selected in the candidate's test
	LocalUnique  int // pool items no other candidate in the same test covers
	Contribution int // pool items covered
}

// Stage is one level of the selection comparator.
type Stage struct {
	Name       string
	Metric     func(CandidateStats) int
	Descending bool
}

var stageCatalog = map[string]Stage{
	StageSuiteUnique: {
		Name:       StageSuiteUnique,
		Metric:     func(s CandidateStats) int { return s.SuiteUnique },
		Descending: true,
	},
	StageTestLoad: {
		Name:   StageTestLoad,
		Metric: func(s CandidateStats) int { return s.TestLoad },
	},
	StageLocalUnique: {
		Name:       StageLocalUnique,
		Metric:     func(s CandidateStats) int { return s.LocalUnique },
		Descending: true,
	},
	StageContribution: {
		Name:       StageContribution,
		Metric:     func(s CandidateStats) int { return s.Contribution },
		Descending: true,
	},
}

// DefaultStages returns the comparator used by mode.
func DefaultStages(mode SelectionMode) []Stage {
	names := []string{StageSuiteUnique, StageTestLoad, StageLocalUnique}
	if mode == MutationOnly {
		names = []string{StageSuiteUnique, StageTestLoad, StageContribution, StageLocalUnique}
	}

	stages, _ := ParseStages(names)

	return stages
}

// ParseStages resolves stage names in priority order.
func ParseStages(names []string) ([]Stage, error) {
	stages := make([]Stage, 0, len(names))

	for _, name := range names {
		st, ok := stageCatalog[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown selection stage %q", ErrInvalidConfig, name)
		}

		stages = append(stages, st)
	}

	return stages, nil
}

// StageNames returns the names of stages.
func StageNames(stages []Stage) []string {
	out := make([]string, 0, len(stages))
	for _, st := range stages {
		out = append(out, st.Name)
	}

	return out
}

// better reports whether a strictly beats b under stages.
func better(a, b CandidateStats, stages []Stage) bool {
	for _, st := range stages {
		va, vb := st.Metric(a), st.Metric(b)
		if va == vb {
			continue
		}

		if st.Descending {
			return va > vb
		}

		return va < vb
	}

	return false
}

// Selection is the per-test outcome of assertion selection.
type Selection struct {
	Steps             []m.SelectionStep
	UnresolvedMutants []m.MutantID
	UnresolvedGoals   []m.Goal

	all     *m.OrderedSet[m.AssertionID]
	perTest map[m.TestID]*m.OrderedSet[m.AssertionID]
	rescued map[m.TestID]*m.OrderedSet[m.AssertionID]
}

func newSelection() *Selection {
	return &Selection{
		all:     m.NewOrderedSet[m.AssertionID](),
		perTest: make(map[m.TestID]*m.OrderedSet[m.AssertionID]),
		rescued: make(map[m.TestID]*m.OrderedSet[m.AssertionID]),
	}
}

func (s *Selection) add(test m.TestID, id m.AssertionID) bool {
	if !s.all.Add(id) {
		return false
	}

	set, ok := s.perTest[test]
	if !ok {
		set = m.NewOrderedSet[m.AssertionID]()
		s.perTest[test] = set
	}

	set.Add(id)

	return true
}

func (s *Selection) addRescued(test m.TestID, id m.AssertionID) bool {
	if !s.add(test, id) {
		return false
	}

	set, ok := s.rescued[test]
	if !ok {
		set = m.NewOrderedSet[m.AssertionID]()
		s.rescued[test] = set
	}

	set.Add(id)

	return true
}

// Contains reports whether id was selected.
func (s *Selection) Contains(id m.AssertionID) bool {
	return s.all.Contains(id)
}

// Assertions returns the ids selected for test in ascending order.
func (s *Selection) Assertions(test m.TestID) []m.AssertionID {
	ids := s.perTest[test].Items()
	slices.Sort(ids)

	return ids
}

// Rescued returns the ids added to test by goal rescue in ascending order.
func (s *Selection) Rescued(test m.TestID) []m.AssertionID {
	ids := s.rescued[test].Items()
	slices.Sort(ids)

	return ids
}

// Len returns the total number of selected assertions.
func (s *Selection) Len() int {
	return s.all.Len()
}

// Load returns the number of assertions selected in test.
func (s *Selection) Load(test m.TestID) int {
	return s.perTest[test].Len()
}

// GreedySuiteSelector chooses a small assertion subset that covers every
// reachable mutant (and goal, in suite-wide mode).
type GreedySuiteSelector interface {
	Select(ctx context.Context, idx *CandidateAssertionIndex, exhausted func(m.MutantID) bool) *Selection
}

type greedySelector struct {
	mode   SelectionMode
	stages []Stage
}

// NewGreedySuiteSelector constructs a selector. Empty stages select the
// default comparator for mode.
func NewGreedySuiteSelector(mode SelectionMode, stages []Stage) GreedySuiteSelector {
	if len(stages) == 0 {
		stages = DefaultStages(mode)
	}

	return &greedySelector{mode: mode, stages: stages}
}

func (g *greedySelector) Select(ctx context.Context, idx *CandidateAssertionIndex, exhausted func(m.MutantID) bool) *Selection {
	_, span := tracer.Start(ctx, "selector.Select", trace.WithAttributes(
		attribute.String("mode", string(g.mode)),
		attribute.StringSlice("stages", StageNames(g.stages)),
		attribute.Int("candidates", idx.Len()),
	))
	defer span.End()

	sel := newSelection()

	mutantPool := m.NewOrderedSet[m.MutantID]()
	for _, id := range idx.Mutants() {
		if exhausted != nil && exhausted(id) {
			continue
		}

		mutantPool.Add(id)
	}

	goalPool := m.NewOrderedSet[m.Goal]()
	if g.mode == SuiteWide {
		for _, goal := range idx.GoalUniverse() {
			goalPool.Add(goal)
		}
	}

	for mutantPool.Len()+goalPool.Len() > 0 {
		var (
			winner      *m.Assertion
			winnerStats CandidateStats
		)

		for _, a := range idx.Assertions() {
			if sel.Contains(a.ID) {
				continue
			}

			stats := g.stats(idx, sel, a.ID, mutantPool, goalPool)
			if stats.Contribution == 0 {
				continue
			}

			if winner == nil || better(stats, winnerStats, g.stages) {
				winner, winnerStats = a, stats
			}
		}

		if winner == nil {
			slog.Info("Selection stalled", "mutants", mutantPool.Len(), "goals", goalPool.Len())
			break
		}

		before := mutantPool.Len() + goalPool.Len()
		test := idx.TestOf(winner.ID)
		sel.add(test, winner.ID)

		for _, id := range idx.Kills(winner.ID) {
			mutantPool.Remove(id)
		}

		for _, goal := range idx.Goals(winner.ID) {
			goalPool.Remove(goal)
		}

		sel.Steps = append(sel.Steps, m.SelectionStep{
			Assertion:    winner.ID,
			Test:         test,
			SuiteUnique:  winnerStats.SuiteUnique,
			TestLoad:     winnerStats.TestLoad,
			LocalUnique:  winnerStats.LocalUnique,
			Contribution: winnerStats.Contribution,
			PoolBefore:   before,
			PoolAfter:    mutantPool.Len() + goalPool.Len(),
		})
		selectionSteps.WithLabelValues(string(g.mode)).Inc()
	}

	sel.UnresolvedMutants = mutantPool.Items()
	sel.UnresolvedGoals = goalPool.Items()

	span.SetAttributes(
		attribute.Int("selected", sel.Len()),
		attribute.Int("steps", len(sel.Steps)),
	)

	return sel
}

func (g *greedySelector) stats(
	idx *CandidateAssertionIndex,
	sel *Selection,
	id m.AssertionID,
	mutantPool *m.OrderedSet[m.MutantID],
	goalPool *m.OrderedSet[m.Goal],
) CandidateStats {
	test := idx.TestOf(id)
	stats := CandidateStats{TestLoad: sel.Load(test)}

	count := func(coverers []m.AssertionID) {
		stats.Contribution++

		if len(coverers) == 1 {
			stats.SuiteUnique++
		}

		for _, other := range coverers {
			if other != id && idx.TestOf(other) == test {
				return
			}
		}

		stats.LocalUnique++
	}

	for _, mid := range idx.Kills(id) {
		if mutantPool.Contains(mid) {
			count(idx.MutantCoverers(mid))
		}
	}

	for _, goal := range idx.Goals(id) {
		if goalPool.Contains(goal) {
			count(idx.GoalCoverers(goal))
		}
	}

	return stats
}
