package domain

import (
	"context"
	"log/slog"
	"math"

	m "gooze.dev/pkg/winnow/internal/model"
)

// Unreachable is the distance of an assertion that cannot evidence a goal.
const Unreachable = math.MaxInt

// GoalRescuePass keeps at least one assertion per test-exclusive goal.
type GoalRescuePass interface {
	Rescue(ctx context.Context, tests []*m.TestCase, idx *CandidateAssertionIndex, sel *Selection) int
}

type goalRescue struct {
	registry *m.MutantRegistry
}

// NewGoalRescuePass constructs a rescue pass that resolves mutant locations
// through registry.
func NewGoalRescuePass(registry *m.MutantRegistry) GoalRescuePass {
	return &goalRescue{registry: registry}
}

// Rescue adds, for every unsatisfied goal exclusive to a test, the test's
// candidate closest to the goal. It returns the number of assertions added.
func (r *goalRescue) Rescue(ctx context.Context, tests []*m.TestCase, idx *CandidateAssertionIndex, sel *Selection) int {
	_, span := tracer.Start(ctx, "rescue.Rescue")
	defer span.End()

	added := 0
	exclusive := ExclusiveGoals(tests)

	for _, tc := range tests {
		for _, g := range exclusive[tc.ID] {
			if r.satisfied(idx, sel, tc.ID, g) {
				continue
			}

			best, bestDistance := m.AssertionID(0), Unreachable
			for _, id := range idx.TestAssertions(tc.ID) {
				a, _ := idx.Assertion(id)
				if d := GoalDistance(r.registry, a, g); d < bestDistance {
					best, bestDistance = id, d
				}
			}

			if bestDistance == Unreachable {
				slog.Debug("No candidate can evidence goal", "test", tc.ID, "goal", g.Key())
				continue
			}

			if sel.addRescued(tc.ID, best) {
				added++
				rescuedAssertions.Inc()
				slog.Debug("Rescued assertion for goal", "test", tc.ID, "goal", g.Key(), "assertion", best, "distance", bestDistance)
			}
		}
	}

	return added
}

func (r *goalRescue) satisfied(idx *CandidateAssertionIndex, sel *Selection, test m.TestID, g m.Goal) bool {
	for _, id := range sel.Assertions(test) {
		a, ok := idx.Assertion(id)
		if ok && GoalDistance(r.registry, a, g) == 0 {
			return true
		}
	}

	return false
}

// GoalDistance is how far the mutants a detects are from g, using registry
// for mutant locations. Zero means a evidences g; Unreachable means it cannot.
func GoalDistance(registry *m.MutantRegistry, a *m.Assertion, g m.Goal) int {
	if a.Relates(g) {
		return 0
	}

	switch g.Kind {
	case m.GoalLine, m.GoalBranch:
		return lineDistance(registry, a, g.Line)
	case m.GoalMutation:
		if a.Kills(g.Mutant) {
			return 0
		}

		line := g.Line
		if target, ok := registry.Lookup(g.Mutant); ok {
			line = target.Location.Line
		}

		return lineDistance(registry, a, line)
	case m.GoalException, m.GoalOutput, m.GoalMethod, m.GoalMethodNoException:
		for _, id := range a.KilledMutants() {
			if mt, ok := registry.Lookup(id); ok && mt.Location.Method == g.Method {
				return 0
			}
		}

		return Unreachable
	default:
		return Unreachable
	}
}

func lineDistance(registry *m.MutantRegistry, a *m.Assertion, line int) int {
	best := Unreachable

	for _, id := range a.KilledMutants() {
		mt, ok := registry.Lookup(id)
		if !ok {
			continue
		}

		d := mt.Location.Line - line
		if d < 0 {
			d = -d
		}

		best = min(best, d)
	}

	return best
}
