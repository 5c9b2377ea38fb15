package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "gooze.dev/pkg/winnow/internal/model"
)

// candidate describes one assertion of a fixture test.
type candidate struct {
	id    m.AssertionID
	kills []m.MutantID
	goals []m.Goal
}

func fixtureTest(t *testing.T, id m.TestID, goals []m.Goal, candidates ...candidate) *m.TestCase {
	t.Helper()

	tc := m.NewTestCase(id, "", []m.Statement{
		{Position: 0, Kind: m.StatementConstructor, Owner: "Stack"},
		{Position: 1, Kind: m.StatementMethod, Owner: "Stack", Method: "push"},
	}, goals)

	for _, c := range candidates {
		a := m.NewAssertion(c.id, 1, m.AssertPrimitive, "v", "", "1")
		for _, mid := range c.kills {
			a.AddKilledMutant(mid)
		}

		for _, g := range c.goals {
			a.AddRelatedGoal(g)
		}

		require.NoError(t, tc.AddAssertion(a))
	}

	return tc
}

func fixtureSuite(t *testing.T, tests ...*m.TestCase) *m.TestSuite {
	t.Helper()

	suite, err := m.NewTestSuite("fixture", tests...)
	require.NoError(t, err)

	return suite
}

func selectedIDs(sel *Selection, idx *CandidateAssertionIndex) []m.AssertionID {
	var out []m.AssertionID
	for _, test := range idx.Tests() {
		out = append(out, sel.Assertions(test)...)
	}

	return out
}

func stepIDs(sel *Selection) []m.AssertionID {
	out := make([]m.AssertionID, 0, len(sel.Steps))
	for _, st := range sel.Steps {
		out = append(out, st.Assertion)
	}

	return out
}

func TestCandidateAssertionIndex(t *testing.T) {
	goal := m.OutputGoal("Stack", "peek", "positive")
	suite := fixtureSuite(t,
		fixtureTest(t, "t1", nil, candidate{id: 2, kills: []m.MutantID{3, 1}}, candidate{id: 1}),
		fixtureTest(t, "t2", nil, candidate{id: 3, kills: []m.MutantID{1}, goals: []m.Goal{goal}}),
	)

	idx := NewCandidateAssertionIndex(suite)

	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, []m.TestID{"t1", "t2"}, idx.Tests())
	assert.Equal(t, []m.AssertionID{1, 2}, idx.TestAssertions("t1"))
	assert.Equal(t, m.TestID("t2"), idx.TestOf(3))
	assert.Equal(t, []m.AssertionID{2, 3}, idx.MutantCoverers(1))
	assert.Equal(t, []m.AssertionID{3}, idx.GoalCoverers(goal))
	assert.Equal(t, []m.MutantID{1, 3}, idx.Mutants())
	assert.Equal(t, []m.Goal{goal}, idx.GoalUniverse())
	assert.Empty(t, idx.Kills(1))

	a, ok := idx.Assertion(3)
	require.True(t, ok)
	assert.Equal(t, []m.Goal{goal}, a.RelatedGoals())

	_, ok = idx.Assertion(99)
	assert.False(t, ok)
}

func TestFilterRedundantTests(t *testing.T) {
	goalA := m.LineGoal("Stack", "push", 10)
	goalB := m.MethodGoal("Stack", "push")
	goalC := m.MethodGoal("Stack", "pop")

	t1 := fixtureTest(t, "t1", []m.Goal{goalA, goalB})
	t2 := fixtureTest(t, "t2", []m.Goal{goalA})
	t3 := fixtureTest(t, "t3", []m.Goal{goalB, goalC})
	t4 := fixtureTest(t, "t4", nil)

	kept, dropped := FilterRedundantTests([]*m.TestCase{t1, t2, t3, t4})

	assert.Equal(t, []m.TestID{"t1", "t4"}, dropped)
	require.Len(t, kept, 2)
	assert.Equal(t, m.TestID("t2"), kept[0].ID)
	assert.Equal(t, m.TestID("t3"), kept[1].ID)
}

func TestFilterRedundantTests_PreservesGoalUnion(t *testing.T) {
	goals := []m.Goal{
		m.LineGoal("Stack", "push", 10),
		m.LineGoal("Stack", "push", 11),
		m.MethodGoal("Stack", "push"),
	}

	// Two identical tests: exactly one must survive.
	tests := []*m.TestCase{
		fixtureTest(t, "a", goals),
		fixtureTest(t, "b", goals),
		fixtureTest(t, "c", goals[:1]),
	}

	union := func(tests []*m.TestCase) *m.OrderedSet[m.Goal] {
		set := m.NewOrderedSet[m.Goal]()
		for _, tc := range tests {
			for _, g := range tc.CoveredGoals() {
				set.Add(g)
			}
		}

		return set
	}

	kept, dropped := FilterRedundantTests(tests)

	assert.Equal(t, []m.TestID{"a", "c"}, dropped)
	assert.ElementsMatch(t, union(tests).Items(), union(kept).Items())
}

func TestExclusiveGoals(t *testing.T) {
	shared := m.MethodGoal("Stack", "push")
	onlyT1 := m.LineGoal("Stack", "push", 10)
	onlyT2 := m.MethodGoal("Stack", "pop")

	out := ExclusiveGoals([]*m.TestCase{
		fixtureTest(t, "t1", []m.Goal{shared, onlyT1}),
		fixtureTest(t, "t2", []m.Goal{shared, onlyT2}),
	})

	assert.Equal(t, map[m.TestID][]m.Goal{"t1": {onlyT1}, "t2": {onlyT2}}, out)
}

func TestGreedySuiteSelector_CoversOverlappingKills(t *testing.T) {
	// test1 kills {1,2}, test2 kills {2,3}; no assertion covers all three.
	suite := fixtureSuite(t,
		fixtureTest(t, "test1", nil, candidate{id: 1, kills: []m.MutantID{1}}, candidate{id: 2, kills: []m.MutantID{2}}),
		fixtureTest(t, "test2", nil, candidate{id: 3, kills: []m.MutantID{2}}, candidate{id: 4, kills: []m.MutantID{3}}),
	)
	idx := NewCandidateAssertionIndex(suite)

	sel := NewGreedySuiteSelector(SuiteWide, nil).Select(context.Background(), idx, nil)

	assert.Equal(t, 3, sel.Len(), "three mutants with no shared killer need three assertions")
	assert.Equal(t, []m.AssertionID{1, 4}, stepIDs(sel)[:2], "suite-unique killers come first")
	assert.Empty(t, sel.UnresolvedMutants)

	covered := m.NewOrderedSet[m.MutantID]()
	for _, id := range selectedIDs(sel, idx) {
		for _, mid := range idx.Kills(id) {
			covered.Add(mid)
		}
	}

	assert.ElementsMatch(t, []m.MutantID{1, 2, 3}, covered.Items())
}

func TestGreedySuiteSelector_PrefersLowerTestLoad(t *testing.T) {
	suite := fixtureSuite(t,
		fixtureTest(t, "t1", nil, candidate{id: 1, kills: []m.MutantID{1}}, candidate{id: 2, kills: []m.MutantID{2}}),
		fixtureTest(t, "t2", nil, candidate{id: 3, kills: []m.MutantID{2}}),
	)
	idx := NewCandidateAssertionIndex(suite)

	sel := NewGreedySuiteSelector(SuiteWide, nil).Select(context.Background(), idx, nil)

	require.Equal(t, []m.AssertionID{1, 3}, stepIDs(sel))
	assert.Zero(t, sel.Steps[1].SuiteUnique, "mutant 2 has two killers")
	assert.Zero(t, sel.Steps[1].TestLoad)
	assert.Equal(t, []m.AssertionID{1}, sel.Assertions("t1"))
	assert.Equal(t, []m.AssertionID{3}, sel.Assertions("t2"))
}

func TestGreedySuiteSelector_TiesGoToFirstCandidate(t *testing.T) {
	suite := fixtureSuite(t,
		fixtureTest(t, "t1", nil, candidate{id: 5, kills: []m.MutantID{1}}),
		fixtureTest(t, "t2", nil, candidate{id: 6, kills: []m.MutantID{1}}),
	)

	sel := NewGreedySuiteSelector(SuiteWide, nil).Select(context.Background(), NewCandidateAssertionIndex(suite), nil)

	assert.Equal(t, []m.AssertionID{5}, stepIDs(sel))
}

func TestGreedySuiteSelector_StepsShrinkThePool(t *testing.T) {
	goal := m.OutputGoal("Stack", "pop", "positive")
	suite := fixtureSuite(t,
		fixtureTest(t, "t1", nil,
			candidate{id: 1, kills: []m.MutantID{1, 2, 3}},
			candidate{id: 2, kills: []m.MutantID{3, 4}},
		),
		fixtureTest(t, "t2", nil,
			candidate{id: 3, kills: []m.MutantID{4, 5}, goals: []m.Goal{goal}},
			candidate{id: 4, kills: []m.MutantID{1}},
		),
	)
	idx := NewCandidateAssertionIndex(suite)

	sel := NewGreedySuiteSelector(SuiteWide, nil).Select(context.Background(), idx, nil)

	require.NotEmpty(t, sel.Steps)
	assert.Equal(t, 6, sel.Steps[0].PoolBefore)

	for i, st := range sel.Steps {
		assert.Less(t, st.PoolAfter, st.PoolBefore, "step %d", i)
		assert.Equal(t, st.Contribution, st.PoolBefore-st.PoolAfter, "step %d", i)

		if i > 0 {
			assert.Equal(t, sel.Steps[i-1].PoolAfter, st.PoolBefore, "step %d", i)
		}
	}

	assert.Zero(t, sel.Steps[len(sel.Steps)-1].PoolAfter)
	assert.Empty(t, sel.UnresolvedGoals)
}

func TestGreedySuiteSelector_Idempotent(t *testing.T) {
	suite := fixtureSuite(t,
		fixtureTest(t, "t1", nil,
			candidate{id: 1, kills: []m.MutantID{1, 2}},
			candidate{id: 2, kills: []m.MutantID{2}},
			candidate{id: 3},
		),
		fixtureTest(t, "t2", nil,
			candidate{id: 4, kills: []m.MutantID{2, 3}},
			candidate{id: 5, kills: []m.MutantID{3}},
		),
	)
	selector := NewGreedySuiteSelector(SuiteWide, nil)

	idx := NewCandidateAssertionIndex(suite)
	first := selector.Select(context.Background(), idx, nil)
	firstIDs := selectedIDs(first, idx)

	for _, tc := range suite.Tests() {
		var keep []*m.Assertion
		for _, id := range first.Assertions(tc.ID) {
			a, _ := idx.Assertion(id)
			keep = append(keep, a)
		}

		require.NoError(t, tc.SetAssertions(keep))
	}

	again := NewCandidateAssertionIndex(suite)
	second := selector.Select(context.Background(), again, nil)

	assert.Equal(t, firstIDs, selectedIDs(second, again))
}

func TestGreedySuiteSelector_SkipsExhaustedMutants(t *testing.T) {
	suite := fixtureSuite(t,
		fixtureTest(t, "t1", nil,
			candidate{id: 1, kills: []m.MutantID{1}},
			candidate{id: 2, kills: []m.MutantID{2}},
		),
	)
	exhausted := func(id m.MutantID) bool { return id == 2 }

	sel := NewGreedySuiteSelector(SuiteWide, nil).Select(context.Background(), NewCandidateAssertionIndex(suite), exhausted)

	assert.Equal(t, []m.AssertionID{1}, sel.Assertions("t1"))
	assert.False(t, sel.Contains(2))
}

func TestGreedySuiteSelector_Modes(t *testing.T) {
	goal := m.OutputGoal("Stack", "peek", "positive")
	build := func() *CandidateAssertionIndex {
		return NewCandidateAssertionIndex(fixtureSuite(t,
			fixtureTest(t, "t1", nil,
				candidate{id: 1, kills: []m.MutantID{1}},
				candidate{id: 2, goals: []m.Goal{goal}},
			),
		))
	}

	suiteWide := NewGreedySuiteSelector(SuiteWide, nil).Select(context.Background(), build(), nil)
	assert.Equal(t, []m.AssertionID{1, 2}, suiteWide.Assertions("t1"), "suite-wide selection covers goals")

	mutationOnly := NewGreedySuiteSelector(MutationOnly, nil).Select(context.Background(), build(), nil)
	assert.Equal(t, []m.AssertionID{1}, mutationOnly.Assertions("t1"))
}

func TestGreedySuiteSelector_CustomStages(t *testing.T) {
	build := func() *CandidateAssertionIndex {
		return NewCandidateAssertionIndex(fixtureSuite(t,
			fixtureTest(t, "t1", nil, candidate{id: 1, kills: []m.MutantID{1, 2, 3}}),
			fixtureTest(t, "t2", nil,
				candidate{id: 2, kills: []m.MutantID{4}},
				candidate{id: 3, kills: []m.MutantID{1, 2, 3}},
			),
		))
	}

	byDefault := NewGreedySuiteSelector(SuiteWide, nil).Select(context.Background(), build(), nil)
	assert.Equal(t, m.AssertionID(2), byDefault.Steps[0].Assertion)

	stages, err := ParseStages([]string{StageContribution})
	require.NoError(t, err)

	byContribution := NewGreedySuiteSelector(SuiteWide, stages).Select(context.Background(), build(), nil)
	assert.Equal(t, m.AssertionID(1), byContribution.Steps[0].Assertion)
	assert.Equal(t, 2, byContribution.Len())
}

func TestGreedySuiteSelector_EmptyIndex(t *testing.T) {
	suite := fixtureSuite(t, fixtureTest(t, "t1", nil, candidate{id: 1}))

	sel := NewGreedySuiteSelector(SuiteWide, nil).Select(context.Background(), NewCandidateAssertionIndex(suite), nil)

	assert.Zero(t, sel.Len())
	assert.Empty(t, sel.Steps)
	assert.Empty(t, sel.Assertions("t1"))
}

func TestBetter(t *testing.T) {
	stages := DefaultStages(SuiteWide)

	assert.True(t, better(CandidateStats{SuiteUnique: 2}, CandidateStats{SuiteUnique: 1, LocalUnique: 9}, stages))
	assert.True(t, better(CandidateStats{TestLoad: 0, LocalUnique: 1}, CandidateStats{TestLoad: 1, LocalUnique: 5}, stages))
	assert.False(t, better(CandidateStats{Contribution: 9}, CandidateStats{Contribution: 1}, stages), "contribution is not a suite-wide stage")
	assert.False(t, better(CandidateStats{}, CandidateStats{}, stages), "equal stats do not win")
}

func TestGoalDistance(t *testing.T) {
	registry := m.NewMutantRegistry(
		m.Mutant{ID: 1, Location: m.Location{Owner: "Stack", Method: "push", Line: 10}},
		m.Mutant{ID: 2, Location: m.Location{Owner: "Stack", Method: "pop", Line: 20}},
	)

	killsOne := m.NewAssertion(1, 0, m.AssertPrimitive, "v", "", "1")
	killsOne.AddKilledMutant(1)

	killsNothing := m.NewAssertion(2, 0, m.AssertPrimitive, "v", "", "1")

	related := m.NewAssertion(3, 0, m.AssertPrimitive, "v", "", "1")
	related.AddRelatedGoal(m.MethodGoal("Stack", "size"))

	mutantTwo, _ := registry.Lookup(2)

	tests := []struct {
		name     string
		a        *m.Assertion
		goal     m.Goal
		expected int
	}{
		{"line below", killsOne, m.LineGoal("Stack", "push", 12), 2},
		{"line above is absolute", killsOne, m.LineGoal("Stack", "push", 7), 3},
		{"branch on the mutated line", killsOne, m.BranchGoal("Stack", "push", 10, 1, true), 0},
		{"mutation goal detected", killsOne, m.MutationGoal(m.Mutant{ID: 1, Location: m.Location{Line: 10}}), 0},
		{"mutation goal elsewhere", killsOne, m.MutationGoal(mutantTwo), 10},
		{"mutation goal located by registry", killsOne, m.Goal{Kind: m.GoalMutation, Mutant: 2}, 10},
		{"mutation goal unknown mutant uses goal line", killsOne, m.Goal{Kind: m.GoalMutation, Mutant: 9, Line: 14}, 4},
		{"method with killed mutant", killsOne, m.MethodGoal("Stack", "push"), 0},
		{"method without killed mutant", killsOne, m.MethodGoal("Stack", "pop"), Unreachable},
		{"exception in method", killsOne, m.ExceptionGoal("Stack", "push", "IllegalStateException"), 0},
		{"no kills", killsNothing, m.LineGoal("Stack", "push", 10), Unreachable},
		{"related goal", related, m.MethodGoal("Stack", "size"), 0},
		{"unknown kind", killsOne, m.Goal{Kind: "weird"}, Unreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GoalDistance(registry, tt.a, tt.goal))
		})
	}
}

func TestGoalDistance_MutationGoalWithoutLine(t *testing.T) {
	registry := m.NewMutantRegistry(
		m.Mutant{ID: 5, Location: m.Location{Owner: "Stack", Method: "pop", Line: 40}},
		m.Mutant{ID: 6, Location: m.Location{Owner: "Stack", Method: "pop", Line: 41}},
		m.Mutant{ID: 7, Location: m.Location{Owner: "Stack", Method: "push", Line: 3}},
	)
	goal := m.Goal{Kind: m.GoalMutation, Mutant: 5}

	near := m.NewAssertion(1, 0, m.AssertPrimitive, "v", "", "1")
	near.AddKilledMutant(6)

	far := m.NewAssertion(2, 0, m.AssertPrimitive, "v", "", "1")
	far.AddKilledMutant(7)

	assert.Equal(t, 1, GoalDistance(registry, near, goal))
	assert.Equal(t, 37, GoalDistance(registry, far, goal))
}

func TestGoalRescuePass_AddsClosestAssertion(t *testing.T) {
	// Arrange
	registry := m.NewMutantRegistry(
		m.Mutant{ID: 1, Location: m.Location{Owner: "Stack", Method: "push", Line: 10}},
		m.Mutant{ID: 3, Location: m.Location{Owner: "Stack", Method: "peek", Line: 27}},
	)
	goal := m.LineGoal("Stack", "peek", 30)

	suite := fixtureSuite(t,
		fixtureTest(t, "t1", []m.Goal{goal, m.MethodGoal("Stack", "size")},
			candidate{id: 1, kills: []m.MutantID{1}},
			candidate{id: 2, kills: []m.MutantID{3}},
			candidate{id: 3, kills: []m.MutantID{1}},
		),
		fixtureTest(t, "t2", []m.Goal{m.LineGoal("Stack", "push", 10)},
			candidate{id: 4, kills: []m.MutantID{1, 3}},
		),
	)
	idx := NewCandidateAssertionIndex(suite)
	sel := NewGreedySuiteSelector(MutationOnly, nil).Select(context.Background(), idx, nil)
	require.Equal(t, []m.AssertionID{4}, stepIDs(sel))
	require.Empty(t, sel.Assertions("t1"), "the goal has no surviving assertion")

	rescue := NewGoalRescuePass(registry)

	// Act
	added := rescue.Rescue(context.Background(), suite.Tests(), idx, sel)

	// Assert
	assert.Equal(t, 1, added)
	assert.Equal(t, []m.AssertionID{2}, sel.Assertions("t1"))
	assert.Equal(t, []m.AssertionID{2}, sel.Rescued("t1"))
	assert.Empty(t, sel.Rescued("t2"))
	assert.Len(t, sel.Steps, 1, "rescued assertions are not greedy steps")

	assert.Zero(t, rescue.Rescue(context.Background(), suite.Tests(), idx, sel), "a second pass adds nothing")
}
