package domain

import (
	m "gooze.dev/pkg/winnow/internal/model"
)

// CandidateAssertionIndex is an immutable view of a suite's candidate
// assertions and what they cover. Every list is in suite order, then
// assertion order.
type CandidateAssertionIndex struct {
	tests      []m.TestID
	assertions []*m.Assertion
	byID       map[m.AssertionID]*m.Assertion
	owner      map[m.AssertionID]m.TestID
	perTest    map[m.TestID][]m.AssertionID
	kills      map[m.AssertionID][]m.MutantID
	goals      map[m.AssertionID][]m.Goal
	byMutant   map[m.MutantID][]m.AssertionID
	byGoal     map[m.Goal][]m.AssertionID
	mutants    []m.MutantID
	goalSet    []m.Goal
}

// NewCandidateAssertionIndex builds the index from the assertions currently
// attached to the suite's tests.
func NewCandidateAssertionIndex(suite *m.TestSuite) *CandidateAssertionIndex {
	idx := &CandidateAssertionIndex{
		byID:     make(map[m.AssertionID]*m.Assertion),
		owner:    make(map[m.AssertionID]m.TestID),
		perTest:  make(map[m.TestID][]m.AssertionID),
		kills:    make(map[m.AssertionID][]m.MutantID),
		goals:    make(map[m.AssertionID][]m.Goal),
		byMutant: make(map[m.MutantID][]m.AssertionID),
		byGoal:   make(map[m.Goal][]m.AssertionID),
	}

	mutants := m.NewOrderedSet[m.MutantID]()
	goals := m.NewOrderedSet[m.Goal]()

	for _, tc := range suite.Tests() {
		idx.tests = append(idx.tests, tc.ID)
		idx.perTest[tc.ID] = nil

		for _, a := range tc.Assertions() {
			idx.assertions = append(idx.assertions, a)
			idx.byID[a.ID] = a
			idx.owner[a.ID] = tc.ID
			idx.perTest[tc.ID] = append(idx.perTest[tc.ID], a.ID)

			killed := a.KilledMutants()
			idx.kills[a.ID] = killed

			for _, id := range killed {
				idx.byMutant[id] = append(idx.byMutant[id], a.ID)
				mutants.Add(id)
			}

			related := a.RelatedGoals()
			idx.goals[a.ID] = related

			for _, g := range related {
				idx.byGoal[g] = append(idx.byGoal[g], a.ID)
				goals.Add(g)
			}
		}
	}

	idx.mutants = mutants.Items()
	idx.goalSet = goals.Items()

	return idx
}

// Tests returns the indexed test ids in suite order.
func (idx *CandidateAssertionIndex) Tests() []m.TestID {
	return append([]m.TestID(nil), idx.tests...)
}

// Assertions returns every candidate in the stable iteration order.
func (idx *CandidateAssertionIndex) Assertions() []*m.Assertion {
	return append([]*m.Assertion(nil), idx.assertions...)
}

// Assertion returns the candidate with id.
func (idx *CandidateAssertionIndex) Assertion(id m.AssertionID) (*m.Assertion, bool) {
	a, ok := idx.byID[id]
	return a, ok
}

// TestOf returns the test owning assertion id.
func (idx *CandidateAssertionIndex) TestOf(id m.AssertionID) m.TestID {
	return idx.owner[id]
}

// TestAssertions returns the candidates of test in assertion order.
func (idx *CandidateAssertionIndex) TestAssertions(test m.TestID) []m.AssertionID {
	return append([]m.AssertionID(nil), idx.perTest[test]...)
}

// Kills returns the mutants assertion id detects.
func (idx *CandidateAssertionIndex) Kills(id m.AssertionID) []m.MutantID {
	return idx.kills[id]
}

// Goals returns the goals assertion id evidences.
func (idx *CandidateAssertionIndex) Goals(id m.AssertionID) []m.Goal {
	return idx.goals[id]
}

// MutantCoverers returns the assertions that detect mutant id.
func (idx *CandidateAssertionIndex) MutantCoverers(id m.MutantID) []m.AssertionID {
	return idx.byMutant[id]
}

// GoalCoverers returns the assertions that evidence g.
func (idx *CandidateAssertionIndex) GoalCoverers(g m.Goal) []m.AssertionID {
	return idx.byGoal[g]
}

// Mutants returns every mutant detected by some candidate, in discovery order.
func (idx *CandidateAssertionIndex) Mutants() []m.MutantID {
	return append([]m.MutantID(nil), idx.mutants...)
}

// GoalUniverse returns every goal evidenced by some candidate, in discovery order.
func (idx *CandidateAssertionIndex) GoalUniverse() []m.Goal {
	return append([]m.Goal(nil), idx.goalSet...)
}

// Len returns the number of candidates.
func (idx *CandidateAssertionIndex) Len() int {
	return len(idx.assertions)
}
