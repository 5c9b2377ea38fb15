package domain

import (
	m "gooze.dev/pkg/winnow/internal/model"
)

// AttributeOutputGoals relates every output goal covered by tc to the
// primitive-value assertions of tc that observe a call to the goal's method.
// It returns the number of relations added.
func AttributeOutputGoals(tc *m.TestCase) int {
	added := 0

	for _, g := range tc.CoveredGoals() {
		if g.Kind != m.GoalOutput {
			continue
		}

		for _, a := range tc.Assertions() {
			if a.Kind != m.AssertPrimitive || a.Relates(g) {
				continue
			}

			st, ok := tc.Statement(a.Position)
			if !ok || st.Kind != m.StatementMethod {
				continue
			}

			if st.Owner == g.Owner && st.Method == g.Method {
				a.AddRelatedGoal(g)
				added++
			}
		}
	}

	return added
}
