package domain

import (
	"log/slog"

	m "gooze.dev/pkg/winnow/internal/model"
)

// FilterRedundantTests drops every test whose covered goals are all covered
// by the other surviving tests. Tests are considered in suite order and each
// decision is made against the tests still surviving, so the union of
// covered goals never changes.
func FilterRedundantTests(tests []*m.TestCase) ([]*m.TestCase, []m.TestID) {
	coverage := make(map[m.Goal]int)

	for _, tc := range tests {
		for _, g := range tc.CoveredGoals() {
			coverage[g]++
		}
	}

	kept := make([]*m.TestCase, 0, len(tests))

	var dropped []m.TestID

	for _, tc := range tests {
		goals := tc.CoveredGoals()

		exclusive := 0
		for _, g := range goals {
			if coverage[g] == 1 {
				exclusive++
			}
		}

		if exclusive > 0 {
			kept = append(kept, tc)
			continue
		}

		for _, g := range goals {
			coverage[g]--
		}

		dropped = append(dropped, tc.ID)
		droppedTests.Inc()
		slog.Debug("Dropping test without exclusive goals", "test", tc.ID, "goals", len(goals))
	}

	return kept, dropped
}

// ExclusiveGoals returns, per test, the goals no other test in tests covers.
func ExclusiveGoals(tests []*m.TestCase) map[m.TestID][]m.Goal {
	coverage := make(map[m.Goal]int)

	for _, tc := range tests {
		for _, g := range tc.CoveredGoals() {
			coverage[g]++
		}
	}

	out := make(map[m.TestID][]m.Goal, len(tests))

	for _, tc := range tests {
		for _, g := range tc.CoveredGoals() {
			if coverage[g] == 1 {
				out[tc.ID] = append(out[tc.ID], g)
			}
		}
	}

	return out
}
