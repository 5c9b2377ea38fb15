package model

import (
	"fmt"
	"slices"
)

// TestSuite is the ordered collection of tests minimized together.
type TestSuite struct {
	Name  string
	tests []*TestCase
}

// NewTestSuite builds a suite. Test ids and assertion ids must be unique.
func NewTestSuite(name string, tests ...*TestCase) (*TestSuite, error) {
	seenTests := make(map[TestID]struct{}, len(tests))
	seenAssertions := make(map[AssertionID]TestID)

	for _, tc := range tests {
		if _, ok := seenTests[tc.ID]; ok {
			return nil, fmt.Errorf("duplicate test id %q", tc.ID)
		}

		seenTests[tc.ID] = struct{}{}

		for _, a := range tc.assertions {
			if owner, ok := seenAssertions[a.ID]; ok {
				return nil, fmt.Errorf("assertion %d attached to both %s and %s", a.ID, owner, tc.ID)
			}

			seenAssertions[a.ID] = tc.ID
		}
	}

	return &TestSuite{Name: name, tests: slices.Clone(tests)}, nil
}

// Tests returns the tests in suite order.
func (s *TestSuite) Tests() []*TestCase {
	return slices.Clone(s.tests)
}

// Test returns the test with id.
func (s *TestSuite) Test(id TestID) (*TestCase, bool) {
	for _, tc := range s.tests {
		if tc.ID == id {
			return tc, true
		}
	}

	return nil, false
}

// Len returns the number of tests.
func (s *TestSuite) Len() int {
	return len(s.tests)
}

// Remove deletes the tests with the given ids, keeping the order of the rest.
func (s *TestSuite) Remove(ids ...TestID) {
	drop := NewOrderedSet(ids...)
	s.tests = slices.DeleteFunc(s.tests, func(tc *TestCase) bool { return drop.Contains(tc.ID) })
}

// Assertions returns every attached assertion in suite order, then assertion order.
func (s *TestSuite) Assertions() []*Assertion {
	var out []*Assertion
	for _, tc := range s.tests {
		out = append(out, tc.assertions...)
	}

	return out
}

// AssertionCount returns the number of assertions attached across the suite.
func (s *TestSuite) AssertionCount() int {
	total := 0
	for _, tc := range s.tests {
		total += len(tc.assertions)
	}

	return total
}
