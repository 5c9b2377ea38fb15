package model

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownStatement is returned when an assertion is bound to a statement
// position the test does not have.
var ErrUnknownStatement = errors.New("assertion bound to unknown statement")

// TestID identifies a test case inside a suite.
type TestID string

// StatementKind is the shape of a test statement.
type StatementKind string

const (
	// StatementMethod is a method call.
	StatementMethod StatementKind = "method"
	// StatementConstructor is a constructor call.
	StatementConstructor StatementKind = "constructor"
	// StatementPrimitive declares a primitive value.
	StatementPrimitive StatementKind = "primitive"
	// StatementAssignment assigns to a field or array slot.
	StatementAssignment StatementKind = "assignment"
	// StatementField reads a field.
	StatementField StatementKind = "field"
)

// Statement is one step of a test.
type Statement struct {
	Position int
	Kind     StatementKind
	Owner    string // declaring type of the called member
	Method   string
}

// TestCase is an ordered list of statements with attached assertions.
type TestCase struct {
	ID   TestID
	Name string

	statements []Statement
	assertions []*Assertion
	goals      []Goal
	lastResult *ExecutionResult
}

// NewTestCase builds a test case. Statement positions are taken as given;
// goals are deduplicated structurally.
func NewTestCase(id TestID, name string, statements []Statement, goals []Goal) *TestCase {
	tc := &TestCase{
		ID:         id,
		Name:       name,
		statements: slices.Clone(statements),
	}

	tc.goals = NewOrderedSet(goals...).Items()

	return tc
}

// Statements returns a copy of the statements.
func (tc *TestCase) Statements() []Statement {
	return slices.Clone(tc.statements)
}

// Statement returns the statement at position.
func (tc *TestCase) Statement(position int) (Statement, bool) {
	for _, st := range tc.statements {
		if st.Position == position {
			return st, true
		}
	}

	return Statement{}, false
}

// IsEmpty reports whether the test has no statements.
func (tc *TestCase) IsEmpty() bool {
	return len(tc.statements) == 0
}

// CoveredGoals returns a copy of the goals this test covers.
func (tc *TestCase) CoveredGoals() []Goal {
	return slices.Clone(tc.goals)
}

// Assertions returns the attached assertions in their stable order.
func (tc *TestCase) Assertions() []*Assertion {
	return slices.Clone(tc.assertions)
}

// AddAssertion attaches a candidate assertion.
func (tc *TestCase) AddAssertion(a *Assertion) error {
	if _, ok := tc.Statement(a.Position); !ok {
		return fmt.Errorf("test %s: assertion %d at position %d: %w", tc.ID, a.ID, a.Position, ErrUnknownStatement)
	}

	tc.assertions = append(tc.assertions, a)
	slices.SortStableFunc(tc.assertions, CompareAssertions)

	return nil
}

// SetAssertions replaces every attached assertion with list. Nothing changes
// when any assertion is bound to an unknown statement.
func (tc *TestCase) SetAssertions(list []*Assertion) error {
	for _, a := range list {
		if _, ok := tc.Statement(a.Position); !ok {
			return fmt.Errorf("test %s: assertion %d at position %d: %w", tc.ID, a.ID, a.Position, ErrUnknownStatement)
		}
	}

	next := slices.Clone(list)
	slices.SortStableFunc(next, CompareAssertions)
	next = slices.CompactFunc(next, func(a, b *Assertion) bool { return a.ID == b.ID })
	tc.assertions = next

	return nil
}

// LastResult returns the result of the last run against the original program.
func (tc *TestCase) LastResult() (ExecutionResult, bool) {
	if tc.lastResult == nil {
		return ExecutionResult{}, false
	}

	return *tc.lastResult, true
}

// SetLastResult caches the result of a run against the original program.
func (tc *TestCase) SetLastResult(result ExecutionResult) {
	tc.lastResult = &result
}
