package model

import (
	"fmt"
	"strings"
)

// GoalKind is the category of a coverage goal.
type GoalKind string

const (
	// GoalLine is satisfied when a source line executes.
	GoalLine GoalKind = "line"
	// GoalBranch is satisfied when a branch evaluates to a given outcome.
	GoalBranch GoalKind = "branch"
	// GoalException is satisfied when a method raises a given exception type.
	GoalException GoalKind = "exception"
	// GoalMutation is satisfied when a specific mutant is detected.
	GoalMutation GoalKind = "mutation"
	// GoalOutput is satisfied when a method returns a value of a given class.
	GoalOutput GoalKind = "output"
	// GoalMethod is satisfied when a method is called.
	GoalMethod GoalKind = "method"
	// GoalMethodNoException is satisfied when a method returns normally.
	GoalMethodNoException GoalKind = "method_no_exception"
)

// GoalKinds lists every supported kind.
var GoalKinds = []GoalKind{
	GoalLine, GoalBranch, GoalException, GoalMutation, GoalOutput, GoalMethod, GoalMethodNoException,
}

// Valid reports whether k is a supported kind.
func (k GoalKind) Valid() bool {
	for _, kind := range GoalKinds {
		if kind == k {
			return true
		}
	}

	return false
}

// Goal is an abstract coverage target. Goals compare structurally: two goals
// with the same fields are the same goal, so Goal can be used as a map key.
type Goal struct {
	Kind    GoalKind
	Owner   string
	Method  string
	Line    int
	Branch  int      // branch id for GoalBranch
	Outcome bool     // expected branch outcome for GoalBranch
	Mutant  MutantID // target mutant for GoalMutation
	Detail  string   // exception type for GoalException, value class for GoalOutput
}

// LineGoal targets a source line.
func LineGoal(owner, method string, line int) Goal {
	return Goal{Kind: GoalLine, Owner: owner, Method: method, Line: line}
}

// BranchGoal targets one outcome of a branch.
func BranchGoal(owner, method string, line, branch int, outcome bool) Goal {
	return Goal{Kind: GoalBranch, Owner: owner, Method: method, Line: line, Branch: branch, Outcome: outcome}
}

// ExceptionGoal targets a method raising exceptionType.
func ExceptionGoal(owner, method, exceptionType string) Goal {
	return Goal{Kind: GoalException, Owner: owner, Method: method, Detail: exceptionType}
}

// MutationGoal targets the detection of mt.
func MutationGoal(mt Mutant) Goal {
	return Goal{
		Kind:   GoalMutation,
		Owner:  mt.Location.Owner,
		Method: mt.Location.Method,
		Line:   mt.Location.Line,
		Mutant: mt.ID,
	}
}

// OutputGoal targets a method returning a value described by valueClass.
func OutputGoal(owner, method, valueClass string) Goal {
	return Goal{Kind: GoalOutput, Owner: owner, Method: method, Detail: valueClass}
}

// MethodGoal targets a method being called.
func MethodGoal(owner, method string) Goal {
	return Goal{Kind: GoalMethod, Owner: owner, Method: method}
}

// MethodNoExceptionGoal targets a method returning normally.
func MethodNoExceptionGoal(owner, method string) Goal {
	return Goal{Kind: GoalMethodNoException, Owner: owner, Method: method}
}

// Key renders a stable, human readable identity for the goal.
func (g Goal) Key() string {
	var b strings.Builder

	b.WriteString(string(g.Kind))
	b.WriteByte(':')
	b.WriteString(g.Owner)

	if g.Method != "" {
		b.WriteByte('.')
		b.WriteString(g.Method)
	}

	switch g.Kind {
	case GoalLine:
		fmt.Fprintf(&b, ":%d", g.Line)
	case GoalBranch:
		fmt.Fprintf(&b, ":%d#%d=%t", g.Line, g.Branch, g.Outcome)
	case GoalMutation:
		fmt.Fprintf(&b, ":%d@%d", g.Mutant, g.Line)
	case GoalException, GoalOutput:
		b.WriteByte(':')
		b.WriteString(g.Detail)
	case GoalMethod, GoalMethodNoException:
	}

	return b.String()
}

func (g Goal) String() string {
	return g.Key()
}
