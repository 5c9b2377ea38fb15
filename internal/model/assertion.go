package model

import "fmt"

// AssertionID is a stable identity token for an assertion. Ids are unique
// across a suite and define the total order of assertions.
type AssertionID int

// AssertionKind is the shape of the check an assertion performs.
type AssertionKind string

const (
	// AssertPrimitive checks a primitive value returned by a statement.
	AssertPrimitive AssertionKind = "primitive"
	// AssertInspector checks the result of an inspector call on an object.
	AssertInspector AssertionKind = "inspector"
	// AssertEquals checks equality between two objects.
	AssertEquals AssertionKind = "equals"
	// AssertNull checks for a nil/null reference.
	AssertNull AssertionKind = "null"
	// AssertCompare checks the ordering of two values.
	AssertCompare AssertionKind = "compare"
	// AssertSameObject checks reference identity.
	AssertSameObject AssertionKind = "same_object"
)

// Assertion is a single behavioral check bound to one statement. Its kill set
// and related-goal set only grow until minimization.
type Assertion struct {
	ID        AssertionID
	Position  int // statement position the check is attached to
	Kind      AssertionKind
	Source    string // observed variable
	Inspector string // observed accessor, empty for direct value checks
	Value     string // expected value as observed on the original program

	killed  OrderedSet[MutantID]
	related OrderedSet[Goal]
}

// NewAssertion constructs an assertion with empty kill and goal sets.
func NewAssertion(id AssertionID, position int, kind AssertionKind, source, inspector, value string) *Assertion {
	return &Assertion{
		ID:        id,
		Position:  position,
		Kind:      kind,
		Source:    source,
		Inspector: inspector,
		Value:     value,
	}
}

// AddKilledMutant records that this assertion detects id.
func (a *Assertion) AddKilledMutant(id MutantID) {
	a.killed.Add(id)
}

// KilledMutants returns the detected mutants in discovery order.
func (a *Assertion) KilledMutants() []MutantID {
	return a.killed.Items()
}

// Kills reports whether the assertion detects id.
func (a *Assertion) Kills(id MutantID) bool {
	return a.killed.Contains(id)
}

// AddRelatedGoal records that this assertion evidences g.
func (a *Assertion) AddRelatedGoal(g Goal) {
	a.related.Add(g)
}

// RelatedGoals returns the evidenced goals in discovery order.
func (a *Assertion) RelatedGoals() []Goal {
	return a.related.Items()
}

// Relates reports whether the assertion evidences g.
func (a *Assertion) Relates(g Goal) bool {
	return a.related.Contains(g)
}

func (a *Assertion) String() string {
	if a.Inspector != "" {
		return fmt.Sprintf("#%d@%d %s %s.%s == %s", a.ID, a.Position, a.Kind, a.Source, a.Inspector, a.Value)
	}

	return fmt.Sprintf("#%d@%d %s %s == %s", a.ID, a.Position, a.Kind, a.Source, a.Value)
}

// CompareAssertions orders assertions by id. It is the single stable total
// order used wherever assertions are iterated.
func CompareAssertions(a, b *Assertion) int {
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	default:
		return 0
	}
}
