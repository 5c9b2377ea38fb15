package model

// MutantStatus is the outcome of evaluating one mutant against one test.
type MutantStatus int

const (
	// Killed indicates the test detected the mutant.
	Killed MutantStatus = iota
	// Survived indicates the mutant ran and no divergence was observed.
	Survived
	// PreKilled indicates the mutant was disabled or exhausted a threshold and was not run.
	PreKilled
	// Unresolved indicates the budget or cap stopped evaluation before the mutant ran.
	Unresolved
	// Failed indicates the harness failed while running the mutant.
	Failed
)

func (s MutantStatus) String() string {
	switch s {
	case Killed:
		return "killed"
	case Survived:
		return "survived"
	case PreKilled:
		return "pre_killed"
	case Unresolved:
		return "unresolved"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// MutantOutcome is the verdict for a single mutant in a single test.
type MutantOutcome struct {
	Test      TestID
	Mutant    MutantID
	Status    MutantStatus
	Timeout   bool
	Exception bool
	Detecting []AssertionID // assertions whose comparison detected the divergence
}

// TestVerdict collects the outcomes of one scheduler pass over a test.
type TestVerdict struct {
	Test     TestID
	Skipped  bool // original run unusable, no mutant was considered
	Outcomes []MutantOutcome
}

// Killed returns the ids of mutants killed or pre-killed by the test.
func (v TestVerdict) Killed() []MutantID {
	var out []MutantID

	for _, o := range v.Outcomes {
		if o.Status == Killed || o.Status == PreKilled {
			out = append(out, o.Mutant)
		}
	}

	return out
}

// Count returns the number of outcomes with status.
func (v TestVerdict) Count(status MutantStatus) int {
	n := 0

	for _, o := range v.Outcomes {
		if o.Status == status {
			n++
		}
	}

	return n
}

// SelectionStep records one committed greedy choice.
type SelectionStep struct {
	Assertion    AssertionID
	Test         TestID
	SuiteUnique  int
	TestLoad     int
	LocalUnique  int
	Contribution int
	PoolBefore   int
	PoolAfter    int
}

// TestSelection is the final set of assertions retained for one test.
type TestSelection struct {
	Test       TestID
	Assertions []AssertionID
	Rescued    []AssertionID // subset added by goal rescue
}

// VerdictSummary counts mutant outcomes across a pass.
type VerdictSummary map[MutantStatus]int

// Report is everything a minimization pass produces.
type Report struct {
	RunID             string
	Suite             string
	Score             float64
	KnownMutants      int
	KilledMutants     []MutantID
	LiveMutants       []MutantID
	UnresolvedMutants []MutantID // left in the selection pool with no covering assertion
	UncoveredGoals    []Goal
	DroppedTests      []TestID
	Selections        []TestSelection
	Steps             []SelectionStep
	Verdicts          VerdictSummary
	CandidateCount    int
	RetainedCount     int
}
