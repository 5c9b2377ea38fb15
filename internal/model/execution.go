package model

// TraceEntry is one observed value at a statement position.
type TraceEntry struct {
	Position int
	Source   string
	Key      string // inspector or observed property, empty for the value itself
	Value    string
}

// Trace is the sequence of observations one observer recorded during a run.
type Trace struct {
	Observer string
	Entries  []TraceEntry
}

// ExecutionResult is the outcome of running a test against one program variant.
type ExecutionResult struct {
	Timeout        bool
	Exception      bool
	TouchedMutants []MutantID
	Traces         []Trace
}

// Trace returns the trace recorded by observer.
func (r ExecutionResult) Trace(observer string) (Trace, bool) {
	for _, tr := range r.Traces {
		if tr.Observer == observer {
			return tr, true
		}
	}

	return Trace{}, false
}
