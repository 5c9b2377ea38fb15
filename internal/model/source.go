package model

// Path represents a file system path.
type Path string

// RecordedRun is a captured execution of a test against one program variant.
type RecordedRun struct {
	Result ExecutionResult
	Err    string // non-empty when the harness failed
}

// Recording holds every captured run of one test.
type Recording struct {
	Original *RecordedRun // nil when the original run was not captured
	Mutants  map[MutantID]RecordedRun
}

// SuiteSource is a loaded suite file: the tests it describes, the mutants
// they were recorded against and the captured runs used for replay.
type SuiteSource struct {
	Path       Path
	Suite      *TestSuite
	Registry   *MutantRegistry
	Recordings map[TestID]Recording
}
