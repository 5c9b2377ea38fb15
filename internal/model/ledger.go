package model

import "time"

// LedgerState is the bookkeeping kept for one mutant across passes.
type LedgerState struct {
	Mutant     MutantID
	Timeouts   int
	Exceptions int
	Disabled   bool
}

// RunRecord summarizes one minimization pass for the run history.
type RunRecord struct {
	ID         string
	Suite      string
	StartedAt  time.Time
	Score      float64
	Known      int
	Killed     int
	Candidates int
	Retained   int
	Dropped    int
}
