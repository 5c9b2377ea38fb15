package domain

import (
	"log/slog"
	"sort"
	"sync"

	m "gooze.dev/pkg/winnow/internal/model"
)

// MutantLedger tracks per-mutant timeout and exception counts across passes.
// A mutant is never removed, only disabled.
type MutantLedger interface {
	RecordTimeout(id m.MutantID) m.LedgerState
	RecordException(id m.MutantID) m.LedgerState
	Disable(id m.MutantID)
	IsDisabled(id m.MutantID) bool
	Exhausted(id m.MutantID) bool
	State(id m.MutantID) m.LedgerState
	Snapshot() []m.LedgerState
	Restore(states []m.LedgerState)
}

type mutantLedger struct {
	mu                 sync.Mutex
	timeoutThreshold   int
	exceptionThreshold int
	states             map[m.MutantID]*m.LedgerState
}

// NewMutantLedger returns an empty ledger. A threshold of zero or less never
// exhausts a mutant.
func NewMutantLedger(timeoutThreshold, exceptionThreshold int) MutantLedger {
	return &mutantLedger{
		timeoutThreshold:   timeoutThreshold,
		exceptionThreshold: exceptionThreshold,
		states:             make(map[m.MutantID]*m.LedgerState),
	}
}

func (l *mutantLedger) entry(id m.MutantID) *m.LedgerState {
	st, ok := l.states[id]
	if !ok {
		st = &m.LedgerState{Mutant: id}
		l.states[id] = st
	}

	return st
}

func (l *mutantLedger) RecordTimeout(id m.MutantID) m.LedgerState {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := l.entry(id)
	st.Timeouts++

	if reached(st.Timeouts, l.timeoutThreshold) && !st.Disabled {
		st.Disabled = true
		slog.Debug("mutant disabled after timeouts", "mutant", id, "timeouts", st.Timeouts)
	}

	return *st
}

func (l *mutantLedger) RecordException(id m.MutantID) m.LedgerState {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := l.entry(id)
	st.Exceptions++

	if reached(st.Exceptions, l.exceptionThreshold) && !st.Disabled {
		st.Disabled = true
		slog.Debug("mutant disabled after exceptions", "mutant", id, "exceptions", st.Exceptions)
	}

	return *st
}

func (l *mutantLedger) Disable(id m.MutantID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entry(id).Disabled = true
}

func (l *mutantLedger) IsDisabled(id m.MutantID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	st, ok := l.states[id]

	return ok && st.Disabled
}

func (l *mutantLedger) Exhausted(id m.MutantID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	st, ok := l.states[id]
	if !ok {
		return false
	}

	return st.Disabled ||
		reached(st.Timeouts, l.timeoutThreshold) ||
		reached(st.Exceptions, l.exceptionThreshold)
}

func (l *mutantLedger) State(id m.MutantID) m.LedgerState {
	l.mu.Lock()
	defer l.mu.Unlock()

	if st, ok := l.states[id]; ok {
		return *st
	}

	return m.LedgerState{Mutant: id}
}

func (l *mutantLedger) Snapshot() []m.LedgerState {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]m.LedgerState, 0, len(l.states))
	for _, st := range l.states {
		out = append(out, *st)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Mutant < out[j].Mutant })

	return out
}

// Restore merges persisted states into the ledger, replacing any entry with
// the same mutant id.
func (l *mutantLedger) Restore(states []m.LedgerState) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, st := range states {
		cp := st
		l.states[st.Mutant] = &cp
	}
}

func reached(count, threshold int) bool {
	return threshold > 0 && count >= threshold
}
