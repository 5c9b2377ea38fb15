package domain

import (
	"slices"

	m "gooze.dev/pkg/winnow/internal/model"
	pkg "gooze.dev/pkg/winnow/pkg"
)

// ScoreResult is the realized mutation score of a selection.
type ScoreResult struct {
	Score  float64
	Known  int
	Killed []m.MutantID
	Live   []m.MutantID
}

// ReconcileScore computes |killed by a retained assertion ∪ exhausted| over
// |known mutants|. With no known mutants the score is 1.
func ReconcileScore(registry *m.MutantRegistry, retained []*m.Assertion, exhausted func(m.MutantID) bool) ScoreResult {
	killedBy := m.NewOrderedSet[m.MutantID]()
	for _, a := range retained {
		for _, id := range a.KilledMutants() {
			killedBy.Add(id)
		}
	}

	result := ScoreResult{Known: registry.Len()}

	for _, id := range registry.IDs() {
		if killedBy.Contains(id) || (exhausted != nil && exhausted(id)) {
			result.Killed = append(result.Killed, id)
			continue
		}

		result.Live = append(result.Live, id)
	}

	if result.Known == 0 {
		result.Score = 1.0
		return result
	}

	result.Score = float64(len(result.Killed)) / float64(result.Known)

	return result
}

// verdictSummaryFromJournal counts journaled outcomes by status.
func verdictSummaryFromJournal(journal pkg.FileSpill[m.MutantOutcome]) (m.VerdictSummary, error) {
	summary := m.VerdictSummary{}

	err := journal.Range(func(_ uint64, outcome m.MutantOutcome) error {
		summary[outcome.Status]++
		return nil
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// verdictSummary counts outcomes held in memory.
func verdictSummary(verdicts []m.TestVerdict) m.VerdictSummary {
	summary := m.VerdictSummary{}

	for _, v := range verdicts {
		for _, o := range v.Outcomes {
			summary[o.Status]++
		}
	}

	return summary
}

func sortedMutants(ids []m.MutantID) []m.MutantID {
	out := slices.Clone(ids)
	slices.Sort(out)

	return out
}
