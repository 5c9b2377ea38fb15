package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/pmezard/go-difflib/difflib"

	m "gooze.dev/pkg/winnow/internal/model"
)

// Comparison is what an Oracle reports for one pair of runs.
type Comparison struct {
	Diverged  bool
	Detecting []m.AssertionID // assertions of the test that observe the divergence
}

// Oracle compares the original and mutant runs of a test.
type Oracle interface {
	Compare(tc *m.TestCase, original, mutant m.ExecutionResult) Comparison
}

// TraceOracle compares recorded observation traces. An assertion detects a
// mutant when the mutant run observed a different value for the assertion's
// position, source and inspector than the one the assertion expects.
type TraceOracle struct{}

// NewTraceOracle constructs a TraceOracle.
func NewTraceOracle() *TraceOracle {
	return &TraceOracle{}
}

type observationKey struct {
	position int
	source   string
	key      string
}

// Compare implements Oracle.
func (o *TraceOracle) Compare(tc *m.TestCase, original, mutant m.ExecutionResult) Comparison {
	observed := make(map[observationKey]string)

	for _, tr := range mutant.Traces {
		for _, e := range tr.Entries {
			observed[observationKey{e.Position, e.Source, e.Key}] = e.Value
		}
	}

	var cmp Comparison

	for _, a := range tc.Assertions() {
		value, ok := observed[observationKey{a.Position, a.Source, a.Inspector}]
		if ok && value != a.Value {
			cmp.Detecting = append(cmp.Detecting, a.ID)
		}
	}

	cmp.Diverged = len(cmp.Detecting) > 0 || tracesDiffer(tc.ID, original, mutant)

	return cmp
}

func tracesDiffer(test m.TestID, original, mutant m.ExecutionResult) bool {
	differ := false

	for _, orig := range original.Traces {
		mut, ok := mutant.Trace(orig.Observer)
		if !ok {
			continue
		}

		a, b := renderTrace(orig), renderTrace(mut)
		if slices.Equal(a, b) {
			continue
		}

		differ = true

		if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
			diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        a,
				B:        b,
				FromFile: "original",
				ToFile:   "mutant",
				Context:  1,
			})
			if err == nil {
				slog.Debug("Trace diverged", "test", test, "observer", orig.Observer, "diff", diff)
			}
		}
	}

	return differ
}

func renderTrace(tr m.Trace) []string {
	lines := make([]string, 0, len(tr.Entries))
	for _, e := range tr.Entries {
		if e.Key != "" {
			lines = append(lines, fmt.Sprintf("%d %s.%s = %s\n", e.Position, e.Source, e.Key, e.Value))
			continue
		}

		lines = append(lines, fmt.Sprintf("%d %s = %s\n", e.Position, e.Source, e.Value))
	}

	return lines
}
