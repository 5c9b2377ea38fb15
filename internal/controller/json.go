package controller

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	m "gooze.dev/pkg/winnow/internal/model"
)

// SchemaVersion is the version stamped on every JSON document.
const SchemaVersion = "1.0.0"

// JSONUI implements UI by writing one indented JSON document per display call.
type JSONUI struct {
	cmd  *cobra.Command
	mode StartMode
}

// NewJSONUI creates a new JSONUI.
func NewJSONUI(cmd *cobra.Command) *JSONUI {
	return &JSONUI{cmd: cmd}
}

type jsonDocument struct {
	Version    string            `json:"version"`
	Mode       string            `json:"mode"`
	Estimation []jsonEstimation  `json:"estimation,omitempty"`
	Report     *jsonReport       `json:"report,omitempty"`
	Ledger     []jsonLedgerState `json:"ledger,omitempty"`
	Runs       []jsonRun         `json:"runs,omitempty"`
	Error      string            `json:"error,omitempty"`
}

type jsonEstimation struct {
	Suite      string `json:"suite"`
	Path       string `json:"path"`
	Tests      int    `json:"tests"`
	Assertions int    `json:"assertions"`
	Mutants    int    `json:"mutants"`
}

type jsonReport struct {
	RunID             string          `json:"run_id"`
	Suite             string          `json:"suite"`
	Score             float64         `json:"score"`
	KnownMutants      int             `json:"known_mutants"`
	KilledMutants     []int           `json:"killed_mutants"`
	LiveMutants       []int           `json:"live_mutants"`
	UnresolvedMutants []int           `json:"unresolved_mutants"`
	UncoveredGoals    []string        `json:"uncovered_goals"`
	DroppedTests      []string        `json:"dropped_tests"`
	Selections        []jsonSelection `json:"selections"`
	Steps             []jsonStep      `json:"steps"`
	Verdicts          map[string]int  `json:"verdicts"`
	CandidateCount    int             `json:"candidate_count"`
	RetainedCount     int             `json:"retained_count"`
}

type jsonSelection struct {
	Test       string `json:"test"`
	Assertions []int  `json:"assertions"`
	Rescued    []int  `json:"rescued"`
}

type jsonStep struct {
	Assertion    int    `json:"assertion"`
	Test         string `json:"test"`
	SuiteUnique  int    `json:"suite_unique"`
	TestLoad     int    `json:"test_load"`
	LocalUnique  int    `json:"local_unique"`
	Contribution int    `json:"contribution"`
	PoolBefore   int    `json:"pool_before"`
	PoolAfter    int    `json:"pool_after"`
}

type jsonLedgerState struct {
	Mutant     int  `json:"mutant"`
	Timeouts   int  `json:"timeouts"`
	Exceptions int  `json:"exceptions"`
	Disabled   bool `json:"disabled"`
}

type jsonRun struct {
	ID         string  `json:"id"`
	Suite      string  `json:"suite"`
	StartedAt  string  `json:"started_at"`
	Score      float64 `json:"score"`
	Known      int     `json:"known"`
	Killed     int     `json:"killed"`
	Candidates int     `json:"candidates"`
	Retained   int     `json:"retained"`
	Dropped    int     `json:"dropped"`
}

// Start initializes the UI.
func (j *JSONUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	j.mode = newStartConfig(options...).Mode()

	return nil
}

// Close finalizes the UI.
func (j *JSONUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayEstimation writes the per-suite candidate counts, or the error.
func (j *JSONUI) DisplayEstimation(ctx context.Context, sources []m.SuiteSource, err error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := j.document()

	if err != nil {
		doc.Error = err.Error()
		if werr := j.write(doc); werr != nil {
			return werr
		}

		return err
	}

	doc.Estimation = make([]jsonEstimation, 0, len(sources))

	for _, src := range sources {
		if src.Suite == nil {
			continue
		}

		doc.Estimation = append(doc.Estimation, jsonEstimation{
			Suite:      src.Suite.Name,
			Path:       string(src.Path),
			Tests:      src.Suite.Len(),
			Assertions: src.Suite.AssertionCount(),
			Mutants:    src.Registry.Len(),
		})
	}

	return j.write(doc)
}

// DisplayReport writes the full minimization report.
func (j *JSONUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := j.document()
	doc.Report = toJSONReport(report)

	return j.write(doc)
}

// DisplayLedger writes the persisted mutant states and runs.
func (j *JSONUI) DisplayLedger(ctx context.Context, states []m.LedgerState, runs []m.RunRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := j.document()
	doc.Ledger = make([]jsonLedgerState, 0, len(states))
	doc.Runs = make([]jsonRun, 0, len(runs))

	for _, st := range states {
		doc.Ledger = append(doc.Ledger, jsonLedgerState{
			Mutant:     int(st.Mutant),
			Timeouts:   st.Timeouts,
			Exceptions: st.Exceptions,
			Disabled:   st.Disabled,
		})
	}

	for _, run := range runs {
		doc.Runs = append(doc.Runs, jsonRun{
			ID:         run.ID,
			Suite:      run.Suite,
			StartedAt:  run.StartedAt.UTC().Format(time.RFC3339),
			Score:      run.Score,
			Known:      run.Known,
			Killed:     run.Killed,
			Candidates: run.Candidates,
			Retained:   run.Retained,
			Dropped:    run.Dropped,
		})
	}

	return j.write(doc)
}

func (j *JSONUI) document() jsonDocument {
	return jsonDocument{Version: SchemaVersion, Mode: j.mode.String()}
}

func (j *JSONUI) write(doc jsonDocument) error {
	enc := json.NewEncoder(j.cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}

func toJSONReport(report m.Report) *jsonReport {
	out := &jsonReport{
		RunID:             report.RunID,
		Suite:             report.Suite,
		Score:             report.Score,
		KnownMutants:      report.KnownMutants,
		KilledMutants:     intIDs(report.KilledMutants),
		LiveMutants:       intIDs(report.LiveMutants),
		UnresolvedMutants: intIDs(report.UnresolvedMutants),
		UncoveredGoals:    make([]string, 0, len(report.UncoveredGoals)),
		DroppedTests:      make([]string, 0, len(report.DroppedTests)),
		Selections:        make([]jsonSelection, 0, len(report.Selections)),
		Steps:             make([]jsonStep, 0, len(report.Steps)),
		Verdicts:          make(map[string]int, len(report.Verdicts)),
		CandidateCount:    report.CandidateCount,
		RetainedCount:     report.RetainedCount,
	}

	for _, g := range report.UncoveredGoals {
		out.UncoveredGoals = append(out.UncoveredGoals, g.Key())
	}

	for _, id := range report.DroppedTests {
		out.DroppedTests = append(out.DroppedTests, string(id))
	}

	for _, sel := range report.Selections {
		out.Selections = append(out.Selections, jsonSelection{
			Test:       string(sel.Test),
			Assertions: intIDs(sel.Assertions),
			Rescued:    intIDs(sel.Rescued),
		})
	}

	for _, st := range report.Steps {
		out.Steps = append(out.Steps, jsonStep{
			Assertion:    int(st.Assertion),
			Test:         string(st.Test),
			SuiteUnique:  st.SuiteUnique,
			TestLoad:     st.TestLoad,
			LocalUnique:  st.LocalUnique,
			Contribution: st.Contribution,
			PoolBefore:   st.PoolBefore,
			PoolAfter:    st.PoolAfter,
		})
	}

	for status, n := range report.Verdicts {
		out.Verdicts[status.String()] = n
	}

	return out
}

func intIDs[T ~int](ids []T) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		out = append(out, int(id))
	}

	return out
}
