package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "gooze.dev/pkg/winnow/internal/model"
)

const (
	goodScore  = 0.8
	fairScore  = 0.5
	timeLayout = "2006-01-02 15:04:05"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true)
	fairStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// SimpleUI implements UI using cobra Command's output and plain tables.
type SimpleUI struct {
	cmd  *cobra.Command
	mode StartMode
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mode = newStartConfig(options...).Mode()

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayEstimation prints one row per suite with its candidate counts.
func (s *SimpleUI) DisplayEstimation(ctx context.Context, sources []m.SuiteSource, err error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err != nil {
		s.printf("estimation error: %v\n", err)
		return err
	}

	s.printf("\n%s", renderEstimationTable(sources))

	return nil
}

func renderEstimationTable(sources []m.SuiteSource) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Suite", "Path", "Tests", "Assertions", "Mutants"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	var tests, assertions, mutants int

	for _, src := range sources {
		if src.Suite == nil {
			continue
		}

		tests += src.Suite.Len()
		assertions += src.Suite.AssertionCount()
		mutants += src.Registry.Len()

		table.Append([]string{
			src.Suite.Name,
			string(src.Path),
			strconv.Itoa(src.Suite.Len()),
			strconv.Itoa(src.Suite.AssertionCount()),
			strconv.Itoa(src.Registry.Len()),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Suites %d", len(sources)),
		"",
		strconv.Itoa(tests),
		strconv.Itoa(assertions),
		strconv.Itoa(mutants),
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayReport prints the retained assertions per test and the reconciled score.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s\n", headerStyle.Render(fmt.Sprintf("=== %s ===", report.Suite)))
	s.printf("%s\n", mutedStyle.Render("run "+report.RunID))
	s.printf("\n%s", renderSelectionTable(report))

	if len(report.DroppedTests) > 0 {
		s.printf("Dropped tests: %s\n", joinIDs(report.DroppedTests))
	}

	if len(report.UnresolvedMutants) > 0 {
		s.printf("Unresolved mutants: %s\n", joinIDs(report.UnresolvedMutants))
	}

	if len(report.UncoveredGoals) > 0 {
		s.printf("Uncovered goals: %d\n", len(report.UncoveredGoals))

		for _, g := range report.UncoveredGoals {
			s.printf("  %s\n", mutedStyle.Render(g.Key()))
		}
	}

	s.printf("Outcomes: %s\n", formatVerdicts(report.Verdicts))
	s.printf("Retained %d of %d assertions\n", report.RetainedCount, report.CandidateCount)
	s.printf("Mutation score: %s (%d/%d killed)\n",
		scoreStyle(report.Score).Render(fmt.Sprintf("%.2f%%", report.Score*100)),
		len(report.KilledMutants), report.KnownMutants)

	return nil
}

func renderSelectionTable(report m.Report) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Test", "Retained", "Rescued", "Assertions"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	for _, sel := range report.Selections {
		table.Append([]string{
			string(sel.Test),
			strconv.Itoa(len(sel.Assertions)),
			strconv.Itoa(len(sel.Rescued)),
			joinIDs(sel.Assertions),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Tests %d", len(report.Selections)),
		strconv.Itoa(report.RetainedCount),
		"",
		"",
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayLedger prints the persisted mutant states and the recent runs.
func (s *SimpleUI) DisplayLedger(ctx context.Context, states []m.LedgerState, runs []m.RunRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Mutant", "Timeouts", "Exceptions", "Disabled"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	disabled := 0

	for _, st := range states {
		if st.Disabled {
			disabled++
		}

		table.Append([]string{
			strconv.Itoa(int(st.Mutant)),
			strconv.Itoa(st.Timeouts),
			strconv.Itoa(st.Exceptions),
			strconv.FormatBool(st.Disabled),
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Mutants %d", len(states)), "", "", strconv.Itoa(disabled)})
	table.Render()

	s.printf("\n%s", tableBuffer.String())

	if len(runs) == 0 {
		s.printf("%s\n", mutedStyle.Render("No recorded runs"))
		return nil
	}

	tableBuffer.Reset()

	table = tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Run", "Suite", "Started", "Score", "Retained", "Dropped"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, run := range runs {
		table.Append([]string{
			shortID(run.ID),
			run.Suite,
			run.StartedAt.Format(timeLayout),
			fmt.Sprintf("%.2f%%", run.Score*100),
			fmt.Sprintf("%d/%d", run.Retained, run.Candidates),
			strconv.Itoa(run.Dropped),
		})
	}

	table.Render()

	s.printf("\n%s", tableBuffer.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= goodScore:
		return goodStyle
	case score >= fairScore:
		return fairStyle
	default:
		return badStyle
	}
}

func formatVerdicts(summary m.VerdictSummary) string {
	statuses := []m.MutantStatus{m.Killed, m.Survived, m.PreKilled, m.Unresolved, m.Failed}
	parts := make([]string, 0, len(statuses))

	for _, status := range statuses {
		parts = append(parts, fmt.Sprintf("%s=%d", status, summary[status]))
	}

	return strings.Join(parts, " ")
}

func joinIDs[T ~string | ~int](ids []T) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprint(id))
	}

	return strings.Join(parts, ",")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}

	return id
}
