package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"gooze.dev/pkg/winnow/internal/adapter"
	"gooze.dev/pkg/winnow/internal/controller"
	m "gooze.dev/pkg/winnow/internal/model"
)

// EstimateArgs contains the arguments for listing suites before a pass.
type EstimateArgs struct {
	Paths   []m.Path
	Threads int
}

// MinimizeArgs contains the arguments for minimizing suites.
type MinimizeArgs struct {
	Paths          []m.Path
	Output         m.Path // directory for minimized suites, empty to skip writing
	Ledger         m.Path // sqlite ledger file, empty to keep the ledger in memory
	Config         Config
	HarnessCommand []string // external runner, replay recordings when empty
	Threads        int
	MetricsFile    string // prometheus textfile written after the pass
}

// LedgerArgs contains the arguments for inspecting a persisted ledger.
type LedgerArgs struct {
	Ledger m.Path
	Suite  string
	Runs   int
}

// Workflow defines the commands the CLI drives.
type Workflow interface {
	Estimate(ctx context.Context, args EstimateArgs) error
	Minimize(ctx context.Context, args MinimizeArgs) error
	ShowLedger(ctx context.Context, args LedgerArgs) error
}

type workflow struct {
	adapter.SuiteStore
	adapter.LedgerStore
	controller.UI
	tracker TimeoutTracker
	oracle  adapter.Oracle
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	suiteStore adapter.SuiteStore,
	ledgerStore adapter.LedgerStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		SuiteStore:  suiteStore,
		LedgerStore: ledgerStore,
		UI:          ui,
		tracker:     NewMetricsTracker(),
		oracle:      adapter.NewTraceOracle(),
	}
}

func (w *workflow) Estimate(ctx context.Context, args EstimateArgs) error {
	if err := w.Start(ctx, controller.WithEstimateMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	sources, err := w.LoadAll(ctx, args.Paths, args.Threads)
	if err != nil {
		slog.Error("Failed to load suites", "error", err)
		_ = w.DisplayEstimation(ctx, nil, err)

		return fmt.Errorf("load suites: %w", err)
	}

	if err := w.DisplayEstimation(ctx, sources, nil); err != nil {
		slog.Error("Failed to display estimation", "error", err)
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

func (w *workflow) Minimize(ctx context.Context, args MinimizeArgs) error {
	if err := args.Config.Validate(); err != nil {
		return err
	}

	if err := w.Start(ctx, controller.WithMinimizeMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	sources, err := w.LoadAll(ctx, args.Paths, args.Threads)
	if err != nil {
		slog.Error("Failed to load suites", "error", err)
		return fmt.Errorf("load suites: %w", err)
	}

	reports := make([]m.Report, len(sources))

	var group errgroup.Group
	if args.Threads > 0 {
		group.SetLimit(args.Threads)
	}

	for i, src := range sources {
		group.Go(func() error {
			report, err := w.minimizeSource(ctx, args, src)
			if err != nil {
				return fmt.Errorf("minimize %s: %w", src.Path, err)
			}

			reports[i] = report

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		slog.Error("Minimization failed", "error", err)
		return err
	}

	for _, report := range reports {
		if err := w.DisplayReport(ctx, report); err != nil {
			slog.Error("Failed to display report", "suite", report.Suite, "error", err)
			return fmt.Errorf("display: %w", err)
		}
	}

	if args.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(args.MetricsFile, prometheus.DefaultGatherer); err != nil {
			slog.Error("Failed to write metrics", "path", args.MetricsFile, "error", err)
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	return nil
}

func (w *workflow) minimizeSource(ctx context.Context, args MinimizeArgs, src m.SuiteSource) (m.Report, error) {
	if src.Suite == nil || src.Registry == nil {
		return m.Report{}, errors.New("suite source is incomplete")
	}

	cfg := args.Config
	ledger := NewMutantLedger(cfg.TimeoutThreshold, cfg.ExceptionThreshold)

	if args.Ledger != "" {
		states, err := w.LoadLedger(ctx, args.Ledger, src.Suite.Name)
		if err != nil {
			return m.Report{}, fmt.Errorf("load ledger: %w", err)
		}

		ledger.Restore(states)
	}

	var harness adapter.Harness = adapter.NewReplayHarness(src.Recordings)
	if len(args.HarnessCommand) > 0 {
		harness = adapter.NewCommandHarness(args.HarnessCommand, cfg.MutantTimeout)
	}

	mz, err := NewMinimizer(cfg, harness, w.oracle, ledger, w.tracker)
	if err != nil {
		return m.Report{}, err
	}

	started := time.Now()

	report, err := mz.Minimize(ctx, src.Suite, src.Registry)
	if err != nil {
		return m.Report{}, err
	}

	if args.Output != "" {
		path, err := w.SaveSelection(ctx, args.Output, src)
		if err != nil {
			return m.Report{}, fmt.Errorf("save selection: %w", err)
		}

		slog.Info("Saved minimized suite", "suite", src.Suite.Name, "path", path)
	}

	if args.Ledger != "" {
		run := m.RunRecord{
			ID:         report.RunID,
			Suite:      report.Suite,
			StartedAt:  started,
			Score:      report.Score,
			Known:      report.KnownMutants,
			Killed:     len(report.KilledMutants),
			Candidates: report.CandidateCount,
			Retained:   report.RetainedCount,
			Dropped:    len(report.DroppedTests),
		}

		if err := w.SaveRun(ctx, args.Ledger, run, ledger.Snapshot()); err != nil {
			return m.Report{}, fmt.Errorf("save ledger: %w", err)
		}
	}

	return report, nil
}

func (w *workflow) ShowLedger(ctx context.Context, args LedgerArgs) error {
	if args.Ledger == "" {
		return errors.New("ledger path is required")
	}

	if err := w.Start(ctx, controller.WithLedgerMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	var states []m.LedgerState

	if args.Suite != "" {
		var err error

		states, err = w.LoadLedger(ctx, args.Ledger, args.Suite)
		if err != nil {
			slog.Error("Failed to load ledger", "path", args.Ledger, "error", err)
			return fmt.Errorf("load ledger: %w", err)
		}
	}

	runs, err := w.Runs(ctx, args.Ledger, args.Suite, args.Runs)
	if err != nil {
		slog.Error("Failed to load runs", "path", args.Ledger, "error", err)
		return fmt.Errorf("load runs: %w", err)
	}

	if err := w.DisplayLedger(ctx, states, runs); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}
