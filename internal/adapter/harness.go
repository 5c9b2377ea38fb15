// Package adapter provides the ports and implementations the minimizer uses
// to execute tests, compare observations and persist state.
package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"slices"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	m "gooze.dev/pkg/winnow/internal/model"
)

// ErrNoRecording is returned when a replayed run was never captured.
var ErrNoRecording = errors.New("no recorded run")

// Harness runs a test against the original program or a mutant variant.
type Harness interface {
	// RunTest executes tc against the original program.
	RunTest(ctx context.Context, tc *m.TestCase) (m.ExecutionResult, error)
	// RunMutant executes tc with mt applied. Implementations should honor
	// ctx cancellation as the per-mutant deadline.
	RunMutant(ctx context.Context, tc *m.TestCase, mt m.Mutant) (m.ExecutionResult, error)
}

// ReplayHarness serves runs captured ahead of time.
type ReplayHarness struct {
	recordings map[m.TestID]m.Recording
}

// NewReplayHarness constructs a harness over recorded runs.
func NewReplayHarness(recordings map[m.TestID]m.Recording) *ReplayHarness {
	return &ReplayHarness{recordings: recordings}
}

// RunTest returns the recorded original run of tc.
func (h *ReplayHarness) RunTest(ctx context.Context, tc *m.TestCase) (m.ExecutionResult, error) {
	if err := ctx.Err(); err != nil {
		return m.ExecutionResult{}, err
	}

	rec, ok := h.recordings[tc.ID]
	if !ok || rec.Original == nil {
		slog.Error("No recording for test", "test", tc.ID)
		return m.ExecutionResult{}, fmt.Errorf("test %s: %w", tc.ID, ErrNoRecording)
	}

	return replay(*rec.Original)
}

// RunMutant returns the recorded run of tc against mt.
func (h *ReplayHarness) RunMutant(ctx context.Context, tc *m.TestCase, mt m.Mutant) (m.ExecutionResult, error) {
	if err := ctx.Err(); err != nil {
		return m.ExecutionResult{}, err
	}

	rec, ok := h.recordings[tc.ID]
	if !ok {
		slog.Error("No recording for test", "test", tc.ID)
		return m.ExecutionResult{}, fmt.Errorf("test %s: %w", tc.ID, ErrNoRecording)
	}

	run, ok := rec.Mutants[mt.ID]
	if !ok {
		slog.Warn("No recording for mutant", "test", tc.ID, "mutant", mt.ID)
		return m.ExecutionResult{}, fmt.Errorf("test %s mutant %d: %w", tc.ID, mt.ID, ErrNoRecording)
	}

	return replay(run)
}

func replay(run m.RecordedRun) (m.ExecutionResult, error) {
	if run.Err != "" {
		return m.ExecutionResult{}, fmt.Errorf("recorded failure: %s", run.Err)
	}

	result := run.Result
	result.TouchedMutants = slices.Clone(result.TouchedMutants)
	result.Traces = slices.Clone(result.Traces)

	return result, nil
}

// CommandHarness executes tests through an external runner. The runner is
// invoked as `<command...> --test <id> [--mutant <id>]` and must print a
// single run document (the suite file's run format) on stdout.
type CommandHarness struct {
	command []string
	timeout time.Duration
}

// NewCommandHarness constructs a CommandHarness. A zero timeout relies on
// the caller's context alone.
func NewCommandHarness(command []string, timeout time.Duration) *CommandHarness {
	return &CommandHarness{command: slices.Clone(command), timeout: timeout}
}

// RunTest runs tc against the original program.
func (h *CommandHarness) RunTest(ctx context.Context, tc *m.TestCase) (m.ExecutionResult, error) {
	return h.run(ctx, "--test", string(tc.ID))
}

// RunMutant runs tc against mt.
func (h *CommandHarness) RunMutant(ctx context.Context, tc *m.TestCase, mt m.Mutant) (m.ExecutionResult, error) {
	return h.run(ctx, "--test", string(tc.ID), "--mutant", strconv.Itoa(int(mt.ID)))
}

func (h *CommandHarness) run(ctx context.Context, args ...string) (m.ExecutionResult, error) {
	if len(h.command) == 0 {
		return m.ExecutionResult{}, errors.New("harness command is empty")
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	argv := append(slices.Clone(h.command[1:]), args...)
	cmd := exec.CommandContext(ctx, h.command[0], argv...)
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return m.ExecutionResult{}, ctx.Err()
		}

		slog.Error("Harness command failed", "command", h.command[0], "args", argv, "stderr", stderr.String(), "error", err)

		return m.ExecutionResult{}, fmt.Errorf("harness command: %w", err)
	}

	var doc runDoc
	if err := yaml.Unmarshal(stdout.Bytes(), &doc); err != nil {
		slog.Error("Failed to decode harness output", "command", h.command[0], "error", err)
		return m.ExecutionResult{}, fmt.Errorf("decode harness output: %w", err)
	}

	return replay(doc.toRun())
}
