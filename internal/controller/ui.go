// Package controller provides output adapters for displaying minimization results.
package controller

import (
	"context"

	"github.com/spf13/cobra"

	m "gooze.dev/pkg/winnow/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeEstimate StartMode = iota
	ModeMinimize
	ModeLedger
)

func (s StartMode) String() string {
	switch s {
	case ModeEstimate:
		return "estimate"
	case ModeMinimize:
		return "minimize"
	case ModeLedger:
		return "ledger"
	default:
		return "unknown"
	}
}

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// Mode returns the configured mode.
func (c StartConfig) Mode() StartMode {
	return c.mode
}

// WithEstimateMode sets the UI to estimation mode.
func WithEstimateMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeEstimate
	}
}

// WithMinimizeMode sets the UI to minimization mode.
func WithMinimizeMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeMinimize
	}
}

// WithLedgerMode sets the UI to ledger inspection mode.
func WithLedgerMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeLedger
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	cfg := StartConfig{mode: ModeEstimate}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// Output formats accepted by NewUI.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// UI defines the interface for displaying minimization output.
// Implementations can use different output methods (tables, JSON).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	DisplayEstimation(ctx context.Context, sources []m.SuiteSource, err error) error
	DisplayReport(ctx context.Context, report m.Report) error
	DisplayLedger(ctx context.Context, states []m.LedgerState, runs []m.RunRecord) error
}

// NewUI returns the UI for format writing to cmd's output. Unknown formats
// fall back to text.
func NewUI(cmd *cobra.Command, format string) UI {
	if format == FormatJSON {
		return NewJSONUI(cmd)
	}

	return NewSimpleUI(cmd)
}
