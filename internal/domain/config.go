// Package domain implements mutant execution, candidate indexing and the
// suite-level assertion selection pipeline.
package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// SelectionMode selects which demand pools drive the greedy selector.
type SelectionMode string

const (
	// SuiteWide covers mutants and goals together.
	SuiteWide SelectionMode = "suite-wide"
	// MutationOnly covers mutants only; goal rescue always follows.
	MutationOnly SelectionMode = "mutation-only"
)

const (
	// DefaultTimeoutThreshold is the number of timeouts after which a mutant is pre-killed.
	DefaultTimeoutThreshold = 3
	// DefaultExceptionThreshold is the number of unique exceptions after which a mutant is pre-killed.
	DefaultExceptionThreshold = 3
	// DefaultMaxMutantsPerTest caps mutant executions per test.
	DefaultMaxMutantsPerTest = 100
	// DefaultMutantTimeout bounds a single mutant execution.
	DefaultMutantTimeout = 5 * time.Second
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the recognized minimization options. Zero thresholds, caps and
// budgets disable the corresponding check.
type Config struct {
	TimeoutThreshold   int           `validate:"gte=0"`
	ExceptionThreshold int           `validate:"gte=0"`
	MaxMutantsPerTest  int           `validate:"gte=0"`
	PhaseTimeBudget    time.Duration `validate:"gte=0"`
	MutantTimeout      time.Duration `validate:"gte=0"`
	RescueGoals        bool
	SelectionMode      SelectionMode `validate:"required,oneof=suite-wide mutation-only"`
	Stages             []string      `validate:"omitempty,dive,oneof=suite-unique test-load local-unique contribution"`
	Seed               int64
	JournalDir         string // verdict journal location, empty for the system temp dir
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		TimeoutThreshold:   DefaultTimeoutThreshold,
		ExceptionThreshold: DefaultExceptionThreshold,
		MaxMutantsPerTest:  DefaultMaxMutantsPerTest,
		MutantTimeout:      DefaultMutantTimeout,
		SelectionMode:      SuiteWide,
		Seed:               1,
	}
}

var validate = validator.New()

// Validate checks the configuration against its constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: %s failed %q (value %v)", ErrInvalidConfig, fe.Namespace(), fe.Tag(), fe.Value())
		}

		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// RescueEnabled reports whether the goal rescue pass runs after selection.
func (c Config) RescueEnabled() bool {
	return c.RescueGoals || c.SelectionMode == MutationOnly
}

// SelectionStages resolves the comparator stages for the configured mode.
func (c Config) SelectionStages() ([]Stage, error) {
	if len(c.Stages) == 0 {
		return DefaultStages(c.SelectionMode), nil
	}

	return ParseStages(c.Stages)
}
