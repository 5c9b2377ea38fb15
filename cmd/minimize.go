package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gooze.dev/pkg/winnow/internal/domain"
	m "gooze.dev/pkg/winnow/internal/model"
)

var (
	outputFlag             string
	parallelFlag           int
	timeoutThresholdFlag   int
	exceptionThresholdFlag int
	maxMutantsFlag         int
	budgetFlag             time.Duration
	mutantTimeoutFlag      time.Duration
	rescueGoalsFlag        bool
	modeFlag               string
	stagesFlag             []string
	seedFlag               int64
	harnessFlag            []string
	metricsFileFlag        string
	journalDirFlag         string
)

// minimizeCmd represents the minimize command.
var minimizeCmd = newMinimizeCmd()

func newMinimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minimize [paths...]",
		Short: "Select the assertions that detect mutants",
		Long:  minimizeLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			return workflow.Minimize(ctx, domain.MinimizeArgs{
				Paths:          parsePaths(args),
				Output:         m.Path(viper.GetString(outputConfigKey)),
				Ledger:         ledgerPath(),
				Config:         minimizeConfig(),
				HarnessCommand: viper.GetStringSlice(harnessConfigKey),
				Threads:        viper.GetInt(parallelConfigKey),
				MetricsFile:    viper.GetString(metricsFileConfigKey),
			})
		},
	}

	configureMinimizeFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(minimizeCmd)
}

func configureMinimizeFlags(cmd *cobra.Command) {
	defaults := domain.DefaultConfig()
	flags := cmd.Flags()

	flags.StringVarP(&outputFlag, outputFlagName, "o", "", "directory to write minimized suites to")
	bindFlagToConfig(flags.Lookup(outputFlagName), outputConfigKey)

	flags.IntVarP(&parallelFlag, parallelFlagName, "p", defaultParallel, "number of suites minimized concurrently")
	bindFlagToConfig(flags.Lookup(parallelFlagName), parallelConfigKey)

	flags.IntVar(&timeoutThresholdFlag, timeoutThresholdFlagName, defaults.TimeoutThreshold, "timeouts after which a mutant is pre-killed (0 disables)")
	bindFlagToConfig(flags.Lookup(timeoutThresholdFlagName), timeoutThresholdConfigKey)

	flags.IntVar(&exceptionThresholdFlag, exceptionThresholdFlagName, defaults.ExceptionThreshold, "unique exceptions after which a mutant is pre-killed (0 disables)")
	bindFlagToConfig(flags.Lookup(exceptionThresholdFlagName), exceptionThresholdConfigKey)

	flags.IntVar(&maxMutantsFlag, maxMutantsFlagName, defaults.MaxMutantsPerTest, "mutant executions per test (0 for no cap)")
	bindFlagToConfig(flags.Lookup(maxMutantsFlagName), maxMutantsConfigKey)

	flags.DurationVar(&budgetFlag, budgetFlagName, defaults.PhaseTimeBudget, "wall-clock budget for mutant execution across the pass (0 for none)")
	bindFlagToConfig(flags.Lookup(budgetFlagName), budgetConfigKey)

	flags.DurationVar(&mutantTimeoutFlag, mutantTimeoutFlagName, defaults.MutantTimeout, "deadline of a single mutant execution")
	bindFlagToConfig(flags.Lookup(mutantTimeoutFlagName), mutantTimeoutConfigKey)

	flags.BoolVar(&rescueGoalsFlag, rescueGoalsFlagName, defaults.RescueGoals, "keep one assertion per test-exclusive goal after selection")
	bindFlagToConfig(flags.Lookup(rescueGoalsFlagName), rescueGoalsConfigKey)

	flags.StringVarP(&modeFlag, modeFlagName, "m", string(defaults.SelectionMode), "selection mode (suite-wide or mutation-only)")
	bindFlagToConfig(flags.Lookup(modeFlagName), modeConfigKey)

	flags.StringSliceVar(&stagesFlag, stagesFlagName, nil, "comparator stages in priority order (suite-unique, test-load, local-unique, contribution)")
	bindFlagToConfig(flags.Lookup(stagesFlagName), stagesConfigKey)

	flags.Int64Var(&seedFlag, seedFlagName, defaults.Seed, "seed for the mutant execution order")
	bindFlagToConfig(flags.Lookup(seedFlagName), seedConfigKey)

	flags.StringArrayVar(&harnessFlag, harnessFlagName, nil, "external runner command and arguments, repeated (replays recordings when unset)")
	bindFlagToConfig(flags.Lookup(harnessFlagName), harnessConfigKey)

	flags.StringVar(&metricsFileFlag, metricsFileFlagName, "", "write prometheus metrics to this textfile after the pass")
	bindFlagToConfig(flags.Lookup(metricsFileFlagName), metricsFileConfigKey)

	flags.StringVar(&journalDirFlag, journalDirFlagName, "", "directory for the on-disk verdict journal (system temp dir by default)")
	bindFlagToConfig(flags.Lookup(journalDirFlagName), journalDirConfigKey)
}
