// Package cmd provides the root command and CLI setup for winnow.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gooze.dev/pkg/winnow/internal/adapter"
	"gooze.dev/pkg/winnow/internal/controller"
	"gooze.dev/pkg/winnow/internal/domain"
	m "gooze.dev/pkg/winnow/internal/model"
)

var suiteStore adapter.SuiteStore
var ledgerStore adapter.LedgerStore
var workflow domain.Workflow
var ui controller.UI

// formatFlag selects the report renderer (text or json).
var formatFlag string

// ledgerFlag is the sqlite ledger shared by minimize and ledger.
var ledgerFlag string

// noLedgerFlag keeps the ledger in memory for a single pass.
var noLedgerFlag bool

var logFileFlag string
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, viper.GetString(formatConfigKey))
	suiteStore = adapter.NewSuiteStore()
	ledgerStore = adapter.NewLedgerStore()
	workflow = domain.NewWorkflow(suiteStore, ledgerStore, ui)
}

const pathPatternsHelp = `Paths may be suite files or directories:
  - suites/stack.yaml     a single recorded suite
  - suites/               every *.yaml and *.yml file in the directory
  - a.yaml b.yaml         several suites, loaded concurrently`

const rootLongDescription = `Winnow keeps the assertions of a generated test suite that actually
detect mutants, and drops the rest. Candidate assertions are checked
against recorded mutant runs, then a greedy set cover keeps the smallest
subset that preserves the mutation score and the goals it evidences.

` + pathPatternsHelp

const minimizeLongDescription = `Minimize the assertions of the given suites.

Each suite is executed against the mutants its tests touch, a minimal
covering subset of assertions is selected, and the selection is reported
with the realized mutation score. Timeout and exception counts are kept in
the ledger so repeatedly misbehaving mutants are skipped in later passes.

` + pathPatternsHelp

const listLongDescription = `List suites with their test, assertion and mutant counts.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "winnow",
		Short: "Mutation-driven assertion minimization",
		Long:  rootLongDescription,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

			if cmd.Flags().Changed(formatFlagName) {
				ui = controller.NewUI(cmd, viper.GetString(formatConfigKey))
				workflow = domain.NewWorkflow(suiteStore, ledgerStore, ui)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd returns a fresh root command with its persistent flags.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&formatFlag, formatFlagName, "f", defaultFormat, "report format (text or json)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(formatFlagName), formatConfigKey)

	cmd.PersistentFlags().StringVarP(&ledgerFlag, ledgerFlagName, "l", defaultLedgerPath, "sqlite ledger persisting mutant timeouts and exceptions across passes")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(ledgerFlagName), ledgerConfigKey)

	cmd.PersistentFlags().BoolVar(&noLedgerFlag, noLedgerFlagName, false, "keep the ledger in memory for this pass only")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(noLedgerFlagName), noLedgerConfigKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, defaultLogFilename, "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// ledgerPath resolves the configured ledger, empty when persistence is off.
func ledgerPath() m.Path {
	if viper.GetBool(noLedgerConfigKey) {
		return ""
	}

	return m.Path(viper.GetString(ledgerConfigKey))
}
