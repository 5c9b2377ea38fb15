package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gooze.dev/pkg/winnow/internal/domain"
	m "gooze.dev/pkg/winnow/internal/model"
)

var ledgerSuiteFlag string
var ledgerRunsFlag int

// ledgerCmd represents the ledger command.
var ledgerCmd = newLedgerCmd()

func newLedgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Show persisted mutant state and recent runs",
		Long: `Show the mutant timeout and exception counts kept in the ledger, and the
most recent minimization runs. Mutant state is listed per suite, so it is
only shown when --suite is given.`,
		Args: cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			// --no-ledger is ignored here: inspecting needs the ledger file.
			return workflow.ShowLedger(context.Background(), domain.LedgerArgs{
				Ledger: m.Path(viper.GetString(ledgerConfigKey)),
				Suite:  ledgerSuiteFlag,
				Runs:   ledgerRunsFlag,
			})
		},
	}

	cmd.Flags().StringVarP(&ledgerSuiteFlag, suiteFlagName, "s", "", "suite whose mutant state is shown")
	cmd.Flags().IntVarP(&ledgerRunsFlag, runsFlagName, "n", defaultRuns, "number of recent runs to show (0 for all)")

	return cmd
}

func init() {
	rootCmd.AddCommand(ledgerCmd)
}
