package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gooze.dev/pkg/winnow/internal/domain"
	domainmocks "gooze.dev/pkg/winnow/internal/domain/mocks"
	m "gooze.dev/pkg/winnow/internal/model"
)

func TestLedgerCmd(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		match func(domain.LedgerArgs) bool
	}{
		{
			name: "defaults",
			args: []string{"ledger"},
			match: func(args domain.LedgerArgs) bool {
				return args.Ledger == m.Path(defaultLedgerPath) && args.Suite == "" && args.Runs == defaultRuns
			},
		},
		{
			name: "suite and runs",
			args: []string{"ledger", "--ledger", "runs.db", "--suite", "stack", "-n", "3"},
			match: func(args domain.LedgerArgs) bool {
				return args.Ledger == m.Path("runs.db") && args.Suite == "stack" && args.Runs == 3
			},
		},
		{
			name: "no-ledger ignored",
			args: []string{"ledger", "--no-ledger"},
			match: func(args domain.LedgerArgs) bool {
				return args.Ledger == m.Path(defaultLedgerPath)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWorkflow := domainmocks.NewMockWorkflow(t)

			cmd := newRootCmd()
			cmd.AddCommand(newLedgerCmd())
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			originalWorkflow := workflow
			workflow = mockWorkflow
			defer func() { workflow = originalWorkflow }()

			mockWorkflow.On("ShowLedger", mock.Anything, mock.MatchedBy(tt.match)).Return(nil)

			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())
		})
	}
}

func TestLedgerCmd_Error(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newLedgerCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("ShowLedger", mock.Anything, mock.Anything).Return(errors.New("database is locked"))

	cmd.SetArgs([]string{"ledger"})
	require.Error(t, cmd.Execute())
}

func TestLedgerCmd_RejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.AddCommand(newLedgerCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"ledger", "extra"})
	require.Error(t, cmd.Execute())
}
