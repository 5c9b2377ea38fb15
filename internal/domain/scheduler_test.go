package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gooze.dev/pkg/winnow/internal/adapter"
	adaptermocks "gooze.dev/pkg/winnow/internal/adapter/mocks"
	m "gooze.dev/pkg/winnow/internal/model"
	winnowpkg "gooze.dev/pkg/winnow/pkg"
)

type recordingTracker struct {
	timeouts   []m.MutantID
	exceptions []m.MutantID
}

func (r *recordingTracker) TimedOut(mt m.Mutant)        { r.timeouts = append(r.timeouts, mt.ID) }
func (r *recordingTracker) RaisedException(mt m.Mutant) { r.exceptions = append(r.exceptions, mt.ID) }

func schedulerTest(t *testing.T) *m.TestCase {
	t.Helper()

	tc := m.NewTestCase("t1", "", []m.Statement{
		{Position: 0, Kind: m.StatementConstructor, Owner: "Stack"},
		{Position: 1, Kind: m.StatementMethod, Owner: "Stack", Method: "push"},
	}, nil)
	require.NoError(t, tc.AddAssertion(m.NewAssertion(1, 1, m.AssertPrimitive, "int1", "", "1")))
	require.NoError(t, tc.AddAssertion(m.NewAssertion(2, 0, m.AssertInspector, "stack0", "size", "1")))

	return tc
}

func schedulerRegistry() *m.MutantRegistry {
	return m.NewMutantRegistry(
		m.Mutant{ID: 1, Location: m.Location{Owner: "Stack", Method: "push", Line: 10}},
		m.Mutant{ID: 2, Location: m.Location{Owner: "Stack", Method: "push", Line: 11}},
		m.Mutant{ID: 3, Location: m.Location{Owner: "Stack", Method: "pop", Line: 20}},
	)
}

func statusByMutant(v m.TestVerdict) map[m.MutantID]m.MutantStatus {
	out := make(map[m.MutantID]m.MutantStatus, len(v.Outcomes))
	for _, o := range v.Outcomes {
		out[o.Mutant] = o.Status
	}

	return out
}

func newTestScheduler(
	harness adapter.Harness,
	oracle adapter.Oracle,
	ledger MutantLedger,
	tracker TimeoutTracker,
	cfg Config,
) MutantExecutionScheduler {
	return NewMutantExecutionScheduler(harness, oracle, ledger, schedulerRegistry(), tracker, nil, cfg)
}

func TestScheduler_SkipsEmptyTest(t *testing.T) {
	// Arrange
	harness := adaptermocks.NewMockHarness(t)
	oracle := adaptermocks.NewMockOracle(t)
	sched := newTestScheduler(harness, oracle, NewMutantLedger(3, 3), nil, DefaultConfig())
	empty := m.NewTestCase("empty", "", nil, nil)

	// Act
	verdict := sched.Evaluate(context.Background(), empty, m.ExecutionResult{TouchedMutants: []m.MutantID{1}}, nil)

	// Assert
	assert.True(t, verdict.Skipped)
	assert.Empty(t, verdict.Outcomes)
}

func TestScheduler_SkipsTimedOutOriginal(t *testing.T) {
	harness := adaptermocks.NewMockHarness(t)
	oracle := adaptermocks.NewMockOracle(t)
	sched := newTestScheduler(harness, oracle, NewMutantLedger(3, 3), nil, DefaultConfig())

	verdict := sched.Evaluate(context.Background(), schedulerTest(t),
		m.ExecutionResult{Timeout: true, TouchedMutants: []m.MutantID{1, 2}}, nil)

	assert.True(t, verdict.Skipped)
	assert.Empty(t, verdict.Outcomes)
}

func TestScheduler_OracleDetection(t *testing.T) {
	// Arrange
	tc := schedulerTest(t)
	original := m.ExecutionResult{TouchedMutants: []m.MutantID{1, 2, 1, 99}}

	harness := adaptermocks.NewMockHarness(t)
	oracle := adaptermocks.NewMockOracle(t)

	harness.EXPECT().RunMutant(mock.Anything, tc, mock.Anything).
		RunAndReturn(func(_ context.Context, _ *m.TestCase, mt m.Mutant) (m.ExecutionResult, error) {
			return m.ExecutionResult{TouchedMutants: []m.MutantID{mt.ID}}, nil
		}).Times(2)

	oracle.EXPECT().Compare(tc, original, mock.Anything).
		RunAndReturn(func(_ *m.TestCase, _ m.ExecutionResult, mutant m.ExecutionResult) adapter.Comparison {
			if mutant.TouchedMutants[0] == 1 {
				return adapter.Comparison{Diverged: true, Detecting: []m.AssertionID{1, 2, 42}}
			}

			return adapter.Comparison{}
		}).Times(2)

	sched := newTestScheduler(harness, oracle, NewMutantLedger(3, 3), nil, DefaultConfig())

	// Act
	verdict := sched.Evaluate(context.Background(), tc, original, nil)

	// Assert
	require.Len(t, verdict.Outcomes, 2, "duplicates and unknown mutants are not scheduled")
	assert.Equal(t, map[m.MutantID]m.MutantStatus{1: m.Killed, 2: m.Survived}, statusByMutant(verdict))
	assert.Equal(t, []m.MutantID{1}, verdict.Killed())

	for _, o := range verdict.Outcomes {
		if o.Mutant == 1 {
			assert.Equal(t, []m.AssertionID{1, 2}, o.Detecting, "only the test's own assertions are marked")
		}
	}

	for _, a := range tc.Assertions() {
		assert.Equal(t, []m.MutantID{1}, a.KilledMutants())
	}
}

func TestScheduler_DivergenceWithoutDetectingAssertionStillKills(t *testing.T) {
	tc := schedulerTest(t)
	original := m.ExecutionResult{TouchedMutants: []m.MutantID{3}}

	harness := adaptermocks.NewMockHarness(t)
	oracle := adaptermocks.NewMockOracle(t)
	harness.EXPECT().RunMutant(mock.Anything, tc, mock.Anything).Return(m.ExecutionResult{}, nil).Once()
	oracle.EXPECT().Compare(tc, original, mock.Anything).Return(adapter.Comparison{Diverged: true}).Once()

	verdict := newTestScheduler(harness, oracle, NewMutantLedger(3, 3), nil, DefaultConfig()).
		Evaluate(context.Background(), tc, original, nil)

	assert.Equal(t, map[m.MutantID]m.MutantStatus{3: m.Killed}, statusByMutant(verdict))

	for _, a := range tc.Assertions() {
		assert.Empty(t, a.KilledMutants())
	}
}

func TestScheduler_TimeoutKillsAndRecords(t *testing.T) {
	// Arrange
	tc := schedulerTest(t)
	original := m.ExecutionResult{TouchedMutants: []m.MutantID{1, 2}}
	ledger := NewMutantLedger(3, 3)
	tracker := &recordingTracker{}

	harness := adaptermocks.NewMockHarness(t)
	oracle := adaptermocks.NewMockOracle(t)

	harness.EXPECT().RunMutant(mock.Anything, tc, mock.Anything).
		RunAndReturn(func(_ context.Context, _ *m.TestCase, mt m.Mutant) (m.ExecutionResult, error) {
			if mt.ID == 1 {
				return m.ExecutionResult{Timeout: true}, nil
			}

			return m.ExecutionResult{}, context.DeadlineExceeded
		}).Times(2)

	// Act
	verdict := newTestScheduler(harness, oracle, ledger, tracker, DefaultConfig()).
		Evaluate(context.Background(), tc, original, nil)

	// Assert
	assert.Equal(t, map[m.MutantID]m.MutantStatus{1: m.Killed, 2: m.Killed}, statusByMutant(verdict))

	for _, o := range verdict.Outcomes {
		assert.True(t, o.Timeout)
		assert.Empty(t, o.Detecting, "timeouts are not attributed to assertions")
	}

	assert.Equal(t, 1, ledger.State(1).Timeouts)
	assert.Equal(t, 1, ledger.State(2).Timeouts)
	assert.ElementsMatch(t, []m.MutantID{1, 2}, tracker.timeouts)
}

func TestScheduler_RepeatedTimeoutsPreKillMutant(t *testing.T) {
	// Arrange
	tc := schedulerTest(t)
	original := m.ExecutionResult{TouchedMutants: []m.MutantID{1}}
	ledger := NewMutantLedger(3, 3)
	tracker := &recordingTracker{}

	harness := adaptermocks.NewMockHarness(t)
	oracle := adaptermocks.NewMockOracle(t)

	harness.EXPECT().RunMutant(mock.Anything, tc, mock.Anything).
		Return(m.ExecutionResult{Timeout: true}, nil).Times(3)

	sched := newTestScheduler(harness, oracle, ledger, tracker, DefaultConfig())

	// Act
	for pass := 1; pass <= 3; pass++ {
		verdict := sched.Evaluate(context.Background(), tc, original, nil)

		require.Equal(t, map[m.MutantID]m.MutantStatus{1: m.Killed}, statusByMutant(verdict), "pass %d", pass)
		assert.Equal(t, pass, ledger.State(1).Timeouts)
	}

	fourth := sched.Evaluate(context.Background(), tc, original, nil)

	// Assert
	assert.Equal(t, map[m.MutantID]m.MutantStatus{1: m.PreKilled}, statusByMutant(fourth))
	assert.True(t, ledger.State(1).Disabled)
	assert.True(t, ledger.Exhausted(1))
	assert.Equal(t, []m.MutantID{1, 1, 1}, tracker.timeouts)
	harness.AssertNumberOfCalls(t, "RunMutant", 3)
}

func TestScheduler_PerMutantDeadline(t *testing.T) {
	tc := schedulerTest(t)
	original := m.ExecutionResult{TouchedMutants: []m.MutantID{1}}
	ledger := NewMutantLedger(3, 3)

	cfg := DefaultConfig()
	cfg.MutantTimeout = 20 * time.Millisecond

	harness := adaptermocks.NewMockHarness(t)
	oracle := adaptermocks.NewMockOracle(t)
	harness.EXPECT().RunMutant(mock.Anything, tc, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ *m.TestCase, _ m.Mutant) (m.ExecutionResult, error) {
			<-ctx.Done()
			return m.ExecutionResult{}, ctx.Err()
		}).Once()

	verdict := newTestScheduler(harness, oracle, ledger, nil, cfg).Evaluate(context.Background(), tc, original, nil)

	require.Len(t, verdict.Outcomes, 1)
	assert.Equal(t, m.Killed, verdict.Outcomes[0].Status)
	assert.True(t, verdict.Outcomes[0].Timeout)
	assert.Equal(t, 1, ledger.State(1).Timeouts)
}

func TestScheduler_UniqueException(t *testing.T) {
	tc := schedulerTest(t)
	ledger := NewMutantLedger(3, 3)
	tracker := &recordingTracker{}

	harness := adaptermocks.NewMockHarness(t)
	oracle := adaptermocks.NewMockOracle(t)
	harness.EXPECT().RunMutant(mock.Anything, tc, mock.Anything).Return(m.ExecutionResult{Exception: true}, nil).Once()

	verdict := newTestScheduler(harness, oracle, ledger, tracker, DefaultConfig()).
		Evaluate(context.Background(), tc, m.ExecutionResult{TouchedMutants: []m.MutantID{2}}, nil)

	require.Len(t, verdict.Outcomes, 1)
	assert.Equal(t, m.Killed, verdict.Outcomes[0].Status)
	assert.True(t, verdict.Outcomes[0].Exception)
	assert.Equal(t, 1, ledger.State(2).Exceptions)
	assert.Equal(t, []m.MutantID{2}, tracker.exceptions)
}

func TestScheduler_ExceptionInOriginalIsNotUnique(t *testing.T) {
	tc := schedulerTest(t)
	original := m.ExecutionResult{Exception: true, TouchedMutants: []m.MutantID{2}}
	ledger := NewMutantLedger(3, 3)

	harness := adaptermocks.NewMockHarness(t)
	oracle := adaptermocks.NewMockOracle(t)
	harness.EXPECT().RunMutant(mock.Anything, tc, mock.Anything).Return(m.ExecutionResult{Exception: true}, nil).Once()
	oracle.EXPECT().Compare(tc, original, mock.Anything).Return(adapter.Comparison{}).Once()

	verdict := newTestScheduler(harness, oracle, ledger, nil, DefaultConfig()).
		Evaluate(context.Background(), tc, original, nil)

	assert.Equal(t, map[m.MutantID]m.MutantStatus{2: m.Survived}, statusByMutant(verdict))
	assert.Zero(t, ledger.State(2).Exceptions)
}

func TestScheduler_HarnessFailure(t *testing.T) {
	tc := schedulerTest(t)

	harness := adaptermocks.NewMockHarness(t)
	oracle := adaptermocks.NewMockOracle(t)
	harness.EXPECT().RunMutant(mock.Anything, tc, mock.Anything).Return(m.ExecutionResult{}, errors.New("crashed")).Once()

	ledger := NewMutantLedger(3, 3)
	verdict := newTestScheduler(harness, oracle, ledger, nil, DefaultConfig()).
		Evaluate(context.Background(), tc, m.ExecutionResult{TouchedMutants: []m.MutantID{1}}, nil)

	assert.Equal(t, map[m.MutantID]m.MutantStatus{1: m.Failed}, statusByMutant(verdict))
	assert.Empty(t, ledger.Snapshot(), "a failed run is not a timeout")
}

func TestScheduler_PreKilledAndCap(t *testing.T) {
	// Arrange
	tc := schedulerTest(t)
	ledger := NewMutantLedger(3, 3)
	ledger.Disable(2)

	cfg := DefaultConfig()
	cfg.MaxMutantsPerTest = 1

	harness := adaptermocks.NewMockHarness(t)
	oracle := adaptermocks.NewMockOracle(t)
	harness.EXPECT().RunMutant(mock.Anything, tc, mock.Anything).Return(m.ExecutionResult{}, nil).Once()
	oracle.EXPECT().Compare(tc, mock.Anything, mock.Anything).Return(adapter.Comparison{}).Once()

	// Act
	verdict := newTestScheduler(harness, oracle, ledger, nil, cfg).
		Evaluate(context.Background(), tc, m.ExecutionResult{TouchedMutants: []m.MutantID{1, 2, 3}}, nil)

	// Assert
	require.Len(t, verdict.Outcomes, 3)
	assert.Equal(t, m.PreKilled, statusByMutant(verdict)[2])
	assert.Equal(t, 1, verdict.Count(m.PreKilled))
	assert.Equal(t, 1, verdict.Count(m.Survived), "pre-killed mutants do not count against the cap")
	assert.Equal(t, 1, verdict.Count(m.Unresolved))
	assert.Contains(t, verdict.Killed(), m.MutantID(2))
}

func TestScheduler_BudgetExhausted(t *testing.T) {
	tc := schedulerTest(t)
	now := time.Now()
	budget := newPhaseBudgetWithClock(time.Second, func() time.Time { return now })
	now = now.Add(2 * time.Second)

	harness := adaptermocks.NewMockHarness(t)
	oracle := adaptermocks.NewMockOracle(t)

	ledger := NewMutantLedger(3, 3)
	ledger.Disable(1)

	verdict := newTestScheduler(harness, oracle, ledger, nil, DefaultConfig()).
		Evaluate(context.Background(), tc, m.ExecutionResult{TouchedMutants: []m.MutantID{1, 2}}, budget)

	assert.Equal(t, map[m.MutantID]m.MutantStatus{1: m.Unresolved, 2: m.Unresolved}, statusByMutant(verdict),
		"the budget check precedes the pre-killed check")
}

func TestScheduler_CancelledContext(t *testing.T) {
	tc := schedulerTest(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	harness := adaptermocks.NewMockHarness(t)
	oracle := adaptermocks.NewMockOracle(t)

	verdict := newTestScheduler(harness, oracle, NewMutantLedger(3, 3), nil, DefaultConfig()).
		Evaluate(ctx, tc, m.ExecutionResult{TouchedMutants: []m.MutantID{1, 2, 3}}, NewPhaseBudget(0))

	assert.Equal(t, 3, verdict.Count(m.Unresolved))
}

func TestScheduler_ShuffleIsSeeded(t *testing.T) {
	order := func() []m.MutantID {
		tc := schedulerTest(t)

		var seen []m.MutantID

		harness := adaptermocks.NewMockHarness(t)
		oracle := adaptermocks.NewMockOracle(t)
		harness.EXPECT().RunMutant(mock.Anything, tc, mock.Anything).
			RunAndReturn(func(_ context.Context, _ *m.TestCase, mt m.Mutant) (m.ExecutionResult, error) {
				seen = append(seen, mt.ID)
				return m.ExecutionResult{}, nil
			}).Times(3)
		oracle.EXPECT().Compare(tc, mock.Anything, mock.Anything).Return(adapter.Comparison{}).Times(3)

		newTestScheduler(harness, oracle, NewMutantLedger(3, 3), nil, DefaultConfig()).
			Evaluate(context.Background(), tc, m.ExecutionResult{TouchedMutants: []m.MutantID{1, 2, 3}}, nil)

		return seen
	}

	first := order()
	assert.ElementsMatch(t, []m.MutantID{1, 2, 3}, first)
	assert.Equal(t, first, order(), "the same seed yields the same order")
}

func TestScheduler_JournalsOutcomes(t *testing.T) {
	tc := schedulerTest(t)
	journal, err := winnowpkg.NewFileSpill[m.MutantOutcome](t.TempDir())
	require.NoError(t, err)
	defer journal.Discard()

	harness := adaptermocks.NewMockHarness(t)
	oracle := adaptermocks.NewMockOracle(t)
	harness.EXPECT().RunMutant(mock.Anything, tc, mock.Anything).Return(m.ExecutionResult{Timeout: true}, nil).Times(2)

	sched := NewMutantExecutionScheduler(harness, oracle, NewMutantLedger(3, 3), schedulerRegistry(), nil, journal, DefaultConfig())
	sched.Evaluate(context.Background(), tc, m.ExecutionResult{TouchedMutants: []m.MutantID{1, 3}}, nil)

	assert.Equal(t, uint64(2), journal.Len())

	summary, err := verdictSummaryFromJournal(journal)
	require.NoError(t, err)
	assert.Equal(t, m.VerdictSummary{m.Killed: 2}, summary)
}
