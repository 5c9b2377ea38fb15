package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	m "gooze.dev/pkg/winnow/internal/model"
)

// LedgerStore persists mutant ledgers and the run history between passes.
// Every method opens the database at path and closes it before returning.
// SaveRun is safe for concurrent use; writes through one store are serialized.
type LedgerStore interface {
	LoadLedger(ctx context.Context, path m.Path, suite string) ([]m.LedgerState, error)
	SaveRun(ctx context.Context, path m.Path, run m.RunRecord, states []m.LedgerState) error
	Runs(ctx context.Context, path m.Path, suite string, limit int) ([]m.RunRecord, error)
}

type sqliteLedgerStore struct {
	writeMu sync.Mutex
}

// NewLedgerStore returns a LedgerStore backed by a SQLite file.
func NewLedgerStore() LedgerStore {
	return &sqliteLedgerStore{}
}

// ledgerPragmas make other connections wait for a held lock instead of
// failing with SQLITE_BUSY.
const ledgerPragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

const ledgerSchema = `
CREATE TABLE IF NOT EXISTS ledger (
	suite      TEXT    NOT NULL,
	mutant     INTEGER NOT NULL,
	timeouts   INTEGER NOT NULL DEFAULT 0,
	exceptions INTEGER NOT NULL DEFAULT 0,
	disabled   INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (suite, mutant)
);
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT    PRIMARY KEY,
	suite      TEXT    NOT NULL,
	started_at INTEGER NOT NULL,
	score      REAL    NOT NULL,
	known      INTEGER NOT NULL,
	killed     INTEGER NOT NULL,
	candidates INTEGER NOT NULL,
	retained   INTEGER NOT NULL,
	dropped    INTEGER NOT NULL
);`

func openLedger(ctx context.Context, path m.Path) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("ledger path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create ledger dir: %w", err)
	}

	db, err := sql.Open("sqlite", string(path)+ledgerPragmas)
	if err != nil {
		slog.Error("Failed to open ledger", "path", path, "error", err)
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.ExecContext(ctx, ledgerSchema); err != nil {
		_ = db.Close()

		slog.Error("Failed to create ledger schema", "path", path, "error", err)

		return nil, fmt.Errorf("create ledger schema: %w", err)
	}

	return db, nil
}

func (s *sqliteLedgerStore) LoadLedger(ctx context.Context, path m.Path, suite string) ([]m.LedgerState, error) {
	db, err := openLedger(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx,
		`SELECT mutant, timeouts, exceptions, disabled FROM ledger WHERE suite = ? ORDER BY mutant`, suite)
	if err != nil {
		return nil, fmt.Errorf("select ledger: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var states []m.LedgerState

	for rows.Next() {
		var (
			st       m.LedgerState
			disabled int
		)

		if err := rows.Scan(&st.Mutant, &st.Timeouts, &st.Exceptions, &disabled); err != nil {
			return nil, fmt.Errorf("scan ledger: %w", err)
		}

		st.Disabled = disabled != 0
		states = append(states, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger: %w", err)
	}

	return states, nil
}

func (s *sqliteLedgerStore) SaveRun(ctx context.Context, path m.Path, run m.RunRecord, states []m.LedgerState) (retErr error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	db, err := openLedger(ctx, path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ledger tx: %w", err)
	}

	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	for _, st := range states {
		_, err := tx.ExecContext(ctx, `INSERT INTO ledger (suite, mutant, timeouts, exceptions, disabled)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(suite, mutant) DO UPDATE SET
				timeouts = excluded.timeouts,
				exceptions = excluded.exceptions,
				disabled = excluded.disabled`,
			run.Suite, int(st.Mutant), st.Timeouts, st.Exceptions, boolToInt(st.Disabled))
		if err != nil {
			slog.Error("Failed to upsert ledger state", "suite", run.Suite, "mutant", st.Mutant, "error", err)
			return fmt.Errorf("upsert ledger: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO runs (id, suite, started_at, score, known, killed, candidates, retained, dropped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Suite, run.StartedAt.UnixNano(), run.Score, run.Known, run.Killed, run.Candidates, run.Retained, run.Dropped)
	if err != nil {
		slog.Error("Failed to insert run", "run", run.ID, "error", err)
		return fmt.Errorf("insert run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ledger: %w", err)
	}

	return nil
}

func (s *sqliteLedgerStore) Runs(ctx context.Context, path m.Path, suite string, limit int) ([]m.RunRecord, error) {
	db, err := openLedger(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	if limit <= 0 {
		limit = -1
	}

	rows, err := db.QueryContext(ctx, `SELECT id, suite, started_at, score, known, killed, candidates, retained, dropped
		FROM runs WHERE (? = '' OR suite = ?) ORDER BY started_at DESC, id LIMIT ?`, suite, suite, limit)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []m.RunRecord

	for rows.Next() {
		var (
			run     m.RunRecord
			started int64
		)

		if err := rows.Scan(&run.ID, &run.Suite, &started, &run.Score, &run.Known, &run.Killed,
			&run.Candidates, &run.Retained, &run.Dropped); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}

		run.StartedAt = time.Unix(0, started).UTC()
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
