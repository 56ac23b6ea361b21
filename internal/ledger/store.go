// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger persists a local history of pipeline runs in SQLite.
// The ledger is advisory: it answers "what did we generate and when"
// for the history command, and a ledger failure never undoes a run
// whose spreadsheets are already on disk.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/manifest-engine/pkg/types"
)

const dbFile = "ledger.db"

// RowRecord is one matched manifest as recorded under a run.
type RowRecord struct {
	Driver     string
	Origin     string
	SheetIndex int
	Fleet      string
	DT         string
	Trailer    string
}

// Store manages the run ledger database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger database under ledgerDir and
// ensures the schema exists.
func Open(ledgerDir string) (*Store, error) {
	if err := os.MkdirAll(ledgerDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	dbPath := filepath.Join(ledgerDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			date_label TEXT NOT NULL,
			operator TEXT NOT NULL,
			scanned INTEGER NOT NULL,
			matched INTEGER NOT NULL,
			unmatched INTEGER NOT NULL,
			csv_path TEXT,
			excel_path TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_rows (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			driver TEXT NOT NULL,
			origin TEXT,
			sheet_index INTEGER,
			fleet TEXT,
			dt TEXT,
			trailer TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_rows_run_id ON run_rows(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one run and its matched rows transactionally.
func (s *Store) Record(ctx context.Context, run types.RunSummary, rows []RowRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, date_label, operator, scanned, matched, unmatched, csv_path, excel_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.DateLabel, run.Operator, run.Scanned, run.Matched, run.Unmatched,
		run.CSVPath, run.ExcelPath, run.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_rows (run_id, driver, origin, sheet_index, fleet, dt, trailer)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing row insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			run.ID, row.Driver, row.Origin, row.SheetIndex, row.Fleet, row.DT, row.Trailer,
		); err != nil {
			return fmt.Errorf("inserting row for %s: %w", row.Driver, err)
		}
	}

	return tx.Commit()
}

// Recent returns the latest runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]types.RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date_label, operator, scanned, matched, unmatched, csv_path, excel_path, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.RunSummary
	for rows.Next() {
		var run types.RunSummary
		var createdAt string
		if err := rows.Scan(&run.ID, &run.DateLabel, &run.Operator,
			&run.Scanned, &run.Matched, &run.Unmatched,
			&run.CSVPath, &run.ExcelPath, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			run.CreatedAt = t
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Rows returns the recorded rows for one run, in insertion order.
func (s *Store) Rows(ctx context.Context, runID string) ([]RowRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT driver, origin, sheet_index, fleet, dt, trailer
		 FROM run_rows WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying run rows: %w", err)
	}
	defer rows.Close()

	var records []RowRecord
	for rows.Next() {
		var r RowRecord
		if err := rows.Scan(&r.Driver, &r.Origin, &r.SheetIndex, &r.Fleet, &r.DT, &r.Trailer); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
