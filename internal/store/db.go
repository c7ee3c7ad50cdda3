package store

import (
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"

	"owid-charts/internal/model"
)

var db *sql.DB

// ErrRunNotFound is returned by GetRun for an unknown id.
var ErrRunNotFound = errors.New("run not found")

// Initialize DB connection
func InitDB(dbPath string) error {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return errors.Wrapf(err, "open history db %s", dbPath)
	}

	runTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		command TEXT,
		status TEXT,
		row_count INTEGER DEFAULT 0,
		chart_count INTEGER DEFAULT 0,
		output_dir TEXT DEFAULT '',
		error_message TEXT DEFAULT '',
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	acquisitionTable := `
	CREATE TABLE IF NOT EXISTS acquisitions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT,
		success BOOLEAN,
		bytes INTEGER,
		error_message TEXT,
		duration_ms INTEGER,
		created_at DATETIME
	);
	`

	for _, stmt := range []string{runTable, acquisitionTable} {
		if _, err := conn.Exec(stmt); err != nil {
			conn.Close()
			return errors.Wrap(err, "create history tables")
		}
	}

	db = conn
	return nil
}

// Close releases the connection. Later calls become no-ops.
func Close() error {
	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	return err
}

// Enabled reports whether InitDB succeeded. Every write is skipped otherwise,
// so the charts still render without a history file.
func Enabled() bool {
	return db != nil
}

// SaveRun stores a new run in the running state
func SaveRun(runID, command string) error {
	if db == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO runs (id, command, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		runID, command, model.RunStatusRunning, now, now)
	return err
}

// CompleteRun marks a run completed with its counters
func CompleteRun(runID string, rowCount, chartCount int, outputDir string) error {
	if db == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE runs SET status = ?, row_count = ?, chart_count = ?, output_dir = ?, updated_at = ? WHERE id = ?`,
		model.RunStatusCompleted, rowCount, chartCount, outputDir, now, runID)
	return err
}

// SetRunOutput records where a run's files were exported
func SetRunOutput(runID, outputDir string) error {
	if db == nil {
		return nil
	}
	_, err := db.Exec(`UPDATE runs SET output_dir = ?, updated_at = ? WHERE id = ?`, outputDir, time.Now().UTC(), runID)
	return err
}

// FailRun records the error that aborted a run
func FailRun(runID string, runErr error) error {
	if db == nil || runErr == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE runs SET status = ?, error_message = ?, updated_at = ? WHERE id = ?`,
		model.RunStatusFailed, runErr.Error(), now, runID)
	return err
}

// ListRuns returns all runs, newest first
func ListRuns() ([]model.RunRecord, error) {
	if db == nil {
		return nil, nil
	}
	rows, err := db.Query(`SELECT id, command, status, row_count, chart_count, output_dir, error_message, created_at, updated_at
		FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.RunRecord
	for rows.Next() {
		var r model.RunRecord
		if err := rows.Scan(&r.ID, &r.Command, &r.Status, &r.RowCount, &r.ChartCount, &r.OutputDir, &r.Error, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun fetches one run
func GetRun(runID string) (model.RunRecord, error) {
	var r model.RunRecord
	if db == nil {
		return r, ErrRunNotFound
	}
	err := db.QueryRow(`SELECT id, command, status, row_count, chart_count, output_dir, error_message, created_at, updated_at
		FROM runs WHERE id = ?`, runID).
		Scan(&r.ID, &r.Command, &r.Status, &r.RowCount, &r.ChartCount, &r.OutputDir, &r.Error, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return r, errors.Wrapf(ErrRunNotFound, "run %s", runID)
	}
	return r, err
}

// SaveAcquisition records one download attempt
func SaveAcquisition(a model.Acquisition) error {
	if db == nil {
		return nil
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := db.Exec(`INSERT INTO acquisitions (url, success, bytes, error_message, duration_ms, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		a.URL, a.Success, a.Bytes, a.Error, a.Duration, a.CreatedAt)
	return err
}

// ListAcquisitions returns the most recent download attempts first
func ListAcquisitions(limit int) ([]model.Acquisition, error) {
	if db == nil {
		return nil, nil
	}
	rows, err := db.Query(`SELECT id, url, success, bytes, error_message, duration_ms, created_at
		FROM acquisitions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Acquisition
	for rows.Next() {
		var a model.Acquisition
		if err := rows.Scan(&a.ID, &a.URL, &a.Success, &a.Bytes, &a.Error, &a.Duration, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
