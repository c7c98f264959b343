// Package export snapshots loaded performance data into a local SQLite file
// for offline analysis.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/Veraticus/performance-dashboard/internal/model"
	"github.com/Veraticus/performance-dashboard/internal/transform"
)

// SQLiteExporter writes records and bucket totals into a SQLite database.
type SQLiteExporter struct {
	db     *sql.DB
	dbPath string
}

// OpenSQLite opens, creating if needed, the database at dbPath.
func OpenSQLite(dbPath string) (*SQLiteExporter, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("database path is required")
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteExporter{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (e *SQLiteExporter) Close() error {
	return e.db.Close()
}

// Path returns the database file path.
func (e *SQLiteExporter) Path() string {
	return e.dbPath
}

func metricColumns() string {
	cols := make([]string, len(model.Metrics))
	for i, m := range model.Metrics {
		cols[i] = m + " REAL"
	}
	return strings.Join(cols, ",\n\t\t")
}

// WriteRecords replaces the records table with records. Undefined metric
// values are stored as NULL.
func (e *SQLiteExporter) WriteRecords(ctx context.Context, records []model.Record) (int, error) {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS records (
		date TEXT NOT NULL,
		source TEXT,
		campaign_name TEXT,
		creative_name TEXT,
		sub_campaign_name TEXT,
		%s
	)`, metricColumns())
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return 0, fmt.Errorf("failed to create records table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_records_date ON records(date)`); err != nil {
		return 0, fmt.Errorf("failed to create records index: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return 0, fmt.Errorf("failed to clear records: %w", err)
	}

	columns := append([]string{"date", "source", "campaign_name", "creative_name", "sub_campaign_name"}, model.Metrics...)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO records (%s) VALUES (%s)", strings.Join(columns, ", "), placeholders)) // #nosec G201 -- column names are constants
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		args := make([]any, 0, len(columns))
		args = append(args,
			r.Date.Format(model.DateLayout),
			r.Source,
			r.CampaignName,
			r.CreativeName,
			r.SubCampaignName,
		)
		for _, m := range model.Metrics {
			args = append(args, nullable(r.Metric(m)))
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("failed to insert record for %s: %w", r.Date.Format(model.DateLayout), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit records: %w", err)
	}
	return len(records), nil
}

// WriteTotals replaces the rows of the bucket_totals table for granularity g.
func (e *SQLiteExporter) WriteTotals(ctx context.Context, g model.Granularity, totals []transform.BucketTotals) error {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS bucket_totals (
		granularity TEXT NOT NULL,
		bucket TEXT NOT NULL,
		metric TEXT NOT NULL,
		value REAL,
		rows INTEGER NOT NULL,
		PRIMARY KEY (granularity, bucket, metric)
	)`); err != nil {
		return fmt.Errorf("failed to create bucket_totals table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM bucket_totals WHERE granularity = ?`, string(g)); err != nil {
		return fmt.Errorf("failed to clear bucket totals: %w", err)
	}

	for _, bt := range totals {
		bucket := bt.Bucket.Format(model.DateLayout)
		for metric, value := range bt.Metrics {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO bucket_totals (granularity, bucket, metric, value, rows) VALUES (?, ?, ?, ?, ?)`,
				string(g), bucket, metric, nullable(value), bt.Rows); err != nil {
				return fmt.Errorf("failed to insert total for %s: %w", bucket, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bucket totals: %w", err)
	}
	return nil
}

// CountRecords returns the number of rows in the records table.
func (e *SQLiteExporter) CountRecords(ctx context.Context) (int, error) {
	var n int
	if err := e.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

func nullable(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
