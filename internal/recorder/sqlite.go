package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/contactkeval/option-pde/internal/logger"
)

// SQLiteRecorder persists pricing history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the pricer writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS pricings (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			symbol    TEXT,
			kind      TEXT,
			spot      REAL,
			strike    REAL,
			rate      REAL,
			vol       REAL,
			maturity  REAL,
			price     REAL,
			analytic  REAL,
			abs_error REAL,
			delta     REAL,
			gamma     REAL,
			theta     REAL,
			vega      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pricings_ts ON pricings(timestamp)`,

		`CREATE TABLE IF NOT EXISTS backtest_observations (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol    TEXT,
			date      INTEGER NOT NULL,
			spot      REAL,
			strike    REAL,
			price     REAL,
			analytic  REAL,
			abs_error REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_backtest_date ON backtest_observations(date)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// RecordPricing stores one pricing call.
func (r *SQLiteRecorder) RecordPricing(rec *PricingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO pricings
		(timestamp, symbol, kind, spot, strike, rate, vol, maturity,
		 price, analytic, abs_error, delta, gamma, theta, vega)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Timestamp.Unix(), rec.Symbol, rec.Kind, rec.Spot, rec.Strike,
		rec.Rate, rec.Vol, rec.Maturity, rec.Price, rec.Analytic,
		rec.AbsError, rec.Delta, rec.Gamma, rec.Theta, rec.Vega)
	return err
}

// RecordBacktest stores a batch of observations in one transaction.
func (r *SQLiteRecorder) RecordBacktest(recs []BacktestRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO backtest_observations
		(symbol, date, spot, strike, price, analytic, abs_error)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, rec := range recs {
		if _, err := stmt.Exec(rec.Symbol, rec.Date.Unix(), rec.Spot,
			rec.Strike, rec.Price, rec.Analytic, rec.AbsError); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
