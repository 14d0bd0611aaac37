package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"bforest/internal"
)

// Store persists daily candles in a local SQLite database. It replaces the
// per-ticker CSV cache: one file, one table, date-range queries.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the database and runs migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS candles (
			ticker TEXT NOT NULL,
			date   TEXT NOT NULL,
			open   REAL NOT NULL,
			high   REAL NOT NULL,
			low    REAL NOT NULL,
			close  REAL NOT NULL,
			volume REAL NOT NULL,
			PRIMARY KEY (ticker, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_candles_ticker ON candles(ticker)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveCandles upserts a batch of candles for a ticker in one transaction.
func (s *Store) SaveCandles(ticker string, candles []internal.Candle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO candles
		(ticker, date, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range candles {
		_, err := stmt.Exec(ticker, c.Date.Format("2006-01-02"),
			c.Open, c.High, c.Low, c.Close, c.Volume)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert candle: %w", err)
		}
	}
	return tx.Commit()
}

// LoadCandles returns cached candles for a ticker within [from, to],
// ordered by date ascending. An empty result is not an error.
func (s *Store) LoadCandles(ticker string, from, to time.Time) ([]internal.Candle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT date, open, high, low, close, volume
		FROM candles
		WHERE ticker = ? AND date >= ? AND date <= ?
		ORDER BY date`,
		ticker, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("query candles: %w", err)
	}
	defer rows.Close()

	var candles []internal.Candle
	for rows.Next() {
		var dateStr string
		var c internal.Candle
		if err := rows.Scan(&dateStr, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
			return nil, fmt.Errorf("scan candle: %w", err)
		}
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("bad date in cache: %w", err)
		}
		c.Date = date.UTC()
		candles = append(candles, c)
	}
	return candles, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
