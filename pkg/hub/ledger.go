// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hub

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Ledger records completed downloads in a SQLite database so callers can
// list what the hub holds without walking the directory tree. It is
// bookkeeping only; paper content is never indexed.
type Ledger struct {
	db *sql.DB
}

// Record is one completed download.
type Record struct {
	ID           string    `json:"id" yaml:"id"`
	Title        string    `json:"title" yaml:"title"`
	Category     string    `json:"category" yaml:"category"`
	Path         string    `json:"path" yaml:"path"`
	DownloadedAt time.Time `json:"downloaded_at" yaml:"downloaded_at"`
}

const ledgerSchema = `
CREATE TABLE IF NOT EXISTS downloads (
	id            TEXT PRIMARY KEY,
	title         TEXT NOT NULL,
	category      TEXT NOT NULL,
	path          TEXT NOT NULL,
	downloaded_at TIMESTAMP NOT NULL
);`

// OpenLedger opens or creates the ledger database at path, creating the
// schema if it does not exist.
func OpenLedger(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	if _, err := db.Exec(ledgerSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return &Ledger{db: db}, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Add inserts or replaces the record for a downloaded paper.
func (l *Ledger) Add(ctx context.Context, rec Record) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO downloads (id, title, category, path, downloaded_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Title, rec.Category, rec.Path, rec.DownloadedAt)
	if err != nil {
		return fmt.Errorf("recording download %s: %w", rec.ID, err)
	}
	return nil
}

// List returns all recorded downloads, newest first.
func (l *Ledger) List(ctx context.Context) ([]Record, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, title, category, path, downloaded_at
		 FROM downloads ORDER BY downloaded_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing downloads: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Category, &rec.Path, &rec.DownloadedAt); err != nil {
			return nil, fmt.Errorf("scanning download row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
