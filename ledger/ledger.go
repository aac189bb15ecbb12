package ledger

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"communekit.com/project-community-app/models"
)

// LikeLedger is the device-durable record of which items this device
// has already counted a like for. It is single-device truth only: the
// server keeps no per-user like rows, so nothing reconciles this set
// across devices.
type LikeLedger interface {
	IsLiked(kind models.ContentKind, itemID int) (bool, error)
	// SetLiked is idempotent: marking an already-liked item or clearing
	// an already-clear one is a no-op with no error.
	SetLiked(kind models.ContentKind, itemID int, liked bool) error
}

// SQLiteLedger stores the liked set in a local SQLite file, keyed by
// (kind, item id) so a project and an article sharing a numeric id
// never collide. Survives app restarts and reinstalls that keep the
// data directory.
type SQLiteLedger struct {
	db *sql.DB
}

func OpenSQLiteLedger(path string) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping ledger database: %w", err)
	}

	_, err = db.Exec(`
    CREATE TABLE IF NOT EXISTS device_likes (
        kind TEXT NOT NULL,
        item_id INTEGER NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
        UNIQUE(kind, item_id)
    )`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create ledger table: %w", err)
	}

	return &SQLiteLedger{db: db}, nil
}

func (l *SQLiteLedger) IsLiked(kind models.ContentKind, itemID int) (bool, error) {
	var exists bool
	err := l.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM device_likes WHERE kind = ? AND item_id = ?)`,
		kind, itemID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to read like ledger: %w", err)
	}
	return exists, nil
}

func (l *SQLiteLedger) SetLiked(kind models.ContentKind, itemID int, liked bool) error {
	var err error
	if liked {
		_, err = l.db.Exec(
			`INSERT OR IGNORE INTO device_likes (kind, item_id) VALUES (?, ?)`,
			kind, itemID)
	} else {
		_, err = l.db.Exec(
			`DELETE FROM device_likes WHERE kind = ? AND item_id = ?`,
			kind, itemID)
	}
	if err != nil {
		return fmt.Errorf("failed to write like ledger: %w", err)
	}
	return nil
}

func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}
