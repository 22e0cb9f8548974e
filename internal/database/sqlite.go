package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
}

func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err = migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return &DB{db}, nil
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS players (
		chat_id INTEGER PRIMARY KEY,
		bank REAL DEFAULT 1000,
		wins INTEGER DEFAULT 0,
		losses INTEGER DEFAULT 0,
		pushes INTEGER DEFAULT 0,
		hands INTEGER DEFAULT 0,
		sessions INTEGER DEFAULT 0,
		last_bet REAL DEFAULT 25,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_players_bank ON players(bank);
	CREATE INDEX IF NOT EXISTS idx_players_hands ON players(hands);

	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		chat_id INTEGER NOT NULL,
		started_at TEXT NOT NULL,
		ended_at TEXT,
		hands_played INTEGER DEFAULT 0,
		net_gain REAL DEFAULT 0,
		snapshot TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_chat ON sessions(chat_id, started_at);
	`

	_, err := db.Exec(schema)
	return err
}
