// Package history stores exported session snapshots.
package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bjtrainer/internal/stats"
)

var ErrNotFound = errors.New("session not found")

// Entry is the listing view of a stored session.
type Entry struct {
	SessionID   string
	ChatID      int64
	StartedAt   time.Time
	EndedAt     *time.Time
	HandsPlayed int
	NetGain     float64
}

type Repository interface {
	Save(chatID int64, snap stats.Snapshot) error
	Get(sessionID string) (stats.Snapshot, error)
	ListByChat(chatID int64, limit int) ([]Entry, error)
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save inserts or replaces the snapshot of a session.
func (r *SQLiteRepository) Save(chatID int64, snap stats.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	var endedAt sql.NullString
	if snap.SessionData.EndTime != nil {
		endedAt = sql.NullString{String: snap.SessionData.EndTime.UTC().Format(time.RFC3339Nano), Valid: true}
	}

	_, err = r.db.Exec(`
		INSERT INTO sessions (id, chat_id, started_at, ended_at, hands_played, net_gain, snapshot)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			ended_at = excluded.ended_at,
			hands_played = excluded.hands_played,
			net_gain = excluded.net_gain,
			snapshot = excluded.snapshot
	`, snap.SessionData.SessionID, chatID,
		snap.SessionData.StartTime.UTC().Format(time.RFC3339Nano), endedAt,
		snap.SessionData.HandsPlayed, snap.Summary.NetGain, string(data))

	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(sessionID string) (stats.Snapshot, error) {
	var data string
	err := r.db.QueryRow(`SELECT snapshot FROM sessions WHERE id = ?`, sessionID).Scan(&data)
	if err == sql.ErrNoRows {
		return stats.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return stats.Snapshot{}, fmt.Errorf("failed to get session: %w", err)
	}

	var snap stats.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return stats.Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}

// ListByChat returns the newest sessions of a chat first.
func (r *SQLiteRepository) ListByChat(chatID int64, limit int) ([]Entry, error) {
	rows, err := r.db.Query(`
		SELECT id, started_at, ended_at, hands_played, net_gain
		FROM sessions
		WHERE chat_id = ?
		ORDER BY started_at DESC
		LIMIT ?
	`, chatID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       = Entry{ChatID: chatID}
			started string
			ended   sql.NullString
		)
		if err := rows.Scan(&e.SessionID, &started, &ended, &e.HandsPlayed, &e.NetGain); err != nil {
			return nil, err
		}
		if e.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("bad started_at for %s: %w", e.SessionID, err)
		}
		if ended.Valid {
			t, err := time.Parse(time.RFC3339Nano, ended.String)
			if err != nil {
				return nil, fmt.Errorf("bad ended_at for %s: %w", e.SessionID, err)
			}
			e.EndedAt = &t
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
