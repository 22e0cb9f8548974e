package player

import (
	"database/sql"
	"fmt"

	"bjtrainer/internal/stats"
)

type Player struct {
	ChatID   int64
	Bank     float64
	Wins     int
	Losses   int
	Pushes   int
	Hands    int
	Sessions int
	LastBet  float64
}

type Standing struct {
	ChatID  int64
	Bank    float64
	Wins    int
	Hands   int
	WinRate float64
}

type Repository interface {
	GetOrCreate(chatID int64, startBank, defaultBet float64) (*Player, error)
	Save(player *Player) error
	GetTopByBank(limit int) ([]Standing, error)
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) GetOrCreate(chatID int64, startBank, defaultBet float64) (*Player, error) {
	player := &Player{ChatID: chatID}

	err := r.db.QueryRow(`
		SELECT bank, wins, losses, pushes, hands, sessions, last_bet
		FROM players WHERE chat_id = ?
	`, chatID).Scan(
		&player.Bank, &player.Wins, &player.Losses, &player.Pushes,
		&player.Hands, &player.Sessions, &player.LastBet,
	)

	if err == sql.ErrNoRows {
		player.Bank = startBank
		player.LastBet = defaultBet

		_, err = r.db.Exec(`
			INSERT INTO players (chat_id, bank, last_bet)
			VALUES (?, ?, ?)
		`, chatID, player.Bank, player.LastBet)

		if err != nil {
			return nil, fmt.Errorf("failed to create player: %w", err)
		}
		return player, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (r *SQLiteRepository) Save(player *Player) error {
	_, err := r.db.Exec(`
		UPDATE players SET
			bank = ?, wins = ?, losses = ?, pushes = ?, hands = ?,
			sessions = ?, last_bet = ?, updated_at = CURRENT_TIMESTAMP
		WHERE chat_id = ?
	`, player.Bank, player.Wins, player.Losses, player.Pushes, player.Hands,
		player.Sessions, player.LastBet, player.ChatID)

	if err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetTopByBank(limit int) ([]Standing, error) {
	rows, err := r.db.Query(`
		SELECT chat_id, bank, wins, hands
		FROM players
		WHERE hands > 0
		ORDER BY bank DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var standings []Standing
	for rows.Next() {
		var s Standing
		if err := rows.Scan(&s.ChatID, &s.Bank, &s.Wins, &s.Hands); err != nil {
			return nil, err
		}
		if s.Hands > 0 {
			s.WinRate = float64(s.Wins) / float64(s.Hands) * 100
		}
		standings = append(standings, s)
	}

	return standings, rows.Err()
}

// ApplySession folds a finished session into the lifetime totals and
// carries its final bank over.
func (p *Player) ApplySession(d stats.SessionData) {
	p.Bank = d.Bank
	p.Wins += d.Wins
	p.Losses += d.Losses
	p.Pushes += d.Pushes
	p.Hands += d.HandsPlayed
	p.Sessions++
}

func (p *Player) WinRate() float64 {
	if p.Hands == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Hands) * 100
}
