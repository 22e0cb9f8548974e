package bot

import (
	"math/rand"
	"sync"

	"bjtrainer/internal/counting"
	"bjtrainer/internal/game"
	"bjtrainer/internal/stats"
)

// Session is the per-chat controller state. It exclusively owns its
// stats tracker; mu must be held for every access.
type Session struct {
	mu sync.Mutex

	ChatID    int64
	Stats     *stats.Tracker
	Shoe      *game.Shoe
	Round     *game.State
	LastBet   float64
	Decisions int
	Correct   int

	RunningDrill *counting.RunningDrill
	TrueDrill    *counting.TrueDrill

	rng      *rand.Rand
	depleted bool
}

// Accuracy is the share of practice decisions that matched basic
// strategy, as a percentage.
func (s *Session) Accuracy() float64 {
	if s.Decisions == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Decisions) * 100
}

func (s *Session) roundActive() bool {
	return s.Round != nil && s.Round.IsActive
}

// Manager holds the live session of each chat.
type Manager struct {
	sessions map[int64]*Session
	mu       sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
	}
}

func (m *Manager) Get(chatID int64) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[chatID]
}

// DeleteIf removes the chat's session only if it is still s, so a stale
// session never evicts its replacement.
func (m *Manager) DeleteIf(chatID int64, s *Session) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[chatID] != s {
		return false
	}
	delete(m.sessions, chatID)
	return true
}

// GetOrCreate returns the chat's session, calling create under the write
// lock when there is none.
func (m *Manager) GetOrCreate(chatID int64, create func() *Session) (*Session, bool) {
	if s := m.Get(chatID); s != nil {
		return s, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[chatID]; ok {
		return s, false
	}
	s := create()
	m.sessions[chatID] = s
	return s, true
}
