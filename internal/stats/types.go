package stats

import "time"

const (
	// HistoryLimit caps the rolling hand history; the oldest record is
	// evicted first.
	HistoryLimit = 100
	DefaultBank  = 1000.0
	// DefaultRecentWindow is the hand count used by RecentPerformance.
	DefaultRecentWindow = 20
)

type State int

const (
	Uninitialized State = iota
	Active
	Ended
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Ended:
		return "ended"
	default:
		return "uninitialized"
	}
}

type Outcome string

const (
	Win  Outcome = "win"
	Loss Outcome = "loss"
	Push Outcome = "push"
)

// PlayerHand summarises one player hand of a round.
type PlayerHand struct {
	Value   int  `json:"value"`
	Cards   int  `json:"cardCount"`
	Busted  bool `json:"busted"`
	Doubled bool `json:"doubled"`
	Split   bool `json:"split"`
}

func (h PlayerHand) IsBlackjack() bool {
	return h.Value == 21 && h.Cards == 2
}

type DealerHand struct {
	Value  int  `json:"value"`
	Cards  int  `json:"cardCount"`
	Busted bool `json:"busted"`
}

// Record is one played round in the hand history.
type Record struct {
	HandNumber  int          `json:"handNumber"`
	Timestamp   time.Time    `json:"timestamp"`
	Bet         float64      `json:"bet"`
	Payout      float64      `json:"payout"`
	Net         float64      `json:"netResult"`
	Outcome     Outcome      `json:"outcome"`
	PlayerHands []PlayerHand `json:"playerHands"`
	DealerHand  DealerHand   `json:"dealerHand"`
}

// SessionData holds the flat session counters.
type SessionData struct {
	SessionID    string     `json:"sessionId"`
	HandsPlayed  int        `json:"handsPlayed"`
	Wins         int        `json:"wins"`
	Losses       int        `json:"losses"`
	Pushes       int        `json:"pushes"`
	Blackjacks   int        `json:"blackjacks"`
	Busts        int        `json:"busts"`
	Bank         float64    `json:"bankAmount"`
	InitialBank  float64    `json:"initialBank"`
	TotalWagered float64    `json:"totalWagered"`
	TotalWon     float64    `json:"totalWon"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	IsActive     bool       `json:"isActive"`
}

// Performance covers the most recent hands of the history.
type Performance struct {
	Hands     int     `json:"hands"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	Pushes    int     `json:"pushes"`
	WinRate   float64 `json:"winRate"`
	NetResult float64 `json:"netResult"`
}

// Summary is the derived view exported with a snapshot.
type Summary struct {
	WinRate         float64 `json:"winRate"`
	AverageBet      float64 `json:"averageBet"`
	NetGain         float64 `json:"netGain"`
	DurationMinutes int     `json:"durationMinutes"`
	HandsPerHour    float64 `json:"handsPerHour"`
	ProfitPerHour   float64 `json:"profitPerHour"`
	BlackjackRate   float64 `json:"blackjackRate"`
	BustRate        float64 `json:"bustRate"`
	BestWinStreak   int     `json:"bestWinStreak"`
	WorstLossStreak int     `json:"worstLossStreak"`
}

// Snapshot is the export/import layout.
type Snapshot struct {
	SessionData SessionData `json:"sessionData"`
	HandHistory []Record    `json:"handHistory"`
	Summary     Summary     `json:"summary"`
}
