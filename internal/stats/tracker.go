// Package stats accumulates per-hand outcomes into session metrics.
//
// A Tracker is owned by a single controller and is not safe for
// concurrent use. It knows nothing about blackjack rules beyond the
// outcome tallies it is given.
package stats

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Option func(*Tracker)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(t *Tracker) {
		if log != nil {
			t.log = log
		}
	}
}

// WithDepletedHandler registers a callback fired when a bank update
// leaves the bank at zero.
func WithDepletedHandler(fn func(sessionID string)) Option {
	return func(t *Tracker) {
		t.onDepleted = fn
	}
}

type Tracker struct {
	state      State
	data       SessionData
	history    []Record
	now        func() time.Time
	log        *zap.Logger
	onDepleted func(sessionID string)
}

func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		now: time.Now,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// StartNewSession resets all counters and history and returns the new
// session id. A non-positive bank seeds DefaultBank.
func (t *Tracker) StartNewSession(initialBank float64) string {
	if initialBank <= 0 {
		initialBank = DefaultBank
	}

	t.data = SessionData{
		SessionID:   uuid.NewString(),
		Bank:        round2(initialBank),
		InitialBank: round2(initialBank),
		StartTime:   t.now(),
		IsActive:    true,
	}
	t.history = make([]Record, 0, HistoryLimit)
	t.state = Active

	t.log.Info("session started",
		zap.String("session_id", t.data.SessionID),
		zap.Float64("bank", t.data.Bank),
	)
	return t.data.SessionID
}

// EndSession stamps the end time and freezes the session. It reports
// false when no session is active.
func (t *Tracker) EndSession() bool {
	if t.state != Active {
		t.log.Warn("end requested on inactive session", zap.Stringer("state", t.state))
		return false
	}

	end := t.now()
	t.data.EndTime = &end
	t.data.IsActive = false
	t.state = Ended

	t.log.Info("session ended",
		zap.String("session_id", t.data.SessionID),
		zap.Int("hands", t.data.HandsPlayed),
		zap.Float64("net_gain", t.NetGain()),
	)
	return true
}

// RecordHand adds one dealt round. wins, losses and pushes may add up to
// more than one when the round was split. The record's outcome tag is Win
// if any hand won, else Loss if any lost, else Push. It reports false and
// changes nothing when the session is not active.
func (t *Tracker) RecordHand(playerHands []PlayerHand, dealer DealerHand, bet, payout float64, wins, losses, pushes int) bool {
	if t.state != Active {
		t.log.Warn("record on inactive session",
			zap.String("session_id", t.data.SessionID),
			zap.Stringer("state", t.state),
		)
		return false
	}

	t.data.HandsPlayed++
	t.data.Wins += wins
	t.data.Losses += losses
	t.data.Pushes += pushes
	t.data.TotalWagered = add(t.data.TotalWagered, bet)
	t.data.TotalWon = add(t.data.TotalWon, payout)

	for _, h := range playerHands {
		if h.IsBlackjack() {
			t.data.Blackjacks++
		}
		if h.Busted {
			t.data.Busts++
		}
	}

	outcome := Push
	if wins > 0 {
		outcome = Win
	} else if losses > 0 {
		outcome = Loss
	}

	t.history = append(t.history, Record{
		HandNumber:  t.data.HandsPlayed,
		Timestamp:   t.now(),
		Bet:         bet,
		Payout:      payout,
		Net:         sub(payout, bet),
		Outcome:     outcome,
		PlayerHands: append([]PlayerHand(nil), playerHands...),
		DealerHand:  dealer,
	})
	if len(t.history) > HistoryLimit {
		t.history = append(t.history[:0:0], t.history[len(t.history)-HistoryLimit:]...)
	}

	return true
}

// UpdateBank adds a signed delta to the bank, clamping at zero. A result
// at or below zero fires the depleted handler. It reports false when the
// session is not active.
func (t *Tracker) UpdateBank(delta float64) bool {
	if t.state != Active {
		t.log.Warn("bank update on inactive session",
			zap.String("session_id", t.data.SessionID),
			zap.Float64("delta", delta),
		)
		return false
	}

	bank := add(t.data.Bank, delta)
	if bank <= 0 {
		t.data.Bank = 0
		t.log.Warn("bankroll depleted", zap.String("session_id", t.data.SessionID))
		if t.onDepleted != nil {
			t.onDepleted(t.data.SessionID)
		}
		return true
	}

	t.data.Bank = bank
	return true
}

func (t *Tracker) State() State {
	return t.state
}

func (t *Tracker) IsActive() bool {
	return t.state == Active
}

func (t *Tracker) SessionID() string {
	return t.data.SessionID
}

func (t *Tracker) Bank() float64 {
	return t.data.Bank
}

func (t *Tracker) HandsPlayed() int {
	return t.data.HandsPlayed
}

// Data returns a copy of the session counters.
func (t *Tracker) Data() SessionData {
	d := t.data
	if d.EndTime != nil {
		end := *d.EndTime
		d.EndTime = &end
	}
	return d
}

// HandHistory returns a copy of the history, oldest first.
func (t *Tracker) HandHistory() []Record {
	return copyRecords(nil, t.history)
}

// copyRecords appends deep copies of src to dst.
func copyRecords(dst, src []Record) []Record {
	for _, r := range src {
		r.PlayerHands = append([]PlayerHand(nil), r.PlayerHands...)
		dst = append(dst, r)
	}
	return dst
}

func add(a, b float64) float64 {
	return decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).InexactFloat64()
}

func sub(a, b float64) float64 {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).InexactFloat64()
}

func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
