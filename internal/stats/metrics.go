package stats

import (
	"time"

	"github.com/shopspring/decimal"
)

// WinRate is wins as a percentage of hands played.
func (t *Tracker) WinRate() float64 {
	return percent(t.data.Wins, t.data.HandsPlayed)
}

func (t *Tracker) AverageBet() float64 {
	if t.data.HandsPlayed == 0 {
		return 0
	}
	return decimal.NewFromFloat(t.data.TotalWagered).
		Div(decimal.NewFromInt(int64(t.data.HandsPlayed))).
		Round(2).InexactFloat64()
}

func (t *Tracker) NetGain() float64 {
	return round2(sub(t.data.TotalWon, t.data.TotalWagered))
}

// DurationMinutes is whole minutes from start to the end time, or to now
// while the session is running.
func (t *Tracker) DurationMinutes() int {
	if t.state == Uninitialized {
		return 0
	}
	end := t.now()
	if t.data.EndTime != nil {
		end = *t.data.EndTime
	}
	d := end.Sub(t.data.StartTime)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}

func (t *Tracker) HandsPerHour() float64 {
	return perHour(float64(t.data.HandsPlayed), t.DurationMinutes())
}

func (t *Tracker) ProfitPerHour() float64 {
	return perHour(t.NetGain(), t.DurationMinutes())
}

func (t *Tracker) BlackjackRate() float64 {
	return percent(t.data.Blackjacks, t.data.HandsPlayed)
}

func (t *Tracker) BustRate() float64 {
	return percent(t.data.Busts, t.data.HandsPlayed)
}

func (t *Tracker) BestWinStreak() int {
	return longestRun(t.history, Win)
}

func (t *Tracker) WorstLossStreak() int {
	return longestRun(t.history, Loss)
}

// RecentPerformance summarises the last n records, or all of them when
// fewer exist. A non-positive n means DefaultRecentWindow. It returns nil
// for an empty history.
func (t *Tracker) RecentPerformance(n int) *Performance {
	if len(t.history) == 0 {
		return nil
	}
	if n <= 0 {
		n = DefaultRecentWindow
	}
	window := t.history
	if len(window) > n {
		window = window[len(window)-n:]
	}

	p := &Performance{Hands: len(window)}
	net := decimal.Zero
	for _, r := range window {
		switch r.Outcome {
		case Win:
			p.Wins++
		case Loss:
			p.Losses++
		default:
			p.Pushes++
		}
		net = net.Add(decimal.NewFromFloat(r.Net))
	}
	p.WinRate = percent(p.Wins, p.Hands)
	p.NetResult = net.Round(2).InexactFloat64()
	return p
}

func (t *Tracker) Summary() Summary {
	return Summary{
		WinRate:         t.WinRate(),
		AverageBet:      t.AverageBet(),
		NetGain:         t.NetGain(),
		DurationMinutes: t.DurationMinutes(),
		HandsPerHour:    t.HandsPerHour(),
		ProfitPerHour:   t.ProfitPerHour(),
		BlackjackRate:   t.BlackjackRate(),
		BustRate:        t.BustRate(),
		BestWinStreak:   t.BestWinStreak(),
		WorstLossStreak: t.WorstLossStreak(),
	}
}

func longestRun(history []Record, want Outcome) int {
	best, cur := 0, 0
	for _, r := range history {
		if r.Outcome != want {
			cur = 0
			continue
		}
		cur++
		if cur > best {
			best = cur
		}
	}
	return best
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(n)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100)).
		Round(2).InexactFloat64()
}

func perHour(v float64, minutes int) float64 {
	if minutes <= 0 {
		return 0
	}
	return decimal.NewFromFloat(v).
		Mul(decimal.NewFromInt(60)).
		Div(decimal.NewFromInt(int64(minutes))).
		Round(2).InexactFloat64()
}
