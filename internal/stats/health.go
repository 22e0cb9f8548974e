package stats

import "fmt"

const (
	criticalBank     = 100.0
	warningBank      = 300.0
	poorWinRate      = 30.0
	fairWinRate      = 40.0
	breakAfterMinute = 240
	// win-rate levels are not judged on fewer hands than this
	minHandsForRate = 10
)

type HealthStatus string

const (
	HealthGood     HealthStatus = "good"
	HealthWarning  HealthStatus = "warning"
	HealthCritical HealthStatus = "critical"
)

// Health is a coarse assessment of the running session.
type Health struct {
	Status           HealthStatus `json:"status"`
	BankLevel        HealthStatus `json:"bankLevel"`
	WinRateLevel     string       `json:"winRateLevel"`
	BreakRecommended bool         `json:"breakRecommended"`
	Messages         []string     `json:"messages"`
}

func (t *Tracker) Health() Health {
	h := Health{
		Status:       HealthGood,
		BankLevel:    HealthGood,
		WinRateLevel: "good",
	}

	bank := t.data.Bank
	switch {
	case bank <= criticalBank:
		h.BankLevel = HealthCritical
		h.Messages = append(h.Messages, fmt.Sprintf("Bankroll critically low (%.2f)", bank))
	case bank <= warningBank:
		h.BankLevel = HealthWarning
		h.Messages = append(h.Messages, fmt.Sprintf("Bankroll running low (%.2f)", bank))
	}

	if t.data.HandsPlayed >= minHandsForRate {
		switch rate := t.WinRate(); {
		case rate < poorWinRate:
			h.WinRateLevel = "poor"
			h.Messages = append(h.Messages, fmt.Sprintf("Win rate is poor (%.2f%%), review the strategy chart", rate))
		case rate < fairWinRate:
			h.WinRateLevel = "fair"
			h.Messages = append(h.Messages, fmt.Sprintf("Win rate is fair (%.2f%%)", rate))
		}
	}

	if minutes := t.DurationMinutes(); minutes > breakAfterMinute {
		h.BreakRecommended = true
		h.Messages = append(h.Messages, fmt.Sprintf("Playing for %d minutes, take a break", minutes))
	}

	switch {
	case h.BankLevel == HealthCritical:
		h.Status = HealthCritical
	case h.BankLevel == HealthWarning || h.WinRateLevel == "poor" || h.BreakRecommended:
		h.Status = HealthWarning
	}
	return h
}
