package bot

import (
	"fmt"
	"strings"

	"bjtrainer/internal/game"
	"bjtrainer/internal/history"
	"bjtrainer/internal/player"
	"bjtrainer/internal/stats"
	"bjtrainer/internal/strategy"

	"github.com/shopspring/decimal"
)

func money(f float64) string {
	return decimal.NewFromFloat(f).Round(2).String()
}

func formatHand(h *game.Hand) string {
	return fmt.Sprintf("%v (%d)", h.Cards, h.Score())
}

func formatRound(g *game.State, showDealerHand bool) string {
	dealerDisplay := fmt.Sprintf("[%s ?]", g.DealerCards[0])
	if showDealerHand {
		dealerDisplay = fmt.Sprintf("%v (%d)", g.DealerCards, g.DealerScore())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🃏 Dealer: %s\n", dealerDisplay))
	for i, h := range g.Hands {
		marker := ""
		if g.IsActive && i == g.CurrentHand && g.HasMultipleHands() {
			marker = " ◀"
		}
		sb.WriteString(fmt.Sprintf("🎴 You: %s%s\n", formatHand(h), marker))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func resultText(r game.Result) string {
	switch r {
	case game.ResultBlackjack:
		return "🎰 BLACKJACK!"
	case game.ResultPlayerWin:
		return "🎉 You win!"
	case game.ResultDealerWin:
		return "😔 Dealer wins"
	case game.ResultPush:
		return "🤝 Push"
	case game.ResultSurrender:
		return "🏳️ Surrendered"
	}
	return ""
}

func formatRoundEnd(g *game.State, outcomes []game.HandOutcome, payout, bank float64) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🃏 Dealer: %v (%d)\n", g.DealerCards, g.DealerScore()))
	for _, o := range outcomes {
		line := fmt.Sprintf("🎴 You: %s %s", formatHand(o.Hand), resultText(o.Result))
		if o.Hand.IsBust {
			line = fmt.Sprintf("🎴 You: %s 💥 Bust", formatHand(o.Hand))
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\n")
	if payout > 0 {
		sb.WriteString(fmt.Sprintf("💰 Payout: %s\n", money(payout)))
	}
	sb.WriteString(fmt.Sprintf("💵 Bank: %s", money(bank)))
	return sb.String()
}

func formatStats(s *Session) string {
	d := s.Stats.Data()
	sum := s.Stats.Summary()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 Session (%s)\n\n", s.Stats.State()))
	sb.WriteString(fmt.Sprintf("💵 Bank: %s (started with %s)\n", money(d.Bank), money(d.InitialBank)))
	sb.WriteString(fmt.Sprintf("🎮 Hands: %d | ✅ %d ❌ %d 🤝 %d\n", d.HandsPlayed, d.Wins, d.Losses, d.Pushes))
	sb.WriteString(fmt.Sprintf("📈 Win rate: %.2f%% | Net: %s\n", sum.WinRate, money(sum.NetGain)))
	sb.WriteString(fmt.Sprintf("🎯 Avg bet: %s | Wagered: %s\n", money(sum.AverageBet), money(d.TotalWagered)))
	sb.WriteString(fmt.Sprintf("🎰 Blackjacks: %d (%.2f%%) | 💥 Busts: %d (%.2f%%)\n",
		d.Blackjacks, sum.BlackjackRate, d.Busts, sum.BustRate))
	sb.WriteString(fmt.Sprintf("🔥 Best win streak: %d | 🧊 Worst loss streak: %d\n", sum.BestWinStreak, sum.WorstLossStreak))
	sb.WriteString(fmt.Sprintf("⏱ %d min | %.2f hands/h | %s/h\n", sum.DurationMinutes, sum.HandsPerHour, money(sum.ProfitPerHour)))

	if p := s.Stats.RecentPerformance(stats.DefaultRecentWindow); p != nil {
		sb.WriteString(fmt.Sprintf("🕒 Last %d: %d-%d-%d, %.2f%%, net %s\n",
			p.Hands, p.Wins, p.Losses, p.Pushes, p.WinRate, money(p.NetResult)))
	}
	if s.Decisions > 0 {
		sb.WriteString(fmt.Sprintf("📘 Strategy accuracy: %d/%d (%.1f%%)\n", s.Correct, s.Decisions, s.Accuracy()))
	}
	sb.WriteString(fmt.Sprintf("🧮 Shoe: running count %+d, true count %+d", s.Shoe.RunningCount(), s.Shoe.TrueCount()))
	return sb.String()
}

func formatHealth(h stats.Health) string {
	icon := map[stats.HealthStatus]string{
		stats.HealthGood:     "🟢",
		stats.HealthWarning:  "🟡",
		stats.HealthCritical: "🔴",
	}[h.Status]

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s Session health: %s\n", icon, h.Status))
	sb.WriteString(fmt.Sprintf("💵 Bankroll: %s | 📈 Win rate: %s", h.BankLevel, h.WinRateLevel))
	for _, m := range h.Messages {
		sb.WriteString("\n• " + m)
	}
	return sb.String()
}

func formatLifetime(p *player.Player) string {
	return fmt.Sprintf(
		"💰 Bank: %s\n\n"+
			"📊 All sessions:\n"+
			"🗂 Sessions: %d\n"+
			"🎮 Hands: %d\n"+
			"✅ Wins: %d (%.1f%%)\n"+
			"❌ Losses: %d\n"+
			"🤝 Pushes: %d",
		money(p.Bank), p.Sessions, p.Hands, p.Wins, p.WinRate(), p.Losses, p.Pushes)
}

func formatHistory(entries []history.Entry) string {
	var sb strings.Builder
	sb.WriteString("🗂 Recent sessions:\n")
	for _, e := range entries {
		status := "in progress"
		if e.EndedAt != nil {
			status = fmt.Sprintf("%d min", int(e.EndedAt.Sub(e.StartedAt).Minutes()))
		}
		sb.WriteString(fmt.Sprintf("\n%s | %d hands | net %s | %s",
			e.StartedAt.Format("2006-01-02 15:04"), e.HandsPlayed, money(e.NetGain), status))
	}
	return sb.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// formatChart renders a category as a fixed-width grid for a <pre> block.
func formatChart(t *strategy.Table, cat strategy.Category, allowSurrender bool) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-6s", strings.ToUpper(cat.String())))
	for d := strategy.MinDealer; d <= strategy.MaxDealer; d++ {
		sb.WriteString(fmt.Sprintf("%3s", strategy.DealerLabel(d)))
	}

	for i, e := range t.AllEntries(cat) {
		if i%(strategy.MaxDealer-strategy.MinDealer+1) == 0 {
			sb.WriteString(fmt.Sprintf("\n%-6s", strategy.RowLabel(cat, e.Key)))
		}
		action := e.Action
		if !allowSurrender {
			action = e.Fallback
		}
		sb.WriteString(fmt.Sprintf("%3s", action.Code()))
	}

	sb.WriteString("\n\nH hit, S stand, D double, P split")
	if allowSurrender {
		sb.WriteString(", R surrender (else hit)")
	}
	return sb.String()
}

func formatLookup(t *strategy.Table, cat strategy.Category, key string, dealer int, allowSurrender bool) string {
	action := t.Resolve(cat, key, dealer, allowSurrender)
	text := fmt.Sprintf("🎯 %s %s vs %s: %s",
		capitalize(cat.String()), strategy.RowLabel(cat, key), strategy.DealerLabel(dealer), action)

	if action == strategy.Surrender {
		text += fmt.Sprintf("\n(if surrender is not offered: %s)", t.Fallback(cat, key, dealer))
	}
	return text + "\n\n" + strategy.Explain(cat, key, dealer, action)
}
