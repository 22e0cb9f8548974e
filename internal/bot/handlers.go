package bot

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"bjtrainer/internal/config"
	"bjtrainer/internal/counting"
	"bjtrainer/internal/game"
	"bjtrainer/internal/history"
	"bjtrainer/internal/logger"
	"bjtrainer/internal/player"
	"bjtrainer/internal/stats"
	"bjtrainer/internal/strategy"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// sender is the part of *tgbotapi.BotAPI the handlers use.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Handler struct {
	bot      sender
	cfg      *config.Config
	players  player.Repository
	history  history.Repository
	table    *strategy.Table
	sessions *Manager
	log      *zap.Logger
	newShoe  func(rng *rand.Rand) *game.Shoe
}

func NewHandler(bot sender, cfg *config.Config, players player.Repository, sessions history.Repository, table *strategy.Table, log *zap.Logger) *Handler {
	return &Handler{
		bot:      bot,
		cfg:      cfg,
		players:  players,
		history:  sessions,
		table:    table,
		sessions: NewManager(),
		log:      logger.OrNop(log),
		newShoe: func(rng *rand.Rand) *game.Shoe {
			return game.NewShoe(cfg.ShoeDecks, rng)
		},
	}
}

// ============== HELPERS ==============

func (h *Handler) send(chatID int64, text string) {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.log.Error("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *Handler) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := h.bot.Send(msg); err != nil {
		h.log.Error("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *Handler) sendPre(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "<pre>"+text+"</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := h.bot.Send(msg); err != nil {
		h.log.Error("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.log.Debug("failed to answer callback", zap.Error(err))
	}
}

func (h *Handler) getPlayer(chatID int64) (*player.Player, error) {
	return h.players.GetOrCreate(chatID, h.cfg.StartBank, h.cfg.DefaultBet)
}

func (h *Handler) savePlayer(p *player.Player) {
	if err := h.players.Save(p); err != nil {
		h.log.Error("failed to save player", zap.Int64("chat_id", p.ChatID), zap.Error(err))
	}
}

func (h *Handler) newSession(chatID int64, p *player.Player) *Session {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() ^ chatID))
	s := &Session{
		ChatID:  chatID,
		Shoe:    h.newShoe(rng),
		LastBet: p.LastBet,
		rng:     rng,
	}
	s.Stats = stats.NewTracker(
		stats.WithLogger(h.log.With(zap.Int64("chat_id", chatID))),
		stats.WithDepletedHandler(func(string) { s.depleted = true }),
	)
	bank := p.Bank
	if bank <= 0 {
		bank = h.cfg.StartBank
	}
	s.Stats.StartNewSession(bank)
	return s
}

// session returns the chat's live session, starting one from the
// player's stored bank when there is none.
func (h *Handler) session(chatID int64) (*Session, error) {
	if s := h.sessions.Get(chatID); s != nil {
		return s, nil
	}

	p, err := h.getPlayer(chatID)
	if err != nil {
		return nil, err
	}
	s, _ := h.sessions.GetOrCreate(chatID, func() *Session {
		return h.newSession(chatID, p)
	})
	return s, nil
}

// closeSession ends the tracker, stores its snapshot and folds the result
// into the player. s.mu must be held.
func (h *Handler) closeSession(s *Session) (stats.SessionData, error) {
	h.sessions.DeleteIf(s.ChatID, s)
	if !s.Stats.EndSession() {
		return s.Stats.Data(), nil
	}

	snap := s.Stats.Export()
	if err := h.history.Save(s.ChatID, snap); err != nil {
		return snap.SessionData, fmt.Errorf("failed to store session: %w", err)
	}

	p, err := h.getPlayer(s.ChatID)
	if err != nil {
		return snap.SessionData, err
	}
	p.ApplySession(snap.SessionData)
	p.LastBet = s.LastBet
	h.savePlayer(p)

	return snap.SessionData, nil
}

func (h *Handler) keyboardOptions(s *Session) GameKeyboardOptions {
	hand := s.Round.Current()
	if hand == nil {
		return GameKeyboardOptions{}
	}
	affordable := s.Stats.Bank() >= hand.Bet
	return GameKeyboardOptions{
		CanDouble:    s.Round.CanDouble() && affordable,
		CanSplit:     s.Round.CanSplit() && affordable,
		CanSurrender: h.cfg.AllowSurrender && s.Round.CanSurrender(),
	}
}

func (h *Handler) advise(s *Session) (strategy.Action, bool) {
	hand := s.Round.Current()
	if hand == nil {
		return strategy.Hit, false
	}
	opts := h.keyboardOptions(s)
	return h.table.Advise(hand.Cards, s.Round.DealerUpcard(), strategy.Options{
		CanDouble:    opts.CanDouble,
		CanSplit:     opts.CanSplit,
		CanSurrender: opts.CanSurrender,
	})
}

func playerHands(outcomes []game.HandOutcome) []stats.PlayerHand {
	hands := make([]stats.PlayerHand, 0, len(outcomes))
	for _, o := range outcomes {
		hands = append(hands, stats.PlayerHand{
			Value:   o.Hand.Score(),
			Cards:   len(o.Hand.Cards),
			Busted:  o.Hand.IsBust,
			Doubled: o.Hand.IsDouble,
			Split:   o.Hand.FromSplit,
		})
	}
	return hands
}

func dealerHand(g *game.State) stats.DealerHand {
	return stats.DealerHand{
		Value:  g.DealerScore(),
		Cards:  len(g.DealerCards),
		Busted: game.IsBust(g.DealerCards),
	}
}

// ============== COMMANDS ==============

func (h *Handler) HandleStart(chatID int64) {
	if old := h.sessions.Get(chatID); old != nil {
		old.mu.Lock()
		busy := old.roundActive()
		var err error
		switch {
		case busy:
		case old.Stats.IsActive():
			_, err = h.closeSession(old)
		default:
			h.sessions.DeleteIf(chatID, old)
		}
		old.mu.Unlock()

		if busy {
			h.send(chatID, "❌ Finish the current hand first.")
			return
		}
		if err != nil {
			h.log.Error("failed to close session", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}

	s, err := h.session(chatID)
	if err != nil {
		h.log.Error("failed to start session", zap.Int64("chat_id", chatID), zap.Error(err))
		h.send(chatID, "❌ Error. Try again later.")
		return
	}

	s.mu.Lock()
	bank := s.Stats.Bank()
	s.mu.Unlock()

	h.send(chatID, fmt.Sprintf(
		"🎰 Blackjack strategy trainer\n\n"+
			"💵 Bank: %s\n\n"+
			"/play <bet> - practice a hand\n"+
			"/lookup hard 16 10 - quick strategy lookup\n"+
			"/chart hard|soft|pair - strategy chart\n"+
			"/count - running count drill\n"+
			"/truecount - true count drill\n"+
			"/stats - session statistics\n"+
			"/end - end the session\n"+
			"/help - all commands",
		money(bank)))
}

func (h *Handler) HandleHelp(chatID int64) {
	h.send(chatID,
		"📖 Commands\n\n"+
			"🎮 Practice\n"+
			"/play <bet> - deal a hand; every decision is checked against basic strategy\n"+
			"💡 Hint shows the correct play\n\n"+
			"📘 Strategy\n"+
			"/lookup <hard|soft|pair> <hand> <dealer> - e.g. /lookup soft 18 9, /lookup pair A 10\n"+
			"/lookup <cards> <dealer> - e.g. /lookup A,7 9\n"+
			"/chart <hard|soft|pair>\n\n"+
			"🧮 Counting (Hi-Lo)\n"+
			"/count [cards] - count the cards, reply /answer <n>\n"+
			"/truecount - convert to a true count, reply /answer <n>\n\n"+
			"📊 Session\n"+
			"/stats, /health, /end, /history, /balance, /top")
}

func (h *Handler) HandleBalance(chatID int64) {
	p, err := h.getPlayer(chatID)
	if err != nil {
		h.send(chatID, "❌ Error")
		return
	}
	h.send(chatID, formatLifetime(p))
}

func (h *Handler) HandleTop(chatID int64) {
	standings, err := h.players.GetTopByBank(10)
	if err != nil {
		h.send(chatID, "❌ Error")
		return
	}

	if len(standings) == 0 {
		h.send(chatID, "🏆 Nobody has played yet!")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏆 Top players:\n\n")

	medals := []string{"🥇", "🥈", "🥉"}
	for i, s := range standings {
		medal := fmt.Sprintf("%d.", i+1)
		if i < 3 {
			medal = medals[i]
		}
		sb.WriteString(fmt.Sprintf("%s %s 💰 | %d hands (%.0f%%)\n",
			medal, money(s.Bank), s.Hands, s.WinRate))
	}

	h.send(chatID, sb.String())
}

func (h *Handler) HandlePlay(chatID int64, args []string) {
	s, err := h.session(chatID)
	if err != nil {
		h.send(chatID, "❌ Error")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Stats.IsActive() {
		h.send(chatID, "❌ This session has ended. /start a new one.")
		return
	}
	if s.roundActive() {
		h.send(chatID, "❌ Finish the current hand first.")
		return
	}

	bet := s.LastBet
	if bet <= 0 {
		bet = h.cfg.DefaultBet
	}
	if len(args) > 0 {
		if b, err := strconv.ParseFloat(args[0], 64); err == nil && b > 0 {
			bet = b
		} else {
			h.send(chatID, fmt.Sprintf("❌ Invalid bet. Example: /play %s", money(h.cfg.DefaultBet)))
			return
		}
	}

	if bet < h.cfg.MinBet || bet > h.cfg.MaxBet {
		h.send(chatID, fmt.Sprintf("❌ Bet must be between %s and %s", money(h.cfg.MinBet), money(h.cfg.MaxBet)))
		return
	}

	if bet > s.Stats.Bank() {
		h.send(chatID, fmt.Sprintf("❌ Not enough in the bank! Bank: %s", money(s.Stats.Bank())))
		return
	}

	s.depleted = false
	s.Stats.UpdateBank(-bet)
	s.LastBet = bet
	s.Round = game.NewState(s.Shoe, bet)

	if !s.Round.IsActive {
		h.finishRound(s, "")
		return
	}

	h.sendWithKeyboard(chatID,
		fmt.Sprintf("💰 Bet: %s | Bank: %s\n\n%s", money(bet), money(s.Stats.Bank()), formatRound(s.Round, false)),
		GameKeyboard(h.keyboardOptions(s)))
}

func (h *Handler) HandleStats(chatID int64) {
	s := h.sessions.Get(chatID)
	if s == nil {
		p, err := h.getPlayer(chatID)
		if err != nil {
			h.send(chatID, "❌ Error")
			return
		}
		h.send(chatID, "No active session.\n\n"+formatLifetime(p))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	h.send(chatID, formatStats(s))
}

func (h *Handler) HandleHealth(chatID int64) {
	s := h.sessions.Get(chatID)
	if s == nil {
		h.send(chatID, "No active session. /start to begin.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	h.send(chatID, formatHealth(s.Stats.Health()))
}

func (h *Handler) HandleEnd(chatID int64) {
	s := h.sessions.Get(chatID)
	if s == nil {
		h.send(chatID, "No active session.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Stats.IsActive() {
		h.send(chatID, "No active session.")
		return
	}
	if s.roundActive() {
		h.send(chatID, "❌ Finish the current hand first.")
		return
	}

	summary := formatStats(s)
	if _, err := h.closeSession(s); err != nil {
		h.log.Error("failed to close session", zap.Int64("chat_id", chatID), zap.Error(err))
		h.send(chatID, "❌ Session ended, but it could not be saved.\n\n"+summary)
		return
	}
	h.send(chatID, "🏁 Session over.\n\n"+summary)
}

func (h *Handler) HandleHistory(chatID int64) {
	entries, err := h.history.ListByChat(chatID, 5)
	if err != nil {
		h.log.Error("failed to list sessions", zap.Int64("chat_id", chatID), zap.Error(err))
		h.send(chatID, "❌ Error")
		return
	}
	if len(entries) == 0 {
		h.send(chatID, "🗂 No finished sessions yet.")
		return
	}
	h.send(chatID, formatHistory(entries))
}

const lookupUsage = "Usage: /lookup <hard|soft|pair> <hand> <dealer> or /lookup <cards> <dealer>\n" +
	"Examples: /lookup hard 16 10, /lookup pair A 6, /lookup A,7 9"

func (h *Handler) HandleLookup(chatID int64, args []string) {
	cat, key, dealer, ok := h.parseLookup(args)
	if !ok {
		h.send(chatID, lookupUsage)
		return
	}
	h.send(chatID, formatLookup(h.table, cat, key, dealer, h.cfg.AllowSurrender))
}

func (h *Handler) parseLookup(args []string) (strategy.Category, string, int, bool) {
	switch len(args) {
	case 2:
		dealer, ok := strategy.ParseDealer(args[1])
		if !ok {
			return 0, "", 0, false
		}
		cards, ok := strategy.ParseCards(args[0])
		if !ok {
			return 0, "", 0, false
		}
		cat, key, ok := strategy.Classify(cards)
		return cat, key, dealer, ok
	case 3:
		cat, err := strategy.ParseCategory(args[0])
		if err != nil {
			return 0, "", 0, false
		}
		dealer, ok := strategy.ParseDealer(args[2])
		if !ok {
			return 0, "", 0, false
		}
		key := args[1]
		if cat == strategy.Pair {
			key = strategy.NormalizePairKey(key)
		}
		for _, k := range strategy.Keys(cat) {
			if k == key {
				return cat, key, dealer, true
			}
		}
	}
	return 0, "", 0, false
}

func (h *Handler) HandleChart(chatID int64, args []string) {
	cats := strategy.Categories
	if len(args) > 0 {
		cat, err := strategy.ParseCategory(args[0])
		if err != nil {
			h.send(chatID, "Usage: /chart <hard|soft|pair>")
			return
		}
		cats = []strategy.Category{cat}
	}

	for _, cat := range cats {
		h.sendPre(chatID, formatChart(h.table, cat, h.cfg.AllowSurrender))
	}
}

func (h *Handler) HandleCount(chatID int64, args []string) {
	n := counting.DefaultDrillCards
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 || v > counting.MaxDrillCards {
			h.send(chatID, fmt.Sprintf("❌ Card count must be 1 to %d", counting.MaxDrillCards))
			return
		}
		n = v
	}

	s, err := h.session(chatID)
	if err != nil {
		h.send(chatID, "❌ Error")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.TrueDrill = nil
	s.RunningDrill = counting.NewRunningDrill(game.NewShoe(1, s.rng), n)
	h.send(chatID, fmt.Sprintf("🧮 Count these %d cards (Hi-Lo):\n\n%s\n\nReply /answer <running count>",
		n, strings.Join(s.RunningDrill.Cards, " ")))
}

func (h *Handler) HandleTrueCount(chatID int64) {
	s, err := h.session(chatID)
	if err != nil {
		h.send(chatID, "❌ Error")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.RunningDrill = nil
	s.TrueDrill = counting.NewTrueDrill(s.rng)
	h.send(chatID, fmt.Sprintf("🧮 Running count %+d with %.1f decks left.\n\nReply /answer <true count> (round toward zero)",
		s.TrueDrill.Running, s.TrueDrill.DecksRemaining))
}

func (h *Handler) HandleAnswer(chatID int64, args []string) {
	s := h.sessions.Get(chatID)
	if s == nil {
		h.send(chatID, "No drill running. Try /count or /truecount.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.RunningDrill == nil && s.TrueDrill == nil {
		h.send(chatID, "No drill running. Try /count or /truecount.")
		return
	}
	if len(args) == 0 {
		h.send(chatID, "Usage: /answer <n>")
		return
	}
	answer, err := strconv.Atoi(strings.TrimPrefix(args[0], "+"))
	if err != nil {
		h.send(chatID, "❌ The answer must be a whole number")
		return
	}

	if d := s.RunningDrill; d != nil {
		s.RunningDrill = nil
		if d.Check(answer) {
			h.send(chatID, fmt.Sprintf("✅ Correct, the running count is %+d", d.Answer))
			return
		}
		h.send(chatID, fmt.Sprintf("❌ The running count is %+d, you said %+d", d.Answer, answer))
		return
	}

	d := s.TrueDrill
	s.TrueDrill = nil
	verdict := fmt.Sprintf("❌ The true count is %+d, you said %+d", d.Answer, answer)
	if d.Check(answer) {
		verdict = fmt.Sprintf("✅ Correct, the true count is %+d", d.Answer)
	}
	h.send(chatID, fmt.Sprintf("%s\n💰 Bet %d unit(s) at this count", verdict, d.Units()))
}

// ============== CALLBACKS ==============

var callbackActions = map[string]strategy.Action{
	CallbackHit:       strategy.Hit,
	CallbackStand:     strategy.Stand,
	CallbackDouble:    strategy.Double,
	CallbackSplit:     strategy.Split,
	CallbackSurrender: strategy.Surrender,
}

func (h *Handler) HandleCallback(callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		h.answerCallback(callback.ID, "")
		return
	}
	chatID := callback.Message.Chat.ID
	data := callback.Data

	switch data {
	case CallbackPlayAgain:
		h.answerCallback(callback.ID, "")
		h.HandlePlay(chatID, nil)
		return

	case CallbackStats:
		h.answerCallback(callback.ID, "")
		h.HandleStats(chatID)
		return
	}

	s := h.sessions.Get(chatID)
	if s == nil {
		h.answerCallback(callback.ID, "No active hand")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Stats.IsActive() || !s.roundActive() {
		h.answerCallback(callback.ID, "No active hand")
		return
	}

	if data == CallbackHint {
		h.answerCallback(callback.ID, "")
		h.sendHint(s)
		return
	}

	action, ok := callbackActions[data]
	if !ok {
		h.answerCallback(callback.ID, "")
		return
	}
	h.handleAction(s, action)
	h.answerCallback(callback.ID, "")
}

func (h *Handler) sendHint(s *Session) {
	advice, ok := h.advise(s)
	if !ok {
		return
	}
	hand := s.Round.Current()
	dealer := s.Round.DealerUpcard()

	cat, key, _ := strategy.Classify(hand.Cards)
	if cat == strategy.Pair && advice != strategy.Split {
		cat, key, _ = strategy.ClassifyTotal(hand.Cards)
	}
	h.send(s.ChatID, fmt.Sprintf("💡 %s\n\n%s", advice, strategy.Explain(cat, key, dealer, advice)))
}

// handleAction grades the move against basic strategy, then plays it.
func (h *Handler) handleAction(s *Session, action strategy.Action) {
	hand := s.Round.Current()
	opts := h.keyboardOptions(s)

	switch {
	case action == strategy.Double && !opts.CanDouble,
		action == strategy.Split && !opts.CanSplit,
		action == strategy.Surrender && !opts.CanSurrender:
		h.send(s.ChatID, fmt.Sprintf("❌ %s is not available now", action))
		return
	}

	note := ""
	if advice, ok := h.advise(s); ok {
		s.Decisions++
		if advice == action {
			s.Correct++
			note = "✅ Correct play\n\n"
		} else {
			note = fmt.Sprintf("📘 Basic strategy: %s\n\n", advice)
		}
	}

	switch action {
	case strategy.Hit:
		s.Round.Hit()
	case strategy.Stand:
		s.Round.Stand()
	case strategy.Double:
		s.Stats.UpdateBank(-hand.Bet)
		s.Round.Double()
	case strategy.Split:
		s.Stats.UpdateBank(-hand.Bet)
		s.Round.Split()
	case strategy.Surrender:
		s.Round.Surrender()
	}

	if !s.Round.IsActive {
		h.finishRound(s, note)
		return
	}

	h.sendWithKeyboard(s.ChatID, note+formatRound(s.Round, false), GameKeyboard(h.keyboardOptions(s)))
}

// finishRound settles the round into the bank and the session stats.
// s.mu must be held.
func (h *Handler) finishRound(s *Session, prefix string) {
	outcomes := s.Round.Finish(h.cfg.BlackjackPays)
	wins, losses, pushes, payout := game.Tally(outcomes)

	if payout > 0 {
		s.Stats.UpdateBank(payout)
	}
	s.Stats.RecordHand(playerHands(outcomes), dealerHand(s.Round), s.Round.TotalBet(), payout, wins, losses, pushes)

	text := prefix + formatRoundEnd(s.Round, outcomes, payout, s.Stats.Bank())

	if s.depleted && s.Stats.Bank() <= 0 {
		if _, err := h.closeSession(s); err != nil {
			h.log.Error("failed to close session", zap.Int64("chat_id", s.ChatID), zap.Error(err))
		}
		h.send(s.ChatID, text+"\n\n💸 Bankroll depleted. Session over, /start for a fresh bank.")
		return
	}

	h.sendWithKeyboard(s.ChatID, text, EndGameKeyboard(s.LastBet))
}

// ============== MESSAGES ==============

func (h *Handler) HandleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	text := msg.Text
	parts := strings.Fields(text)

	if len(parts) == 0 {
		return
	}

	cmd := strings.ToLower(parts[0])
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i]
	}
	args := parts[1:]

	switch cmd {
	case "/start":
		h.HandleStart(chatID)
	case "/help":
		h.HandleHelp(chatID)
	case "/play":
		h.HandlePlay(chatID, args)
	case "/balance":
		h.HandleBalance(chatID)
	case "/top":
		h.HandleTop(chatID)
	case "/stats":
		h.HandleStats(chatID)
	case "/health":
		h.HandleHealth(chatID)
	case "/end":
		h.HandleEnd(chatID)
	case "/history":
		h.HandleHistory(chatID)
	case "/lookup":
		h.HandleLookup(chatID, args)
	case "/chart":
		h.HandleChart(chatID, args)
	case "/count":
		h.HandleCount(chatID, args)
	case "/truecount":
		h.HandleTrueCount(chatID)
	case "/answer":
		h.HandleAnswer(chatID, args)
	}
}
