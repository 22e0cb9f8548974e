package game

type Result int

const (
	ResultNone Result = iota
	ResultPlayerWin
	ResultDealerWin
	ResultPush
	ResultBlackjack
	ResultSurrender
)

func (r Result) String() string {
	switch r {
	case ResultPlayerWin:
		return "win"
	case ResultDealerWin:
		return "loss"
	case ResultPush:
		return "push"
	case ResultBlackjack:
		return "blackjack"
	case ResultSurrender:
		return "surrender"
	default:
		return "none"
	}
}

// hand of a round; a split produces a second one
type Hand struct {
	Cards       []string
	Bet         float64
	IsStand     bool
	IsDouble    bool
	IsBust      bool
	IsSurrender bool
	FromSplit   bool
	SplitAces   bool
}

func NewHand(bet float64) *Hand {
	return &Hand{
		Cards: make([]string, 0, 10),
		Bet:   bet,
	}
}

func (h *Hand) Score() int {
	return CalculateScore(h.Cards)
}

func (h *Hand) CanSplit() bool {
	if len(h.Cards) != 2 || h.FromSplit {
		return false
	}
	return CardValues[h.Cards[0]] == CardValues[h.Cards[1]]
}

func (h *Hand) CanDouble() bool {
	return len(h.Cards) == 2 && !h.IsDouble && !h.SplitAces
}

func (h *Hand) IsBlackjack() bool {
	// 21 on a split hand is not a natural
	if h.FromSplit {
		return false
	}
	return IsBlackjack(h.Cards)
}

// HandOutcome is the settled result of one player hand.
type HandOutcome struct {
	Hand   *Hand
	Result Result
	Payout float64
}

// State is a single dealt round played against one shoe.
type State struct {
	Hands       []*Hand
	DealerCards []string
	Shoe        *Shoe
	CurrentHand int
	IsActive    bool
}

// NewState deals two cards to the player and the dealer. A natural on
// either side ends the round immediately.
func NewState(shoe *Shoe, bet float64) *State {
	s := &State{
		Shoe:        shoe,
		Hands:       make([]*Hand, 0, 2),
		DealerCards: make([]string, 0, 10),
		IsActive:    true,
	}

	hand := NewHand(bet)
	hand.Cards = append(hand.Cards, shoe.Draw())
	s.DealerCards = append(s.DealerCards, shoe.Draw())
	hand.Cards = append(hand.Cards, shoe.Draw())
	s.DealerCards = append(s.DealerCards, shoe.Draw())
	s.Hands = append(s.Hands, hand)

	if hand.IsBlackjack() || IsBlackjack(s.DealerCards) {
		hand.IsStand = true
		s.CurrentHand = len(s.Hands)
		s.IsActive = false
	}

	return s
}

func (s *State) Current() *Hand {
	if !s.IsActive || s.CurrentHand >= len(s.Hands) {
		return nil
	}
	return s.Hands[s.CurrentHand]
}

func (s *State) TotalBet() float64 {
	total := 0.0
	for _, h := range s.Hands {
		total += h.Bet
	}
	return total
}

// DealerUpcard is the value of the dealer's exposed card, 11 for an ace.
func (s *State) DealerUpcard() int {
	return UpcardValue(s.DealerCards[0])
}

func (s *State) Hit() string {
	hand := s.Current()
	if hand == nil {
		return ""
	}

	card := s.Shoe.Draw()
	hand.Cards = append(hand.Cards, card)

	if IsBust(hand.Cards) {
		hand.IsBust = true
		hand.IsStand = true
	} else if hand.Score() == 21 {
		hand.IsStand = true
	}
	s.advance()
	return card
}

func (s *State) Stand() {
	hand := s.Current()
	if hand == nil {
		return
	}
	hand.IsStand = true
	s.advance()
}

// Double doubles the current hand's bet and deals exactly one card.
func (s *State) Double() string {
	hand := s.Current()
	if hand == nil || !hand.CanDouble() {
		return ""
	}

	hand.Bet *= 2
	hand.IsDouble = true

	card := s.Shoe.Draw()
	hand.Cards = append(hand.Cards, card)

	hand.IsBust = IsBust(hand.Cards)
	hand.IsStand = true
	s.advance()

	return card
}

// Split turns the current pair into two hands with one new card each.
// Split aces receive one card and stand.
func (s *State) Split() bool {
	hand := s.Current()
	if hand == nil || !hand.CanSplit() {
		return false
	}

	secondCard := hand.Cards[1]
	isAces := hand.Cards[0] == "A"

	hand.Cards = []string{hand.Cards[0], s.Shoe.Draw()}
	hand.FromSplit = true
	hand.SplitAces = isAces

	newHand := NewHand(hand.Bet)
	newHand.Cards = append(newHand.Cards, secondCard, s.Shoe.Draw())
	newHand.FromSplit = true
	newHand.SplitAces = isAces

	s.Hands = append(s.Hands[:s.CurrentHand+1], append([]*Hand{newHand}, s.Hands[s.CurrentHand+1:]...)...)

	if isAces {
		hand.IsStand = true
		newHand.IsStand = true
	}
	for _, h := range []*Hand{hand, newHand} {
		if h.Score() == 21 {
			h.IsStand = true
		}
	}
	s.advance()

	return true
}

// Surrender forfeits half the bet; only allowed on the first two cards
// of an unsplit hand.
func (s *State) Surrender() bool {
	if !s.CanSurrender() {
		return false
	}
	hand := s.Current()
	hand.IsSurrender = true
	hand.IsStand = true
	s.advance()
	return true
}

func (s *State) CanSurrender() bool {
	hand := s.Current()
	return hand != nil && len(s.Hands) == 1 && len(hand.Cards) == 2 && !hand.FromSplit
}

// advance moves past finished hands and closes the round when none are left.
func (s *State) advance() {
	for s.CurrentHand < len(s.Hands) && s.Hands[s.CurrentHand].IsStand {
		s.CurrentHand++
	}
	if s.CurrentHand >= len(s.Hands) {
		s.IsActive = false
	}
}

// DealerPlay draws to 17, standing on all 17s. The dealer does not draw
// when no player hand is left to beat.
func (s *State) DealerPlay() {
	live := false
	for _, h := range s.Hands {
		if !h.IsBust && !h.IsSurrender && !h.IsBlackjack() {
			live = true
			break
		}
	}
	if !live || IsBlackjack(s.DealerCards) {
		return
	}

	for CalculateScore(s.DealerCards) < 17 {
		s.DealerCards = append(s.DealerCards, s.Shoe.Draw())
	}
}

func (s *State) DealerScore() int {
	return CalculateScore(s.DealerCards)
}

// HandResult settles one hand. Payouts are total returns including the
// stake; blackjackPays is the total return multiple for a natural.
func (s *State) HandResult(hand *Hand, blackjackPays float64) (Result, float64) {
	if hand.IsSurrender {
		return ResultSurrender, hand.Bet / 2
	}
	if hand.IsBust {
		return ResultDealerWin, 0
	}

	dealerBJ := IsBlackjack(s.DealerCards)
	if hand.IsBlackjack() {
		if dealerBJ {
			return ResultPush, hand.Bet
		}
		return ResultBlackjack, hand.Bet * blackjackPays
	}
	if dealerBJ {
		return ResultDealerWin, 0
	}

	dealerScore := s.DealerScore()
	playerScore := hand.Score()

	if IsBust(s.DealerCards) {
		return ResultPlayerWin, hand.Bet * 2
	}

	if playerScore > dealerScore {
		return ResultPlayerWin, hand.Bet * 2
	} else if playerScore < dealerScore {
		return ResultDealerWin, 0
	}
	return ResultPush, hand.Bet
}

// Finish plays out the dealer and settles every hand.
func (s *State) Finish(blackjackPays float64) []HandOutcome {
	s.IsActive = false
	s.CurrentHand = len(s.Hands)
	s.DealerPlay()

	outcomes := make([]HandOutcome, 0, len(s.Hands))
	for _, h := range s.Hands {
		result, payout := s.HandResult(h, blackjackPays)
		outcomes = append(outcomes, HandOutcome{Hand: h, Result: result, Payout: payout})
	}
	return outcomes
}

func (s *State) CanSplit() bool {
	hand := s.Current()
	return hand != nil && hand.CanSplit()
}

func (s *State) CanDouble() bool {
	hand := s.Current()
	return hand != nil && hand.CanDouble()
}

func (s *State) HasMultipleHands() bool {
	return len(s.Hands) > 1
}

// Tally counts outcomes the way session stats expect them: naturals are
// wins and surrenders are losses.
func Tally(outcomes []HandOutcome) (wins, losses, pushes int, payout float64) {
	for _, o := range outcomes {
		payout += o.Payout
		switch o.Result {
		case ResultPlayerWin, ResultBlackjack:
			wins++
		case ResultDealerWin, ResultSurrender:
			losses++
		case ResultPush:
			pushes++
		}
	}
	return wins, losses, pushes, payout
}
