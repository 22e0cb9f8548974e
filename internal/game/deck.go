package game

import (
	"math/rand"
	"time"

	"bjtrainer/internal/counting"
)

var CardValues = map[string]int{
	"2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8, "9": 9, "10": 10,
	"J": 10, "Q": 10, "K": 10, "A": 11,
}

var cardNames = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

const cardsPerDeck = 52

// reshuffle once fewer than a quarter of the shoe is left
const cutFraction = 0.25

// Shoe is a multi-deck shoe that keeps the Hi-Lo running count of the
// cards dealt since the last shuffle.
type Shoe struct {
	cards   []string
	decks   int
	cut     int
	running int
	rng     *rand.Rand
}

func NewShoe(decks int, rng *rand.Rand) *Shoe {
	if decks < 1 {
		decks = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Shoe{
		decks: decks,
		cut:   int(float64(decks*cardsPerDeck) * cutFraction),
		rng:   rng,
	}
	s.Shuffle()
	return s
}

// NewStackedShoe deals the given cards in order and never reshuffles
// until it runs out; replays and tests use it for deterministic rounds.
func NewStackedShoe(cards []string) *Shoe {
	return &Shoe{
		cards: append([]string(nil), cards...),
		decks: 1,
		rng:   rand.New(rand.NewSource(1)),
	}
}

func (s *Shoe) Shuffle() {
	s.cards = make([]string, 0, s.decks*cardsPerDeck)
	for i := 0; i < s.decks*4; i++ {
		s.cards = append(s.cards, cardNames...)
	}

	s.rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
	s.running = 0
}

func (s *Shoe) Draw() string {
	if len(s.cards) == 0 || len(s.cards) < s.cut {
		s.Shuffle()
	}

	card := s.cards[0]
	s.cards = s.cards[1:]
	s.running += counting.Value(card)
	return card
}

func (s *Shoe) Remaining() int {
	return len(s.cards)
}

func (s *Shoe) RunningCount() int {
	return s.running
}

func (s *Shoe) DecksRemaining() float64 {
	return float64(len(s.cards)) / cardsPerDeck
}

func (s *Shoe) TrueCount() int {
	return counting.TrueCount(s.running, s.DecksRemaining())
}
