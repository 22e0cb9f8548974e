package counting

import "math/rand"

const (
	DefaultDrillCards = 10
	MaxDrillCards     = 30
)

// Drawer deals single cards, e.g. a game shoe.
type Drawer interface {
	Draw() string
}

type RunningDrill struct {
	Cards  []string
	Answer int
}

// NewRunningDrill deals n cards for the user to count. n outside
// 1..MaxDrillCards falls back to DefaultDrillCards.
func NewRunningDrill(d Drawer, n int) *RunningDrill {
	if n < 1 || n > MaxDrillCards {
		n = DefaultDrillCards
	}

	cards := make([]string, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, d.Draw())
	}

	return &RunningDrill{
		Cards:  cards,
		Answer: RunningCount(cards),
	}
}

func (d *RunningDrill) Check(answer int) bool {
	return answer == d.Answer
}

type TrueDrill struct {
	Running        int
	DecksRemaining float64
	Answer         int
}

// NewTrueDrill picks a running count in [-15,15] and a remaining shoe of
// 0.5 to 6 decks in half-deck steps.
func NewTrueDrill(rng *rand.Rand) *TrueDrill {
	running := rng.Intn(31) - 15
	decks := float64(rng.Intn(12)+1) / 2

	return &TrueDrill{
		Running:        running,
		DecksRemaining: decks,
		Answer:         TrueCount(running, decks),
	}
}

func (d *TrueDrill) Check(answer int) bool {
	return answer == d.Answer
}

// Units is the recommended bet size for the drill's true count.
func (d *TrueDrill) Units() int {
	return BetUnits(d.Answer)
}
