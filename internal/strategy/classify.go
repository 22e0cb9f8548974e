package strategy

import (
	"strconv"
	"strings"

	"bjtrainer/internal/game"
)

// Classify maps a player's cards to a chart cell. Two cards of equal
// value form a pair; a hand counting an ace as 11 is soft; anything else
// is hard, with totals under 5 clamped to 5. Busted or single-card hands
// return ok=false.
func Classify(cards []string) (cat Category, key string, ok bool) {
	if len(cards) < 2 {
		return Hard, "", false
	}

	if len(cards) == 2 && game.CardValues[cards[0]] == game.CardValues[cards[1]] {
		if cards[0] == "A" {
			return Pair, "A", true
		}
		return Pair, strconv.Itoa(game.CardValues[cards[0]]), true
	}

	return ClassifyTotal(cards)
}

// ClassifyTotal is Classify without pair detection, for pairs that can
// no longer be split.
func ClassifyTotal(cards []string) (cat Category, key string, ok bool) {
	if len(cards) < 2 {
		return Hard, "", false
	}

	total := game.CalculateScore(cards)
	if total > 21 {
		return Hard, "", false
	}

	if game.IsSoft(cards) && total >= MinSoft && total <= MaxSoft {
		return Soft, TotalKey(total), true
	}

	if total < MinHard {
		total = MinHard
	}
	return Hard, TotalKey(total), true
}

// ParseCards reads a comma-separated hand such as "A,7" or "k,q". Face
// cards become "10". Unknown ranks fail.
func ParseCards(s string) ([]string, bool) {
	cards := strings.Split(s, ",")
	for i, c := range cards {
		cards[i] = NormalizePairKey(c)
		if _, known := game.CardValues[cards[i]]; !known {
			return nil, false
		}
	}
	return cards, true
}

// RowLabel is the chart row name of a key: "16", "A,7", "8,8".
func RowLabel(cat Category, key string) string {
	switch cat {
	case Soft:
		n, _ := strconv.Atoi(key)
		return "A," + strconv.Itoa(n-11)
	case Pair:
		return key + "," + key
	}
	return key
}

// Recommendation is the answer to a quick lookup from dealt cards.
type Recommendation struct {
	Category Category
	Key      string
	Dealer   int
	Action   Action
	// Ideal differs from Action only when surrender is recommended but disabled.
	Ideal       Action
	Explanation string
}

// Recommend classifies cards and looks up the action against the dealer
// upcard. A hand that cannot be classified is reported with ok=false.
func (t *Table) Recommend(cards []string, dealer int, allowSurrender bool) (Recommendation, bool) {
	cat, key, ok := Classify(cards)
	if !ok {
		return Recommendation{}, false
	}

	action := t.Resolve(cat, key, dealer, allowSurrender)
	return Recommendation{
		Category:    cat,
		Key:         key,
		Dealer:      dealer,
		Action:      action,
		Ideal:       t.Lookup(cat, key, dealer),
		Explanation: Explain(cat, key, dealer, action),
	}, true
}

// Options says which actions the hand in play can still take.
type Options struct {
	CanDouble    bool
	CanSplit     bool
	CanSurrender bool
}

// Advise returns the best action the hand can actually take. An
// unavailable Surrender becomes its fallback, an unavailable Double
// becomes Stand on soft 18 and above and Hit otherwise, and a pair that
// cannot be split is played by its total.
func (t *Table) Advise(cards []string, dealer int, o Options) (Action, bool) {
	cat, key, ok := Classify(cards)
	if ok && cat == Pair && !o.CanSplit {
		cat, key, ok = ClassifyTotal(cards)
	}
	if !ok {
		return Hit, false
	}

	action := t.Lookup(cat, key, dealer)
	if action == Surrender && !o.CanSurrender {
		action = t.Fallback(cat, key, dealer)
	}
	if action == Double && !o.CanDouble {
		action = Hit
		if total, _ := strconv.Atoi(key); cat == Soft && total >= 18 {
			action = Stand
		}
	}
	return action, true
}
