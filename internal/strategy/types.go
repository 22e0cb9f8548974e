// Package strategy holds the basic strategy chart: an immutable table
// mapping a hand (hard total, soft total or pair) against a dealer upcard
// to the recommended action.
package strategy

import (
	"fmt"
	"strconv"
	"strings"
)

type Category int

const (
	Hard Category = iota
	Soft
	Pair
)

var Categories = []Category{Hard, Soft, Pair}

func (c Category) String() string {
	switch c {
	case Hard:
		return "hard"
	case Soft:
		return "soft"
	case Pair:
		return "pair"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hard", "h":
		return Hard, nil
	case "soft", "s":
		return Soft, nil
	case "pair", "pairs", "p":
		return Pair, nil
	}
	return 0, fmt.Errorf("unknown hand category %q", s)
}

type Action int

const (
	Hit Action = iota
	Stand
	Double
	Split
	Surrender
)

func (a Action) String() string {
	switch a {
	case Hit:
		return "Hit"
	case Stand:
		return "Stand"
	case Double:
		return "Double"
	case Split:
		return "Split"
	case Surrender:
		return "Surrender"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Code is the one-letter chart abbreviation.
func (a Action) Code() string {
	switch a {
	case Stand:
		return "S"
	case Double:
		return "D"
	case Split:
		return "P"
	case Surrender:
		return "R"
	default:
		return "H"
	}
}

func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hit", "h":
		return Hit, nil
	case "stand", "s":
		return Stand, nil
	case "double", "d":
		return Double, nil
	case "split", "p":
		return Split, nil
	case "surrender", "r":
		return Surrender, nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

const (
	MinDealer = 2
	MaxDealer = 11 // ace

	MinHard = 5
	MaxHard = 21
	MinSoft = 13
	MaxSoft = 20
)

// PairRanks lists pair keys in chart order. The ace is the symbol "A"
// and sorts as 11.
var PairRanks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "A"}

// Entry is one chart cell. Fallback is the action to take when the
// recommended one is Surrender and surrender is not offered; for every
// other cell it equals Action.
type Entry struct {
	Category Category
	Key      string
	Dealer   int
	Action   Action
	Fallback Action
}

// TotalKey formats a hard or soft total as a hand key.
func TotalKey(total int) string {
	return strconv.Itoa(total)
}

// ParseDealer accepts 2-11, an ace as "A" or "11", and face cards as 10.
func ParseDealer(s string) (int, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A", "ACE", "11":
		return 11, true
	case "J", "Q", "K":
		return 10, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < MinDealer || n > MaxDealer {
		return 0, false
	}
	return n, true
}

// DealerLabel renders an upcard value, 11 as "A".
func DealerLabel(dealer int) string {
	if dealer == MaxDealer {
		return "A"
	}
	return strconv.Itoa(dealer)
}

// NormalizePairKey maps face cards to "10" and "11"/"ace" to "A".
func NormalizePairKey(s string) string {
	switch k := strings.ToUpper(strings.TrimSpace(s)); k {
	case "J", "Q", "K", "T":
		return "10"
	case "11", "ACE":
		return "A"
	default:
		return k
	}
}
