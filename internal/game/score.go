package game

func CalculateScore(hand []string) int {
	score, _ := scoreAndSoftAces(hand)
	return score
}

// IsSoft reports whether the hand's best total still counts an ace as 11.
func IsSoft(hand []string) bool {
	_, aces := scoreAndSoftAces(hand)
	return aces > 0
}

func scoreAndSoftAces(hand []string) (int, int) {
	score := 0
	aces := 0

	for _, card := range hand {
		score += CardValues[card]
		if card == "A" {
			aces++
		}
	}

	for score > 21 && aces > 0 {
		score -= 10
		aces--
	}

	return score, aces
}

func IsBlackjack(cards []string) bool {
	if len(cards) != 2 {
		return false
	}

	if CalculateScore(cards) != 21 {
		return false
	}

	hasAce, hasTen := false, false
	for _, card := range cards {
		if card == "A" {
			hasAce = true
		}
		if card == "10" || card == "J" || card == "Q" || card == "K" {
			hasTen = true
		}
	}

	return hasAce && hasTen
}

func IsBust(cards []string) bool {
	return CalculateScore(cards) > 21
}

// UpcardValue is the dealer upcard as used by strategy charts: 2-10, 11 for an ace.
func UpcardValue(card string) int {
	return CardValues[card]
}
