package strategy

import (
	"fmt"
	"strconv"
)

// Explain renders a short rationale for an action on a chart cell.
func Explain(cat Category, key string, dealer int, action Action) string {
	d := DealerLabel(dealer)
	weakDealer := dealer >= 2 && dealer <= 6

	switch cat {
	case Pair:
		return explainPair(NormalizePairKey(key), d, weakDealer, action)
	case Soft:
		return explainSoft(key, d, weakDealer, action)
	}

	total, _ := strconv.Atoi(key)
	switch {
	case action == Surrender:
		return fmt.Sprintf("Surrender hard %d against a %s: you lose this hand so often that giving up half the bet costs less. If surrender is not offered, hit.", total, d)
	case total <= 8:
		return fmt.Sprintf("Always hit hard %d. No card can bust you, and the dealer's %s does not change that.", total, d)
	case action == Double && total >= 9 && total <= 11:
		return fmt.Sprintf("Double down on hard %d against a %s. A ten-value card gives a strong total, so get more money out while you have the edge.", total, d)
	case total >= 12 && total <= 16 && action == Stand:
		return fmt.Sprintf("Stand on hard %d against a %s. The dealer's weak card is likely to bust, so do not risk busting first.", total, d)
	case total >= 12 && total <= 16:
		return fmt.Sprintf("Hit hard %d against a %s. The dealer's strong card will usually make a hand that beats %d.", total, d, total)
	case total >= 17:
		return fmt.Sprintf("Always stand on hard %d. The risk of busting outweighs any improvement.", total)
	}
	return fmt.Sprintf("%s hard %d against a dealer %s.", action, total, d)
}

func explainSoft(key, d string, weakDealer bool, action Action) string {
	total, _ := strconv.Atoi(key)
	switch action {
	case Double:
		return fmt.Sprintf("Double soft %d against a %s. The ace means one card cannot bust you, and the dealer's %s is weak.", total, d, d)
	case Stand:
		if total >= 19 {
			return fmt.Sprintf("Stand on soft %d. It is already a winning total against a dealer %s.", total, d)
		}
		return fmt.Sprintf("Stand on soft %d against a %s. The total is good enough against this card.", total, d)
	case Hit:
		if !weakDealer && total == 18 {
			return fmt.Sprintf("Hit soft 18 against a %s. The dealer's strong card beats 18 often enough that improving is worth it, and you cannot bust.", d)
		}
		return fmt.Sprintf("Hit soft %d against a %s. You cannot bust with one card, so take a free chance to improve.", total, d)
	}
	return fmt.Sprintf("%s soft %d against a dealer %s.", action, total, d)
}

func explainPair(rank, d string, weakDealer bool, action Action) string {
	switch {
	case rank == "A":
		return fmt.Sprintf("Always split aces, even against a %s. Each ace starts a hand that can reach 21 with one card.", d)
	case rank == "8":
		return fmt.Sprintf("Always split eights, even against a %s. A pair of eights is a weak 16, while each 8 is a fair start.", d)
	case rank == "10":
		return fmt.Sprintf("Never split tens. Twenty is a strong hand against a dealer %s, so stand.", d)
	case rank == "5":
		if action == Double {
			return fmt.Sprintf("Never split fives. Play them as hard 10 and double against a %s.", d)
		}
		return fmt.Sprintf("Never split fives. Play them as hard 10 and hit against a %s.", d)
	case action == Split && weakDealer:
		return fmt.Sprintf("Split %ss against a %s. The dealer is likely to bust, so get more money on the table.", rank, d)
	case action == Split:
		return fmt.Sprintf("Split %ss against a %s. Two hands starting from %s play better than the pair total.", rank, d, rank)
	case action == Stand:
		return fmt.Sprintf("Stand on a pair of %ss against a %s. Eighteen already beats the dealer's most likely total.", rank, d)
	}
	return fmt.Sprintf("%s a pair of %ss against a %s. Splitting would only create two weak hands.", action, rank, d)
}
