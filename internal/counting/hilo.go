// Package counting implements the Hi-Lo card counting system and the
// running-count and true-count drills built on it.
package counting

import "math"

// Value returns the Hi-Lo tag of a card rank: +1 for 2-6, 0 for 7-9 and
// -1 for tens, faces and aces. Unknown ranks count 0.
func Value(rank string) int {
	switch rank {
	case "2", "3", "4", "5", "6":
		return 1
	case "10", "J", "Q", "K", "A":
		return -1
	default:
		return 0
	}
}

func RunningCount(cards []string) int {
	count := 0
	for _, c := range cards {
		count += Value(c)
	}
	return count
}

// TrueCount divides the running count by the decks remaining and truncates
// toward zero. With no decks remaining the running count is returned as is.
func TrueCount(running int, decksRemaining float64) int {
	if decksRemaining <= 0 {
		return running
	}
	return int(float64(running) / decksRemaining)
}

// TrueCountRounded is TrueCount rounded half away from zero.
func TrueCountRounded(running int, decksRemaining float64) int {
	if decksRemaining <= 0 {
		return running
	}
	return int(math.Round(float64(running) / decksRemaining))
}

// BetUnits is the Hi-Lo bet ramp: one unit at a true count of 2 or less,
// then one extra unit per true count point.
func BetUnits(trueCount int) int {
	if trueCount <= 2 {
		return 1
	}
	return trueCount - 1
}
