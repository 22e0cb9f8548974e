package game

import (
	"math/rand"
	"testing"

	"bjtrainer/internal/counting"
)

func TestCalculateScore(t *testing.T) {
	tests := []struct {
		name     string
		cards    []string
		expected int
		soft     bool
	}{
		{"simple hand", []string{"10", "5"}, 15, false},
		{"ace as 11", []string{"A", "9"}, 20, true},
		{"ace as 1", []string{"A", "9", "2"}, 12, false},
		{"multiple aces", []string{"A", "A", "9"}, 21, true},
		{"face cards", []string{"K", "Q"}, 20, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateScore(tt.cards); got != tt.expected {
				t.Errorf("CalculateScore() = %v, want %v", got, tt.expected)
			}
			if got := IsSoft(tt.cards); got != tt.soft {
				t.Errorf("IsSoft() = %v, want %v", got, tt.soft)
			}
		})
	}
}

func TestIsBlackjack(t *testing.T) {
	tests := []struct {
		name     string
		cards    []string
		expected bool
	}{
		{"blackjack", []string{"A", "K"}, true},
		{"not blackjack", []string{"A", "9"}, false},
		{"three cards", []string{"A", "5", "5"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBlackjack(tt.cards); got != tt.expected {
				t.Errorf("IsBlackjack() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestShoeRunningCount(t *testing.T) {
	cards := []string{"2", "K", "5", "9", "A", "3"}
	shoe := NewStackedShoe(cards)
	for range cards {
		shoe.Draw()
	}
	if got, want := shoe.RunningCount(), counting.RunningCount(cards); got != want {
		t.Errorf("RunningCount() = %d, want %d", got, want)
	}
}

func TestShoeReshufflesAtCut(t *testing.T) {
	shoe := NewShoe(1, rand.New(rand.NewSource(7)))
	if shoe.Remaining() != 52 {
		t.Fatalf("expected 52 cards, got %d", shoe.Remaining())
	}
	for i := 0; i < 40; i++ {
		shoe.Draw()
	}
	if shoe.Remaining() != 12 {
		t.Fatalf("expected 12 cards left, got %d", shoe.Remaining())
	}

	card := shoe.Draw()
	if shoe.Remaining() != 51 {
		t.Errorf("expected reshuffle before draw, %d cards left", shoe.Remaining())
	}
	if shoe.RunningCount() != counting.Value(card) {
		t.Errorf("running count not reset on shuffle: %d", shoe.RunningCount())
	}
}

func TestStandDealerWins(t *testing.T) {
	s := NewState(NewStackedShoe([]string{"10", "9", "6", "7", "5"}), 10)
	if s.DealerUpcard() != 9 {
		t.Fatalf("DealerUpcard() = %d, want 9", s.DealerUpcard())
	}

	s.Stand()
	if s.IsActive {
		t.Fatal("round should be over after standing the only hand")
	}

	outcomes := s.Finish(2.5)
	if s.DealerScore() != 21 {
		t.Errorf("dealer should draw to 21, got %d", s.DealerScore())
	}
	if outcomes[0].Result != ResultDealerWin || outcomes[0].Payout != 0 {
		t.Errorf("unexpected outcome: %+v", outcomes[0])
	}
}

func TestNaturalEndsRound(t *testing.T) {
	s := NewState(NewStackedShoe([]string{"A", "9", "K", "7"}), 10)
	if s.IsActive || s.Current() != nil {
		t.Fatal("natural should end the round")
	}

	outcomes := s.Finish(2.5)
	if outcomes[0].Result != ResultBlackjack || outcomes[0].Payout != 25 {
		t.Errorf("unexpected outcome: %+v", outcomes[0])
	}
	if len(s.DealerCards) != 2 {
		t.Errorf("dealer should not draw against a natural, has %v", s.DealerCards)
	}
}

func TestSplitAndDouble(t *testing.T) {
	s := NewState(NewStackedShoe([]string{"8", "10", "8", "7", "3", "10", "K"}), 10)
	if !s.CanSplit() {
		t.Fatal("pair of eights should be splittable")
	}
	if !s.Split() {
		t.Fatal("Split() failed")
	}
	if len(s.Hands) != 2 {
		t.Fatalf("expected 2 hands, got %d", len(s.Hands))
	}
	if s.CanSurrender() {
		t.Error("surrender should not be allowed after a split")
	}

	if card := s.Double(); card != "K" {
		t.Fatalf("Double() drew %q", card)
	}
	if s.CurrentHand != 1 {
		t.Fatalf("expected to move to second hand, at %d", s.CurrentHand)
	}
	s.Stand()

	outcomes := s.Finish(2.5)
	wins, losses, pushes, payout := Tally(outcomes)
	if wins != 2 || losses != 0 || pushes != 0 {
		t.Errorf("Tally() = %d/%d/%d, want 2/0/0", wins, losses, pushes)
	}
	if payout != 60 {
		t.Errorf("payout = %v, want 60", payout)
	}
	if s.TotalBet() != 30 {
		t.Errorf("TotalBet() = %v, want 30", s.TotalBet())
	}
}

func TestSurrender(t *testing.T) {
	s := NewState(NewStackedShoe([]string{"10", "10", "6", "9"}), 10)
	if !s.Surrender() {
		t.Fatal("Surrender() failed")
	}

	outcomes := s.Finish(2.5)
	if outcomes[0].Result != ResultSurrender || outcomes[0].Payout != 5 {
		t.Errorf("unexpected outcome: %+v", outcomes[0])
	}
	_, losses, _, _ := Tally(outcomes)
	if losses != 1 {
		t.Errorf("surrender should tally as a loss, got %d", losses)
	}
}

func TestHitBust(t *testing.T) {
	s := NewState(NewStackedShoe([]string{"10", "9", "6", "7", "K"}), 10)
	s.Hit()
	if !s.Hands[0].IsBust || s.IsActive {
		t.Fatalf("expected bust and finished round, hand %+v", s.Hands[0])
	}

	outcomes := s.Finish(2.5)
	if outcomes[0].Result != ResultDealerWin {
		t.Errorf("bust should lose, got %v", outcomes[0].Result)
	}
	if len(s.DealerCards) != 2 {
		t.Errorf("dealer should not draw when every hand busted")
	}
}
