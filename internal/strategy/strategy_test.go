package strategy

import (
	"reflect"
	"strings"
	"testing"
)

func TestTableIsTotal(t *testing.T) {
	table := New()
	for _, cat := range Categories {
		for _, key := range Keys(cat) {
			for dealer := MinDealer; dealer <= MaxDealer; dealer++ {
				if _, ok := table.find(cat, key, dealer); !ok {
					t.Errorf("missing entry %s %s vs %d", cat, key, dealer)
				}
			}
		}
	}
}

func TestFixedRules(t *testing.T) {
	table := New()
	for dealer := MinDealer; dealer <= MaxDealer; dealer++ {
		for total := 5; total <= 8; total++ {
			if got := table.LookupHard(total, dealer); got != Hit {
				t.Errorf("hard %d vs %d = %v, want Hit", total, dealer, got)
			}
		}
		if got := table.LookupHard(11, dealer); got != Double {
			t.Errorf("hard 11 vs %d = %v, want Double", dealer, got)
		}
		if got := table.LookupPair("A", dealer); got != Split {
			t.Errorf("pair A vs %d = %v, want Split", dealer, got)
		}
		if got := table.LookupPair("8", dealer); got != Split {
			t.Errorf("pair 8 vs %d = %v, want Split", dealer, got)
		}
		if got := table.LookupPair("10", dealer); got != Stand {
			t.Errorf("pair 10 vs %d = %v, want Stand", dealer, got)
		}
		if got := table.LookupPair("5", dealer); got != Double && got != Hit {
			t.Errorf("pair 5 vs %d = %v, want Double or Hit", dealer, got)
		}
	}
}

func TestLookupOutOfRangeHits(t *testing.T) {
	table := New()
	tests := []struct {
		name   string
		cat    Category
		key    string
		dealer int
	}{
		{"hard below chart", Hard, "4", 6},
		{"hard above chart", Hard, "22", 6},
		{"soft 21", Soft, "21", 6},
		{"pair of ones", Pair, "1", 6},
		{"non numeric", Hard, "x", 6},
		{"dealer too low", Hard, "17", 1},
		{"dealer too high", Hard, "17", 12},
		{"unknown category", Category(9), "17", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Lookup(tt.cat, tt.key, tt.dealer); got != Hit {
				t.Errorf("Lookup() = %v, want Hit", got)
			}
		})
	}
}

func TestSurrenderFallback(t *testing.T) {
	table := New()

	if got := table.LookupHard(16, 10); got != Surrender {
		t.Fatalf("hard 16 vs 10 = %v, want Surrender", got)
	}
	if got := table.Fallback(Hard, "16", 10); got != Hit {
		t.Errorf("fallback for hard 16 vs 10 = %v, want Hit", got)
	}
	if got := table.Resolve(Hard, "16", 10, false); got != Hit {
		t.Errorf("Resolve without surrender = %v, want Hit", got)
	}
	if got := table.Fallback(Hard, "17", 10); got != Stand {
		t.Errorf("fallback for a non-surrender cell should equal the action, got %v", got)
	}

	for _, e := range table.AllEntries(Hard) {
		if e.Action != Surrender && e.Fallback != e.Action {
			t.Errorf("entry %+v: fallback differs from a non-surrender action", e)
		}
		if e.Fallback == Surrender {
			t.Errorf("entry %+v: fallback cannot be Surrender", e)
		}
	}
}

func TestAllEntriesOrder(t *testing.T) {
	table := New()

	first := table.AllEntries(Pair)
	second := table.AllEntries(Pair)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("AllEntries should be deterministic")
	}
	if len(first) != 10*10 {
		t.Fatalf("expected 100 pair entries, got %d", len(first))
	}
	if first[0].Key != "2" || first[0].Dealer != 2 {
		t.Errorf("first entry = %+v", first[0])
	}
	if last := first[len(first)-1]; last.Key != "A" || last.Dealer != 11 {
		t.Errorf("last entry = %+v", last)
	}

	hard := table.AllEntries(Hard)
	if len(hard) != 17*10 {
		t.Fatalf("expected 170 hard entries, got %d", len(hard))
	}
	for i := 1; i < len(hard); i++ {
		prev, cur := hard[i-1], hard[i]
		if prev.Key == cur.Key && cur.Dealer != prev.Dealer+1 {
			t.Fatalf("dealer order broken at %d: %+v then %+v", i, prev, cur)
		}
	}

	if got := len(table.AllEntries(Soft)); got != 8*10 {
		t.Errorf("expected 80 soft entries, got %d", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		cards []string
		cat   Category
		key   string
		ok    bool
	}{
		{"pair of aces", []string{"A", "A"}, Pair, "A", true},
		{"face pair", []string{"K", "Q"}, Pair, "10", true},
		{"pair of eights", []string{"8", "8"}, Pair, "8", true},
		{"soft 18", []string{"A", "7"}, Soft, "18", true},
		{"soft after hit", []string{"A", "2", "3"}, Soft, "16", true},
		{"ace counted as one", []string{"A", "6", "9"}, Hard, "16", true},
		{"blackjack", []string{"A", "K"}, Hard, "21", true},
		{"small hard", []string{"2", "3"}, Hard, "5", true},
		{"bust", []string{"K", "Q", "5"}, Hard, "", false},
		{"single card", []string{"K"}, Hard, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, key, ok := Classify(tt.cards)
			if ok != tt.ok || (ok && (cat != tt.cat || key != tt.key)) {
				t.Errorf("Classify(%v) = %v %q %v, want %v %q %v", tt.cards, cat, key, ok, tt.cat, tt.key, tt.ok)
			}
		})
	}
}

func TestRecommend(t *testing.T) {
	table := New()

	rec, ok := table.Recommend([]string{"10", "6"}, 10, false)
	if !ok {
		t.Fatal("Recommend() not ok")
	}
	if rec.Action != Hit || rec.Ideal != Surrender {
		t.Errorf("Recommend() = %+v, want Hit with ideal Surrender", rec)
	}
	if !strings.Contains(rec.Explanation, "16") {
		t.Errorf("explanation should mention the hand: %q", rec.Explanation)
	}

	if _, ok := table.Recommend([]string{"K", "Q", "2"}, 10, true); ok {
		t.Error("busted hand should not be recommendable")
	}
}

func TestCheck(t *testing.T) {
	table := New()

	if ok, want := table.Check(Hard, "16", 10, Hit, true); ok || want != Surrender {
		t.Errorf("Hit on 16 vs 10 with surrender: ok=%v want=%v", ok, want)
	}
	if ok, _ := table.Check(Hard, "16", 10, Hit, false); !ok {
		t.Error("Hit on 16 vs 10 without surrender should be correct")
	}
	if ok, _ := table.Check(Pair, "8", 11, Split, true); !ok {
		t.Error("splitting eights should be correct")
	}
}

func TestExplainMentionsContext(t *testing.T) {
	table := New()
	for _, cat := range Categories {
		for _, e := range table.AllEntries(cat) {
			text := Explain(e.Category, e.Key, e.Dealer, e.Action)
			if text == "" {
				t.Fatalf("empty explanation for %+v", e)
			}
			if !strings.Contains(text, DealerLabel(e.Dealer)) && !strings.Contains(text, "Always") {
				t.Errorf("explanation for %+v lacks dealer context: %q", e, text)
			}
		}
	}
}

func TestParseHelpers(t *testing.T) {
	if c, err := ParseCategory("Pairs"); err != nil || c != Pair {
		t.Errorf("ParseCategory(Pairs) = %v, %v", c, err)
	}
	if _, err := ParseCategory("split"); err == nil {
		t.Error("ParseCategory should reject unknown names")
	}
	if d, ok := ParseDealer("A"); !ok || d != 11 {
		t.Errorf("ParseDealer(A) = %d, %v", d, ok)
	}
	if d, ok := ParseDealer("K"); !ok || d != 10 {
		t.Errorf("ParseDealer(K) = %d, %v", d, ok)
	}
	if _, ok := ParseDealer("1"); ok {
		t.Error("ParseDealer(1) should fail; aces are never 1")
	}
	if a, err := ParseAction("R"); err != nil || a != Surrender {
		t.Errorf("ParseAction(R) = %v, %v", a, err)
	}
}

func TestAdvise(t *testing.T) {
	table := New()
	all := Options{CanDouble: true, CanSplit: true, CanSurrender: true}

	tests := []struct {
		name   string
		cards  []string
		dealer int
		opts   Options
		want   Action
	}{
		{"double 11", []string{"6", "5"}, 6, all, Double},
		{"three card 11 hits", []string{"2", "4", "5"}, 6, Options{}, Hit},
		{"soft 18 stands when double is gone", []string{"A", "2", "5"}, 4, Options{}, Stand},
		{"surrender 16", []string{"10", "6"}, 10, all, Surrender},
		{"16 hits without surrender", []string{"10", "6"}, 10, Options{CanDouble: true, CanSplit: true}, Hit},
		{"split eights", []string{"8", "8"}, 10, all, Split},
		{"eights after split play as 16", []string{"8", "8"}, 6, Options{CanDouble: true}, Stand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.Advise(tt.cards, tt.dealer, tt.opts)
			if !ok || got != tt.want {
				t.Errorf("Advise(%v vs %d) = %v, %v; want %v", tt.cards, tt.dealer, got, ok, tt.want)
			}
		})
	}
}

func TestParseCards(t *testing.T) {
	tests := []struct {
		in   string
		want []string
		ok   bool
	}{
		{"A,7", []string{"A", "7"}, true},
		{"k, q", []string{"10", "10"}, true},
		{"2,3,4", []string{"2", "3", "4"}, true},
		{"5,Z", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCards(tt.in)
			if ok != tt.ok || !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseCards(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRowLabel(t *testing.T) {
	tests := []struct {
		cat  Category
		key  string
		want string
	}{
		{Hard, "16", "16"},
		{Soft, "18", "A,7"},
		{Pair, "A", "A,A"},
	}

	for _, tt := range tests {
		if got := RowLabel(tt.cat, tt.key); got != tt.want {
			t.Errorf("RowLabel(%v, %q) = %q, want %q", tt.cat, tt.key, got, tt.want)
		}
	}
}
