package strategy

import (
	"fmt"
	"strconv"
)

// Chart rows, one letter per dealer upcard 2..10,A:
// H hit, S stand, D double, P split, R surrender (hit when not offered).
// Multi-deck, dealer stands on soft 17, double after split, late surrender.
var hardChart = [MaxHard - MinHard + 1]string{
	"HHHHHHHHHH", // 5
	"HHHHHHHHHH", // 6
	"HHHHHHHHHH", // 7
	"HHHHHHHHHH", // 8
	"HDDDDHHHHH", // 9
	"DDDDDDDDHH", // 10
	"DDDDDDDDDD", // 11
	"HHSSSHHHHH", // 12
	"SSSSSHHHHH", // 13
	"SSSSSHHHHH", // 14
	"SSSSSHHHRH", // 15
	"SSSSSHHRRR", // 16
	"SSSSSSSSSS", // 17
	"SSSSSSSSSS", // 18
	"SSSSSSSSSS", // 19
	"SSSSSSSSSS", // 20
	"SSSSSSSSSS", // 21
}

var softChart = [MaxSoft - MinSoft + 1]string{
	"HHHDDHHHHH", // A,2
	"HHHDDHHHHH", // A,3
	"HHDDDHHHHH", // A,4
	"HHDDDHHHHH", // A,5
	"HDDDDHHHHH", // A,6
	"SDDDDSSHHH", // A,7
	"SSSSSSSSSS", // A,8
	"SSSSSSSSSS", // A,9
}

// rows follow PairRanks
var pairChart = [10]string{
	"PPPPPPHHHH", // 2,2
	"PPPPPPHHHH", // 3,3
	"HHHPPHHHHH", // 4,4
	"DDDDDDDDHH", // 5,5
	"PPPPPHHHHH", // 6,6
	"PPPPPPHHHH", // 7,7
	"PPPPPPPPPP", // 8,8
	"PPPPPSPPSS", // 9,9
	"SSSSSSSSSS", // 10,10
	"PPPPPPPPPP", // A,A
}

const dealerColumns = MaxDealer - MinDealer + 1

type cell struct {
	action   Action
	fallback Action
}

// Table is the basic strategy chart. It is built once and never
// mutated, so a single instance can be shared by any number of readers.
type Table struct {
	hard [len(hardChart)][dealerColumns]cell
	soft [len(softChart)][dealerColumns]cell
	pair [len(pairChart)][dealerColumns]cell
}

// New builds the table from the chart literals. A malformed chart is a
// programming error and panics.
func New() *Table {
	t := &Table{}
	for i, row := range hardChart {
		t.hard[i] = mustParseRow("hard", i, row)
	}
	for i, row := range softChart {
		t.soft[i] = mustParseRow("soft", i, row)
	}
	for i, row := range pairChart {
		t.pair[i] = mustParseRow("pair", i, row)
	}
	return t
}

func mustParseRow(name string, idx int, row string) [dealerColumns]cell {
	var cells [dealerColumns]cell
	if len(row) != dealerColumns {
		panic(fmt.Sprintf("strategy: %s row %d has %d columns", name, idx, len(row)))
	}
	for i := 0; i < dealerColumns; i++ {
		switch row[i] {
		case 'H':
			cells[i] = cell{Hit, Hit}
		case 'S':
			cells[i] = cell{Stand, Stand}
		case 'D':
			cells[i] = cell{Double, Double}
		case 'P':
			cells[i] = cell{Split, Split}
		case 'R':
			cells[i] = cell{Surrender, Hit}
		default:
			panic(fmt.Sprintf("strategy: %s row %d has unknown action %q", name, idx, row[i]))
		}
	}
	return cells
}

// find returns the cell for a key, or false when the key or dealer card
// is outside the chart.
func (t *Table) find(cat Category, key string, dealer int) (cell, bool) {
	if dealer < MinDealer || dealer > MaxDealer {
		return cell{}, false
	}
	col := dealer - MinDealer

	switch cat {
	case Hard:
		n, err := strconv.Atoi(key)
		if err != nil || n < MinHard || n > MaxHard {
			return cell{}, false
		}
		return t.hard[n-MinHard][col], true
	case Soft:
		n, err := strconv.Atoi(key)
		if err != nil || n < MinSoft || n > MaxSoft {
			return cell{}, false
		}
		return t.soft[n-MinSoft][col], true
	case Pair:
		key = NormalizePairKey(key)
		for i, r := range PairRanks {
			if r == key {
				return t.pair[i][col], true
			}
		}
	}
	return cell{}, false
}

// Lookup returns the recommended action. Keys or upcards outside the
// chart resolve to Hit.
func (t *Table) Lookup(cat Category, key string, dealer int) Action {
	c, ok := t.find(cat, key, dealer)
	if !ok {
		return Hit
	}
	return c.action
}

// Fallback returns the action to take when surrender is not offered.
// It equals Lookup for every cell that does not recommend Surrender.
func (t *Table) Fallback(cat Category, key string, dealer int) Action {
	c, ok := t.find(cat, key, dealer)
	if !ok {
		return Hit
	}
	return c.fallback
}

// Resolve is Lookup with surrender availability applied.
func (t *Table) Resolve(cat Category, key string, dealer int, allowSurrender bool) Action {
	if allowSurrender {
		return t.Lookup(cat, key, dealer)
	}
	return t.Fallback(cat, key, dealer)
}

func (t *Table) LookupHard(total, dealer int) Action {
	return t.Lookup(Hard, TotalKey(total), dealer)
}

func (t *Table) LookupSoft(total, dealer int) Action {
	return t.Lookup(Soft, TotalKey(total), dealer)
}

func (t *Table) LookupPair(rank string, dealer int) Action {
	return t.Lookup(Pair, rank, dealer)
}

// Keys lists the hand keys of a category in chart order.
func Keys(cat Category) []string {
	switch cat {
	case Hard:
		return totalKeys(MinHard, MaxHard)
	case Soft:
		return totalKeys(MinSoft, MaxSoft)
	case Pair:
		return append([]string(nil), PairRanks...)
	}
	return nil
}

func totalKeys(from, to int) []string {
	keys := make([]string, 0, to-from+1)
	for n := from; n <= to; n++ {
		keys = append(keys, TotalKey(n))
	}
	return keys
}

// AllEntries returns every cell of a category ordered by hand key, then
// by dealer upcard.
func (t *Table) AllEntries(cat Category) []Entry {
	keys := Keys(cat)
	entries := make([]Entry, 0, len(keys)*dealerColumns)
	for _, key := range keys {
		for dealer := MinDealer; dealer <= MaxDealer; dealer++ {
			c, _ := t.find(cat, key, dealer)
			entries = append(entries, Entry{
				Category: cat,
				Key:      key,
				Dealer:   dealer,
				Action:   c.action,
				Fallback: c.fallback,
			})
		}
	}
	return entries
}

// Check grades a practice answer. With surrender disabled the fallback
// action is the expected one.
func (t *Table) Check(cat Category, key string, dealer int, answer Action, allowSurrender bool) (bool, Action) {
	want := t.Resolve(cat, key, dealer, allowSurrender)
	return answer == want, want
}
