package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"bjtrainer/internal/strategy"

	"github.com/pterm/pterm"
)

func main() {
	categoryFlag := flag.String("category", "all", "chart to print: hard, soft, pair or all")
	surrenderFlag := flag.Bool("surrender", true, "late surrender is offered")
	handFlag := flag.String("hand", "", "comma-separated cards to look up, e.g. A,7")
	dealerFlag := flag.String("dealer", "", "dealer upcard for -hand, 2-10 or A")
	flag.Parse()

	table := strategy.New()

	if *handFlag != "" {
		if err := recommend(table, *handFlag, *dealerFlag, *surrenderFlag); err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
		return
	}

	cats := strategy.Categories
	if *categoryFlag != "all" {
		cat, err := strategy.ParseCategory(*categoryFlag)
		if err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
		cats = []strategy.Category{cat}
	}

	for _, cat := range cats {
		pterm.DefaultSection.Println(strings.ToUpper(cat.String()))
		if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(chartData(table, cat, *surrenderFlag)).Render(); err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
	}

	legend := "H hit, S stand, D double, P split"
	if *surrenderFlag {
		legend += ", R surrender (else hit)"
	}
	pterm.Println()
	pterm.Info.Println(legend)
}

func chartData(t *strategy.Table, cat strategy.Category, allowSurrender bool) pterm.TableData {
	header := []string{""}
	for d := strategy.MinDealer; d <= strategy.MaxDealer; d++ {
		header = append(header, strategy.DealerLabel(d))
	}
	data := pterm.TableData{header}

	var row []string
	for _, e := range t.AllEntries(cat) {
		if e.Dealer == strategy.MinDealer {
			if row != nil {
				data = append(data, row)
			}
			row = []string{strategy.RowLabel(cat, e.Key)}
		}
		action := e.Action
		if !allowSurrender {
			action = e.Fallback
		}
		row = append(row, colour(action))
	}
	if row != nil {
		data = append(data, row)
	}
	return data
}

func colour(a strategy.Action) string {
	switch a {
	case strategy.Stand:
		return pterm.LightYellow(a.Code())
	case strategy.Double:
		return pterm.LightCyan(a.Code())
	case strategy.Split:
		return pterm.LightGreen(a.Code())
	case strategy.Surrender:
		return pterm.LightRed(a.Code())
	}
	return pterm.Gray(a.Code())
}

func recommend(t *strategy.Table, hand, dealer string, allowSurrender bool) error {
	up, ok := strategy.ParseDealer(dealer)
	if !ok {
		return fmt.Errorf("invalid dealer upcard %q", dealer)
	}

	cards, ok := strategy.ParseCards(hand)
	if !ok {
		return fmt.Errorf("unknown card in hand %q", hand)
	}

	rec, ok := t.Recommend(cards, up, allowSurrender)
	if !ok {
		return fmt.Errorf("cannot look up hand %q", hand)
	}

	pterm.Info.Printfln("%s %s vs %s: %s", rec.Category, strategy.RowLabel(rec.Category, rec.Key), strategy.DealerLabel(rec.Dealer), rec.Action)
	if rec.Ideal != rec.Action {
		pterm.Warning.Printfln("%s when surrender is offered", rec.Ideal)
	}
	pterm.Println(rec.Explanation)
	return nil
}
