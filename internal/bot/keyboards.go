package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	CallbackHit       = "hit"
	CallbackStand     = "stand"
	CallbackDouble    = "double"
	CallbackSplit     = "split"
	CallbackSurrender = "surrender"
	CallbackHint      = "hint"
	CallbackPlayAgain = "play_again"
	CallbackStats     = "stats"
)

type GameKeyboardOptions struct {
	CanDouble    bool
	CanSplit     bool
	CanSurrender bool
}

func GameKeyboard(opts GameKeyboardOptions) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("👊 Hit", CallbackHit),
		tgbotapi.NewInlineKeyboardButtonData("✋ Stand", CallbackStand),
	}

	if opts.CanDouble {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("💰 Double", CallbackDouble))
	}
	if opts.CanSplit {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("✂️ Split", CallbackSplit))
	}

	rows := [][]tgbotapi.InlineKeyboardButton{row}

	extra := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("💡 Hint", CallbackHint),
	}
	if opts.CanSurrender {
		extra = append(extra, tgbotapi.NewInlineKeyboardButtonData("🏳️ Surrender", CallbackSurrender))
	}
	rows = append(rows, extra)

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func EndGameKeyboard(lastBet float64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🔄 Again (%s)", money(lastBet)),
				CallbackPlayAgain,
			),
			tgbotapi.NewInlineKeyboardButtonData("📊 Stats", CallbackStats),
		),
	)
}
