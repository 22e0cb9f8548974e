package bot

import (
	"context"

	"bjtrainer/internal/config"
	"bjtrainer/internal/history"
	"bjtrainer/internal/logger"
	"bjtrainer/internal/player"
	"bjtrainer/internal/strategy"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	log     *zap.Logger
}

func New(cfg *config.Config, players player.Repository, sessions history.Repository, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	log = logger.OrNop(log)

	return &Bot{
		api:     api,
		handler: NewHandler(api, cfg, players, sessions, strategy.New(), log),
		log:     log,
	}, nil
}

// Run dispatches updates until ctx is cancelled. Updates are handled
// concurrently; per-chat state is serialised by the session lock.
func (b *Bot) Run(ctx context.Context) error {
	b.log.Info("bot started", zap.String("username", b.api.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			if update.CallbackQuery != nil {
				go b.handler.HandleCallback(update.CallbackQuery)
				continue
			}

			if update.Message != nil {
				go b.handler.HandleMessage(update.Message)
			}
		}
	}
}
