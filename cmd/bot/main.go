package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bjtrainer/internal/bot"
	"bjtrainer/internal/config"
	"bjtrainer/internal/database"
	"bjtrainer/internal/history"
	"bjtrainer/internal/logger"
	"bjtrainer/internal/player"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zl.Sync()

	if cfg.BotToken == "" {
		zl.Fatal("BOT_TOKEN is required")
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	zl.Info("database connected", zap.String("path", cfg.DatabasePath))

	b, err := bot.New(cfg, player.NewRepository(db.DB), history.NewRepository(db.DB), zl)
	if err != nil {
		zl.Fatal("failed to create bot", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := b.Run(ctx); err != nil {
		zl.Error("bot stopped", zap.Error(err))
		return
	}
	zl.Info("bot stopped")
}
