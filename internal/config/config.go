package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken       string
	DatabasePath   string
	LogMode        string
	StartBank      float64
	DefaultBet     float64
	MinBet         float64
	MaxBet         float64
	BlackjackPays  float64
	ShoeDecks      int
	AllowSurrender bool
}

// Load reads the optional .env file and the process environment.
// The bot token is not checked here; only cmd/bot needs it.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		BotToken:     os.Getenv("BOT_TOKEN"),
		DatabasePath: getString("DATABASE_PATH", "./blackjack.db"),
		LogMode:      getString("LOG_MODE", "debug"),
	}

	var err error
	if cfg.StartBank, err = getFloat("START_BANK", 1000); err != nil {
		return nil, err
	}
	if cfg.DefaultBet, err = getFloat("DEFAULT_BET", 25); err != nil {
		return nil, err
	}
	if cfg.MinBet, err = getFloat("MIN_BET", 5); err != nil {
		return nil, err
	}
	if cfg.MaxBet, err = getFloat("MAX_BET", 1000); err != nil {
		return nil, err
	}
	if cfg.BlackjackPays, err = getFloat("BLACKJACK_PAYS", 2.5); err != nil {
		return nil, err
	}
	if cfg.ShoeDecks, err = getInt("SHOE_DECKS", 6); err != nil {
		return nil, err
	}
	if cfg.AllowSurrender, err = getBool("ALLOW_SURRENDER", true); err != nil {
		return nil, err
	}

	if cfg.MinBet <= 0 || cfg.MinBet > cfg.MaxBet {
		return nil, fmt.Errorf("invalid bet limits: min %.2f, max %.2f", cfg.MinBet, cfg.MaxBet)
	}
	if cfg.ShoeDecks < 1 {
		return nil, fmt.Errorf("SHOE_DECKS must be at least 1, got %d", cfg.ShoeDecks)
	}

	return cfg, nil
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s is not a number: %w", key, err)
	}
	return f, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s is not an integer: %w", key, err)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s is not a boolean: %w", key, err)
	}
	return b, nil
}
