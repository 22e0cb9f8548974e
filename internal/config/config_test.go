package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"DATABASE_PATH", "LOG_MODE", "START_BANK", "DEFAULT_BET", "MIN_BET", "MAX_BET", "BLACKJACK_PAYS", "SHOE_DECKS", "ALLOW_SURRENDER"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StartBank != 1000 {
		t.Errorf("StartBank = %v, want 1000", cfg.StartBank)
	}
	if cfg.DatabasePath != "./blackjack.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.ShoeDecks != 6 || !cfg.AllowSurrender {
		t.Errorf("unexpected shoe config: decks=%d surrender=%v", cfg.ShoeDecks, cfg.AllowSurrender)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bank not a number", "START_BANK", "lots"},
		{"decks not an integer", "SHOE_DECKS", "six"},
		{"zero decks", "SHOE_DECKS", "0"},
		{"surrender not a bool", "ALLOW_SURRENDER", "maybe"},
		{"min above max", "MIN_BET", "5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q: expected error", tt.key, tt.value)
			}
		})
	}
}
