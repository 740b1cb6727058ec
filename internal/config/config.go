package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Durations are YAML strings in
// time.ParseDuration syntax ("5m", "30s").
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Storage struct {
		StateFile  string `yaml:"state_file"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"storage"`
	Jackpot struct {
		SettleDelay string `yaml:"settle_delay"`
	} `yaml:"jackpot"`
	Championship struct {
		AdvanceInterval   string `yaml:"advance_interval"`
		SeasonLength      string `yaml:"season_length"`
		RestartDelay      string `yaml:"restart_delay"`
		NarrationInterval string `yaml:"narration_interval"`
	} `yaml:"championship"`
	Schedule struct {
		MarketCron    string `yaml:"market_cron"`
		StandingsCron string `yaml:"standings_cron"`
		StatsCron     string `yaml:"stats_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("STATE_FILE"); v != "" {
		cfg.Storage.StateFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Storage.StateFile == "" {
		cfg.Storage.StateFile = "data/economy.json"
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = "data/coinarena.db"
	}
	if cfg.Jackpot.SettleDelay == "" {
		cfg.Jackpot.SettleDelay = "5m"
	}
	if cfg.Championship.AdvanceInterval == "" {
		cfg.Championship.AdvanceInterval = "30s"
	}
	if cfg.Championship.SeasonLength == "" {
		cfg.Championship.SeasonLength = "5m"
	}
	if cfg.Championship.RestartDelay == "" {
		cfg.Championship.RestartDelay = "5s"
	}
	if cfg.Championship.NarrationInterval == "" {
		cfg.Championship.NarrationInterval = "4s"
	}
	if cfg.Schedule.MarketCron == "" {
		cfg.Schedule.MarketCron = "0 */5 * * * *"
	}
	if cfg.Schedule.StandingsCron == "" {
		cfg.Schedule.StandingsCron = "0 0 * * * *"
	}
	if cfg.Schedule.StatsCron == "" {
		cfg.Schedule.StatsCron = "0 0 9 * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields parse.
func (c *Config) Validate() error {
	if c.Storage.StateFile == "" {
		return fmt.Errorf("storage.state_file is required")
	}
	durations := map[string]string{
		"jackpot.settle_delay":            c.Jackpot.SettleDelay,
		"championship.advance_interval":   c.Championship.AdvanceInterval,
		"championship.season_length":      c.Championship.SeasonLength,
		"championship.restart_delay":      c.Championship.RestartDelay,
		"championship.narration_interval": c.Championship.NarrationInterval,
	}
	for field, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
	}
	return nil
}

// Duration parses a validated duration field, panicking on malformed input;
// call Validate first.
func Duration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(fmt.Sprintf("unvalidated duration %q: %v", s, err))
	}
	return d
}
