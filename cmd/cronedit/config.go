package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is read from the environment, optionally seeded from .env.
type Config struct {
	User        string `env:"CRONEDIT_USER"`
	Binary      string `env:"CRONEDIT_BINARY" envDefault:"crontab"`
	Sudo        bool   `env:"CRONEDIT_SUDO" envDefault:"false"`
	File        string `env:"CRONEDIT_FILE"`
	HistoryDB   string `env:"CRONEDIT_HISTORY_DB"`
	HistoryKeep int    `env:"CRONEDIT_HISTORY_KEEP" envDefault:"20"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"warn"`
}

// loadConfig loads dotenv (when present) and parses the environment.
// Variables already set in the environment win over the file.
func loadConfig(dotenv string) (*Config, error) {
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// level parses LOG_LEVEL, falling back to warn.
func (c *Config) level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelWarn
	}
	return l
}
