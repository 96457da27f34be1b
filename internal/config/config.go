// internal/config/config.go
//
// Environment configuration for the Word Scramble server and CLI.
// Values come from the process environment; in development a `.env` file is
// loaded first (missing file is not an error).
//
// Variables (defaults in parentheses):
//   PORT (5175), LOG_LEVEL (info), CLIENT_ORIGIN (http://localhost:5173),
//   APP_ENV (development), WORDS_FILE, DICTIONARY_BACKEND (memory|sqlite),
//   DICTIONARY_FILE, DB_PATH (./data/dictionary.db), LANGUAGE (en),
//   DICTIONARY_TIMEOUT (2s), SESSION_SECRET, ROUND_TTL (24h), DAILY_SALT.

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

// Dictionary backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds every tunable of the service.
type Config struct {
	Port         string `env:"PORT" envDefault:"5175"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	AppEnv       string `env:"APP_ENV" envDefault:"development"`

	WordsFile         string        `env:"WORDS_FILE"`
	DictionaryBackend string        `env:"DICTIONARY_BACKEND" envDefault:"memory"`
	DictionaryFile    string        `env:"DICTIONARY_FILE"`
	DBPath            string        `env:"DB_PATH" envDefault:"./data/dictionary.db"`
	LanguageTag       string        `env:"LANGUAGE" envDefault:"en"`
	DictionaryTimeout time.Duration `env:"DICTIONARY_TIMEOUT" envDefault:"2s"`

	SessionSecret string        `env:"SESSION_SECRET" envDefault:"dev_secret_change_me"`
	RoundTTL      time.Duration `env:"ROUND_TTL" envDefault:"24h"`
	DailySalt     string        `env:"DAILY_SALT" envDefault:"local_dev_salt"`
}

// Load reads .env (if present) and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse(env.Options{})
}

// Parse parses the environment with the given options and validates the
// result. Tests pass Options.Environment to avoid touching the process env.
func Parse(opts env.Options) (Config, error) {
	var c Config
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.DictionaryBackend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("DICTIONARY_BACKEND: unknown backend %q", c.DictionaryBackend)
	}
	if _, err := c.Language(); err != nil {
		return err
	}
	if c.DictionaryTimeout <= 0 {
		return errors.New("DICTIONARY_TIMEOUT must be positive")
	}
	if c.RoundTTL <= 0 {
		return errors.New("ROUND_TTL must be positive")
	}
	return nil
}

// Language returns the dictionary language tag.
func (c Config) Language() (language.Tag, error) {
	tag, err := language.Parse(c.LanguageTag)
	if err != nil {
		return language.Und, fmt.Errorf("LANGUAGE %q: %w", c.LanguageTag, err)
	}
	return tag, nil
}

// Production reports whether cookies should be marked Secure/SameSite=None.
func (c Config) Production() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Level returns the configured zerolog level, falling back to info.
func (c Config) Level() zerolog.Level {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		return lvl
	}
	return zerolog.InfoLevel
}
