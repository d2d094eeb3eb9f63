// Package config handles runtime configuration: defaults, command-line
// flags, and environment variables, applied in that order so the
// environment wins.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// minTokenKeyLen matches the token service's requirement for HS256 keys.
const minTokenKeyLen = 32

// Config holds runtime settings for the Q&A server.
type Config struct {
	Port             int
	DBPath           string
	TokenKey         string        // HMAC secret for signing session tokens
	TokenValidity    time.Duration // session token lifetime
	BadWordsAPIKey   string        // apilayer Bad Words API key
	BadWordsEndpoint string        // classifier endpoint URL
	LogLevel         string        // debug, info, warn, or error
}

// LoadDefaults populates Config with development defaults. The two secrets
// have no default and must come from the environment.
func (c *Config) LoadDefaults() {
	c.Port = 8080
	c.DBPath = "data/qna.db"
	c.TokenValidity = 24 * time.Hour
	c.BadWordsEndpoint = "https://api.apilayer.com/bad_words"
	c.LogLevel = "info"
}

// Load builds a Config by applying defaults, then command-line flags, then
// environment variables, and finally validating the result.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := cfg.parseFlags(os.Args[1:]); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseFlags overlays command-line flags onto the config. Secrets are
// deliberately not accepted as flags; they would show up in process
// listings.
func (c *Config) parseFlags(args []string) error {
	fs := flag.NewFlagSet("qna-server", flag.ContinueOnError)

	fs.IntVar(&c.Port, "port", c.Port, "HTTP listen port")
	fs.StringVar(&c.DBPath, "db", c.DBPath, "path to the SQLite database file")
	fs.DurationVar(&c.TokenValidity, "token-validity", c.TokenValidity, "session token lifetime")
	fs.StringVar(&c.BadWordsEndpoint, "bad-words-endpoint", c.BadWordsEndpoint, "profanity classifier endpoint")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")

	return fs.Parse(args)
}

// applyEnv overlays environment variables onto the config.
//
//	PORT               listen port
//	DB_PATH            SQLite database path
//	TOKEN_KEY          session token signing key (required)
//	TOKEN_VALIDITY     token lifetime, Go duration syntax
//	BAD_WORDS_API_KEY  classifier API key (required)
//	BAD_WORDS_ENDPOINT classifier endpoint URL
//	LOG_LEVEL          log level
func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT value %q: %w", v, err)
		}
		c.Port = port
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("TOKEN_KEY"); v != "" {
		c.TokenKey = v
	}
	if v := os.Getenv("TOKEN_VALIDITY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_VALIDITY value %q: %w", v, err)
		}
		c.TokenValidity = d
	}
	if v := os.Getenv("BAD_WORDS_API_KEY"); v != "" {
		c.BadWordsAPIKey = v
	}
	if v := os.Getenv("BAD_WORDS_ENDPOINT"); v != "" {
		c.BadWordsEndpoint = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate checks that the mandatory secrets are present and usable. The
// server refuses to start without them; there is no insecure fallback key.
func (c *Config) Validate() error {
	if c.TokenKey == "" {
		return errors.New("TOKEN_KEY must be set")
	}
	if len(c.TokenKey) < minTokenKeyLen {
		return fmt.Errorf("TOKEN_KEY must be at least %d bytes, got %d", minTokenKeyLen, len(c.TokenKey))
	}
	if c.BadWordsAPIKey == "" {
		return errors.New("BAD_WORDS_API_KEY must be set")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}
