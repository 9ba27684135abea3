package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	BotToken    string
	DatabaseURL string
	ProgbaseURL string
	CatAPIURL   string
	HTTPAddr    string
	LogLevel    string
	Env         string // dev|prod
	SentryDSN   string
	Debug       bool

	NotifyInterval time.Duration
	NotifyBatch    int
	PollTimeout    int // секунды long polling
}

// Load читает конфиг из окружения. BOT_TOKEN проверяется отдельно в cmd/bot,
// scorectl работает без него.
func Load() (*Config, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("required env DATABASE_URL is empty")
	}
	interval, err := time.ParseDuration(getenv("NOTIFY_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("NOTIFY_INTERVAL: %w", err)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("NOTIFY_INTERVAL: must be positive, got %s", interval)
	}
	batch, err := getint("NOTIFY_BATCH", 50)
	if err != nil {
		return nil, err
	}
	pollTimeout, err := getint("POLL_TIMEOUT", 60)
	if err != nil {
		return nil, err
	}
	debug, err := strconv.ParseBool(getenv("DEBUG", "false"))
	if err != nil {
		return nil, fmt.Errorf("DEBUG: %w", err)
	}

	cfg := &Config{
		BotToken:       os.Getenv("BOT_TOKEN"),
		DatabaseURL:    dsn,
		ProgbaseURL:    strings.TrimRight(getenv("PROGBASE_URL", "https://progbase.herokuapp.com"), "/"),
		CatAPIURL:      getenv("CAT_API_URL", "http://random.cat/meow"),
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		Env:            getenv("ENV", "dev"),
		SentryDSN:      os.Getenv("SENTRY_DSN"),
		Debug:          debug,
		NotifyInterval: interval,
		NotifyBatch:    batch,
		PollTimeout:    pollTimeout,
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %d", k, n)
	}
	return n, nil
}
