package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPraktikumAPIURL = "https://praktikum.yandex.ru/api/user_api/homework_statuses/"
	DefaultPollSchedule    = "@every 300s"
	DefaultErrorDelay      = 5 * time.Second
	DefaultRequestTimeout  = 30 * time.Second
	DefaultLogFile         = "bot.log"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PraktikumToken  string
	PraktikumAPIURL string
	TelegramToken   string
	TelegramAPIURL  string // Empty means the public Bot API
	TelegramChatID  int64
	PollSchedule    string // Cron expression, descriptor or plain duration
	ErrorDelay      time.Duration
	RequestTimeout  time.Duration
	LogLevel        string
	LogFile         string
	LogToStderr     bool
	Environment     string
	MetricsAddr     string // Empty disables the metrics listener
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (*AppConfig, error) {
	cfg := &AppConfig{}
	var err error

	cfg.PraktikumToken = getenv("PRAKTIKUM_TOKEN")
	if cfg.PraktikumToken == "" {
		return nil, fmt.Errorf("PRAKTIKUM_TOKEN is not set")
	}

	cfg.TelegramToken = getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	chatIDStr := getenv("TELEGRAM_CHAT_ID")
	if chatIDStr == "" {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID is not set")
	}
	cfg.TelegramChatID, err = strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
	}

	cfg.PraktikumAPIURL = getenv("PRAKTIKUM_API_URL")
	if cfg.PraktikumAPIURL == "" {
		cfg.PraktikumAPIURL = DefaultPraktikumAPIURL
	}
	cfg.TelegramAPIURL = getenv("TELEGRAM_API_URL")

	cfg.PollSchedule = strings.TrimSpace(getenv("POLL_SCHEDULE"))
	if cfg.PollSchedule == "" {
		cfg.PollSchedule = DefaultPollSchedule
	}

	if cfg.ErrorDelay, err = durationOr(getenv, "ERROR_DELAY", DefaultErrorDelay); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = durationOr(getenv, "REQUEST_TIMEOUT", DefaultRequestTimeout); err != nil {
		return nil, err
	}

	cfg.LogLevel = strings.ToLower(getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug" // Default log level
	}

	cfg.LogFile = getenv("LOG_FILE")
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile
	}

	cfg.LogToStderr = true
	if v := getenv("LOG_TO_STDERR"); v != "" {
		cfg.LogToStderr, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_TO_STDERR: %w", err)
		}
	}

	cfg.Environment = strings.ToLower(getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.MetricsAddr = getenv("METRICS_ADDR")

	return cfg, nil
}

func durationOr(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive, got %s", key, v)
	}
	return d, nil
}
