package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/example/mcqdrill/internal/database"
	"github.com/example/mcqdrill/internal/scheduler"
	"github.com/example/mcqdrill/internal/spaced_repetition"
)

// Config is the application configuration
type Config struct {
	DBType      string
	DatabaseURL string
	DataDir     string

	Policy      spaced_repetition.Policy
	SessionSize int

	LogLevel string
	LogFile  string

	TelegramToken  string
	TelegramChatID int64

	NotificationStartHour int
	NotificationEndHour   int
	ReminderInterval      time.Duration
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DBType:                database.TypeSQLite,
		DataDir:               "data",
		Policy:                spaced_repetition.DefaultPolicy(),
		SessionSize:           10,
		LogLevel:              "info",
		NotificationStartHour: scheduler.DefaultNotificationStartHour,
		NotificationEndHour:   scheduler.DefaultNotificationEndHour,
		ReminderInterval:      scheduler.DefaultInterval,
	}
}

// Load reads an optional .env file and the environment on top of the defaults.
// envFiles defaults to ".env"; a missing file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to load %s", f)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("DB_TYPE", &c.DBType)
	str("DATABASE_URL", &c.DatabaseURL)
	str("DATA_DIR", &c.DataDir)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FILE", &c.LogFile)
	str("TELEGRAM_BOT_TOKEN", &c.TelegramToken)
	c.DBType = strings.ToLower(c.DBType)

	floats := []struct {
		key string
		dst *float64
	}{
		{"MAX_RESPONSE_TIME", &c.Policy.MaxResponseTimeSeconds},
		{"MAX_DAYS", &c.Policy.MaxDays},
		{"WEIGHT_CORRECT", &c.Policy.Weights.Correct},
		{"WEIGHT_RESPONSE_TIME", &c.Policy.Weights.ResponseTime},
		{"WEIGHT_TIME", &c.Policy.Weights.Time},
		{"WEIGHT_RANK", &c.Policy.Weights.Rank},
		{"WEIGHT_TREND", &c.Policy.Weights.Trend},
	}
	for _, f := range floats {
		v, ok := lookup(f.key)
		if !ok {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", f.key)
		}
		*f.dst = n
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"SESSION_SIZE", &c.SessionSize},
		{"NOTIFICATION_START_HOUR", &c.NotificationStartHour},
		{"NOTIFICATION_END_HOUR", &c.NotificationEndHour},
	}
	for _, i := range ints {
		v, ok := lookup(i.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", i.key)
		}
		*i.dst = n
	}

	if v, ok := lookup("INVERT_INTERVAL_RANK"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "invalid INVERT_INTERVAL_RANK")
		}
		c.Policy.InvertIntervalRank = b
	}

	if v, ok := lookup("TELEGRAM_CHAT_ID"); ok {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Wrap(err, "invalid TELEGRAM_CHAT_ID")
		}
		c.TelegramChatID = id
	}

	if v, ok := lookup("REMINDER_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(err, "invalid REMINDER_INTERVAL")
		}
		c.ReminderInterval = d
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Validate checks the configuration for values the application cannot run with
func (c *Config) Validate() error {
	switch c.DBType {
	case database.TypeSQLite:
	case database.TypePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for postgres")
		}
	default:
		return errors.Errorf("unsupported DB_TYPE %q", c.DBType)
	}
	if err := c.Policy.Validate(); err != nil {
		return errors.Wrap(err, "invalid scoring policy")
	}
	if c.SessionSize <= 0 {
		return errors.Errorf("SESSION_SIZE must be positive, got %d", c.SessionSize)
	}
	for key, h := range map[string]int{
		"NOTIFICATION_START_HOUR": c.NotificationStartHour,
		"NOTIFICATION_END_HOUR":   c.NotificationEndHour,
	} {
		if h < 0 || h > 23 {
			return errors.Errorf("%s must be between 0 and 23, got %d", key, h)
		}
	}
	if c.ReminderInterval <= 0 {
		return errors.Errorf("REMINDER_INTERVAL must be positive, got %s", c.ReminderInterval)
	}
	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		return errors.New("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}
	return nil
}

// Database returns the database connection settings
func (c *Config) Database() database.Config {
	return database.Config{Type: c.DBType, URL: c.DatabaseURL, DataDir: c.DataDir}
}

// Reminders returns the reminder scheduler settings
func (c *Config) Reminders() scheduler.Config {
	cfg := scheduler.DefaultConfig()
	cfg.Interval = c.ReminderInterval
	cfg.StartHour = c.NotificationStartHour
	cfg.EndHour = c.NotificationEndHour
	return cfg
}

// TelegramEnabled reports whether reminders go to Telegram
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != ""
}
