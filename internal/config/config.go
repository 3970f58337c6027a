package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"

	"bookingcal/internal/extract"
)

// Config holds all configuration for the application.
// Values are read by viper from a config file or environment variables.
type Config struct {
	TelegramBotToken string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	BadgerDBPath     string `mapstructure:"BADGERDB_PATH"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`

	// Timezone is the single zone booked times are read and written in; it is
	// also sent to Google Calendar as ctz.
	Timezone             string `mapstructure:"TIMEZONE"`
	EventDurationMinutes int    `mapstructure:"EVENT_DURATION_MINUTES"`

	// BrowserBin overrides rod's browser lookup.
	BrowserBin   string        `mapstructure:"BROWSER_BIN"`
	ReadyTimeout time.Duration `mapstructure:"READY_TIMEOUT"`
	PendingTTL   time.Duration `mapstructure:"PENDING_TTL"`

	// MetricsListen enables the Prometheus endpoint when set, e.g. ":9090".
	MetricsListen string `mapstructure:"METRICS_LISTEN"`

	Selectors extract.Selectors `mapstructure:"SELECTORS"`
}

// ErrMissingBotToken is returned by RequireBotToken.
var ErrMissingBotToken = errors.New("TELEGRAM_BOT_TOKEN is not set")

func setDefaults(v *viper.Viper) {
	v.SetDefault("TELEGRAM_BOT_TOKEN", "")
	v.SetDefault("BADGERDB_PATH", "./badger_data")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TIMEZONE", "Asia/Seoul")
	v.SetDefault("EVENT_DURATION_MINUTES", 60)
	v.SetDefault("BROWSER_BIN", "")
	v.SetDefault("READY_TIMEOUT", "10s")
	v.SetDefault("PENDING_TTL", "30m")
	v.SetDefault("METRICS_LISTEN", "")

	// Defaults for every selector key so SELECTORS_* env vars are picked up by Unmarshal.
	d := extract.DefaultSelectors()
	v.SetDefault("SELECTORS.STORE", d.Store)
	v.SetDefault("SELECTORS.STAFF", d.Staff)
	v.SetDefault("SELECTORS.INFO_ITEM", d.InfoItem)
	v.SetDefault("SELECTORS.INFO_TITLE", d.InfoTitle)
	v.SetDefault("SELECTORS.INFO_DESC", d.InfoDesc)
	v.SetDefault("SELECTORS.MENU_LABEL", d.MenuLabel)
	v.SetDefault("SELECTORS.BOOKED", d.Booked)
	v.SetDefault("SELECTORS.ADDRESS", d.Address)
	v.SetDefault("SELECTORS.ADDRESS_NOISE", d.AddressNoise)
	v.SetDefault("SELECTORS.READY", d.Ready)
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; environment variables and defaults still apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.normalize(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c *Config) normalize() error {
	if c.EventDurationMinutes <= 0 {
		return fmt.Errorf("EVENT_DURATION_MINUTES must be positive, got %d", c.EventDurationMinutes)
	}
	if c.ReadyTimeout <= 0 {
		return fmt.Errorf("READY_TIMEOUT must be positive, got %s", c.ReadyTimeout)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	c.Selectors = c.Selectors.WithDefaults()
	return nil
}

// Location resolves Timezone. Only IANA names are accepted: the name is sent
// to Google Calendar as ctz, and "Local" or "" would not identify a zone there.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "Local") {
		return nil, fmt.Errorf("invalid TIMEZONE %q: an IANA zone name such as Asia/Seoul is required", c.Timezone)
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// RequireBotToken is checked by commands that talk to Telegram.
func (c Config) RequireBotToken() error {
	if c.TelegramBotToken == "" {
		return ErrMissingBotToken
	}
	return nil
}
