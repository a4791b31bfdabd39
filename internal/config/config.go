package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const minSecretKeyLength = 32

var (
	ErrSecretKeyMissing     = errors.New("SECRET_KEY is required")
	ErrSecretKeyPlaceholder = errors.New("SECRET_KEY uses an insecure placeholder")
	ErrSecretKeyTooShort    = errors.New("SECRET_KEY must be at least 32 characters")
	ErrInvalidPort          = errors.New("PORT must be between 1 and 65535")
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
	"secret":    {},
	"changeme":  {},
	"change_me": {},
}

type TelegramConfig struct {
	BotToken           string `yaml:"bot_token"`
	ChatID             string `yaml:"chat_id"`
	PeriodReminderDays int    `yaml:"period_reminder_days"`
	NotifyFertility    bool   `yaml:"notify_fertility"`
}

type Config struct {
	Port            string         `yaml:"port"`
	DBPath          string         `yaml:"db_path"`
	SecretKey       string         `yaml:"secret_key"`
	Timezone        string         `yaml:"timezone"`
	DefaultLanguage string         `yaml:"default_language"`
	CookieSecure    bool           `yaml:"cookie_secure"`
	Telegram        TelegramConfig `yaml:"telegram"`
}

func Default() Config {
	return Config{
		Port:            "8080",
		DBPath:          filepath.Join("data", "cycleinsights.db"),
		Timezone:        "UTC",
		DefaultLanguage: "en",
		Telegram: TelegramConfig{
			PeriodReminderDays: 2,
			NotifyFertility:    true,
		},
	}
}

// Load layers the defaults, the YAML file named by CONFIG_PATH and the
// environment, in that order.
func Load() (Config, error) {
	return LoadFrom(os.Getenv("CONFIG_PATH"))
}

// LoadFrom is Load with an explicit YAML path. An empty path skips the file.
func LoadFrom(path string) (Config, error) {
	config := Default()

	if path = strings.TrimSpace(path); path != "" {
		if err := config.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := config.mergeEnv(); err != nil {
		return Config{}, err
	}

	port, err := resolvePort(config.Port)
	if err != nil {
		return Config{}, err
	}
	config.Port = port
	return config, nil
}

func (config *Config) mergeFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(content, config); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (config *Config) mergeEnv() error {
	overrideString(&config.Port, "PORT")
	overrideString(&config.DBPath, "DB_PATH")
	overrideString(&config.SecretKey, "SECRET_KEY")
	overrideString(&config.Timezone, "TZ")
	overrideString(&config.DefaultLanguage, "DEFAULT_LANGUAGE")
	overrideString(&config.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	overrideString(&config.Telegram.ChatID, "TELEGRAM_CHAT_ID")

	if err := overrideBool(&config.CookieSecure, "COOKIE_SECURE"); err != nil {
		return err
	}
	if err := overrideBool(&config.Telegram.NotifyFertility, "TELEGRAM_NOTIFY_FERTILITY"); err != nil {
		return err
	}
	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_PERIOD_REMINDER_DAYS")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return fmt.Errorf("TELEGRAM_PERIOD_REMINDER_DAYS must be a non-negative integer, got %q", raw)
		}
		config.Telegram.PeriodReminderDays = parsed
	}
	return nil
}

// ResolveSecretKey returns the signing key or explains why it is unusable.
func (config Config) ResolveSecretKey() (string, error) {
	secret := strings.TrimSpace(config.SecretKey)
	if secret == "" {
		return "", ErrSecretKeyMissing
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", ErrSecretKeyPlaceholder
	}
	if len(secret) < minSecretKeyLength {
		return "", ErrSecretKeyTooShort
	}
	return secret, nil
}

// Location falls back to UTC for unknown zone names.
func (config Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(config.Timezone)
	if name == "" {
		return time.UTC, nil
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid TZ %q: %w", name, err)
	}
	return location, nil
}

func resolvePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return "8080", nil
	}
	value, err := strconv.Atoi(port)
	if err != nil || value < 1 || value > 65535 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPort, port)
	}
	return strconv.Itoa(value), nil
}

func overrideString(target *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*target = value
	}
}

func overrideBool(target *bool, key string) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	*target = parsed
	return nil
}
