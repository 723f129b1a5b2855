// Package config loads service settings for the HTTP server and notifier.
//
// Precedence, highest first:
//  1. BEASTMODE_* environment variables (BEASTMODE_SERVER_PORT -> server.port)
//  2. YAML file (~/.config/beastmode/config.yaml)
//  3. Built-in defaults
//
// Per-user preferences such as reminder times live in the store, not here.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/julianstephens/beastmode/internal/constants"
)

const (
	envPrefix         = "BEASTMODE_"
	maxConfigFileSize = 1024 * 1024
)

type Config struct {
	Server ServerConfig `koanf:"server"`
	Notify NotifyConfig `koanf:"notify"`
	Demo   DemoConfig   `koanf:"demo"`
	Log    LogConfig    `koanf:"log"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type NotifyConfig struct {
	Timeout       time.Duration `koanf:"timeout"`
	RatePerMinute int           `koanf:"rate_per_minute"`
	TelegramAPI   string        `koanf:"telegram_api"`
	TwilioAPI     string        `koanf:"twilio_api"`
}

type DemoConfig struct {
	Seed int64 `koanf:"seed"`
	Days int   `koanf:"days"`
}

// LogConfig controls the rotating log file. Sizes are in megabytes, ages in days.
type LogConfig struct {
	Level      string `koanf:"level"`
	MaxSize    int    `koanf:"max_size"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAge     int    `koanf:"max_age"`
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// DefaultPath is ~/.config/beastmode/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", constants.AppName, "config.yaml"), nil
}

// Load reads path (or the default path when empty) if it exists, applies
// environment overrides and fills defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	content, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	if content != nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// envKey maps BEASTMODE_NOTIFY_RATE_PER_MINUTE to notify.rate_per_minute:
// the first segment is the section, the rest is the field name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	section, field, ok := strings.Cut(lower, "_")
	if !ok {
		return lower
	}
	return section + "." + field
}

// readConfigFile returns nil content when the file does not exist. The file
// is validated through the open descriptor.
func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if err := validateFileInfo(info); err != nil {
		return nil, fmt.Errorf("config file validation failed: %w", err)
	}
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

func validateFileInfo(info os.FileInfo) error {
	if runtime.GOOS != "windows" {
		if perm := info.Mode().Perm(); perm != 0o600 && perm != 0o400 {
			return fmt.Errorf("insecure config file permissions: %v (expected 0600 or 0400)", perm)
		}
	}
	if info.Size() > maxConfigFileSize {
		return fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = constants.DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = constants.DefaultServerPort
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Notify.Timeout == 0 {
		cfg.Notify.Timeout = constants.DefaultNotifyTimeout
	}
	if cfg.Notify.RatePerMinute == 0 {
		cfg.Notify.RatePerMinute = constants.DefaultNotifyRatePerM
	}
	if cfg.Notify.TelegramAPI == "" {
		cfg.Notify.TelegramAPI = constants.DefaultTelegramAPI
	}
	if cfg.Notify.TwilioAPI == "" {
		cfg.Notify.TwilioAPI = constants.DefaultTwilioAPI
	}
	if cfg.Demo.Seed == 0 {
		cfg.Demo.Seed = constants.DefaultDemoSeed
	}
	if cfg.Demo.Days == 0 {
		cfg.Demo.Days = constants.DefaultDemoDays
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = constants.DefaultLogLevel
	}
	if cfg.Log.MaxSize == 0 {
		cfg.Log.MaxSize = constants.DefaultLogMaxSize
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = constants.DefaultLogMaxBackups
	}
	if cfg.Log.MaxAge == 0 {
		cfg.Log.MaxAge = constants.DefaultLogMaxAge
	}
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Notify.Timeout < 0 {
		return fmt.Errorf("notify.timeout cannot be negative")
	}
	if c.Notify.RatePerMinute < 0 {
		return fmt.Errorf("notify.rate_per_minute cannot be negative")
	}
	if c.Demo.Days < 1 || c.Demo.Days > constants.MaxHistoryLimit {
		return fmt.Errorf("demo.days must be between 1 and %d", constants.MaxHistoryLimit)
	}
	if !logLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if c.Log.MaxSize < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAge < 0 {
		return fmt.Errorf("log rotation limits cannot be negative")
	}
	return nil
}
