// Package config loads ~/.keytrack/config.toml: display labels for the
// keypad buttons plus day-log and serial settings. A missing or
// malformed file is never fatal; built-in defaults apply.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/keytrack/internal/ports"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".keytrack"

	logDirKey            = "logs.dir"
	serialPortKey        = "serial.port"
	reconnectAttemptsKey = "serial.reconnect_attempts"
	reconnectBackoffKey  = "serial.reconnect_backoff"
	labelsKey            = "labels"
)

const (
	defaultReconnectAttempts = 5
	defaultReconnectBackoff  = 2 * time.Second
)

type Config struct {
	LogDir            string
	SerialPort        string
	ReconnectAttempts int
	ReconnectBackoff  time.Duration

	labels map[string]string
}

var _ ports.LabelSource = (*Config)(nil)

// Load reads the config file through viper. A malformed file degrades
// to defaults with a warning so the tracker still comes up.
func Load(cfg *viper.Viper, logger *log.Logger) (*Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))
	cfg.SetDefault(logDirKey, filepath.Join(homeDir, configDir, "logs"))
	cfg.SetDefault(serialPortKey, "")
	cfg.SetDefault(reconnectAttemptsKey, defaultReconnectAttempts)
	cfg.SetDefault(reconnectBackoffKey, defaultReconnectBackoff)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			logger.Warn("config file unreadable, using defaults", "err", err)
		}
	}

	return &Config{
		LogDir:            cfg.GetString(logDirKey),
		SerialPort:        cfg.GetString(serialPortKey),
		ReconnectAttempts: cfg.GetInt(reconnectAttemptsKey),
		ReconnectBackoff:  cfg.GetDuration(reconnectBackoffKey),
		labels:            cfg.GetStringMapString(labelsKey),
	}, nil
}

// Label resolves a button-number key to its configured display label.
func (c *Config) Label(key string) (string, bool) {
	label, ok := c.labels[key]
	if !ok || label == "" {
		return "", false
	}
	return label, true
}
