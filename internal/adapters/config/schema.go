package config

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	configFileMode = 0o600
	configDirMode  = 0o700
)

type fileSchema struct {
	Labels map[string]string `toml:"labels"`
	Logs   logsSchema        `toml:"logs"`
	Serial serialSchema      `toml:"serial"`
}

type logsSchema struct {
	Dir string `toml:"dir"`
}

type serialSchema struct {
	Port              string `toml:"port"`
	ReconnectAttempts int    `toml:"reconnect_attempts"`
	ReconnectBackoff  string `toml:"reconnect_backoff"`
}

func defaultSchema(homeDir string) fileSchema {
	labels := make(map[string]string, len(builtinLabels))
	for key, label := range builtinLabels {
		labels[key] = label
	}

	return fileSchema{
		Labels: labels,
		Logs:   logsSchema{Dir: filepath.Join(homeDir, configDir, "logs")},
		Serial: serialSchema{
			ReconnectAttempts: defaultReconnectAttempts,
			ReconnectBackoff:  defaultReconnectBackoff.String(),
		},
	}
}

// builtinLabels seeds a generated config file with the stock keypad
// layout so every configurable key is visible for editing.
var builtinLabels = map[string]string{
	"2":  "General",
	"3":  "Meetings",
	"4":  "Project 1",
	"5":  "Project 2",
	"6":  "Project 3",
	"7":  "Support",
	"12": "Project 4",
	"13": "Project 5",
	"14": "Project 6",
	"15": "Project 7",
	"16": "Project 8",
}

// DefaultPath is where `config init` writes and Load looks first.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, configDir, configName+"."+configType), nil
}

// WriteDefault writes a fully populated config file at path. It
// refuses to overwrite unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}

	data, err := toml.Marshal(defaultSchema(homeDir))
	if err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), configDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, configFileMode); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}
