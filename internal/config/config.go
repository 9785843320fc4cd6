package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields coolview needs to reach and mirror the daemon.
type Config struct {
	DaemonAddress   string
	PollInterval    time.Duration
	DriftThreshold  time.Duration
	HistoryCapacity int
}

const (
	defaultConfigPath     = "~/.config/coolview/config.toml"
	defaultDaemonAddress  = "127.0.0.1:11987"
	defaultPollSeconds    = 1
	defaultDriftSeconds   = 2
	defaultHistoryEntries = 1860
)

// Load locates and parses the coolview config, falling back to defaults
// when the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DaemonAddress    string `toml:"daemon_address"`
		PollSeconds      int    `toml:"poll_seconds"`
		DriftThresholdMS int    `toml:"drift_threshold_ms"`
		HistoryCapacity  int    `toml:"history_capacity"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if addr := strings.TrimSpace(raw.DaemonAddress); addr != "" {
		cfg.DaemonAddress = addr
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}
	if raw.DriftThresholdMS > 0 {
		cfg.DriftThreshold = time.Duration(raw.DriftThresholdMS) * time.Millisecond
	}
	if raw.HistoryCapacity > 0 {
		cfg.HistoryCapacity = raw.HistoryCapacity
	}

	return cfg, nil
}

func defaults() Config {
	return Config{
		DaemonAddress:   defaultDaemonAddress,
		PollInterval:    defaultPollSeconds * time.Second,
		DriftThreshold:  defaultDriftSeconds * time.Second,
		HistoryCapacity: defaultHistoryEntries,
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
