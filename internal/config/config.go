package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// CurrentVersion is written into new workspace configs.
const CurrentVersion = "1"

// Config represents the qbank configuration.
// Values come from .qbank/config.json and are overridden by QBANK_* variables.
type Config struct {
	Version  string `json:"version"`
	BankFile string `json:"bank_file,omitempty" env:"QBANK_FILE"`      // working CSV file
	LogLevel string `json:"log_level,omitempty" env:"QBANK_LOG_LEVEL"` // zerolog level name
	NoColor  bool   `json:"no_color,omitempty" env:"QBANK_NO_COLOR"`
	Seed     uint64 `json:"seed,omitempty" env:"QBANK_SEED"` // 0 = random seed
}

// Load builds the effective configuration for dir: an optional .env file,
// then .qbank/config.json if present, then the environment, then defaults.
func Load(dir string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg, err := LoadConfig(dir)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = &Config{Version: CurrentVersion}
	} else if err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.BankFile == "" {
		path, err := DefaultBankPath()
		if err != nil {
			return nil, err
		}
		cfg.BankFile = path
	} else if !filepath.IsAbs(cfg.BankFile) {
		cfg.BankFile = filepath.Join(dir, cfg.BankFile)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}

	return cfg, nil
}

// LoadConfig reads .qbank/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".qbank", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	qbankDir := filepath.Join(dir, ".qbank")
	if err := os.MkdirAll(qbankDir, 0755); err != nil {
		return fmt.Errorf("failed to create .qbank dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(qbankDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// EnsureBankDir creates the directory holding the working bank file.
// Saving never creates directories, so this runs once at startup.
func (c *Config) EnsureBankDir() error {
	dir := filepath.Dir(c.BankFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create bank directory: %w", err)
	}
	return nil
}

// DefaultBankPath returns ~/.qbank/bank.csv.
func DefaultBankPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".qbank", "bank.csv"), nil
}
