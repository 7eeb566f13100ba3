// Package config loads the module configuration from a YAML file with
// environment overrides. When the file is absent a default one is written so
// operators have a template to edit, matching how the host application
// bootstraps its own config files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sbplanet/currencybank/internal/bank"
)

// Currency configures user-facing amount formatting.
type Currency struct {
	Name     string `yaml:"name"`
	Plural   string `yaml:"plural"`
	Short    string `yaml:"short"`
	UseShort bool   `yaml:"use_short"`
}

// Config is the full module configuration.
type Config struct {
	// StorageType selects the backend: "sqlite" or "postgres".
	StorageType string `yaml:"storage_type"`
	// SQLitePath is the database file used by the sqlite backend.
	SQLitePath string `yaml:"sqlite_path"`
	// PostgresDSN is the connection string used by the postgres backend.
	PostgresDSN string `yaml:"postgres_dsn"`
	// LogDir holds the per-process audit log files.
	LogDir   string   `yaml:"log_dir"`
	Currency Currency `yaml:"currency"`
}

// Default returns the configuration used when no file exists yet.
func Default() Config {
	return Config{
		StorageType: "sqlite",
		SQLitePath:  filepath.Join("currencybank", "Database.sqlite"),
		LogDir:      filepath.Join("currencybank", "Logs"),
		Currency: Currency{
			Name:   "coin",
			Plural: "coins",
			Short:  "c",
		},
	}
}

// Load reads the config file, writing a default one first if it is missing.
// CURRENCYBANK_STORAGE_TYPE and CURRENCYBANK_POSTGRES_DSN override the file.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if werr := write(path, cfg); werr != nil {
			return Config{}, werr
		}
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if v := os.Getenv("CURRENCYBANK_STORAGE_TYPE"); v != "" {
		cfg.StorageType = v
	}
	if v := os.Getenv("CURRENCYBANK_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Formatter builds the currency formatter described by the config.
func (c Config) Formatter() bank.Formatter {
	return bank.Formatter{
		Name:     c.Currency.Name,
		Plural:   c.Currency.Plural,
		Short:    c.Currency.Short,
		UseShort: c.Currency.UseShort,
	}
}
