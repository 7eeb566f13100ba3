package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWritesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "currencybank", "Config.yml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("missing file must yield defaults, got %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config file should have been written: %v", err)
	}

	// A second load reads the file back unchanged.
	again, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again != cfg {
		t.Fatalf("roundtrip mismatch: %+v vs %+v", again, cfg)
	}
}

func TestLoadParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Config.yml")
	body := `storage_type: postgres
postgres_dsn: postgres://bank:secret@db:5432/currencybank
log_dir: /var/log/currencybank
currency:
  name: credit
  plural: credits
  short: cr
  use_short: true
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StorageType != "postgres" || cfg.PostgresDSN != "postgres://bank:secret@db:5432/currencybank" {
		t.Fatalf("storage fields wrong: %+v", cfg)
	}
	if got := cfg.Formatter().Money(5); got != "cr5" {
		t.Fatalf("formatter from config: Money(5) = %q, want cr5", got)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Config.yml")
	t.Setenv("CURRENCYBANK_STORAGE_TYPE", "postgres")
	t.Setenv("CURRENCYBANK_POSTGRES_DSN", "postgres://env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StorageType != "postgres" || cfg.PostgresDSN != "postgres://env" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}
