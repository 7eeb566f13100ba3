// Package cmd provides the cbank admin CLI. It is a reference caller of the
// ledger library: the host application's chat front end and script bridge
// invoke the same operations.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sbplanet/currencybank/internal/banklog"
	"github.com/sbplanet/currencybank/internal/config"
	"github.com/sbplanet/currencybank/internal/service/ledger"
	"github.com/sbplanet/currencybank/internal/storage"
	"github.com/sbplanet/currencybank/internal/storage/postgres"
	"github.com/sbplanet/currencybank/internal/storage/sqlite"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cbank",
	Short: "Administer CurrencyBank accounts",
	Long: `cbank administers the CurrencyBank ledger: create and delete bank
accounts, inspect balances, and move currency between accounts.

Every balance-affecting command is recorded in the append-only bank log.

Example:
  cbank create Alice 100
  cbank give Alice 50 "welcome bonus"
  cbank pay Alice Bob 25`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
		slog.SetDefault(logger)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// .env is optional; missing files are fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config",
		filepath.Join("currencybank", "Config.yml"), "config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// app bundles the wired ledger, audit log and store for one CLI invocation.
type app struct {
	cfg   config.Config
	svc   *ledger.Service
	audit *banklog.Log
	store storage.Store
}

// openApp loads config, opens the configured backend, hydrates the ledger
// mirror and opens a fresh audit log file.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	var store storage.Store
	switch cfg.StorageType {
	case "sqlite":
		store, err = sqlite.Open(cfg.SQLitePath)
	case "postgres":
		store, err = postgres.Open(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("invalid storage type %q", cfg.StorageType)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StorageType, err)
	}

	svc := ledger.New(store, slog.Default())
	if err := svc.Reload(ctx); err != nil {
		store.Close()
		return nil, err
	}

	audit, err := banklog.Open(filepath.Join(cfg.LogDir, banklog.LogName(time.Now())), cfg.Formatter())
	if err != nil {
		store.Close()
		return nil, err
	}
	return &app{cfg: cfg, svc: svc, audit: audit, store: store}, nil
}

func (a *app) close() {
	if err := a.audit.Close(); err != nil {
		slog.Warn("closing bank log", "err", err)
	}
	if err := a.store.Close(); err != nil {
		slog.Warn("closing store", "err", err)
	}
}

// auditErr reports an audit log fault without failing the ledger mutation it
// describes.
func auditErr(err error) {
	if err != nil {
		slog.Warn("bank log write failed", "err", err)
	}
}
