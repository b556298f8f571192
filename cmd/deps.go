package cmd

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/bloomquiz/internal/api"
	"github.com/abhisek/bloomquiz/internal/config"
	"github.com/abhisek/bloomquiz/internal/logging"
	"github.com/abhisek/bloomquiz/internal/store"
)

// deps is everything a command needs, built from flags and environment.
type deps struct {
	cfg    *config.Config
	log    zerolog.Logger
	store  *store.Store
	client api.Client

	logFile io.Closer
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Load()
	if u, _ := cmd.Flags().GetString("api"); u != "" {
		cfg.APIURL = u
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then BLOOMQUIZ_DB env var, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openDeps opens the log, the store and the service client. Callers must
// Close the result.
func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	d := &deps{cfg: cfg}

	logPath := cfg.LogFile
	if logPath == "" {
		if logPath, err = logging.DefaultLogPath(); err != nil {
			return nil, fmt.Errorf("resolve log path: %w", err)
		}
	}
	d.log, d.logFile, err = logging.Setup(cfg.LogLevel, cfg.LogFormat, logPath)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	d.store, err = store.Open(dbPath)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	d.client, err = api.New(cfg.APIConfig(), d.store.EventRepo(), d.log)
	if err != nil {
		d.Close()
		return nil, err
	}

	d.log.Debug().
		Str("api", cfg.APIURL).
		Str("db", dbPath).
		Str("command", cmd.Name()).
		Msg("starting")
	return d, nil
}

func (d *deps) Close() {
	if d.store != nil {
		d.store.Close()
	}
	if d.logFile != nil {
		d.logFile.Close()
	}
}
