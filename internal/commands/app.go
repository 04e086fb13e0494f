package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/statementhub/statementhub/internal/accounts"
	"github.com/statementhub/statementhub/internal/config"
	"github.com/statementhub/statementhub/internal/logging"
	"github.com/statementhub/statementhub/internal/patterns"
	"github.com/statementhub/statementhub/internal/review"
)

// app bundles the loaded configuration and data stores a command
// operates on.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	dataDir string

	patterns *patterns.Store
	jobs     *review.InMemoryStore
	review   *review.Service
	chart    *accounts.Service
}

// loadApp reads the config file and restores pattern, job, and chart
// state from the data directory.
func loadApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log := logging.New()
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(filepath.Dir(configPath), dataDir)
	}

	pats := patterns.NewStore(log)
	if err := pats.Load(dataDir); err != nil {
		return nil, fmt.Errorf("loading patterns: %w", err)
	}

	jobs := review.NewInMemoryStore()
	if err := jobs.Load(dataDir); err != nil {
		return nil, fmt.Errorf("loading review jobs: %w", err)
	}

	chart, err := accounts.Load(dataDir)
	if err != nil {
		return nil, fmt.Errorf("loading chart of accounts: %w", err)
	}

	return &app{
		cfg:      cfg,
		log:      log,
		dataDir:  dataDir,
		patterns: pats,
		jobs:     jobs,
		review:   review.NewService(jobs, pats, log),
		chart:    chart,
	}, nil
}

// flush persists patterns and review jobs back to the data directory.
func (a *app) flush() error {
	if err := a.patterns.Save(a.dataDir); err != nil {
		return fmt.Errorf("saving patterns: %w", err)
	}
	if err := a.jobs.Flush(a.dataDir); err != nil {
		return fmt.Errorf("saving review jobs: %w", err)
	}
	return nil
}
