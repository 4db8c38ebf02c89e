package main

import (
	"github.com/gogotex/docstore/internal/config"
	"github.com/gogotex/docstore/pkg/logger"
	"github.com/spf13/cobra"
)

var logLevel string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "docstore",
		Short:        "In-memory document store with multi-criteria search",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL (debug|info|warn|error)")
	root.AddCommand(newServeCmd(), newTokenCmd(), newSnapshotCmd())
	return root
}

// loadConfig reads the environment and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger.Init(cfg.LogLevel)
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())
	return cfg, nil
}
