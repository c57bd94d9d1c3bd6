// Package main provides the resume_share CLI: share-link encoding, decoding, local resume
// records and the local viewer.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/resume-share/internal/config"
	"github.com/jonathan/resume-share/internal/logging"
	"github.com/jonathan/resume-share/internal/store"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	storeFlag    string
	logLevelFlag string
	appConfig    config.Config
	logger       = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:               "resume_share",
	Short:             "Share resumes as self-contained links",
	Long:              "resume_share packs a resume document into a compact URL-safe link, resolves such links back into documents, and keeps local resume records.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadAppConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Local store: memory, sqlite:<path>, <path>.db or <path>.json")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")
}

// loadAppConfig merges the config file, environment and flags, then builds the CLI logger.
func loadAppConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if storeFlag != "" {
		cfg.Store = storeFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	appConfig = cfg
	logger = logging.NewConsole(cmd.ErrOrStderr(), level)
	return nil
}

// openService opens the configured store. The returned func closes it.
func openService(ctx context.Context) (*store.Service, func(), error) {
	s, err := store.Open(ctx, appConfig.Store, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store %s: %w", appConfig.Store, err)
	}
	closeFn := func() {
		if err := s.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close store")
		}
	}
	return store.NewService(s, logger), closeFn, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
