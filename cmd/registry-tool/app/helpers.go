package app

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/subsquid-labs/registry-tools/internal/config"
)

// loadConfig builds the effective configuration for a command: config file
// (if any), environment, then flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	var opts []config.Option
	if configPath != "" {
		opts = append(opts, config.WithConfigPath(configPath))
	}
	cfg, err := config.LoadConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if dir, err := cmd.Flags().GetString("registry-dir"); err == nil && dir != "" {
		cfg.ArchivesDir = dir
	}
	if file, err := cmd.Flags().GetString("metadata-file"); err == nil && file != "" {
		cfg.MetadataFile = file
	}
	return cfg, nil
}

// styledOutput reports whether w is a terminal, so piped or test output
// stays free of escape sequences.
func styledOutput(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
