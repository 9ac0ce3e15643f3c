// Package app provides the commands of the registry maintenance CLI.
package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/subsquid-labs/registry-tools/internal/logger"
	"github.com/subsquid-labs/registry-tools/internal/versions"
)

var rootCmd = &cobra.Command{
	Use:               "registry-tool",
	DisableAutoGenTag: true,
	Short:             "Maintain the archive and sqd-network registry files",
	Long: `registry-tool maintains the JSON archive registries (one file per chain
family) and the sqd-network dataset metadata YAML file. Entries are added
interactively and the files are kept sorted by their canonical key.`,
	PersistentPreRun: func(*cobra.Command, []string) {
		logger.Initialize(viper.GetBool("debug"))
	},
	Run: func(cmd *cobra.Command, _ []string) {
		// If no subcommand is provided, print help
		if err := cmd.Help(); err != nil {
			logger.Errorf("Error displaying help: %v", err)
		}
	},
}

// NewRootCmd creates the root command of the registry tool.
func NewRootCmd() *cobra.Command {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to configuration file (YAML format)")
	rootCmd.PersistentFlags().String("registry-dir", "", "Directory holding the <variant>.json archive registries")
	rootCmd.PersistentFlags().String("metadata-file", "", "Path to the sqd-network metadata YAML file")
	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		logger.Errorf("Error binding debug flag: %v", err)
	}

	rootCmd.AddCommand(archivesCmd)
	rootCmd.AddCommand(metadataCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		info := versions.GetVersionInfo()
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}

		if format == "json" {
			output, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to format version info as JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(output))
			return nil
		}
		logger.Infof("registry-tool version %s (commit %s, built %s, %s, %s)",
			info.Version, info.Commit, info.BuildDate, info.GoVersion, info.Platform)
		return nil
	},
}

func init() {
	versionCmd.Flags().String("format", "", "Output format (json)")
}
