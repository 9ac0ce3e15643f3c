// Package config provides configuration loading for the registry tools.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variable overrides
// (SQD_REGISTRY_ARCHIVES_DIR, SQD_REGISTRY_METADATA_FILE).
const EnvPrefix = "SQD_REGISTRY"

// Defaults, relative to the repository the operator runs the tool in. The
// paths used to be derived from the tool's own source location; they are now
// explicit configuration.
const (
	DefaultArchivesDir  = "src/archives"
	DefaultMetadataFile = "src/sqd-network/mainnet/metadata.tentative.yml"
)

// Config holds the registry file locations.
type Config struct {
	// ArchivesDir is the directory holding one <variant>.json per chain family.
	ArchivesDir string `yaml:"archivesDir"`
	// MetadataFile is the sqd-network dataset metadata YAML file.
	MetadataFile string `yaml:"metadataFile"`
}

// ArchivePath returns the registry file path for a chain-family variant.
func (c *Config) ArchivePath(variant string) string {
	return filepath.Join(c.ArchivesDir, variant+".json")
}

// Option defines the interface for configuration options.
type Option func(*loaderConfig) error

type loaderConfig struct {
	path         string
	pathExplicit bool
}

// WithConfigPath loads configuration from a YAML file. The file must exist.
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}
		cfg.path = filepath.Clean(path)
		cfg.pathExplicit = true
		return nil
	}
}

// DefaultConfigPath is the well-known per-user config location.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "registry-tool", "config.yaml")
}

// LoadConfig builds the configuration: built-in defaults, then the config
// file (explicit path, or the XDG default if present), then environment
// overrides.
func LoadConfig(opts ...Option) (*Config, error) {
	lc := &loaderConfig{path: DefaultConfigPath()}
	for _, opt := range opts {
		if err := opt(lc); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		ArchivesDir:  DefaultArchivesDir,
		MetadataFile: DefaultMetadataFile,
	}

	data, err := os.ReadFile(lc.path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", lc.path, err)
		}
	case os.IsNotExist(err) && !lc.pathExplicit:
		// No per-user config file; defaults apply.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", lc.path, err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if dir := v.GetString("ARCHIVES_DIR"); dir != "" {
		cfg.ArchivesDir = dir
	}
	if file := v.GetString("METADATA_FILE"); file != "" {
		cfg.MetadataFile = file
	}

	return cfg, nil
}
