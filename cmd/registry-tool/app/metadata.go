package app

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/subsquid-labs/registry-tools/internal/logger"
	"github.com/subsquid-labs/registry-tools/internal/metadata"
	"github.com/subsquid-labs/registry-tools/internal/prompt"
	"github.com/subsquid-labs/registry-tools/internal/render"
	"github.com/subsquid-labs/registry-tools/internal/variant"
)

var metadataCmd = &cobra.Command{
	Use:   "network-metadata",
	Short: "Maintain the sqd-network dataset metadata file",
	Long: `Maintain the sqd-network dataset metadata YAML file. Use with the
'add' or 'sort' subcommands.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Usage()
	},
}

var metadataAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new dataset entry to the metadata file",
	Args:  cobra.NoArgs,
	RunE:  runMetadataAdd,
}

var metadataSortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Rewrite the metadata file with datasets sorted by kind, then key",
	Args:  cobra.NoArgs,
	RunE:  runMetadataSort,
}

func init() {
	metadataAddCmd.Flags().BoolP("yes", "y", false, "Skip the final confirmation prompt")

	metadataCmd.AddCommand(metadataAddCmd)
	metadataCmd.AddCommand(metadataSortCmd)
}

func runMetadataAdd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return fmt.Errorf("failed to get yes flag: %w", err)
	}

	doc, err := metadata.Load(cfg.MetadataFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	styled := styledOutput(out)
	p := prompt.New(cmd.InOrStdin(), out, styled)

	key, err := p.Ask("Dataset key (datasets.<key>)", "")
	if err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("dataset key must not be empty")
	}
	if doc.Has(key) {
		return fmt.Errorf("%w: %q", metadata.ErrDuplicateKey, key)
	}

	kind, err := p.Ask("kind", "evm")
	if err != nil {
		return err
	}
	displayName, err := p.Ask("display_name", "")
	if err != nil {
		return err
	}
	if displayName == "" {
		return fmt.Errorf("display_name must not be empty")
	}
	logoURL, err := p.Ask("logo_url", "null")
	if err != nil {
		return err
	}
	if logoURL == "null" {
		logoURL = ""
	}
	typ, err := p.Ask("type", metadata.TypeMainnet, metadata.TypeChoices...)
	if err != nil {
		return err
	}
	chainIDRaw, err := p.Ask("chain_id", "null")
	if err != nil {
		return err
	}
	var chainID *int64
	if parsed := variant.ParseNullableInt(chainIDRaw); parsed.Valid {
		chainID = &parsed.Value
	}

	entry := metadata.NewEntry(kind, displayName, typ, logoURL, chainID)
	serialized, err := marshalEntryYAML(entry)
	if err != nil {
		return fmt.Errorf("failed to serialize entry: %w", err)
	}
	render.Preview(out, fmt.Sprintf("Following entry will be added as datasets.%s:", key), string(serialized), styled)

	if !yes {
		ok, err := p.Confirm("Ok?", true)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Abort!")
			return nil
		}
	}

	if err := doc.Add(key, entry); err != nil {
		return err
	}
	if err := doc.Save(cfg.MetadataFile); err != nil {
		return err
	}
	logger.Debugf("Added dataset %q to %s", key, cfg.MetadataFile)
	fmt.Fprintln(out, "Done!")
	return nil
}

// marshalEntryYAML serializes an entry with the same indentation the saved
// file uses, so the preview matches what lands on disk.
func marshalEntryYAML(entry metadata.Entry) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(entry); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func runMetadataSort(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	doc, err := metadata.Load(cfg.MetadataFile)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	doc.Sort()
	if err := doc.Save(cfg.MetadataFile); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Done!")
	return nil
}
