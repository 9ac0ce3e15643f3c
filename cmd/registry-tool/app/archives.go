package app

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/subsquid-labs/registry-tools/internal/archive"
	"github.com/subsquid-labs/registry-tools/internal/logger"
	"github.com/subsquid-labs/registry-tools/internal/prompt"
	"github.com/subsquid-labs/registry-tools/internal/render"
	"github.com/subsquid-labs/registry-tools/internal/variant"
)

var archivesCmd = &cobra.Command{
	Use:   "archives",
	Short: "Maintain the archive registry JSON files",
	Long: `Maintain the per-chain-family archive registry files. Use with the
'add', 'list' or 'sort' subcommands. The variant argument selects the
chain family: evm, substrate, solana, tron, fuel or starknet.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Usage()
	},
}

var archivesAddCmd = &cobra.Command{
	Use:   "add <variant>",
	Short: "Add a new archive entry to the registry",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchivesAdd,
}

var archivesListCmd = &cobra.Command{
	Use:   "list <variant>",
	Short: "List archive entries, optionally filtered by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchivesList,
}

var archivesSortCmd = &cobra.Command{
	Use:   "sort <variant>",
	Short: "Rewrite the registry file with entries sorted by network",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchivesSort,
}

func init() {
	archivesAddCmd.Flags().BoolP("yes", "y", false, "Skip the final confirmation prompt")
	archivesListCmd.Flags().StringP("search", "s", "", "Search by network or chain name")

	archivesCmd.AddCommand(archivesAddCmd)
	archivesCmd.AddCommand(archivesListCmd)
	archivesCmd.AddCommand(archivesSortCmd)
}

var listTitles = map[variant.Variant]string{
	variant.EVM:       "EVM Archives",
	variant.Substrate: "Substrate Archives",
	variant.Solana:    "Solana Archives",
	variant.Tron:      "Tron Archives",
	variant.Fuel:      "Fuel Archives",
	variant.Starknet:  "Starknet Archives",
}

func runArchivesAdd(cmd *cobra.Command, args []string) error {
	v, err := variant.Parse(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return fmt.Errorf("failed to get yes flag: %w", err)
	}

	out := cmd.OutOrStdout()
	styled := styledOutput(out)
	p := prompt.New(cmd.InOrStdin(), out, styled)

	in, err := collectArchiveInput(v, p)
	if err != nil {
		return err
	}
	entry, err := variant.NewEntry(v, in)
	if err != nil {
		return err
	}

	serialized, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize entry: %w", err)
	}
	path := cfg.ArchivePath(string(v))
	render.Preview(out, fmt.Sprintf("Following entry will be added to '%s':", path), string(serialized), styled)

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

	reg, err := archive.Load(path)
	if err != nil {
		return err
	}
	if err := reg.Append(entry); err != nil {
		return err
	}
	reg.Sort()
	if err := reg.Save(path); err != nil {
		return err
	}
	logger.Debugf("Added %q to %s", entry.Network, path)
	fmt.Fprintln(out, "Done!")
	return nil
}

// collectArchiveInput runs the interactive prompts: the common fields first,
// then the variant-specific ones.
func collectArchiveInput(v variant.Variant, p prompt.Prompter) (variant.Input, error) {
	var in variant.Input
	var err error

	if in.ChainName, err = p.Ask("Human readable name", ""); err != nil {
		return in, err
	}
	if in.ID, err = p.Ask("Data source identifier", ""); err != nil {
		return in, err
	}
	if in.Network, err = p.Ask("Registry name", in.ID); err != nil {
		return in, err
	}
	if in.IsTestnet, err = p.Confirm("Is chain testnet?", false); err != nil {
		return in, err
	}
	tier, err := p.Ask("Support tier", "2", "1", "2", "3")
	if err != nil {
		return in, err
	}
	if in.SupportTier, err = strconv.Atoi(tier); err != nil {
		return in, fmt.Errorf("failed to parse support tier: %w", err)
	}

	switch v {
	case variant.EVM:
		if in.ChainIDRaw, err = p.Ask("Chain ID", "null"); err != nil {
			return in, err
		}
		if in.SupportsLogs, err = p.Confirm("Datasource supports logs?", true); err != nil {
			return in, err
		}
		if in.SupportsTraces, err = p.Confirm("Datasource supports traces?", false); err != nil {
			return in, err
		}
		if in.SupportsDiffs, err = p.Confirm("Datasource supports statediffs?", false); err != nil {
			return in, err
		}
		if in.LogoURLRaw, err = p.Ask("Logo url (only name if in /img/networks)", "null"); err != nil {
			return in, err
		}
	case variant.Substrate:
		if in.SS58PrefixRaw, err = p.Ask("Chain SS58 Prefix", "null"); err != nil {
			return in, err
		}
		if in.GenesisHash, err = p.Ask("Genesis hash", ""); err != nil {
			return in, err
		}
	case variant.Solana:
		if in.FirstBlockRaw, err = p.Ask("First supported block", "null"); err != nil {
			return in, err
		}
	}
	return in, nil
}

func runArchivesList(cmd *cobra.Command, args []string) error {
	v, err := variant.Parse(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	search, err := cmd.Flags().GetString("search")
	if err != nil {
		return fmt.Errorf("failed to get search flag: %w", err)
	}

	reg, err := archive.Load(cfg.ArchivePath(string(v)))
	if err != nil {
		return err
	}
	entries := archive.Filter(reg.Archives, search)

	out := cmd.OutOrStdout()
	return render.Table(out, listTitles[v], archive.Columns(string(v)), archive.Rows(entries, string(v)), styledOutput(out))
}

func runArchivesSort(cmd *cobra.Command, args []string) error {
	v, err := variant.Parse(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := cfg.ArchivePath(string(v))
	reg, err := archive.Load(path)
	if err != nil {
		return err
	}
	reg.Sort()
	if err := reg.Save(path); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Done!")
	return nil
}
