// Package variant holds the per-chain-family policy for building archive
// entries: which fields apply, which data-source capabilities each family
// gets by default, and the coercion rules for operator input.
package variant

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/subsquid-labs/registry-tools/internal/archive"
)

// Variant is a chain-family tag.
type Variant string

// Supported chain families.
const (
	EVM       Variant = "evm"
	Substrate Variant = "substrate"
	Solana    Variant = "solana"
	Tron      Variant = "tron"
	Fuel      Variant = "fuel"
	Starknet  Variant = "starknet"
)

// All lists the supported variants in CLI help order.
var All = []Variant{EVM, Substrate, Solana, Tron, Fuel, Starknet}

// ErrUnsupportedVariant is returned for an unknown chain-family tag.
var ErrUnsupportedVariant = errors.New("archive variant is not supported")

// Parse validates a chain-family tag.
func Parse(s string) (Variant, error) {
	for _, v := range All {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedVariant, s)
}

// Provider constants shared by every entry the tool builds.
const (
	ProviderName    = "subsquid"
	ProviderRelease = "ArrowSquid"

	dataSourceURLTemplate = "https://v2.archive.subsquid.io/network/%s"
	logoCDNPrefix         = "https://cdn.subsquid.io/img/networks/"

	// DefaultSupportTier is the support tier used when the operator keeps
	// the default.
	DefaultSupportTier = 2
)

// defaultData is the per-family default capability list. EVM's optional
// capabilities (logs, traces, stateDiffs) are appended by Build based on the
// operator's confirmations.
var defaultData = map[Variant][]string{
	EVM:       {"blocks", "tx"},
	Substrate: {"blocks", "calls", "events", "extrinsics"},
	Solana:    {"blocks", "logs", "tx", "instructions", "balances", "token_balances", "rewards"},
	Tron:      {"blocks", "tx", "logs", "internal_tx"},
	Fuel:      {"blocks", "tx", "receipts", "inputs", "outputs"},
	Starknet:  {"blocks", "tx", "events"},
}

// DefaultData returns a copy of the variant's default capability tag list.
func (v Variant) DefaultData() []string {
	tags, ok := defaultData[v]
	if !ok {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

// DataSourceURL derives a provider's URL from the entry's data-source
// identifier.
func DataSourceURL(id string) string {
	return fmt.Sprintf(dataSourceURLTemplate, id)
}

// ParseNullableInt applies the canonical coercion rule for optional numeric
// prompts: the literal token "null" or any non-decimal input yields null,
// a decimal string yields its value.
func ParseNullableInt(raw string) archive.OptionalInt {
	if raw == "null" || !isDecimal(raw) {
		return archive.NullInt()
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return archive.NullInt()
	}
	return archive.Int(value)
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NormalizeLogoURL applies the logo URL rule: "null" means no logo, a bare
// name refers to the CDN's /img/networks directory, anything with an
// explicit scheme passes through unchanged.
func NormalizeLogoURL(raw string) archive.OptionalString {
	if raw == "null" {
		return archive.NullString()
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return archive.String(logoCDNPrefix + raw)
	}
	return archive.String(raw)
}

// Input carries the operator-supplied field values for one entry. Raw string
// fields are coerced here so every variant goes through the same rules.
type Input struct {
	ID          string
	Network     string
	ChainName   string
	IsTestnet   bool
	SupportTier int

	// EVM
	ChainIDRaw     string
	LogoURLRaw     string
	SupportsLogs   bool
	SupportsTraces bool
	SupportsDiffs  bool

	// Substrate
	SS58PrefixRaw string
	GenesisHash   string

	// Solana
	FirstBlockRaw string
}

// NewEntry builds a well-formed archive entry for the variant from the
// operator's input. An unknown variant is rejected before anything is built.
func NewEntry(v Variant, in Input) (archive.Entry, error) {
	if _, err := Parse(string(v)); err != nil {
		return archive.Entry{}, err
	}

	tier := in.SupportTier
	if tier == 0 {
		tier = DefaultSupportTier
	}

	entry := archive.Entry{
		ID:        in.ID,
		Network:   in.Network,
		ChainName: in.ChainName,
		IsTestnet: in.IsTestnet,
	}

	tags := v.DefaultData()
	switch v {
	case EVM:
		if in.SupportsLogs {
			tags = append(tags, "logs")
		}
		if in.SupportsTraces {
			tags = append(tags, "traces")
		}
		if in.SupportsDiffs {
			tags = append(tags, "stateDiffs")
		}
		entry.ChainID = ParseNullableInt(in.ChainIDRaw)
		entry.LogoURL = NormalizeLogoURL(in.LogoURLRaw)
	case Substrate:
		entry.ChainSS58Prefix = ParseNullableInt(in.SS58PrefixRaw)
		entry.GenesisHash = archive.String(in.GenesisHash)
	}

	data := make([]archive.Capability, 0, len(tags))
	for _, tag := range tags {
		data = append(data, archive.Capability{Name: tag})
	}

	if v == Solana {
		if first := ParseNullableInt(in.FirstBlockRaw); first.Valid {
			for i := range data {
				data[i].Ranges = []archive.BlockRange{{From: first.Value}}
			}
		}
	}

	entry.Providers = []archive.Provider{{
		Data:          data,
		DataSourceURL: DataSourceURL(in.ID),
		Provider:      ProviderName,
		Release:       ProviderRelease,
		SupportTier:   tier,
	}}
	return entry, nil
}
