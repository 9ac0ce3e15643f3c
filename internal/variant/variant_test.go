package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subsquid-labs/registry-tools/internal/archive"
)

func TestParse(t *testing.T) {
	t.Parallel()

	for _, v := range All {
		parsed, err := Parse(string(v))
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}

	_, err := Parse("cosmos")
	require.ErrorIs(t, err, ErrUnsupportedVariant)
}

func TestParseNullableInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input     string
		wantValid bool
		wantValue int64
	}{
		{input: "null", wantValid: false},
		{input: "", wantValid: false},
		{input: "abc", wantValid: false},
		{input: "42", wantValid: true, wantValue: 42},
		{input: "-1", wantValid: false},
		{input: "4 2", wantValid: false},
		{input: "0", wantValid: true, wantValue: 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got := ParseNullableInt(tt.input)
			assert.True(t, got.Set)
			assert.Equal(t, tt.wantValid, got.Valid)
			if tt.wantValid {
				assert.Equal(t, tt.wantValue, got.Value)
			}
		})
	}
}

func TestNormalizeLogoURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  archive.OptionalString
	}{
		{
			name:  "null_token",
			input: "null",
			want:  archive.NullString(),
		},
		{
			name:  "bare_name_gets_cdn_prefix",
			input: "moonbeam.png",
			want:  archive.String("https://cdn.subsquid.io/img/networks/moonbeam.png"),
		},
		{
			name:  "https_url_passes_through",
			input: "https://example.com/logo.svg",
			want:  archive.String("https://example.com/logo.svg"),
		},
		{
			name:  "http_url_passes_through",
			input: "http://example.com/logo.svg",
			want:  archive.String("http://example.com/logo.svg"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeLogoURL(tt.input))
		})
	}
}

func TestNewEntryFuel(t *testing.T) {
	t.Parallel()

	entry, err := NewEntry(Fuel, Input{
		ID:        "fuel-mainnet",
		Network:   "fuel-mainnet",
		ChainName: "Fuel",
	})
	require.NoError(t, err)

	require.Len(t, entry.Providers, 1)
	p := entry.Providers[0]
	assert.Equal(t, "https://v2.archive.subsquid.io/network/fuel-mainnet", p.DataSourceURL)
	assert.Equal(t, ProviderName, p.Provider)
	assert.Equal(t, ProviderRelease, p.Release)
	assert.Equal(t, DefaultSupportTier, p.SupportTier)

	var tags []string
	for _, c := range p.Data {
		assert.Empty(t, c.Ranges)
		tags = append(tags, c.Name)
	}
	assert.Equal(t, []string{"blocks", "tx", "receipts", "inputs", "outputs"}, tags)

	assert.False(t, entry.ChainID.Set)
	assert.False(t, entry.ChainSS58Prefix.Set)
	assert.False(t, entry.GenesisHash.Set)
	assert.False(t, entry.LogoURL.Set)
}

func TestNewEntryDefaultData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		variant Variant
		want    []string
	}{
		{Substrate, []string{"blocks", "calls", "events", "extrinsics"}},
		{Solana, []string{"blocks", "logs", "tx", "instructions", "balances", "token_balances", "rewards"}},
		{Tron, []string{"blocks", "tx", "logs", "internal_tx"}},
		{Starknet, []string{"blocks", "tx", "events"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.variant), func(t *testing.T) {
			t.Parallel()
			entry, err := NewEntry(tt.variant, Input{ID: "x", Network: "x", ChainName: "X"})
			require.NoError(t, err)
			require.Len(t, entry.Providers, 1)
			var tags []string
			for _, c := range entry.Providers[0].Data {
				tags = append(tags, c.Name)
			}
			assert.Equal(t, tt.want, tags)
		})
	}
}

func TestNewEntryEVM(t *testing.T) {
	t.Parallel()

	entry, err := NewEntry(EVM, Input{
		ID:             "ethereum-mainnet",
		Network:        "ethereum-mainnet",
		ChainName:      "Ethereum",
		ChainIDRaw:     "1",
		LogoURLRaw:     "null",
		SupportsLogs:   true,
		SupportsTraces: true,
		SupportTier:    1,
	})
	require.NoError(t, err)

	require.True(t, entry.ChainID.Valid)
	assert.Equal(t, int64(1), entry.ChainID.Value)
	require.True(t, entry.LogoURL.Set)
	assert.False(t, entry.LogoURL.Valid)

	require.Len(t, entry.Providers, 1)
	assert.Equal(t, 1, entry.Providers[0].SupportTier)
	var tags []string
	for _, c := range entry.Providers[0].Data {
		tags = append(tags, c.Name)
	}
	assert.Equal(t, []string{"blocks", "tx", "logs", "traces"}, tags)
}

func TestNewEntryEVMStateDiffs(t *testing.T) {
	t.Parallel()

	entry, err := NewEntry(EVM, Input{
		ID:            "base-mainnet",
		Network:       "base-mainnet",
		ChainName:     "Base",
		ChainIDRaw:    "abc",
		LogoURLRaw:    "base",
		SupportsDiffs: true,
	})
	require.NoError(t, err)

	require.True(t, entry.ChainID.Set)
	assert.False(t, entry.ChainID.Valid, "non-decimal chain ID coerces to null")
	require.True(t, entry.LogoURL.Valid)
	assert.Equal(t, "https://cdn.subsquid.io/img/networks/base", entry.LogoURL.Value)

	var tags []string
	for _, c := range entry.Providers[0].Data {
		tags = append(tags, c.Name)
	}
	assert.Equal(t, []string{"blocks", "tx", "stateDiffs"}, tags)
}

func TestNewEntrySubstrate(t *testing.T) {
	t.Parallel()

	entry, err := NewEntry(Substrate, Input{
		ID:            "polkadot",
		Network:       "polkadot",
		ChainName:     "Polkadot",
		SS58PrefixRaw: "0",
		GenesisHash:   "0x91b1",
	})
	require.NoError(t, err)

	require.True(t, entry.ChainSS58Prefix.Valid)
	assert.Equal(t, int64(0), entry.ChainSS58Prefix.Value)
	require.True(t, entry.GenesisHash.Valid)
	assert.Equal(t, "0x91b1", entry.GenesisHash.Value)
	assert.False(t, entry.ChainID.Set)
	assert.False(t, entry.LogoURL.Set)
}

func TestNewEntrySolanaRanges(t *testing.T) {
	t.Parallel()

	t.Run("with_first_block", func(t *testing.T) {
		t.Parallel()
		entry, err := NewEntry(Solana, Input{
			ID:            "solana-mainnet",
			Network:       "solana-mainnet",
			ChainName:     "Solana",
			FirstBlockRaw: "200000000",
		})
		require.NoError(t, err)
		for _, c := range entry.Providers[0].Data {
			require.Len(t, c.Ranges, 1)
			assert.Equal(t, int64(200000000), c.Ranges[0].From)
			assert.Nil(t, c.Ranges[0].To)
		}
	})

	t.Run("without_first_block", func(t *testing.T) {
		t.Parallel()
		entry, err := NewEntry(Solana, Input{
			ID:            "solana-devnet",
			Network:       "solana-devnet",
			ChainName:     "Solana Devnet",
			FirstBlockRaw: "null",
		})
		require.NoError(t, err)
		for _, c := range entry.Providers[0].Data {
			assert.Empty(t, c.Ranges)
		}
	})
}

func TestNewEntryUnsupportedVariant(t *testing.T) {
	t.Parallel()

	_, err := NewEntry("cosmos", Input{ID: "x", Network: "x", ChainName: "X"})
	require.ErrorIs(t, err, ErrUnsupportedVariant)
}
