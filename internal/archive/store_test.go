package archive

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(network string) Entry {
	return Entry{
		ID:        network,
		Network:   network,
		ChainName: network,
		Providers: []Provider{{
			Data:          []Capability{{Name: "blocks"}, {Name: "tx"}},
			DataSourceURL: "https://v2.archive.subsquid.io/network/" + network,
			Provider:      "subsquid",
			Release:       "ArrowSquid",
			SupportTier:   2,
		}},
	}
}

func writeRegistry(t *testing.T, entries ...Entry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "evm.json")
	reg := &Registry{Archives: entries}
	require.NoError(t, reg.Save(path))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		wantErr     string
		wantEntries int
	}{
		{
			name:        "valid_registry",
			content:     `{"archives": [{"id": "a", "network": "a", "chainName": "A", "isTestnet": false, "providers": []}]}`,
			wantEntries: 1,
		},
		{
			name:        "empty_archives",
			content:     `{"archives": []}`,
			wantEntries: 0,
		},
		{
			name:    "missing_archives_key",
			content: `{"entries": []}`,
			wantErr: `expected an "archives" array`,
		},
		{
			name:    "archives_not_an_array",
			content: `{"archives": {"a": 1}}`,
			wantErr: `expected an "archives" array`,
		},
		{
			name:    "root_not_an_object",
			content: `[1, 2]`,
			wantErr: "expected JSON object at the root",
		},
		{
			name:    "not_json",
			content: `datasets:\n`,
			wantErr: "expected JSON object at the root",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "reg.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			reg, err := Load(path)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, reg.Archives, tt.wantEntries)
		})
	}

	t.Run("missing_file", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		require.ErrorContains(t, err, "failed to read registry file")
	})
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	evm := testEntry("ethereum-mainnet")
	evm.ChainID = Int(1)
	evm.LogoURL = NullString()
	path := writeRegistry(t, evm, testEntry("moonbeam"))

	reg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, reg.Save(path))

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, reg.Archives, again.Archives)
}

func TestAppendRejectsDuplicateNetwork(t *testing.T) {
	t.Parallel()

	reg := &Registry{Archives: []Entry{testEntry("moonbeam")}}
	err := reg.Append(testEntry("moonbeam"))
	require.ErrorIs(t, err, ErrDuplicateNetwork)
	assert.Len(t, reg.Archives, 1, "failed append must not mutate the registry")

	require.NoError(t, reg.Append(testEntry("moonriver")))
	assert.Len(t, reg.Archives, 2)
}

func TestSort(t *testing.T) {
	t.Parallel()

	reg := &Registry{Archives: []Entry{
		testEntry("moonbeam"),
		testEntry("arbitrum-one"),
		testEntry("ethereum-mainnet"),
	}}
	reg.Sort()

	var networks []string
	for _, e := range reg.Archives {
		networks = append(networks, e.Network)
	}
	assert.Equal(t, []string{"arbitrum-one", "ethereum-mainnet", "moonbeam"}, networks)

	// Idempotence: sorting again changes nothing.
	before, err := json.Marshal(reg)
	require.NoError(t, err)
	reg.Sort()
	after, err := json.Marshal(reg)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestAppendThenSortContainsEntry(t *testing.T) {
	t.Parallel()

	reg := &Registry{Archives: []Entry{
		testEntry("zksync-mainnet"),
		testEntry("arbitrum-one"),
	}}
	added := testEntry("moonbeam")
	require.NoError(t, reg.Append(added))
	reg.Sort()

	count := 0
	for _, e := range reg.Archives {
		if e.Network == "moonbeam" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Len(t, reg.Archives, 3)
}

func TestSaveFormat(t *testing.T) {
	t.Parallel()

	path := writeRegistry(t, testEntry("fuel-mainnet"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.True(t, len(content) > 0 && content[len(content)-1] == '\n', "file ends with a newline")
	assert.Contains(t, content, "{\n  \"archives\": [", "2-space indentation")
	assert.Contains(t, content, `"dataSourceUrl": "https://v2.archive.subsquid.io/network/fuel-mainnet"`)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "evm.json")
	reg := &Registry{Archives: []Entry{testEntry("a")}}
	require.NoError(t, reg.Save(path))
	require.NoError(t, reg.Save(path))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "evm.json", files[0].Name())
}
