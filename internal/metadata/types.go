// Package metadata contains the data model and file store for the
// sqd-network dataset metadata file (metadata.tentative.yml).
package metadata

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Chain types accepted for a dataset entry.
const (
	TypeTestnet = "testnet"
	TypeMainnet = "mainnet"
	TypeDevnet  = "devnet"
)

// TypeChoices lists the accepted dataset types in prompt order.
var TypeChoices = []string{TypeTestnet, TypeMainnet, TypeDevnet}

// EVMMetadata carries the EVM-specific part of a dataset's metadata. Present
// only when a chain ID was supplied.
type EVMMetadata struct {
	ChainID int64 `yaml:"chain_id"`
}

// Metadata is the display/classification block of a dataset entry.
type Metadata struct {
	Kind        string       `yaml:"kind"`
	DisplayName string       `yaml:"display_name"`
	Type        string       `yaml:"type"`
	LogoURL     string       `yaml:"logo_url,omitempty"`
	EVM         *EVMMetadata `yaml:"evm,omitempty"`
}

// Entry is one dataset entry: its metadata plus a (currently empty) schema
// object.
type Entry struct {
	Metadata Metadata       `yaml:"metadata"`
	Schema   map[string]any `yaml:"schema"`
}

// NewEntry builds a dataset entry. logoURL is omitted when empty; the EVM
// block is present only when a chain ID was supplied.
func NewEntry(kind, displayName, typ, logoURL string, chainID *int64) Entry {
	meta := Metadata{
		Kind:        kind,
		DisplayName: displayName,
		Type:        typ,
		LogoURL:     logoURL,
	}
	if chainID != nil {
		meta.EVM = &EVMMetadata{ChainID: *chainID}
	}
	return Entry{Metadata: meta, Schema: map[string]any{}}
}

// Dataset pairs a dataset key with its entry.
type Dataset struct {
	Key   string
	Entry Entry
}

// DatasetList is the ordered dataset mapping. Order is significant on disk:
// the file is kept sorted by (kind, key) and Go maps would not preserve that,
// so the list round-trips through yaml.Node mapping nodes.
type DatasetList []Dataset

// MarshalYAML implements yaml.Marshaler.
func (l DatasetList) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, d := range l {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: d.Key}
		valNode := &yaml.Node{}
		if err := valNode.Encode(d.Entry); err != nil {
			return nil, fmt.Errorf("failed to encode dataset %q: %w", d.Key, err)
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *DatasetList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("expected \"datasets\" to be a mapping")
	}
	out := make(DatasetList, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valNode := value.Content[i+1]
		var entry Entry
		if err := valNode.Decode(&entry); err != nil {
			return fmt.Errorf("failed to decode dataset %q: %w", keyNode.Value, err)
		}
		if entry.Schema == nil {
			entry.Schema = map[string]any{}
		}
		out = append(out, Dataset{Key: keyNode.Value, Entry: entry})
	}
	*l = out
	return nil
}
