// Package archive contains the data model and file store for the per-chain-family
// archive registry files (src/archives/<variant>.json).
package archive

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// OptionalInt is a tri-state integer field: absent from the document, present
// as null, or present with a value. Plain *int64 cannot distinguish absent
// from null, and the registry files carry both (chainId is emitted as null
// for EVM entries but omitted entirely for other families).
type OptionalInt struct {
	Set   bool
	Valid bool
	Value int64
}

// NullInt returns a present-but-null OptionalInt.
func NullInt() OptionalInt {
	return OptionalInt{Set: true}
}

// Int returns a present OptionalInt holding v.
func Int(v int64) OptionalInt {
	return OptionalInt{Set: true, Valid: true, Value: v}
}

// MarshalJSON implements json.Marshaler.
func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked when the key
// is present in the document, so presence implies Set.
func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// OptionalString is the string counterpart of OptionalInt.
type OptionalString struct {
	Set   bool
	Valid bool
	Value string
}

// NullString returns a present-but-null OptionalString.
func NullString() OptionalString {
	return OptionalString{Set: true}
}

// String returns a present OptionalString holding v.
func String(v string) OptionalString {
	return OptionalString{Set: true, Valid: true, Value: v}
}

// MarshalJSON implements json.Marshaler.
func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// BlockRange is a half-open historical coverage interval. To is nil when the
// range is open-ended. Serialized as a two-element array: [from, to|null].
type BlockRange struct {
	From int64
	To   *int64
}

// MarshalJSON implements json.Marshaler.
func (r BlockRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.From, r.To})
}

// UnmarshalJSON implements json.Unmarshaler. Bounds are accepted both as JSON
// numbers and as string-encoded decimals: existing solana files carry range
// starts as strings. Marshaling always emits numbers.
func (r *BlockRange) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("block range must be a [from, to] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("block range must be a [from, to] pair")
	}
	from, err := parseRangeBound(pair[0])
	if err != nil {
		return err
	}
	if from == nil {
		return fmt.Errorf("block range must be a [from, to] pair with a numeric start")
	}
	to, err := parseRangeBound(pair[1])
	if err != nil {
		return err
	}
	r.From = *from
	r.To = to
	return nil
}

func parseRangeBound(data []byte) (*int64, error) {
	if string(data) == "null" {
		return nil, nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("invalid block range bound: %w", err)
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("block range bound %q is not a decimal number", s)
		}
		return &v, nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid block range bound: %w", err)
	}
	return &v, nil
}

// Capability is one data-source capability tag. A bare tag serializes as a
// plain string; a tag with partial historical coverage serializes as an
// object carrying its block ranges.
type Capability struct {
	Name   string
	Ranges []BlockRange
}

// MarshalJSON implements json.Marshaler.
func (c Capability) MarshalJSON() ([]byte, error) {
	if len(c.Ranges) == 0 {
		return json.Marshal(c.Name)
	}
	return json.Marshal(struct {
		Name   string       `json:"name"`
		Ranges []BlockRange `json:"ranges"`
	}{Name: c.Name, Ranges: c.Ranges})
}

// UnmarshalJSON implements json.Unmarshaler. Accepts both serialized forms.
func (c *Capability) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		c.Name = name
		c.Ranges = nil
		return nil
	}
	var obj struct {
		Name   string       `json:"name"`
		Ranges []BlockRange `json:"ranges"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("capability must be a tag string or a {name, ranges} object: %w", err)
	}
	c.Name = obj.Name
	c.Ranges = obj.Ranges
	return nil
}

// Provider is one concrete data source backing an archive entry.
type Provider struct {
	Data          []Capability `json:"data"`
	DataSourceURL string       `json:"dataSourceUrl"`
	Provider      string       `json:"provider"`
	Release       string       `json:"release"`
	SupportTier   int          `json:"supportTier"`
}

// Entry is one blockchain network's archive configuration. The optional
// fields are family-specific: ChainID and LogoURL appear on EVM entries,
// ChainSS58Prefix and GenesisHash on Substrate entries.
type Entry struct {
	ID              string
	Network         string
	ChainName       string
	IsTestnet       bool
	ChainID         OptionalInt
	ChainSS58Prefix OptionalInt
	GenesisHash     OptionalString
	LogoURL         OptionalString
	Providers       []Provider
}

// MarshalJSON emits the entry with its keys in canonical (alphabetical)
// order, including only the optional fields that are set for this entry's
// chain family.
func (e Entry) MarshalJSON() ([]byte, error) {
	doc := map[string]any{
		"id":        e.ID,
		"chainName": e.ChainName,
		"isTestnet": e.IsTestnet,
		"network":   e.Network,
		"providers": e.Providers,
	}
	if e.ChainID.Set {
		doc["chainId"] = e.ChainID
	}
	if e.ChainSS58Prefix.Set {
		doc["chainSS58Prefix"] = e.ChainSS58Prefix
	}
	if e.GenesisHash.Set {
		doc["genesis_hash"] = e.GenesisHash
	}
	if e.LogoURL.Set {
		doc["logoUrl"] = e.LogoURL
	}
	return json.Marshal(doc)
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID              string         `json:"id"`
		Network         string         `json:"network"`
		ChainName       string         `json:"chainName"`
		IsTestnet       bool           `json:"isTestnet"`
		ChainID         OptionalInt    `json:"chainId"`
		ChainSS58Prefix OptionalInt    `json:"chainSS58Prefix"`
		GenesisHash     OptionalString `json:"genesis_hash"`
		LogoURL         OptionalString `json:"logoUrl"`
		Providers       []Provider     `json:"providers"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = Entry{
		ID:              aux.ID,
		Network:         aux.Network,
		ChainName:       aux.ChainName,
		IsTestnet:       aux.IsTestnet,
		ChainID:         aux.ChainID,
		ChainSS58Prefix: aux.ChainSS58Prefix,
		GenesisHash:     aux.GenesisHash,
		LogoURL:         aux.LogoURL,
		Providers:       aux.Providers,
	}
	return nil
}
