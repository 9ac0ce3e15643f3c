package archive

import (
	"strconv"
	"strings"
)

// Filter returns the entries matching term. An empty term matches everything;
// otherwise the lowercased term must be a substring of the lowercased network
// or the lowercased chain name.
func Filter(entries []Entry, term string) []Entry {
	if term == "" {
		return entries
	}
	term = strings.ToLower(term)
	matched := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Network), term) ||
			strings.Contains(strings.ToLower(e.ChainName), term) {
			matched = append(matched, e)
		}
	}
	return matched
}

// Columns returns the table header for a variant's listing. EVM adds chain
// kind and chain ID columns, Substrate an SS58 prefix column.
func Columns(variant string) []string {
	switch variant {
	case "evm":
		return []string{"ID", "Name", "Chain Kind", "Chain ID", "Data source URL"}
	case "substrate":
		return []string{"ID", "Name", "SS58 Prefix", "Data source URL"}
	default:
		return []string{"ID", "Name", "Data source URL"}
	}
}

// Rows projects entries into table rows, one row per (entry, provider) pair.
// Missing optional values render as "-" to keep the columns aligned.
func Rows(entries []Entry, variant string) [][]string {
	var rows [][]string
	for _, e := range entries {
		for _, p := range e.Providers {
			row := []string{e.Network, e.ChainName}
			switch variant {
			case "evm":
				kind := "Mainnet"
				if e.IsTestnet {
					kind = "Testnet"
				}
				row = append(row, kind, formatOptionalInt(e.ChainID))
			case "substrate":
				row = append(row, formatOptionalInt(e.ChainSS58Prefix))
			}
			row = append(row, p.DataSourceURL)
			rows = append(rows, row)
		}
	}
	return rows
}

func formatOptionalInt(o OptionalInt) string {
	if !o.Valid {
		return "-"
	}
	return strconv.FormatInt(o.Value, 10)
}
