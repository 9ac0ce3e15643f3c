package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/subsquid-labs/registry-tools/internal/fileutil"
)

// ErrDuplicateNetwork is returned by Append when an entry with the same
// network key is already present in the registry.
var ErrDuplicateNetwork = errors.New("network already exists in registry")

// Registry is the in-memory form of one archive registry file.
type Registry struct {
	Archives []Entry `json:"archives"`
}

// Load parses the registry file at path. It fails with a descriptive error
// when the root is not an object holding an "archives" array.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file: %w", err)
	}
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("expected JSON object at the root of %s: %w", path, err)
	}
	raw, ok := root["archives"]
	if !ok {
		return nil, fmt.Errorf("expected an \"archives\" array in %s", path)
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("expected an \"archives\" array in %s: %w", path, err)
	}
	return &Registry{Archives: entries}, nil
}

// Append adds an entry to the registry. Network keys are unique within a
// file; a clash is rejected before any mutation happens.
func (r *Registry) Append(entry Entry) error {
	for _, existing := range r.Archives {
		if existing.Network == entry.Network {
			return fmt.Errorf("%w: %q", ErrDuplicateNetwork, entry.Network)
		}
	}
	r.Archives = append(r.Archives, entry)
	return nil
}

// Sort orders the entries ascending by network. The sort is stable, so
// applying it to an already sorted registry leaves the file byte-identical.
func (r *Registry) Sort() {
	sort.SliceStable(r.Archives, func(i, j int) bool {
		return r.Archives[i].Network < r.Archives[j].Network
	})
}

// Save serializes the registry back to path with 2-space indentation. The
// write goes through a temporary file in the same directory followed by a
// rename, so an interrupted save never leaves a truncated registry behind.
func (r *Registry) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize registry: %w", err)
	}
	data = append(data, '\n')
	return fileutil.WriteFileAtomic(path, data)
}
