package metadata

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/subsquid-labs/registry-tools/internal/fileutil"
)

// ErrDuplicateKey is returned by Add when the dataset key already exists.
var ErrDuplicateKey = errors.New("dataset already exists")

// Document is the in-memory form of the metadata file.
type Document struct {
	Datasets DatasetList `yaml:"datasets"`
}

// Load parses the metadata file at path. It fails with a descriptive error
// when the root is not an object holding a "datasets" mapping.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}
	var root struct {
		Datasets *DatasetList `yaml:"datasets"`
	}
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("expected a YAML object with a \"datasets\" mapping in %s: %w", path, err)
	}
	if root.Datasets == nil {
		return nil, fmt.Errorf("expected a \"datasets\" mapping in %s", path)
	}
	return &Document{Datasets: *root.Datasets}, nil
}

// Has reports whether a dataset with the given key exists.
func (d *Document) Has(key string) bool {
	for _, ds := range d.Datasets {
		if ds.Key == key {
			return true
		}
	}
	return false
}

// Add appends a dataset entry. The key must be non-empty and unique; on
// failure the document is left unmutated.
func (d *Document) Add(key string, entry Entry) error {
	if key == "" {
		return fmt.Errorf("dataset key must not be empty")
	}
	if d.Has(key) {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	if entry.Schema == nil {
		entry.Schema = map[string]any{}
	}
	d.Datasets = append(d.Datasets, Dataset{Key: key, Entry: entry})
	return nil
}

// Validate checks that every dataset carries a non-empty kind, which the
// sort order depends on.
func (d *Document) Validate() error {
	for _, ds := range d.Datasets {
		if ds.Entry.Metadata.Kind == "" {
			return fmt.Errorf("datasets.%s.metadata.kind must be a non-empty string", ds.Key)
		}
	}
	return nil
}

// Sort orders the datasets ascending by the (kind, key) tuple. Stable, so
// re-sorting an already canonical file changes nothing.
func (d *Document) Sort() {
	sort.SliceStable(d.Datasets, func(i, j int) bool {
		a, b := d.Datasets[i], d.Datasets[j]
		if a.Entry.Metadata.Kind != b.Entry.Metadata.Kind {
			return a.Entry.Metadata.Kind < b.Entry.Metadata.Kind
		}
		return a.Key < b.Key
	})
}

// Save serializes the document back to path in block style with 2-space
// indentation, through an atomic temp-file-and-rename write.
func (d *Document) Save(path string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to serialize metadata: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to serialize metadata: %w", err)
	}
	return fileutil.WriteFileAtomic(path, buf.Bytes())
}
