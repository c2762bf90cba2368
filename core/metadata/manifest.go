package metadata

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrManifestNotFound is returned when the manifest file does not exist.
var ErrManifestNotFound = errors.New("entity manifest not found")

// Manifest is the on-disk description of the application's entities.
type Manifest struct {
	Entities []Entity `yaml:"entities"`
}

// LoadManifest reads entity metadata from a YAML file.
func LoadManifest(path string) ([]Entity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes entity metadata from YAML.
func ParseManifest(data []byte) ([]Entity, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	seen := make(map[string]struct{}, len(m.Entities))
	for i, e := range m.Entities {
		if e.ID == "" {
			return nil, fmt.Errorf("entity #%d has no id", i+1)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("entity %s is declared twice", e.ID)
		}
		seen[e.ID] = struct{}{}
		if e.Inheritance == "" {
			m.Entities[i].Inheritance = InheritanceNone
		}
	}

	return m.Entities, nil
}
