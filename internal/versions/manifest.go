package versions

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest maps dependency and tool names onto the version strings the
// corpus should advertise.
type Manifest struct {
	Versions map[string]string `yaml:"versions"`
}

// LoadManifest reads a manifest from disk.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("versions manifest read %s: %w", path, err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes manifest bytes, trimming names and values.
func ParseManifest(data []byte) (*Manifest, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("versions manifest parse: %w", err)
	}

	cleaned := make(map[string]string, len(manifest.Versions))
	for name, version := range manifest.Versions {
		name = strings.TrimSpace(name)
		version = strings.TrimSpace(version)
		if name == "" || version == "" {
			continue
		}
		cleaned[name] = version
	}
	manifest.Versions = cleaned
	return &manifest, nil
}

// Lookup returns the version registered for name.
func (m *Manifest) Lookup(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	version, ok := m.Versions[name]
	return version, ok
}

// Names returns the registered names in sorted order.
func (m *Manifest) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.Versions))
	for name := range m.Versions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
