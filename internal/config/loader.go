package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the file name looked up in the user and local config directories.
const CatalogFile = "catalog.yaml"

// LoadCatalog loads the game catalog.
// Search order: customPath -> ~/.moofield/catalog.yaml -> ./configs/catalog.yaml -> embedded default
func LoadCatalog(customPath string) (*Catalog, error) {
	// Try custom path first
	if customPath != "" {
		cat, err := readCatalog(customPath)
		if err != nil {
			return nil, err
		}
		if err := cat.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cat, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(CatalogFile), filepath.Join("configs", CatalogFile)} {
		if path == "" {
			continue
		}
		if cat, err := readCatalog(path); err == nil && cat.Validate() == nil {
			return cat, nil
		}
	}

	// Use embedded default YAML
	cat, err := EmbeddedCatalog()
	if err != nil {
		return DefaultCatalog(), nil // Fallback to hardcoded if embed fails
	}
	return cat, nil
}

func readCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cat, nil
}

// Marshal renders the catalog as YAML.
func (c *Catalog) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".moofield", filename)
}
