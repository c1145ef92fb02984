package taxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a custom taxonomy.
type File struct {
	Categories []Category `yaml:"categories"`
}

// Load reads a custom taxonomy from a YAML file and validates it.
func Load(path string) ([]Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy file %s declares no categories", path)
	}

	if err := Validate(f.Categories); err != nil {
		return nil, fmt.Errorf("invalid taxonomy in %s: %w", path, err)
	}

	return f.Categories, nil
}
