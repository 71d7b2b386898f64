package form

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML form file. Keys missing from the file stay empty.
func LoadFile(path string) (Fields, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fields{}, fmt.Errorf("failed to read form: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML form content.
func Parse(data []byte) (Fields, error) {
	var f Fields
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fields{}, fmt.Errorf("failed to parse form: %w", err)
	}
	return f, nil
}

// SaveFile writes fields as a YAML form file.
func SaveFile(path string, f Fields) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create form directory: %w", err)
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal form: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write form: %w", err)
	}
	return nil
}
