package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// SaveToFile writes the configuration as YAML or JSON depending on the
// file extension
func SaveToFile(configuration *File, path string) error {
	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	configuration.Created = time.Now()

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(configuration)
	} else {
		data, err = json.MarshalIndent(configuration, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// LoadFromFile reads and validates a YAML or JSON configuration
func LoadFromFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var configuration File
	if isYAML(path) {
		err = yaml.Unmarshal(data, &configuration)
	} else {
		err = json.Unmarshal(data, &configuration)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := configuration.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &configuration, nil
}

// GetConfigPath returns the conventional location of a named preset
func GetConfigPath(name string) string {
	return filepath.Join("etc", "hops", fmt.Sprintf("%s.yaml", name))
}
