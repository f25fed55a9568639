package portfolio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CategoryMapping is one category label and its value type.
type CategoryMapping struct {
	Label string `yaml:"label"`
	Type  string `yaml:"type"`
}

// AssetCategories lists the categories of one asset.
type AssetCategories struct {
	Name       string            `yaml:"name"`
	Categories []CategoryMapping `yaml:"categories"`
}

// AccountCategories lists the assets of one account.
type AccountCategories struct {
	Name   string            `yaml:"name"`
	Assets []AssetCategories `yaml:"assets"`
}

// CategoryConfig represents the complete category metadata file.
type CategoryConfig struct {
	Accounts []AccountCategories `yaml:"accounts"`
}

// LoadCategories reads category metadata from a YAML file.
func LoadCategories(configPath string) (*CategoryConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseCategories(data)
}

// ParseCategories parses category metadata from YAML.
func ParseCategories(data []byte) (*CategoryConfig, error) {
	var config CategoryConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for _, acc := range config.Accounts {
		if acc.Name == "" {
			return nil, fmt.Errorf("account without a name in category config")
		}
		for _, asset := range acc.Assets {
			if asset.Name == "" {
				return nil, fmt.Errorf("asset without a name under account %s", acc.Name)
			}
		}
	}

	return &config, nil
}
