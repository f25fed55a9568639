// Package config provides configuration management for the asset tracker.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Tracker TrackerConfig
	Debug   bool
}

// TrackerConfig represents storage-related configuration.
type TrackerConfig struct {
	Root           string
	DBPath         string
	CategoriesFile string
	ExportDir      string
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	// Load .env file
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	debug, err := parseBoolEnv("DEBUG", false)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Tracker: TrackerConfig{
			Root:           getEnvOrDefault("TRACKER_ROOT", "./data"),
			DBPath:         os.Getenv("TRACKER_DB_PATH"),
			CategoriesFile: os.Getenv("TRACKER_CATEGORIES_FILE"),
			ExportDir:      os.Getenv("TRACKER_EXPORT_DIR"),
		},
		Debug: debug,
	}

	return config, nil
}

// Validate validates the configuration.
// It checks if all required fields are set.
func (c *Config) Validate(required ...[]string) error {
	var missing []string

	for _, path := range required {
		if len(path) < 2 || path[0] != "tracker" {
			continue
		}

		var value string
		switch path[1] {
		case "root":
			value = c.Tracker.Root
		case "dbPath":
			value = c.Tracker.DBPath
		case "categoriesFile":
			value = c.Tracker.CategoriesFile
		case "exportDir":
			value = c.Tracker.ExportDir
		}

		if value == "" {
			missing = append(missing, strings.Join(path, "."))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseBoolEnv parses a boolean from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	switch strings.ToLower(os.Getenv(key)) {
	case "":
		return defaultValue, nil
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean value for %s: %s", key, os.Getenv(key))
}
