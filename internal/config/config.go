package config

import (
	"os"
	"strconv"

	"vitrine/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data      DataConfig
	Server    ServerConfig
	API       APIConfig
	Output    OutputConfig
	Warehouse WarehouseConfig
	Cache     CacheConfig
}

// DataConfig holds the extract directory and the optional pre-joined input
type DataConfig struct {
	Dir          string
	EnrichedFile string
}

// ServerConfig holds dashboard server settings
type ServerConfig struct {
	Port string
}

// APIConfig holds JSON API server settings
type APIConfig struct {
	Port    string
	GinMode string
}

// OutputConfig holds static rendering targets
type OutputConfig struct {
	HTMLPath  string
	NotesFile string
}

// WarehouseConfig holds the Postgres export settings
type WarehouseConfig struct {
	URL       string
	BatchSize int
}

// CacheConfig controls the in-process fact-table cache
type CacheConfig struct {
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data:      loadDataConfig(),
		Server:    loadServerConfig(),
		API:       loadAPIConfig(),
		Output:    loadOutputConfig(),
		Warehouse: loadWarehouseConfig(),
		Cache:     loadCacheConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDataConfig() DataConfig {
	return DataConfig{
		Dir:          getEnvOrDefault("VITRINE_DATA_DIR", "./data"),
		EnrichedFile: getEnvOrDefault("VITRINE_ENRICHED_FILE", ""),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port: getEnvOrDefault("PORT", "8080"),
	}
}

func loadAPIConfig() APIConfig {
	return APIConfig{
		Port:    getEnvOrDefault("API_PORT", "8081"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadOutputConfig() OutputConfig {
	return OutputConfig{
		HTMLPath:  getEnvOrDefault("VITRINE_OUTPUT_HTML", "./dashboard/olist_business_dashboard.html"),
		NotesFile: getEnvOrDefault("VITRINE_NOTES_FILE", ""),
	}
}

func loadWarehouseConfig() WarehouseConfig {
	return WarehouseConfig{
		URL:       getEnvOrDefault("DATABASE_URL", ""),
		BatchSize: getEnvIntOrDefault("VITRINE_EXPORT_BATCH", 500),
	}
}

func loadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getEnvBoolOrDefault("VITRINE_CACHE", true),
	}
}

func validateConfig(config *Config) error {
	if config.Data.Dir == "" {
		return errors.ConfigInvalid("data directory is required")
	}
	if config.Output.HTMLPath == "" {
		return errors.ConfigInvalid("output HTML path is required")
	}
	if config.Warehouse.BatchSize <= 0 {
		return errors.ConfigInvalid("export batch size must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
