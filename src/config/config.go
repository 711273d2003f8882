package config

import (
	"fmt"
	"os"

	"options-observer/src/helpers"
	"options-observer/src/models"

	"gopkg.in/yaml.v3"
)

// Name of the environment variable carrying the Tradier bearer token.
const APITokenEnv = "TRADIER_API_KEY"

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from a YAML file and resolves
// the API token from the environment.
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}
	config.applyDefaults()

	// 3. The credential is a secret: environment only, never YAML.
	config.APIToken = os.Getenv(APITokenEnv)

	// 4. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// -----------------------------------------------------------------------------

func (c *Config) applyDefaults() {
	if c.Upstream.BaseURL == "" {
		c.Upstream.BaseURL = "https://api.tradier.com/v1"
	}
	if c.Network.RequestTimeout == 0 {
		c.Network.RequestTimeout = 30
	}
	if c.Filter.MaxDelta == 0 {
		c.Filter.MaxDelta = 0.15
	}
	if c.Filter.MinVolume == 0 {
		c.Filter.MinVolume = 250
	}
	if c.Filter.MinOpenInterest == 0 {
		c.Filter.MinOpenInterest = 500
	}
	if c.Filter.MaxStrike == 0 {
		c.Filter.MaxStrike = 30
	}
	if c.Storage.RetentionDays == 0 {
		c.Storage.RetentionDays = 30
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	// Validate App configuration
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Validate Server configuration
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	// Validate Upstream configuration
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream base url cannot be empty")
	}
	if c.APIToken == "" {
		return helpers.NewConfigError(fmt.Sprintf("%s is not set in the environment", APITokenEnv))
	}

	// Validate Network configuration
	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}

	// Validate Filter thresholds
	if c.Filter.MaxDelta <= 0 || c.Filter.MaxDelta > 1 {
		return fmt.Errorf("max delta must be in (0, 1], got %f", c.Filter.MaxDelta)
	}
	if c.Filter.MinVolume < 0 {
		return fmt.Errorf("min volume cannot be negative")
	}
	if c.Filter.MinOpenInterest < 0 {
		return fmt.Errorf("min open interest cannot be negative")
	}
	if c.Filter.MaxStrike <= 0 {
		return fmt.Errorf("max strike must be greater than 0")
	}

	// Validate Storage configuration
	if c.Storage.DBType == "" {
		return fmt.Errorf("database type cannot be empty")
	}
	if c.Storage.DBType == "sqlite" && c.Storage.DBPath == "" {
		return fmt.Errorf("database path cannot be empty for sqlite")
	}
	if c.Storage.RetentionDays <= 0 {
		return fmt.Errorf("retention days must be greater than 0")
	}

	return nil
}
