package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"stock-ticker/src/models"
)

// APIKeyEnv overrides data_source.api_key when set.
const APIKeyEnv = "ALPHAVANTAGE_API_KEY"

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
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

	// 3. Resolve the API key (.env, environment, key file)
	if err := config.resolveAPIKey(); err != nil {
		return nil, err
	}

	// 4. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "stock-ticker"
	}
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	if c.Network.RequestTimeout == 0 {
		c.Network.RequestTimeout = 30
	}
	if c.DataSource.Name == "" {
		c.DataSource.Name = "alphavantage"
	}
	if c.DataSource.Name == "alphavantage" {
		if c.DataSource.BaseURL == "" {
			c.DataSource.BaseURL = "https://www.alphavantage.co/query"
		}
		if c.DataSource.Function == "" {
			c.DataSource.Function = "TIME_SERIES_DAILY"
		}
		if c.DataSource.OutputSize == "" {
			c.DataSource.OutputSize = "full"
		}
	}
	if c.DataSource.Name == "yahoo" && c.DataSource.BaseURL == "" {
		c.DataSource.BaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	}
	if c.Chart.ProviderLabel == "" {
		c.Chart.ProviderLabel = "AlphaVantage"
	}
	if c.Chart.Width == "" {
		c.Chart.Width = "900px"
	}
	if c.Chart.Height == "" {
		c.Chart.Height = "500px"
	}
	if c.Chart.AssetsHost == "" {
		c.Chart.AssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"
	}
	if c.RateLimit.RequestsPerMinute == 0 {
		c.RateLimit.RequestsPerMinute = 5
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 5
	}
}

// -----------------------------------------------------------------------------

// resolveAPIKey loads .env, then prefers the environment, then the config value, then the key file.
func (c *Config) resolveAPIKey() error {
	// A missing .env file is normal outside development
	_ = godotenv.Load()

	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		c.DataSource.APIKey = key
		return nil
	}
	if c.DataSource.APIKey != "" || c.DataSource.APIKeyFile == "" {
		return nil
	}

	raw, err := os.ReadFile(c.DataSource.APIKeyFile)
	if err != nil {
		return fmt.Errorf("failed to read api key file '%s': %w", c.DataSource.APIKeyFile, err)
	}
	c.DataSource.APIKey = strings.TrimSpace(string(raw))
	return nil
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Server
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}
	if c.GrpcPort != 0 && (c.GrpcPort <= 1024 || c.GrpcPort > 65535) {
		return fmt.Errorf("invalid grpc port number: %d", c.GrpcPort)
	}
	if c.GrpcPort != 0 && c.GrpcPort == c.Port {
		return fmt.Errorf("grpc port %d collides with http port", c.GrpcPort)
	}

	// Network
	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}

	// Data source
	switch c.DataSource.Name {
	case "alphavantage":
		if c.DataSource.APIKey == "" {
			return fmt.Errorf("alphavantage requires an api key (set %s, api_key or api_key_file)", APIKeyEnv)
		}
	case "yahoo":
	default:
		return fmt.Errorf("unsupported data source: %s", c.DataSource.Name)
	}
	if c.DataSource.BaseURL == "" {
		return fmt.Errorf("data source base url cannot be empty")
	}

	// Rate limiting
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit needs positive requests_per_minute and burst")
	}

	return nil
}
