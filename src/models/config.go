package models

// MConfig Structure
type MConfig struct {
	Name       string            `yaml:"name"`
	Host       string            `yaml:"host"`
	Port       int               `yaml:"port"`
	LogLevel   string            `yaml:"log_level"`
	LogFormat  string            `yaml:"log_format"` // "json" or "console"
	GrpcHost   string            `yaml:"grpc_host"`
	GrpcPort   int               `yaml:"grpc_port"` // 0 disables the health server
	Network    MNetworkConfig    `yaml:"network"`
	DataSource MDataSourceConfig `yaml:"data_source"`
	Chart      MChartConfig      `yaml:"chart"`
	RateLimit  MRateLimitConfig  `yaml:"rate_limit"`
	CORS       MCORSConfig       `yaml:"cors"`
}

type MNetworkConfig struct {
	Proxies        []string `yaml:"proxies"`
	RequestTimeout int      `yaml:"timeout"`
	UserAgent      string   `yaml:"user_agent"`
}

type MDataSourceConfig struct {
	Name       string `yaml:"name"` // "alphavantage" or "yahoo"
	BaseURL    string `yaml:"base_url"`
	Function   string `yaml:"function"`
	OutputSize string `yaml:"output_size"`
	APIKey     string `yaml:"api_key"`
	APIKeyFile string `yaml:"api_key_file"`
}

type MChartConfig struct {
	ProviderLabel string `yaml:"provider_label"`
	Width         string `yaml:"width"`
	Height        string `yaml:"height"`
	AssetsHost    string `yaml:"assets_host"`
}

type MRateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerMinute float64 `yaml:"requests_per_minute"`
	Burst             int     `yaml:"burst"`
}

type MCORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}
