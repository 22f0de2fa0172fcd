package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Dataset  DatasetConfig  `yaml:"dataset" envconfig:"DATASET"`
	Export   ExportConfig   `yaml:"export" envconfig:"EXPORT"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// DatasetConfig describes where the transaction log and product catalog live
type DatasetConfig struct {
	// Backend selects the durable store: "csv" (default) or "sqlite".
	Backend      string `yaml:"backend" envconfig:"BACKEND" default:"csv"`
	DataDir      string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	SalesFile    string `yaml:"sales_file" envconfig:"SALES_FILE" default:"Online Sales Data.csv"`
	ProductsFile string `yaml:"products_file" envconfig:"PRODUCTS_FILE" default:"products.csv"`
	SQLitePath   string `yaml:"sqlite_path" envconfig:"SQLITE_PATH" default:"sales.db"`
}

// ExportConfig contains report export configuration
type ExportConfig struct {
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("SALESPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Server.Port == 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if envConfig.Server.ReadTimeout == 0 {
		envConfig.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if envConfig.Server.WriteTimeout == 0 {
		envConfig.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if envConfig.Dataset.DataDir == "" {
		envConfig.Dataset.DataDir = fileConfig.Dataset.DataDir
	}
	if envConfig.Dataset.SalesFile == "" {
		envConfig.Dataset.SalesFile = fileConfig.Dataset.SalesFile
	}
	if envConfig.Dataset.ProductsFile == "" {
		envConfig.Dataset.ProductsFile = fileConfig.Dataset.ProductsFile
	}

	return envConfig
}

// SalesPath returns the resolved path of the transaction log
func (c *Config) SalesPath() string {
	if filepath.IsAbs(c.Dataset.SalesFile) {
		return c.Dataset.SalesFile
	}
	return filepath.Join(c.Dataset.DataDir, c.Dataset.SalesFile)
}

// ProductsPath returns the resolved path of the product catalog
func (c *Config) ProductsPath() string {
	if filepath.IsAbs(c.Dataset.ProductsFile) {
		return c.Dataset.ProductsFile
	}
	return filepath.Join(c.Dataset.DataDir, c.Dataset.ProductsFile)
}

// SQLitePath returns the resolved path of the SQLite store
func (c *Config) SQLitePath() string {
	if filepath.IsAbs(c.Dataset.SQLitePath) {
		return c.Dataset.SQLitePath
	}
	return filepath.Join(c.Dataset.DataDir, c.Dataset.SQLitePath)
}

// EnsureDirectories creates the directories the service writes to
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Dataset.DataDir, c.Export.ReportsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	switch c.Dataset.Backend {
	case "csv", "sqlite":
	default:
		return fmt.Errorf("unknown dataset backend: %q", c.Dataset.Backend)
	}

	if c.Security.EnableCORS && len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20,
			ShutdownTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Dataset: DatasetConfig{
			Backend:      "csv",
			DataDir:      "data",
			SalesFile:    "Online Sales Data.csv",
			ProductsFile: "products.csv",
			SQLitePath:   "sales.db",
		},
		Export: ExportConfig{
			ReportsDir: "reports",
		},
	}
}
