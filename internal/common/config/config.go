package config

import (
	"os"
	"regexp"
	"time"

	"github.com/intradash/adminkit/pkg/helper"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type (
	// AdminCLIConfig represents the adminctl configuration
	AdminCLIConfig struct {
		API    APIConfig    `yaml:"api"`
		Auth   AuthConfig   `yaml:"auth"`
		Logger LoggerConfig `yaml:"logger"`
	}

	// MockBackendConfig represents the mock backend configuration
	MockBackendConfig struct {
		Port   int          `yaml:"port"`
		JWT    JWTConfig    `yaml:"jwt"`
		Logger LoggerConfig `yaml:"logger"`
	}

	// APIConfig represents the backend endpoint configuration
	APIConfig struct {
		BaseURL string        `yaml:"base_url"` // scheme://host[:port]
		Prefix  string        `yaml:"prefix"`   // api path prefix, default /api/v1
		Timeout time.Duration `yaml:"timeout"`  // per-request timeout
	}

	// AuthConfig represents token storage configuration
	AuthConfig struct {
		TokenStorage TokenStorageConfig `yaml:"token_storage"`
	}

	// TokenStorageConfig selects where the bearer token persists
	TokenStorageConfig struct {
		Type string `yaml:"type"` // "file" or "memory"
		Path string `yaml:"path"` // token file path when type is file
	}

	// JWTConfig represents the mock backend token signing configuration
	JWTConfig struct {
		SecretKey string        `yaml:"secret_key"`
		Duration  time.Duration `yaml:"duration"`
	}

	// LoggerConfig represents the logger configuration
	LoggerConfig struct {
		Level      string `yaml:"level"`       // debug, info, warn, error
		Format     string `yaml:"format"`      // json, console
		Output     string `yaml:"output"`      // stdout, file
		FilePath   string `yaml:"file_path"`   // path to log file when output is file
		MaxSize    int    `yaml:"max_size"`    // max size of log file in MB
		MaxBackups int    `yaml:"max_backups"` // max number of backup files
		MaxAge     int    `yaml:"max_age"`     // max age of backup files in days
		Compress   bool   `yaml:"compress"`    // whether to compress backup files
		Color      bool   `yaml:"color"`       // whether to use color in console output
		Stacktrace bool   `yaml:"stacktrace"`  // whether to include stacktrace in error logs
		TimeZone   string `yaml:"time_zone"`   // time zone for log timestamps
		TimeFormat string `yaml:"time_format"` // time format for log timestamps
	}
)

// DefaultBaseURL is used when neither configuration nor the
// ADMINKIT_API_URL environment variable names a backend.
const DefaultBaseURL = "http://localhost:3001"

// DefaultPrefix is the API version prefix appended to the base URL.
const DefaultPrefix = "/api/v1"

type Type interface {
	AdminCLIConfig | MockBackendConfig
}

// LoadConfig loads configuration from a YAML file with environment
// variable support
func LoadConfig[T Type](filename string) (*T, string, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfgPath := helper.GetCfgPath(filename)
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, cfgPath, err
	}

	// Resolve environment variables
	data = resolveEnv(data)
	var cfg T
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, cfgPath, err
	}

	if cliCfg, ok := any(&cfg).(*AdminCLIConfig); ok {
		cliCfg.SetDefaults()
	}

	return &cfg, cfgPath, nil
}

// SetDefaults fills unset fields with their documented defaults.
func (c *AdminCLIConfig) SetDefaults() {
	if c.API.BaseURL == "" {
		if env := os.Getenv("ADMINKIT_API_URL"); env != "" {
			c.API.BaseURL = env
		} else {
			c.API.BaseURL = DefaultBaseURL
		}
	}
	if c.API.Prefix == "" {
		c.API.Prefix = DefaultPrefix
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = 30 * time.Second
	}
	if c.Auth.TokenStorage.Type == "" {
		c.Auth.TokenStorage.Type = "file"
	}
}

// resolveEnv replaces environment variable placeholders in YAML content
func resolveEnv(content []byte) []byte {
	regex := regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

	return regex.ReplaceAllFunc(content, func(match []byte) []byte {
		matches := regex.FindSubmatch(match)
		envKey := string(matches[1])
		var defaultValue string

		if len(matches) > 2 {
			defaultValue = string(matches[2])
		}

		if value, exists := os.LookupEnv(envKey); exists {
			return []byte(value)
		}
		return []byte(defaultValue)
	})
}
