package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	GenAI   GenAIConfig
	Session SessionConfig
	Catalog CatalogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GenAIConfig holds configuration for the text-generation collaborator
type GenAIConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// SessionConfig holds browsing-session store configuration
type SessionConfig struct {
	Store string        `mapstructure:"store"` // "memory" for now
	TTL   time.Duration `mapstructure:"ttl"`
}

// CatalogConfig holds catalog seed configuration
type CatalogConfig struct {
	Path string `mapstructure:"path"` // empty means the embedded seed set
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/lauraluxe/")

	// Environment variable settings
	v.SetEnvPrefix("LAURALUXE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Collaborator defaults
	v.SetDefault("genai.api_key", "")
	v.SetDefault("genai.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("genai.model", "gemini-3-flash-preview")
	v.SetDefault("genai.temperature", 0.7)
	v.SetDefault("genai.timeout", "30s")

	// Session defaults
	v.SetDefault("session.store", "memory")
	v.SetDefault("session.ttl", "30m")

	// Catalog defaults
	v.SetDefault("catalog.path", "")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.GenAI.APIKey == "" {
		return fmt.Errorf("Gemini API key is required (set LAURALUXE_GENAI_API_KEY)")
	}

	if config.GenAI.Model == "" {
		return fmt.Errorf("GenAI model name must not be empty")
	}

	if config.GenAI.Temperature < 0 || config.GenAI.Temperature > 2 {
		return fmt.Errorf("GenAI temperature must be between 0 and 2, got: %g", config.GenAI.Temperature)
	}

	if config.Session.Store != "memory" {
		return fmt.Errorf("session store must be 'memory', got: %s", config.Session.Store)
	}

	if config.Session.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got: %s", config.Session.TTL)
	}

	return nil
}
