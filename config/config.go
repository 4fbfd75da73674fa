package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Provider ProviderConfig
	Store    StoreConfig
	Matcher  MatcherConfig
	Search   SearchConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ProviderConfig holds barcode page provider configuration
type ProviderConfig struct {
	Name           string        `mapstructure:"name"` // "eansearch" or "goupc"
	BaseURL        string        `mapstructure:"base_url"`
	UserAgent      string        `mapstructure:"user_agent"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RequestsPerSec float64       `mapstructure:"requests_per_sec"`
	Burst          int           `mapstructure:"burst"`
}

// StoreConfig holds local catalog store configuration
type StoreConfig struct {
	Path                 string `mapstructure:"path"`
	ManufacturerSeedFile string `mapstructure:"manufacturer_seed_file"`
	FilamentFeedFile     string `mapstructure:"filament_feed_file"`
}

// MatcherConfig holds catalog matcher thresholds
type MatcherConfig struct {
	EarlyExitScore     int  `mapstructure:"early_exit_score"`
	MinScore           int  `mapstructure:"min_score"`
	CandidatePageSize  int  `mapstructure:"candidate_page_size"`
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// SearchConfig holds incremental search configuration
type SearchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms"`
	PageSize   int `mapstructure:"page_size"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/spoolscan/")

	v.SetEnvPrefix("SPOOLSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover the rest
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	v.SetDefault("provider.name", "eansearch")
	v.SetDefault("provider.user_agent", "spoolscan/1.0")
	v.SetDefault("provider.timeout", "30s")
	v.SetDefault("provider.requests_per_sec", 1.0)
	v.SetDefault("provider.burst", 3)

	v.SetDefault("store.path", "spoolscan.db")

	v.SetDefault("matcher.early_exit_score", 4)
	v.SetDefault("matcher.min_score", 0)
	v.SetDefault("matcher.candidate_page_size", 200)
	v.SetDefault("matcher.enable_debug_logging", false)

	v.SetDefault("search.debounce_ms", 250)
	v.SetDefault("search.page_size", 50)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Provider.Name != "eansearch" && config.Provider.Name != "goupc" {
		return fmt.Errorf("provider name must be 'eansearch' or 'goupc', got: %s", config.Provider.Name)
	}

	if config.Store.Path == "" {
		return fmt.Errorf("store path is required (set SPOOLSCAN_STORE_PATH)")
	}

	if config.Matcher.MinScore < 0 {
		return fmt.Errorf("matcher min_score must not be negative, got: %d", config.Matcher.MinScore)
	}

	return nil
}
