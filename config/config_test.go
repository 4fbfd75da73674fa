package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("SPOOLSCAN_SERVER_PORT")
		os.Unsetenv("SPOOLSCAN_SERVER_ENVIRONMENT")
		os.Unsetenv("SPOOLSCAN_PROVIDER_NAME")
		os.Unsetenv("SPOOLSCAN_PROVIDER_BASE_URL")
		os.Unsetenv("SPOOLSCAN_PROVIDER_USER_AGENT")
		os.Unsetenv("SPOOLSCAN_PROVIDER_TIMEOUT")
		os.Unsetenv("SPOOLSCAN_STORE_PATH")
		os.Unsetenv("SPOOLSCAN_MATCHER_EARLY_EXIT_SCORE")
		os.Unsetenv("SPOOLSCAN_MATCHER_MIN_SCORE")
		os.Unsetenv("SPOOLSCAN_SEARCH_DEBOUNCE_MS")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Provider.Name != "eansearch" {
			t.Errorf("Provider.Name = %s, want eansearch", cfg.Provider.Name)
		}
		if cfg.Provider.UserAgent != "spoolscan/1.0" {
			t.Errorf("Provider.UserAgent = %s, want spoolscan/1.0", cfg.Provider.UserAgent)
		}
		if cfg.Provider.Timeout != 30*time.Second {
			t.Errorf("Provider.Timeout = %v, want 30s", cfg.Provider.Timeout)
		}
		if cfg.Store.Path != "spoolscan.db" {
			t.Errorf("Store.Path = %s, want spoolscan.db", cfg.Store.Path)
		}
		if cfg.Matcher.EarlyExitScore != 4 {
			t.Errorf("Matcher.EarlyExitScore = %d, want 4", cfg.Matcher.EarlyExitScore)
		}
		if cfg.Matcher.MinScore != 0 {
			t.Errorf("Matcher.MinScore = %d, want 0", cfg.Matcher.MinScore)
		}
		if cfg.Matcher.CandidatePageSize != 200 {
			t.Errorf("Matcher.CandidatePageSize = %d, want 200", cfg.Matcher.CandidatePageSize)
		}
		if cfg.Search.DebounceMS != 250 {
			t.Errorf("Search.DebounceMS = %d, want 250", cfg.Search.DebounceMS)
		}
		if cfg.Search.PageSize != 50 {
			t.Errorf("Search.PageSize = %d, want 50", cfg.Search.PageSize)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SPOOLSCAN_SERVER_PORT", "9090")
		os.Setenv("SPOOLSCAN_PROVIDER_NAME", "goupc")
		os.Setenv("SPOOLSCAN_STORE_PATH", "/tmp/custom.db")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Provider.Name != "goupc" {
			t.Errorf("Provider.Name = %s, want goupc", cfg.Provider.Name)
		}
		if cfg.Store.Path != "/tmp/custom.db" {
			t.Errorf("Store.Path = %s, want /tmp/custom.db", cfg.Store.Path)
		}
	})

	t.Run("rejects unknown provider name", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SPOOLSCAN_PROVIDER_NAME", "mystery")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want provider validation error")
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Provider: ProviderConfig{Name: "eansearch"},
			Store:    StoreConfig{Path: "spoolscan.db"},
		}
	}

	t.Run("accepts a valid config", func(t *testing.T) {
		if err := validate(valid()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("rejects empty store path", func(t *testing.T) {
		cfg := valid()
		cfg.Store.Path = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want store path error")
		}
	})

	t.Run("rejects negative min score", func(t *testing.T) {
		cfg := valid()
		cfg.Matcher.MinScore = -1
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want min score error")
		}
	})
}
