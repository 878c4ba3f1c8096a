// Package config loads and holds goalcast configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all goalcast configuration.
type Config struct {
	Forecast ForecastConfig `toml:"forecast"`
	Levers   LeverConfig    `toml:"levers"`
	Augment  AugmentConfig  `toml:"augment"`
	Server   ServerConfig   `toml:"server"`
}

// ForecastConfig holds the baseline window and category vocabulary.
// The category sets are closed: anything outside FixedCategories counts
// as variable spend for capacity purposes.
type ForecastConfig struct {
	BaselineMonths          int      `toml:"baseline_months"`
	FixedCategories         []string `toml:"fixed_categories"`
	DiscretionaryCategories []string `toml:"discretionary_categories"`
}

// LeverConfig holds the suggestion engine's tuning constants.
type LeverConfig struct {
	TrimPercent         float64 `toml:"trim_percent"`
	IncomeBoost         float64 `toml:"income_boost"`
	SubscriptionPercent float64 `toml:"subscription_percent"`
	SubscriptionFloor   float64 `toml:"subscription_floor"`
	SubscriptionCap     float64 `toml:"subscription_cap"`
}

// AugmentConfig holds the optional external suggestion service settings.
// An empty endpoint disables augmentation entirely.
type AugmentConfig struct {
	Endpoint    string `toml:"endpoint,omitempty"`
	APIKey      string `toml:"api_key,omitempty"`
	TimeoutSecs int    `toml:"timeout_secs"`
}

// ServerConfig holds HTTP server settings for `goalcast serve`.
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Forecast: ForecastConfig{
			BaselineMonths: 3,
			FixedCategories: []string{
				"Rent", "Mortgage", "Loan", "Utilities", "Internet",
				"Phone", "Insurance", "Tuition", "Subscriptions",
			},
			DiscretionaryCategories: []string{
				"Dining", "Restaurants", "Shopping", "Rideshare",
				"Entertainment", "Travel", "Hobbies",
			},
		},
		Levers: LeverConfig{
			TrimPercent:         0.20,
			IncomeBoost:         100,
			SubscriptionPercent: 0.25,
			SubscriptionFloor:   15,
			SubscriptionCap:     30,
		},
		Augment: AugmentConfig{
			TimeoutSecs: 15,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8490",
			AllowedOrigins: []string{
				"http://localhost:5173",
				"http://localhost:3000",
			},
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "goalcast")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "goalcast")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// AugmentEndpoint returns the augmentation endpoint from env var or
// config, in that order.
func AugmentEndpoint(cfg Config) string {
	if url := os.Getenv("GOALCAST_AUGMENT_URL"); url != "" {
		return url
	}
	return cfg.Augment.Endpoint
}

// AugmentAPIKey returns the augmentation credential from env var or
// config, in that order.
func AugmentAPIKey(cfg Config) string {
	if key := os.Getenv("GOALCAST_AUGMENT_KEY"); key != "" {
		return key
	}
	return cfg.Augment.APIKey
}
