package config

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete hokage configuration
type Config struct {
	API       APIConfig       `mapstructure:"api" yaml:"api"`
	Realtime  RealtimeConfig  `mapstructure:"realtime" yaml:"realtime"`
	Dashboard DashboardConfig `mapstructure:"dashboard" yaml:"dashboard"`
	TUI       TUIConfig       `mapstructure:"tui" yaml:"tui"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// APIConfig controls the event HTTP API client
type APIConfig struct {
	// BaseURL is the root of the event API (e.g. "https://api.example.org")
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	// Timeout bounds each request (default: 10s)
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// Token is sent as a bearer token when non-empty
	Token string `mapstructure:"token" yaml:"token,omitempty"`
}

// RealtimeConfig controls the socket.io channel used for broadcasts
type RealtimeConfig struct {
	// URL of the socket.io server. Empty means api.base_url.
	URL string `mapstructure:"url" yaml:"url"`
	// Namespace is the socket.io namespace ("" or "/" for the default namespace)
	Namespace string `mapstructure:"namespace" yaml:"namespace"`
	// DialTimeout bounds the websocket handshake and socket.io connect (default: 10s)
	DialTimeout time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"`
}

// DashboardConfig controls the view controller
type DashboardConfig struct {
	// Sectors is the ordered list of sector codes shown as tabs
	Sectors []string `mapstructure:"sectors" yaml:"sectors"`
	// DomainOpenLead is how far in the future the broadcast "domain open" time is
	DomainOpenLead time.Duration `mapstructure:"domain_open_lead" yaml:"domain_open_lead"`
}

// TUIConfig controls the terminal dashboard
type TUIConfig struct {
	// ThemeFile is an optional YAML theme file, reloaded when it changes
	ThemeFile string `mapstructure:"theme_file" yaml:"theme_file"`
}

// LoggingConfig controls file logging
type LoggingConfig struct {
	// Enabled controls whether logs are written at all (default: true)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is where hokage.log is written. Empty means the config directory.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// DefaultSectors are the sector codes used by the event.
func DefaultSectors() []string {
	return []string{"456", "067", "101", "001", "218", "199"}
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:5000",
			Timeout: 10 * time.Second,
		},
		Realtime: RealtimeConfig{
			DialTimeout: 10 * time.Second,
		},
		Dashboard: DashboardConfig{
			Sectors:        DefaultSectors(),
			DomainOpenLead: 10 * time.Minute,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}
}

// RealtimeURL returns the socket.io server URL, falling back to the API base URL.
func (c *Config) RealtimeURL() string {
	if c.Realtime.URL != "" {
		return c.Realtime.URL
	}
	return c.API.BaseURL
}

// LogDir returns the resolved log directory.
func (c *Config) LogDir() string {
	if c.Logging.Dir != "" {
		return c.Logging.Dir
	}
	return ConfigDir()
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("api.base_url", defaults.API.BaseURL)
	viper.SetDefault("api.timeout", defaults.API.Timeout)
	viper.SetDefault("api.token", defaults.API.Token)

	viper.SetDefault("realtime.url", defaults.Realtime.URL)
	viper.SetDefault("realtime.namespace", defaults.Realtime.Namespace)
	viper.SetDefault("realtime.dial_timeout", defaults.Realtime.DialTimeout)

	viper.SetDefault("dashboard.sectors", defaults.Dashboard.Sectors)
	viper.SetDefault("dashboard.domain_open_lead", defaults.Dashboard.DomainOpenLead)

	viper.SetDefault("tui.theme_file", defaults.TUI.ThemeFile)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hokage")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hokage"
	}
	return filepath.Join(home, ".config", "hokage")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// SectorIndex returns the index of code in the configured sectors, or -1.
func (d *DashboardConfig) SectorIndex(code string) int {
	return slices.Index(d.Sectors, code)
}
