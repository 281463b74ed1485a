package config

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// Selectors are the CSS selectors of the job board's result page
type Selectors struct {
	Result string `yaml:"result"`
	// Ready signals a loaded results page; empty means Result
	Ready    string `yaml:"ready"`
	Anchor   string `yaml:"anchor"`
	Location string `yaml:"location"`
	Consent  string `yaml:"consent"`
}

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string `yaml:"log_level"`
	JSONLog  bool   `yaml:"json_log"`

	// Job board
	BaseURL  string `yaml:"base_url"`
	Country  string `yaml:"country"`
	Contract string `yaml:"contract"`

	// Crawl pacing
	NavigationTimeout  time.Duration `yaml:"navigation_timeout"`
	ConsentTimeout     time.Duration `yaml:"consent_timeout"`
	ItemTimeout        time.Duration `yaml:"item_timeout"`
	PageDelay          time.Duration `yaml:"page_delay"`
	MaxListingsPerPage int           `yaml:"max_listings_per_page"`
	Dedupe             bool          `yaml:"dedupe"`

	Selectors Selectors `yaml:"selectors"`

	// Browser
	Headless      bool          `yaml:"headless"`
	ChromePath    string        `yaml:"chrome_path"`
	UserAgent     string        `yaml:"user_agent"`
	Proxies       []string      `yaml:"proxies"`
	ProxyCooldown time.Duration `yaml:"proxy_cooldown"`
	Headers       []string      `yaml:"headers"`

	// Rate limiting, per host and shared by concurrent searches
	NavigateRPS   float64 `yaml:"navigate_rps"`
	NavigateBurst int     `yaml:"navigate_burst"`

	// Batch
	Concurrency int `yaml:"concurrency"`

	Output string `yaml:"output"`
}

// Load builds a Config by layering defaults, the YAML file named by --config,
// a .env file, STAGERADAR_* environment variables and finally CLI flags.
// Caller should pass the command being executed so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := Defaults()

	path := lookupEnv("CONFIG")
	if cmd != nil {
		if f := cmd.Flags().Lookup("config"); f != nil && f.Value.String() != "" {
			path = f.Value.String()
		}
	}
	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cmd != nil {
		if err := applyFlags(cfg, cmd); err != nil {
			return nil, err
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// NavigateInterval converts NavigateRPS into the spacing between navigations
func (c *Config) NavigateInterval() time.Duration {
	if c.NavigateRPS <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / c.NavigateRPS)
}
