package config

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Log in JSON format")
	cmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	cmd.PersistentFlags().StringSlice("proxy", nil, "HTTP/SOCKS5 proxy for the browser, repeatable (e.g., http://localhost:8080)")
	cmd.PersistentFlags().String("timeout", "", "Maximum wait for a results page (e.g., 15s)")
	cmd.PersistentFlags().String("user-agent", "", "Browser user agent string")
	cmd.PersistentFlags().Bool("headless", DefaultHeadless, "Run the browser without a window")
	cmd.PersistentFlags().String("chrome-path", "", "Path to the Chrome executable")
	cmd.PersistentFlags().StringArrayP("header", "H", nil, "Extra request header \"Key: Value\", repeatable")
	cmd.PersistentFlags().String("delay", "", "Pause between result pages (e.g., 2s)")
	cmd.PersistentFlags().Int("concurrency", 0, "Searches run in parallel when several terms are given")
}

// applyFlags overrides cfg with flags the user actually set
func applyFlags(cfg *Config, cmd *cobra.Command) error {
	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	if changed("verbose") {
		if v, _ := flags.GetBool("verbose"); v {
			cfg.LogLevel = "debug"
		}
	}
	if changed("quiet") {
		if q, _ := flags.GetBool("quiet"); q {
			cfg.LogLevel = "error"
		}
	}
	if changed("json") {
		cfg.JSONLog, _ = flags.GetBool("json")
	}
	if changed("proxy") {
		cfg.Proxies, _ = flags.GetStringSlice("proxy")
	}
	if changed("timeout") {
		s, _ := flags.GetString("timeout")
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid --timeout: %w", err)
		}
		cfg.NavigationTimeout = d
	}
	if changed("delay") {
		s, _ := flags.GetString("delay")
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid --delay: %w", err)
		}
		cfg.PageDelay = d
	}
	if changed("user-agent") {
		cfg.UserAgent, _ = flags.GetString("user-agent")
	}
	if changed("headless") {
		cfg.Headless, _ = flags.GetBool("headless")
	}
	if changed("chrome-path") {
		cfg.ChromePath, _ = flags.GetString("chrome-path")
	}
	if changed("header") {
		h, _ := flags.GetStringArray("header")
		cfg.Headers = append(cfg.Headers, h...)
	}
	if changed("concurrency") {
		cfg.Concurrency, _ = flags.GetInt("concurrency")
	}
	return nil
}
