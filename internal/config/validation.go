package config

import (
	"fmt"
	"strings"

	"github.com/law-makers/stageradar/internal/proxy"
	"github.com/law-makers/stageradar/internal/utils/headers"
	urlutil "github.com/law-makers/stageradar/internal/utils/url"
	"github.com/law-makers/stageradar/pkg/models"
)

var logLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true, "disabled": true,
}

func validate(c *Config) error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if !logLevels[c.LogLevel] {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if err := urlutil.ValidateURL(c.BaseURL); err != nil {
		return fmt.Errorf("base url: %w", err)
	}
	if _, err := models.ParseContractType(c.Contract); err != nil {
		return err
	}
	if c.NavigationTimeout <= 0 {
		return fmt.Errorf("navigation timeout must be > 0")
	}
	if c.ConsentTimeout <= 0 || c.ItemTimeout <= 0 {
		return fmt.Errorf("consent and item timeouts must be > 0")
	}
	if c.PageDelay < 0 {
		return fmt.Errorf("page delay must be >= 0")
	}
	if c.MaxListingsPerPage <= 0 {
		return fmt.Errorf("max listings per page must be > 0")
	}
	if c.Selectors.Result == "" {
		return fmt.Errorf("result selector must not be empty")
	}
	if c.Concurrency <= 0 || c.Concurrency > MaxConcurrency {
		return fmt.Errorf("concurrency must be between 1 and %d", MaxConcurrency)
	}
	if c.NavigateRPS < 0 {
		return fmt.Errorf("navigate rps must be >= 0")
	}
	if _, err := proxy.NewPool(c.Proxies, c.ProxyCooldown); err != nil {
		return err
	}
	if _, err := headers.Parse(c.Headers); err != nil {
		return err
	}
	return nil
}
