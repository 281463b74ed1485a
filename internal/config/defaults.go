package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel           = "info"
	DefaultJSONLog            = false
	DefaultBaseURL            = "https://www.welcometothejungle.com"
	DefaultCountry            = "FR"
	DefaultContract           = "internship"
	DefaultNavigationTimeout  = 15 * time.Second
	DefaultConsentTimeout     = 5 * time.Second
	DefaultItemTimeout        = 2 * time.Second
	DefaultPageDelay          = 2 * time.Second
	DefaultMaxListingsPerPage = 30
	DefaultDedupe             = true
	DefaultHeadless           = true
	DefaultUserAgent          = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	DefaultNavigateRPS        = 1.0
	DefaultNavigateBurst      = 2
	DefaultConcurrency        = 2
	MaxConcurrency            = 8
	DefaultOutput             = "resultats_stages.xlsx"
	DefaultProxyCooldown      = 5 * time.Minute

	DefaultResultSelector   = "li[data-testid='search-results-list-item-wrapper']"
	DefaultAnchorSelector   = "a"
	DefaultLocationSelector = "div[data-testid='job-location']"
	DefaultConsentSelector  = "#axeptio_btn_acceptAll"

	// EnvPrefix prefixes every environment override
	EnvPrefix = "STAGERADAR_"
)

// Defaults returns a Config holding only default values
func Defaults() *Config {
	return &Config{
		LogLevel:           DefaultLogLevel,
		JSONLog:            DefaultJSONLog,
		BaseURL:            DefaultBaseURL,
		Country:            DefaultCountry,
		Contract:           DefaultContract,
		NavigationTimeout:  DefaultNavigationTimeout,
		ConsentTimeout:     DefaultConsentTimeout,
		ItemTimeout:        DefaultItemTimeout,
		PageDelay:          DefaultPageDelay,
		MaxListingsPerPage: DefaultMaxListingsPerPage,
		Dedupe:             DefaultDedupe,
		Selectors: Selectors{
			Result:   DefaultResultSelector,
			Anchor:   DefaultAnchorSelector,
			Location: DefaultLocationSelector,
			Consent:  DefaultConsentSelector,
		},
		Headless:      DefaultHeadless,
		UserAgent:     DefaultUserAgent,
		ProxyCooldown: DefaultProxyCooldown,
		NavigateRPS:   DefaultNavigateRPS,
		NavigateBurst: DefaultNavigateBurst,
		Concurrency:   DefaultConcurrency,
		Output:        DefaultOutput,
	}
}
