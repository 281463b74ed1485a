package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// loadFile overlays the YAML file at path on cfg. Keys absent from the file
// keep their current value.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// loadDotEnv reads .env from the working directory into the process
// environment. Variables already set are left alone and a missing file is fine.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load .env: %w", err)
}

func lookupEnv(key string) string {
	return strings.TrimSpace(os.Getenv(EnvPrefix + key))
}

// applyEnv overrides cfg with STAGERADAR_* variables
func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"LOG_LEVEL":   &cfg.LogLevel,
		"BASE_URL":    &cfg.BaseURL,
		"COUNTRY":     &cfg.Country,
		"CONTRACT":    &cfg.Contract,
		"CHROME_PATH": &cfg.ChromePath,
		"USER_AGENT":  &cfg.UserAgent,
		"OUTPUT":      &cfg.Output,
	}
	for key, dst := range strs {
		if v := lookupEnv(key); v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"NAVIGATION_TIMEOUT": &cfg.NavigationTimeout,
		"CONSENT_TIMEOUT":    &cfg.ConsentTimeout,
		"ITEM_TIMEOUT":       &cfg.ItemTimeout,
		"PAGE_DELAY":         &cfg.PageDelay,
	}
	for key, dst := range durations {
		if v := lookupEnv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
			}
			*dst = d
		}
	}

	bools := map[string]*bool{
		"JSON_LOG": &cfg.JSONLog,
		"DEDUPE":   &cfg.Dedupe,
		"HEADLESS": &cfg.Headless,
	}
	for key, dst := range bools {
		if v := lookupEnv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
			}
			*dst = b
		}
	}

	ints := map[string]*int{
		"MAX_LISTINGS_PER_PAGE": &cfg.MaxListingsPerPage,
		"NAVIGATE_BURST":        &cfg.NavigateBurst,
		"CONCURRENCY":           &cfg.Concurrency,
	}
	for key, dst := range ints {
		if v := lookupEnv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
			}
			*dst = n
		}
	}

	if v := lookupEnv("NAVIGATE_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sNAVIGATE_RPS: %w", EnvPrefix, err)
		}
		cfg.NavigateRPS = rps
	}
	if v := lookupEnv("PROXY"); v != "" {
		cfg.Proxies = splitList(v)
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
