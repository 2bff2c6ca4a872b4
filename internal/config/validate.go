package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	switch cfg.Fetcher.Type {
	case "http", "browser", "file":
	default:
		return fmt.Errorf("fetcher.type must be 'http', 'browser' or 'file', got %q", cfg.Fetcher.Type)
	}
	if cfg.Fetcher.Timeout <= 0 {
		return fmt.Errorf("fetcher.timeout must be > 0")
	}
	if cfg.Fetcher.MaxBodySize < 0 {
		return fmt.Errorf("fetcher.max_body_size must be >= 0")
	}
	if cfg.Fetcher.ScrollSteps < 0 {
		return fmt.Errorf("fetcher.scroll_steps must be >= 0")
	}

	if cfg.Sheets.Enabled {
		if _, err := url.Parse(cfg.Sheets.BaseURL); err != nil || cfg.Sheets.BaseURL == "" {
			return fmt.Errorf("sheets.base_url %q is not a valid URL", cfg.Sheets.BaseURL)
		}
		if strings.TrimSpace(cfg.Sheets.SheetName) == "" {
			return fmt.Errorf("sheets.sheet_name must not be empty")
		}
		if cfg.Auth.StaticToken == "" && cfg.Auth.RefreshToken == "" {
			return fmt.Errorf("sheets export needs auth.static_token or auth.refresh_token")
		}
	}

	switch cfg.Storage.Type {
	case "file", "mongodb", "none":
	default:
		return fmt.Errorf("storage.type %q is not supported (valid: file, mongodb, none)", cfg.Storage.Type)
	}
	if cfg.Storage.Type == "mongodb" && cfg.Storage.MongoURI == "" {
		return fmt.Errorf("storage.mongo_uri must be set for the mongodb backend")
	}

	if cfg.API.Port < 1 || cfg.API.Port > 65535 {
		return fmt.Errorf("api.port must be in 1..65535, got %d", cfg.API.Port)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level %q is not supported (valid: debug, info, warn, error)", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}

// ValidateURL checks that a wishlist URL or snapshot path is usable.
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("empty URL")
	}
	if strings.HasPrefix(raw, "file://") || !strings.Contains(raw, "://") {
		return nil // local snapshot path
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return nil
}
