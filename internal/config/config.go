package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for wishgrab.
type Config struct {
	Fetcher Fetcher `mapstructure:"fetcher" yaml:"fetcher"`
	Sheets  Sheets  `mapstructure:"sheets"  yaml:"sheets"`
	Auth    Auth    `mapstructure:"auth"    yaml:"auth"`
	Storage Storage `mapstructure:"storage" yaml:"storage"`
	API     API     `mapstructure:"api"     yaml:"api"`
	Logging Logging `mapstructure:"logging" yaml:"logging"`
}

type (
	// Fetcher controls how wishlist pages are acquired.
	Fetcher struct {
		// Type selects the fetcher: "browser", "http", or "file".
		Type string `mapstructure:"type" yaml:"type"`

		// Timeout bounds a single fetch/render.
		Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

		// UserAgent is sent on plain HTTP fetches.
		UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`

		// MaxBodySize caps the response body in bytes (0 = unlimited).
		MaxBodySize int64 `mapstructure:"max_body_size" yaml:"max_body_size"`

		// Headless controls browser visibility.
		Headless bool `mapstructure:"headless" yaml:"headless"`

		// ScrollSteps is how many viewport-height scrolls to perform so
		// lazily rendered cards enter the DOM.
		ScrollSteps int `mapstructure:"scroll_steps" yaml:"scroll_steps"`

		// ScrollPause is the wait between scroll steps.
		ScrollPause time.Duration `mapstructure:"scroll_pause" yaml:"scroll_pause"`
	}

	// Sheets controls the tabular-document export.
	Sheets struct {
		Enabled   bool   `mapstructure:"enabled"    yaml:"enabled"`
		BaseURL   string `mapstructure:"base_url"   yaml:"base_url"`
		SheetName string `mapstructure:"sheet_name" yaml:"sheet_name"`
		DocTitle  string `mapstructure:"doc_title"  yaml:"doc_title"`

		// DocID reuses an existing document instead of creating one.
		DocID string `mapstructure:"doc_id" yaml:"doc_id"`
	}

	// Auth configures the delegated-authorization token source.
	Auth struct {
		TokenURL     string `mapstructure:"token_url"     yaml:"token_url"`
		ClientID     string `mapstructure:"client_id"     yaml:"client_id"`
		ClientSecret string `mapstructure:"client_secret" yaml:"client_secret"`
		RefreshToken string `mapstructure:"refresh_token" yaml:"refresh_token"`

		// StaticToken bypasses the refresh flow when set (dev/test).
		StaticToken string `mapstructure:"static_token" yaml:"static_token"`
	}

	// Storage controls local/remote record persistence.
	Storage struct {
		// Type selects the backend: "file", "mongodb", or "none".
		Type       string `mapstructure:"type"        yaml:"type"`
		OutputPath string `mapstructure:"output_path" yaml:"output_path"`

		MongoURI        string `mapstructure:"mongo_uri"        yaml:"mongo_uri"`
		MongoDatabase   string `mapstructure:"mongo_database"   yaml:"mongo_database"`
		MongoCollection string `mapstructure:"mongo_collection" yaml:"mongo_collection"`
	}

	// API controls the host messaging server.
	API struct {
		Port int `mapstructure:"port" yaml:"port"`
	}

	// Logging controls logging behavior.
	Logging struct {
		Level  string `mapstructure:"level"  yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	}
)

// FetcherConfig is the fetcher section type used by the fetcher package.
type FetcherConfig = Fetcher

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Fetcher: Fetcher{
			Type:        "browser",
			Timeout:     45 * time.Second,
			UserAgent:   "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			MaxBodySize: 10 * 1024 * 1024,
			Headless:    true,
			ScrollSteps: 6,
			ScrollPause: 400 * time.Millisecond,
		},
		Sheets: Sheets{
			Enabled:   false,
			BaseURL:   "https://sheets.googleapis.com",
			SheetName: "Listings",
			DocTitle:  "Airbnb Wishlist",
		},
		Auth: Auth{
			TokenURL: "https://oauth2.googleapis.com/token",
		},
		Storage: Storage{
			Type:            "file",
			OutputPath:      "./listings.json",
			MongoDatabase:   "wishgrab",
			MongoCollection: "listings",
		},
		API: API{
			Port: 8750,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}
