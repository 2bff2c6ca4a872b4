package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wishgrab/wishgrab/internal/api"
	"github.com/wishgrab/wishgrab/internal/auth"
	"github.com/wishgrab/wishgrab/internal/config"
	"github.com/wishgrab/wishgrab/internal/extract"
	"github.com/wishgrab/wishgrab/internal/fetcher"
	"github.com/wishgrab/wishgrab/internal/sheets"
	"github.com/wishgrab/wishgrab/internal/storage"
	"github.com/wishgrab/wishgrab/internal/types"
)

var (
	cfgFile     string
	verbose     bool
	fetcherType string
	outputPath  string
	exportSheet bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wishgrab",
		Short: "wishgrab — Airbnb wishlist extractor with spreadsheet export",
		Long: `wishgrab extracts structured listing records from a rendered Airbnb
wishlist page and pushes them into a spreadsheet.

The page markup is third-party and changes without notice, so every field
is extracted through layered fallback selectors with per-field fault
isolation: a broken field yields an empty cell, never a lost listing.`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// extractCmd creates the "extract" subcommand.
func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [url|snapshot-file]",
		Short: "Run one extraction over a wishlist page",
		Long: `Fetch (or render, or read from disk) a wishlist page, extract all
listing records, and print or persist the result.`,
		Args: cobra.ExactArgs(1),
		RunE: runExtract,
	}

	cmd.Flags().StringVarP(&fetcherType, "fetcher", "F", "", "fetcher: browser, http, file (default from config)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (overrides config)")
	cmd.Flags().BoolVar(&exportSheet, "sheet", false, "export records to the configured spreadsheet")

	return cmd
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	target := args[0]
	if err := config.ValidateURL(target); err != nil {
		return fmt.Errorf("invalid target %q: %w", target, err)
	}

	f, err := buildFetcher(cfg, target, logger)
	if err != nil {
		return fmt.Errorf("create fetcher: %w", err)
	}
	defer f.Close()

	ctx := cmd.Context()
	page, err := f.Fetch(ctx, target)
	if err != nil {
		return fmt.Errorf("fetch wishlist page: %w", err)
	}

	result := extract.NewSession(logger).Run(page)
	if !result.Success {
		if result.Error == extract.NoCardsMessage {
			return &types.ExtractError{URL: target, Err: types.ErrNoCards}
		}
		return &types.ExtractError{URL: target, Err: errors.New(result.Error)}
	}

	logger.Info("extraction finished",
		"wishlist", result.WishlistName, "records", len(result.Data))

	if err := persist(ctx, cfg, logger, result.WishlistName, result); err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// persist stores and/or exports a successful run per config and flags.
func persist(ctx context.Context, cfg *config.Config, logger *slog.Logger, wishlist string, result types.ExtractionResult) error {
	if outputPath != "" {
		cfg.Storage.Type = "file"
		cfg.Storage.OutputPath = outputPath
	}

	store, err := storage.FromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("create storage: %w", err)
	}
	if store != nil {
		defer store.Close()
		if err := store.Store(ctx, wishlist, result.Data); err != nil {
			return fmt.Errorf("store records: %w", err)
		}
	}

	if exportSheet || cfg.Sheets.Enabled {
		tokens := auth.FromConfig(cfg, logger)
		client := sheets.NewClient(cfg, tokens, logger)
		doc, err := sheets.NewExporter(client, cfg, logger).Export(ctx, result.Data, wishlist)
		if err != nil {
			return fmt.Errorf("sheet export: %w", err)
		}
		logger.Info("spreadsheet ready", "url", doc.URL)
	}

	return nil
}

// serveCmd creates the "serve" subcommand.
func serveCmd() *cobra.Command {
	var wishlistURL string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the host messaging server",
		Long: `Expose the extraction engine over the host request/response channel:
POST /api/extract triggers a run, GET /api/ping probes readiness.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if wishlistURL == "" {
				return fmt.Errorf("--url is required")
			}

			f, err := buildFetcher(cfg, wishlistURL, logger)
			if err != nil {
				return fmt.Errorf("create fetcher: %w", err)
			}
			defer f.Close()

			srv := api.NewServer(cfg.API.Port, wishlistURL, f, logger)

			if cfg.Sheets.Enabled {
				tokens := auth.FromConfig(cfg, logger)
				client := sheets.NewClient(cfg, tokens, logger)
				srv.SetExporter(sheets.NewExporter(client, cfg, logger))
			}
			store, err := storage.FromConfig(cfg, logger)
			if err != nil {
				return fmt.Errorf("create storage: %w", err)
			}
			if store != nil {
				defer store.Close()
				srv.SetStorage(store)
			}

			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVarP(&wishlistURL, "url", "u", "", "wishlist page URL to extract on request")
	return cmd
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("wishgrab %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}
}

// setup loads configuration and builds the root logger.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, newLogger(&cfg.Logging), nil
}

// newLogger builds the slog root logger from the logging config.
func newLogger(cfg *config.Logging) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// buildFetcher picks the fetcher for a target: explicit flag first, then a
// local path heuristic, then the configured default.
func buildFetcher(cfg *config.Config, target string, logger *slog.Logger) (fetcher.Fetcher, error) {
	ftype := cfg.Fetcher.Type
	if fetcherType != "" {
		ftype = fetcherType
	} else if strings.HasPrefix(target, "file://") || !strings.Contains(target, "://") {
		ftype = "file"
	}

	switch ftype {
	case "file":
		return fetcher.NewFileFetcher(logger), nil
	case "http":
		return fetcher.NewHTTPFetcher(cfg, logger)
	case "browser":
		return fetcher.NewBrowserFetcher(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown fetcher type %q", ftype)
	}
}
