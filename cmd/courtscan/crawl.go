package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Olyastel/Site-parsing/internal/browser"
	"github.com/Olyastel/Site-parsing/internal/config"
	"github.com/Olyastel/Site-parsing/internal/crawler"
	"github.com/Olyastel/Site-parsing/internal/database"
	"github.com/Olyastel/Site-parsing/internal/log"
	"github.com/Olyastel/Site-parsing/internal/model"
	"github.com/Olyastel/Site-parsing/internal/pipeline"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Collect the judge directory into a JSON file",
		Long: `Crawl opens the court's structure page and collects every section,
subsection and judge, including the details from each judge's profile.

The result is written as one JSON document once the traversal is complete.
Nothing is written when no section was found.

Examples:
  # Crawl with the defaults (headful Chromium, XDG data directory)
  courtscan crawl

  # Write to a specific file and also render Markdown
  courtscan crawl -o data/judges_data.json --markdown data/judges.md

  # Use a local Chromium without a window
  courtscan crawl --browser-bin /usr/bin/chromium --headless

  # Keep what was collected when the run is interrupted
  courtscan crawl --persist-partial --archive`,
		Args: cobra.NoArgs,
		RunE: runCrawlCmd,
	}

	// Target and output flags
	cmd.Flags().String("url", config.DefaultBaseURL,
		"Court structure page listing the sections")
	cmd.Flags().StringP("output", "o", "",
		"JSON output file (creates directories if needed, default: XDG data directory)")
	cmd.Flags().StringP("markdown", "m", "",
		"Also write a Markdown rendering of the directory to this file")

	// Browser flags
	cmd.Flags().String("driver", config.DriverRod,
		"Browser driver: rod (Chromium) or static (plain HTTP)")
	cmd.Flags().String("browser-bin", "",
		"Chromium executable (default: locate or download one)")
	cmd.Flags().Bool("headless", false,
		"Run the browser without a window")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .courtscan in current or home directory)")

	// Run behavior flags
	cmd.Flags().Bool("persist-partial", false,
		"Write the collected directory even when the crawl fails midway")
	cmd.Flags().Bool("archive", false,
		"Store the run in the local archive (see 'courtscan history')")
	cmd.Flags().String("archive-dir", "",
		"Archive directory (default: XDG data directory)")
	cmd.Flags().Bool("breakdown", false,
		"Print per-section counts after the run")
	cmd.Flags().Bool("json-logs", false,
		"Write logs as JSON")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	perSection, err := cmd.Flags().GetBool("breakdown")
	if err != nil {
		return err
	}

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runCrawl(ctx, cfg, logger, cmd.OutOrStdout(), perSection)
}

// buildConfig layers defaults, the config file and explicitly set flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently keep the defaults if no file found.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := file.Apply(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply config file %s: %w", configPath, err)
		}
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		if cfg.BaseURL, err = flags.GetString("url"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("output") {
		if cfg.OutputPath, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("markdown") {
		if cfg.MarkdownPath, err = flags.GetString("markdown"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("driver") {
		if cfg.Driver, err = flags.GetString("driver"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("browser-bin") {
		if cfg.BrowserBin, err = flags.GetString("browser-bin"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("headless") {
		if cfg.Headless, err = flags.GetBool("headless"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("persist-partial") {
		if cfg.PersistPartial, err = flags.GetBool("persist-partial"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("archive") {
		if cfg.Archive, err = flags.GetBool("archive"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("archive-dir") {
		if cfg.ArchiveDir, err = flags.GetString("archive-dir"); err != nil {
			return nil, err
		}
	}

	cfg.JSONLogs, err = flags.GetBool("json-logs")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// setupLogger creates a structured logger based on the configuration.
func setupLogger(cfg *config.Config) *slog.Logger {
	if cfg.JSONLogs {
		return log.NewJSONLogger(os.Stderr, cfg.Verbose)
	}
	return log.NewLogger(os.Stderr, cfg.Verbose)
}

// newBrowser starts the browser selected by cfg.Driver.
func newBrowser(ctx context.Context, cfg *config.Config, logger *slog.Logger) (browser.Browser, error) {
	switch cfg.Driver {
	case config.DriverStatic:
		return browser.NewStatic(browser.NewHTTPFetcher(cfg.Timeouts.Navigation)), nil
	default:
		return browser.LaunchRod(ctx, browser.RodOptions{
			Bin:               cfg.BrowserBin,
			Headless:          cfg.Headless,
			NavigationTimeout: cfg.Timeouts.Navigation,
			Logger:            logger,
		})
	}
}

// runCrawl executes one crawl and its output steps.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer, perSection bool) error {
	logger.Info("starting crawl",
		"url", cfg.BaseURL,
		"driver", cfg.Driver,
		"output", cfg.OutputPath,
		"persistPartial", cfg.PersistPartial,
	)

	// Printed on every path, after the browser has been closed.
	start := time.Now()
	defer func() {
		fmt.Fprintf(out, "\nWork finished in %s\n", time.Since(start).Round(time.Millisecond))
	}()

	// The archive is opened before the browser is launched.
	var archive *database.Archive
	if cfg.Archive {
		var err error
		archive, err = database.Open(cfg.ArchiveDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer archive.Close()
		logger.Info("archive opened", "dir", cfg.ArchiveDir)
	}

	b, err := newBrowser(ctx, cfg, logger)
	if err != nil {
		logger.Error("critical error", "error", err)
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			logger.Warn("failed to close browser", "error", err)
		}
	}()

	c := crawler.New(b, cfg.BaseURL,
		crawler.WithTimeouts(cfg.Timeouts),
		crawler.WithDelays(cfg.Delays),
		crawler.WithSelectors(cfg.Selectors),
		crawler.WithLogger(logger),
		crawler.WithProgress(out),
	)

	p := pipeline.New(
		pipeline.WithLogger(logger),
		pipeline.WithContinueOnError(cfg.PersistPartial),
	)
	p.AddStep(pipeline.NewCrawlStep(c))
	p.AddStep(pipeline.NewWriteJSONStep(cfg.OutputPath, logger))
	if cfg.MarkdownPath != "" {
		p.AddStep(pipeline.NewWriteMarkdownStep(cfg.MarkdownPath))
	}

	if archive != nil {
		p.AddStep(pipeline.NewArchiveStep(archive, logger))
	}

	p.AddStep(pipeline.NewSummaryStep(out, perSection))

	fmt.Fprintf(out, "Collecting judges from %s\n", cfg.BaseURL)

	run := model.NewRun(cfg.BaseURL)
	if err := p.Execute(ctx, run); err != nil {
		logger.Error("critical error", "error", err, "partial", run.Partial)
		return err
	}

	if len(run.Directory) == 0 {
		fmt.Fprintln(out, "\nNo sections found, nothing written")
	}
	return nil
}
