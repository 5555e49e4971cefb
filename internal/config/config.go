package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The timeouts and delays are the ones the court site has been observed to
// need: its pages render client-side and give no "ready" signal, so fixed
// settle delays follow every navigation.
const (
	// DefaultBaseURL is the court's organization structure page.
	DefaultBaseURL = "https://vsrf.ru/about/structure/"

	// DefaultOutputFile is the file name of the JSON document inside the
	// XDG data directory.
	DefaultOutputFile = "judges_data.json"

	// AppName is the application name used for XDG directory paths.
	AppName = "courtscan"

	// DriverRod drives a real Chromium through the DevTools protocol.
	DriverRod = "rod"

	// DriverStatic fetches pages over plain HTTP and queries them with
	// goquery. It only works for server-rendered mirrors of the site.
	DriverStatic = "static"

	// DefaultSectionsTimeout bounds the wait for the section tab table.
	DefaultSectionsTimeout = 20 * time.Second

	// DefaultSubsectionsTimeout bounds the wait for the subsection menu.
	DefaultSubsectionsTimeout = 15 * time.Second

	// DefaultJudgesTimeout bounds the wait for the persons list.
	DefaultJudgesTimeout = 15 * time.Second

	// DefaultDetailTimeout bounds the wait for the profile name heading.
	DefaultDetailTimeout = 10 * time.Second

	// DefaultNavigationTimeout bounds a single page navigation.
	DefaultNavigationTimeout = 60 * time.Second

	// DefaultListingDelay is the settle delay after opening the listing page.
	DefaultListingDelay = 3 * time.Second

	// DefaultSectionDelay is the settle delay after opening a section page.
	DefaultSectionDelay = 3 * time.Second

	// DefaultSubsectionDelay is the settle delay after opening a subsection page.
	DefaultSubsectionDelay = 3 * time.Second

	// DefaultDetailDelay is the settle delay after opening a profile tab.
	DefaultDetailDelay = 2 * time.Second
)

// Config holds all configuration options for courtscan.
// This struct is populated from defaults, then the config file, then CLI
// flags, and is passed through the application rather than kept global.
type Config struct {
	// BaseURL is the listing page that carries the section tabs.
	BaseURL string

	// OutputPath is the JSON document written at the end of the run.
	// Parent directories are created automatically.
	OutputPath string

	// MarkdownPath, when set, receives a Markdown rendering of the directory.
	MarkdownPath string

	// Driver selects the browser implementation: DriverRod or DriverStatic.
	Driver string

	// BrowserBin is the path to a Chromium-family executable. When empty,
	// rod looks for a local install and downloads one if needed.
	BrowserBin string

	// Headless runs the browser without a window. The court site is
	// crawled headful by default.
	Headless bool

	// Timeouts are the bounded element waits.
	Timeouts Timeouts

	// Delays are the fixed settle delays after navigation.
	Delays Delays

	// Selectors describe the site's markup.
	Selectors Selectors

	// PersistPartial writes the collected tree even when the crawl ends with
	// a run-level failure. When false a failed run writes nothing.
	PersistPartial bool

	// Archive stores the run in the SQLite archive under ArchiveDir.
	Archive bool

	// ArchiveDir is the directory holding the archive database.
	ArchiveDir string

	// Verbose enables debug logging.
	Verbose bool

	// JSONLogs switches log output from text to JSON.
	JSONLogs bool

	// ConfigFilePath is the explicit config file path, if any.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		BaseURL:    DefaultBaseURL,
		OutputPath: filepath.Join(XDGDataDir(), DefaultOutputFile),
		Driver:     DriverRod,
		Timeouts:   DefaultTimeouts(),
		Delays:     DefaultDelays(),
		Selectors:  DefaultSelectors(),
		ArchiveDir: XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for courtscan.
// On Linux: ~/.local/share/courtscan
// On macOS: ~/Library/Application Support/courtscan
// On Windows: %LOCALAPPDATA%\courtscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for courtscan.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrNoBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}

	if c.OutputPath == "" {
		return ErrNoOutputPath
	}

	if c.MarkdownPath != "" && filepath.Clean(c.MarkdownPath) == filepath.Clean(c.OutputPath) {
		return ErrConflictingOutputs
	}

	switch c.Driver {
	case DriverRod, DriverStatic:
	default:
		return ErrUnknownDriver
	}

	if !c.Timeouts.valid() {
		return ErrInvalidTimeout
	}

	if !c.Delays.valid() {
		return ErrInvalidDelay
	}

	return nil
}
