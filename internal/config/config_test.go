package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
// Changes to defaults must be intentional, so each one is pinned here.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default BaseURL is the court structure page", func(t *testing.T) {
		t.Parallel()
		if cfg.BaseURL != "https://vsrf.ru/about/structure/" {
			t.Errorf("expected default base URL, got %q", cfg.BaseURL)
		}
	})

	t.Run("default output lives in the XDG data dir", func(t *testing.T) {
		t.Parallel()
		if !strings.HasSuffix(cfg.OutputPath, filepath.Join(AppName, DefaultOutputFile)) {
			t.Errorf("unexpected output path %q", cfg.OutputPath)
		}
	})

	t.Run("default driver is rod", func(t *testing.T) {
		t.Parallel()
		if cfg.Driver != DriverRod {
			t.Errorf("expected driver %q, got %q", DriverRod, cfg.Driver)
		}
	})

	t.Run("default browser is headful", func(t *testing.T) {
		t.Parallel()
		if cfg.Headless {
			t.Error("expected Headless to be false")
		}
	})

	t.Run("default timeouts", func(t *testing.T) {
		t.Parallel()
		want := Timeouts{
			Sections:    20 * time.Second,
			Subsections: 15 * time.Second,
			Judges:      15 * time.Second,
			Detail:      10 * time.Second,
			Navigation:  60 * time.Second,
		}
		if cfg.Timeouts != want {
			t.Errorf("expected %+v, got %+v", want, cfg.Timeouts)
		}
	})

	t.Run("default delays", func(t *testing.T) {
		t.Parallel()
		want := Delays{Listing: 3 * time.Second, Section: 3 * time.Second, Subsection: 3 * time.Second, Detail: 2 * time.Second}
		if cfg.Delays != want {
			t.Errorf("expected %+v, got %+v", want, cfg.Delays)
		}
	})

	t.Run("partial results are discarded by default", func(t *testing.T) {
		t.Parallel()
		if cfg.PersistPartial {
			t.Error("expected PersistPartial to be false")
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr error
	}{
		{name: "defaults are valid", modify: func(*Config) {}, wantErr: nil},
		{name: "empty base URL", modify: func(c *Config) { c.BaseURL = "" }, wantErr: ErrNoBaseURL},
		{name: "relative base URL", modify: func(c *Config) { c.BaseURL = "/about/structure/" }, wantErr: ErrInvalidBaseURL},
		{name: "ftp base URL", modify: func(c *Config) { c.BaseURL = "ftp://vsrf.ru/" }, wantErr: ErrInvalidBaseURL},
		{name: "empty output", modify: func(c *Config) { c.OutputPath = "" }, wantErr: ErrNoOutputPath},
		{
			name: "markdown equals output",
			modify: func(c *Config) {
				c.OutputPath = "out/judges.json"
				c.MarkdownPath = "./out/judges.json"
			},
			wantErr: ErrConflictingOutputs,
		},
		{name: "unknown driver", modify: func(c *Config) { c.Driver = "selenium" }, wantErr: ErrUnknownDriver},
		{name: "static driver is valid", modify: func(c *Config) { c.Driver = DriverStatic }, wantErr: nil},
		{name: "zero detail timeout", modify: func(c *Config) { c.Timeouts.Detail = 0 }, wantErr: ErrInvalidTimeout},
		{name: "negative delay", modify: func(c *Config) { c.Delays.Detail = -time.Second }, wantErr: ErrInvalidDelay},
		{name: "zero delay is valid", modify: func(c *Config) { c.Delays = Delays{} }, wantErr: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid YAML returns error", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("baseURL: [unterminated"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("parses every section", func(t *testing.T) {
		t.Parallel()
		content := `
baseURL: https://mirror.example.com/structure/
output: /tmp/out/judges.json
driver: static
browser:
  bin: /usr/bin/chromium
  headless: true
timeouts:
  detail: 30s
delays:
  detail: 500ms
selectors:
  detailName: h1.name
persistPartial: true
`
		path := filepath.Join(t.TempDir(), ".courtscan")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("failed to load: %v", err)
		}
		if cf.BaseURL != "https://mirror.example.com/structure/" {
			t.Errorf("unexpected baseURL %q", cf.BaseURL)
		}
		if cf.Browser.Headless == nil || !*cf.Browser.Headless {
			t.Error("expected headless true")
		}
		if cf.Timeouts.Detail != 30*time.Second {
			t.Errorf("expected 30s detail timeout, got %v", cf.Timeouts.Detail)
		}
		if cf.Delays.Detail == nil || *cf.Delays.Detail != 500*time.Millisecond {
			t.Errorf("expected 500ms detail delay, got %v", cf.Delays.Detail)
		}
		if cf.Selectors.DetailName != "h1.name" {
			t.Errorf("unexpected detailName %q", cf.Selectors.DetailName)
		}
		if !cf.PersistPartial {
			t.Error("expected persistPartial true")
		}
	})
}

func TestFileApply(t *testing.T) {
	t.Parallel()

	headless := true
	cf := &File{
		BaseURL:  "https://mirror.example.com/",
		Output:   "out.json",
		Driver:   DriverStatic,
		Browser:  BrowserFile{Bin: "/opt/chrome", Headless: &headless},
		Timeouts: Timeouts{Detail: 42 * time.Second},
		Selectors: Selectors{
			CardName: "h3 a",
		},
	}

	cfg := NewConfig()
	if err := cf.Apply(cfg); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if cfg.BaseURL != "https://mirror.example.com/" || cfg.OutputPath != "out.json" || cfg.Driver != DriverStatic {
		t.Errorf("scalar fields not applied: %+v", cfg)
	}
	if cfg.BrowserBin != "/opt/chrome" || !cfg.Headless {
		t.Errorf("browser settings not applied: bin=%q headless=%v", cfg.BrowserBin, cfg.Headless)
	}

	t.Run("overridden timeout is kept", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeouts.Detail != 42*time.Second {
			t.Errorf("expected 42s, got %v", cfg.Timeouts.Detail)
		}
	})

	t.Run("other timeouts keep defaults", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeouts.Sections != DefaultSectionsTimeout {
			t.Errorf("expected default sections timeout, got %v", cfg.Timeouts.Sections)
		}
	})

	t.Run("single selector override", func(t *testing.T) {
		t.Parallel()
		if cfg.Selectors.CardName != "h3 a" {
			t.Errorf("expected overridden CardName, got %q", cfg.Selectors.CardName)
		}
		if cfg.Selectors.PersonsList != DefaultSelectors().PersonsList {
			t.Errorf("expected default PersonsList, got %q", cfg.Selectors.PersonsList)
		}
	})

	t.Run("delays keep defaults", func(t *testing.T) {
		t.Parallel()
		if cfg.Delays != DefaultDelays() {
			t.Errorf("expected default delays, got %+v", cfg.Delays)
		}
	})
}

func TestFileApplyZeroDelay(t *testing.T) {
	t.Parallel()

	content := `
delays:
  listing: 0s
  detail: 250ms
`
	path := filepath.Join(t.TempDir(), ".courtscan")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cf, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	cfg := NewConfig()
	if err := cf.Apply(cfg); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	want := Delays{
		Listing:    0,
		Section:    DefaultSectionDelay,
		Subsection: DefaultSubsectionDelay,
		Detail:     250 * time.Millisecond,
	}
	if cfg.Delays != want {
		t.Errorf("expected %+v, got %+v", want, cfg.Delays)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero delay config is invalid: %v", err)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
			t.Fatal(err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit missing path", func(t *testing.T) {
		t.Parallel()
		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); got != "" {
			t.Errorf("expected empty result, got %q", got)
		}
	})
}
