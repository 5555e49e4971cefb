package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Olyastel/Site-parsing/internal/browser"
	"github.com/Olyastel/Site-parsing/internal/config"
	"github.com/Olyastel/Site-parsing/internal/model"
)

// ErrCrawlAborted is wrapped by every run-level failure returned by Run.
var ErrCrawlAborted = errors.New("crawl aborted")

// Crawler extracts the judge directory through a browser.
//
// A Crawler is not safe for concurrent use. It drives one tab at a time and
// the profile tab blocks the main tab while it is open.
type Crawler struct {
	// browser provides the tabs. It is owned by the caller, who closes it.
	browser browser.Browser

	// baseURL is the listing page holding the section tabs.
	baseURL string

	timeouts  config.Timeouts
	delays    config.Delays
	selectors config.Selectors

	logger *slog.Logger

	// progress receives human-readable progress lines.
	progress io.Writer

	// sleep waits for a settle delay. Tests replace it to run instantly.
	sleep func(ctx context.Context, d time.Duration) error

	// text normalizes strings read from the page.
	text *textCleaner
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithTimeouts sets the bounded waits for structural elements.
func WithTimeouts(t config.Timeouts) Option {
	return func(c *Crawler) {
		c.timeouts = t
	}
}

// WithDelays sets the settle delays after each navigation.
func WithDelays(d config.Delays) Option {
	return func(c *Crawler) {
		c.delays = d
	}
}

// WithSelectors replaces the markup description of the site.
func WithSelectors(s config.Selectors) Option {
	return func(c *Crawler) {
		c.selectors = s
	}
}

// WithLogger sets the logger for item-level failures and progress.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// WithProgress sets the writer receiving progress lines.
func WithProgress(w io.Writer) Option {
	return func(c *Crawler) {
		c.progress = w
	}
}

// withSleep replaces the settle delay implementation.
func withSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Crawler) {
		c.sleep = fn
	}
}

// New creates a Crawler that starts from baseURL.
func New(b browser.Browser, baseURL string, opts ...Option) *Crawler {
	c := &Crawler{
		browser:   b,
		baseURL:   baseURL,
		timeouts:  config.DefaultTimeouts(),
		delays:    config.DefaultDelays(),
		selectors: config.DefaultSelectors(),
		logger:    slog.Default(),
		progress:  io.Discard,
		sleep:     sleepContext,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.text = newTextCleaner()
	return c
}

// Run crawls the whole directory.
//
// On a run-level failure Run returns the sections completed so far, plus
// the section in progress, together with an error wrapping ErrCrawlAborted.
// The caller decides whether a partial directory is worth keeping.
func (c *Crawler) Run(ctx context.Context) (dir model.Directory, err error) {
	dir = model.Directory{}

	// current is the section being collected; a panic appends it as is.
	var current *model.Section
	defer func() {
		if r := recover(); r != nil {
			if current != nil {
				dir = append(dir, *current)
			}
			err = fmt.Errorf("%w: panic: %v", ErrCrawlAborted, r)
		}
	}()

	page, err := c.browser.Page(ctx)
	if err != nil {
		return dir, fmt.Errorf("%w: %w", ErrCrawlAborted, err)
	}

	sections := c.sections(ctx, page)
	if err := ctx.Err(); err != nil {
		return dir, fmt.Errorf("%w: %w", ErrCrawlAborted, err)
	}
	c.logger.Info("sections discovered", "count", len(sections))

	for _, ref := range sections {
		section := model.NewSection(ref.Name, ref.Code, nil)
		current = &section
		err := c.crawlSection(ctx, page, ref, current)
		current = nil
		dir = append(dir, section)
		if err != nil {
			return dir, fmt.Errorf("%w: %w", ErrCrawlAborted, err)
		}
	}

	return dir, nil
}

// crawlSection collects the subsections of ref into section as each one
// completes. A non-nil error is run-level.
func (c *Crawler) crawlSection(ctx context.Context, page browser.Page, ref SectionRef, section *model.Section) error {
	fmt.Fprintf(c.progress, "\nProcessing section: %s\n", ref.Name)
	c.logger.Info("processing section", "section", ref.Name, "url", ref.URL)

	refs := c.subsections(ctx, page, ref)

	for _, sub := range refs {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(c.progress, "  Processing subsection: %s\n", sub.Name)
		c.logger.Info("processing subsection", "subsection", sub.Name, "url", sub.URL)

		judges := c.judges(ctx, page, sub.URL)
		section.AddSubsection(model.NewSubsection(sub.Name, sub.URL, sub.Code, judges))
	}

	return ctx.Err()
}

// settle waits for a fixed delay after a navigation.
func (c *Crawler) settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	return c.sleep(ctx, d)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
