package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodOptions configures the Chromium session.
type RodOptions struct {
	// Bin is the browser executable. Empty lets the launcher find or
	// download one.
	Bin string

	// Headless hides the browser window.
	Headless bool

	// NavigationTimeout bounds a single navigation including page load.
	NavigationTimeout time.Duration

	// Logger receives session lifecycle messages.
	Logger *slog.Logger
}

// Rod is a Browser backed by Chromium through the DevTools protocol.
type Rod struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	opts     RodOptions

	mu   sync.Mutex
	main *rodPage
}

// LaunchRod starts Chromium with a maximized window, GPU disabled and
// verbose browser logging suppressed, then connects to it.
func LaunchRod(ctx context.Context, opts RodOptions) (*Rod, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.NavigationTimeout <= 0 {
		opts.NavigationTimeout = 60 * time.Second
	}

	l := launcher.New().
		Context(ctx).
		Headless(opts.Headless).
		Leakless(true).
		Set("start-maximized").
		Set("disable-gpu").
		Set("log-level", "3").
		Delete("enable-logging")
	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	// Keep the real window size instead of rod's emulated default viewport.
	b = b.NoDefaultDevice()

	opts.Logger.Debug("browser started", "control_url", u, "headless", opts.Headless)

	return &Rod{launcher: l, browser: b, opts: opts}, nil
}

// Page returns the main tab.
func (r *Rod) Page(ctx context.Context) (Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.main != nil {
		return r.main, nil
	}

	p, err := r.newPage()
	if err != nil {
		return nil, err
	}
	r.main = p
	return p, nil
}

// Close shuts the browser down and removes its profile directory.
func (r *Rod) Close() error {
	err := r.browser.Close()
	r.launcher.Kill()
	r.launcher.Cleanup()
	r.opts.Logger.Debug("browser closed")
	if err != nil {
		return fmt.Errorf("failed to close browser: %w", err)
	}
	return nil
}

func (r *Rod) newPage() (*rodPage, error) {
	p, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("failed to open tab: %w", err)
	}
	return &rodPage{owner: r, page: p}, nil
}

type rodPage struct {
	owner *Rod
	page  *rod.Page
	url   string
}

func (p *rodPage) URL() string {
	info, err := p.page.Info()
	if err != nil || info == nil || info.URL == "" {
		return p.url
	}
	return info.URL
}

func (p *rodPage) Navigate(ctx context.Context, url string) error {
	nctx, cancel := context.WithTimeout(ctx, p.owner.opts.NavigationTimeout)
	defer cancel()

	page := p.page.Context(nctx)
	if err := page.Navigate(url); err != nil {
		return navigationError(ctx, url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return navigationError(ctx, url, err)
	}
	p.url = url
	return nil
}

func (p *rodPage) WaitFor(ctx context.Context, selector string, timeout time.Duration) Result {
	wctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	el, err := p.page.Context(wctx).Element(selector)
	if err != nil {
		// Only the wait's own deadline counts as a timeout. A cancelled or
		// expired parent context is a run-level failure.
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			return Result{Outcome: TimedOut}
		}
		if ctx.Err() != nil {
			return Result{Err: ctx.Err()}
		}
		return Result{Err: fmt.Errorf("waiting for %q: %w", selector, err)}
	}
	return Result{Outcome: Found, Element: &rodElement{el: el}}
}

func (p *rodPage) Query(ctx context.Context, selector string) (Element, error) {
	has, el, err := p.page.Context(ctx).Has(selector)
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", selector, err)
	}
	if !has {
		return nil, ErrNotFound
	}
	return &rodElement{el: el}, nil
}

func (p *rodPage) QueryAll(ctx context.Context, selector string) ([]Element, error) {
	els, err := p.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", selector, err)
	}
	return wrapRodElements(els), nil
}

func (p *rodPage) OpenTab(_ context.Context) (Page, error) {
	return p.owner.newPage()
}

func (p *rodPage) Activate(_ context.Context) error {
	if _, err := p.page.Activate(); err != nil {
		return fmt.Errorf("failed to activate tab: %w", err)
	}
	return nil
}

func (p *rodPage) Close() error {
	if err := p.page.Close(); err != nil {
		return fmt.Errorf("failed to close tab: %w", err)
	}
	return nil
}

type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Text(ctx context.Context) (string, error) {
	text, err := e.el.Context(ctx).Text()
	if err != nil {
		return "", fmt.Errorf("reading text: %w", err)
	}
	return text, nil
}

func (e *rodElement) Attr(ctx context.Context, name string) (string, bool, error) {
	v, err := e.el.Context(ctx).Attribute(name)
	if err != nil {
		return "", false, fmt.Errorf("reading attribute %q: %w", name, err)
	}
	if v == nil {
		return "", false, nil
	}
	return *v, true, nil
}

func (e *rodElement) Query(ctx context.Context, selector string) (Element, error) {
	has, el, err := e.el.Context(ctx).Has(selector)
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", selector, err)
	}
	if !has {
		return nil, ErrNotFound
	}
	return &rodElement{el: el}, nil
}

func (e *rodElement) QueryAll(ctx context.Context, selector string) ([]Element, error) {
	els, err := e.el.Context(ctx).Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", selector, err)
	}
	return wrapRodElements(els), nil
}

func wrapRodElements(els rod.Elements) []Element {
	out := make([]Element, 0, len(els))
	for _, el := range els {
		out = append(out, &rodElement{el: el})
	}
	return out
}

// navigationError maps a failed navigation to ErrTimeout when the
// navigation's own deadline expired.
func navigationError(parent context.Context, url string, err error) error {
	if parent.Err() != nil {
		return parent.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("navigating to %s: %w", url, ErrTimeout)
	}
	return fmt.Errorf("navigating to %s: %w", url, err)
}
