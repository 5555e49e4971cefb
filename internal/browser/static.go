package browser

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Static is a Browser over server-rendered markup. Every tab fetches its
// document through the Fetcher and answers queries with goquery.
//
// A static document never changes after it is loaded, so WaitFor returns
// immediately: Found when the selector matches and NotFound otherwise.
type Static struct {
	fetcher Fetcher
	main    *staticPage
}

// NewStatic creates a Static browser that loads pages with fetcher.
func NewStatic(fetcher Fetcher) *Static {
	return &Static{fetcher: fetcher}
}

// Page returns the main tab.
func (s *Static) Page(_ context.Context) (Page, error) {
	if s.main == nil {
		s.main = &staticPage{fetcher: s.fetcher}
	}
	return s.main, nil
}

// Close is a no-op.
func (s *Static) Close() error {
	return nil
}

type staticPage struct {
	fetcher Fetcher
	url     string
	doc     *goquery.Document
	closed  bool
}

func (p *staticPage) URL() string {
	return p.url
}

func (p *staticPage) Navigate(ctx context.Context, url string) error {
	if p.closed {
		return fmt.Errorf("navigating to %s: tab is closed", url)
	}

	// A failed navigation leaves a blank tab behind, like a real browser.
	p.doc = nil
	p.url = url

	body, final, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", url, err)
	}

	p.doc = doc
	if final != "" {
		p.url = final
	}
	return nil
}

func (p *staticPage) WaitFor(ctx context.Context, selector string, _ time.Duration) Result {
	if err := ctx.Err(); err != nil {
		return Result{Err: err}
	}
	el, err := p.Query(ctx, selector)
	if err != nil {
		return Result{Outcome: NotFound}
	}
	return Result{Outcome: Found, Element: el}
}

func (p *staticPage) Query(_ context.Context, selector string) (Element, error) {
	if p.doc == nil {
		return nil, ErrNotFound
	}
	return queryFirst(p.doc.Selection, selector)
}

func (p *staticPage) QueryAll(_ context.Context, selector string) ([]Element, error) {
	if p.doc == nil {
		return nil, nil
	}
	return queryAll(p.doc.Selection, selector), nil
}

func (p *staticPage) OpenTab(_ context.Context) (Page, error) {
	return &staticPage{fetcher: p.fetcher, url: "about:blank"}, nil
}

func (p *staticPage) Activate(_ context.Context) error {
	if p.closed {
		return fmt.Errorf("failed to activate tab: tab is closed")
	}
	return nil
}

func (p *staticPage) Close() error {
	p.closed = true
	p.doc = nil
	return nil
}

type staticElement struct {
	sel *goquery.Selection
}

func (e *staticElement) Text(_ context.Context) (string, error) {
	return strings.TrimSpace(e.sel.Text()), nil
}

func (e *staticElement) Attr(_ context.Context, name string) (string, bool, error) {
	v, ok := e.sel.Attr(name)
	return v, ok, nil
}

func (e *staticElement) Query(_ context.Context, selector string) (Element, error) {
	return queryFirst(e.sel, selector)
}

func (e *staticElement) QueryAll(_ context.Context, selector string) ([]Element, error) {
	return queryAll(e.sel, selector), nil
}

func queryFirst(sel *goquery.Selection, selector string) (Element, error) {
	found := sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, ErrNotFound
	}
	return &staticElement{sel: found}, nil
}

func queryAll(sel *goquery.Selection, selector string) []Element {
	var out []Element
	sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, &staticElement{sel: s})
	})
	return out
}
