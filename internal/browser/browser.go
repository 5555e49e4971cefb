package browser

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by non-waiting queries when nothing matches.
var ErrNotFound = errors.New("element not found")

// ErrTimeout is returned when a navigation does not finish in time.
var ErrTimeout = errors.New("timed out")

// Outcome tags the result of a bounded wait.
type Outcome int

const (
	// Found means the element appeared within the timeout.
	Found Outcome = iota

	// NotFound means the page settled without the element. Only drivers
	// that can tell a settled page apart from a loading one report this.
	NotFound

	// TimedOut means the element did not appear before the timeout.
	TimedOut
)

// String returns the outcome name used in logs.
func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case NotFound:
		return "not found"
	case TimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of Page.WaitFor.
type Result struct {
	// Outcome says whether the element showed up.
	Outcome Outcome

	// Element is set only when Outcome is Found.
	Element Element

	// Err reports a driver failure. When Err is set, Outcome carries no
	// meaning and the caller should treat the wait as failed.
	Err error
}

// Found reports whether the wait produced an element.
func (r Result) Found() bool {
	return r.Err == nil && r.Outcome == Found && r.Element != nil
}

// Element is a node of a rendered page.
type Element interface {
	// Text returns the element's text content.
	Text(ctx context.Context) (string, error)

	// Attr returns an attribute value and whether the attribute exists.
	Attr(ctx context.Context, name string) (string, bool, error)

	// Query returns the first descendant matching selector without waiting.
	// It returns ErrNotFound when nothing matches.
	Query(ctx context.Context, selector string) (Element, error)

	// QueryAll returns all descendants matching selector without waiting.
	QueryAll(ctx context.Context, selector string) ([]Element, error)
}

// Page is a browser tab.
type Page interface {
	// URL returns the address of the current document.
	URL() string

	// Navigate loads url in this tab.
	Navigate(ctx context.Context, url string) error

	// WaitFor waits up to timeout for an element matching selector.
	WaitFor(ctx context.Context, selector string, timeout time.Duration) Result

	// Query returns the first element matching selector without waiting.
	// It returns ErrNotFound when nothing matches.
	Query(ctx context.Context, selector string) (Element, error)

	// QueryAll returns all elements matching selector without waiting.
	QueryAll(ctx context.Context, selector string) ([]Element, error)

	// OpenTab opens a new blank tab in the same browser.
	OpenTab(ctx context.Context) (Page, error)

	// Activate brings this tab to the front.
	Activate(ctx context.Context) error

	// Close closes the tab. It does not take a context so that it can run
	// during cleanup after the crawl context has been cancelled.
	Close() error
}

// Browser is a running browser session.
type Browser interface {
	// Page returns the session's main tab, creating it on first use.
	Page(ctx context.Context) (Page, error)

	// Close ends the session and releases the browser process.
	Close() error
}
