package browser

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const listingHTML = `<!DOCTYPE html>
<html><body>
<table class="vs-tabs">
  <tr>
    <td><a href="/about/structure/?section=1" data-code="1">Судебная
    коллегия</a></td>
    <td><a href="/about/structure/?section=2" data-code="2">Президиум</a></td>
    <td><a href="/about/news/">Новости</a></td>
  </tr>
</table>
</body></html>`

func newListingServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/about/structure/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(listingHTML))
	})
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/about/structure/", http.StatusFound)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestStaticNavigateAndQuery(t *testing.T) {
	t.Parallel()

	srv := newListingServer(t)
	ctx := context.Background()
	b := NewStatic(NewHTTPFetcher(5 * time.Second))
	defer b.Close()

	page, err := b.Page(ctx)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	if err := page.Navigate(ctx, srv.URL+"/about/structure/"); err != nil {
		t.Fatalf("Navigate() error = %v", err)
	}

	t.Run("wait found", func(t *testing.T) {
		res := page.WaitFor(ctx, "table.vs-tabs", time.Second)
		if !res.Found() {
			t.Fatalf("WaitFor() outcome = %v, err = %v, want found", res.Outcome, res.Err)
		}
	})

	t.Run("wait not found", func(t *testing.T) {
		res := page.WaitFor(ctx, "#vs-structure-menu-dynamic", time.Second)
		if res.Outcome != NotFound || res.Err != nil {
			t.Errorf("WaitFor() = %+v, want NotFound", res)
		}
	})

	t.Run("query all with attribute", func(t *testing.T) {
		links, err := page.QueryAll(ctx, "a[data-code]")
		if err != nil {
			t.Fatalf("QueryAll() error = %v", err)
		}
		if len(links) != 2 {
			t.Fatalf("QueryAll() returned %d elements, want 2", len(links))
		}
		code, ok, err := links[1].Attr(ctx, "data-code")
		if err != nil || !ok || code != "2" {
			t.Errorf("Attr() = %q, %v, %v, want \"2\", true, nil", code, ok, err)
		}
		if _, ok, _ := links[1].Attr(ctx, "title"); ok {
			t.Error("Attr() reported a missing attribute as present")
		}
	})

	t.Run("query missing", func(t *testing.T) {
		_, err := page.Query(ctx, ".vs-person-detail-name")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Query() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("element query", func(t *testing.T) {
		table, err := page.Query(ctx, "table.vs-tabs")
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		first, err := table.Query(ctx, "a")
		if err != nil {
			t.Fatalf("element Query() error = %v", err)
		}
		text, _ := first.Text(ctx)
		if text == "" {
			t.Error("Text() returned empty string")
		}
	})
}

func TestStaticFollowsRedirects(t *testing.T) {
	t.Parallel()

	srv := newListingServer(t)
	ctx := context.Background()
	page, _ := NewStatic(NewHTTPFetcher(5*time.Second)).Page(ctx)

	if err := page.Navigate(ctx, srv.URL+"/old"); err != nil {
		t.Fatalf("Navigate() error = %v", err)
	}
	if want := srv.URL + "/about/structure/"; page.URL() != want {
		t.Errorf("URL() = %q, want %q", page.URL(), want)
	}
}

func TestStaticFailedNavigationLeavesBlankTab(t *testing.T) {
	t.Parallel()

	srv := newListingServer(t)
	ctx := context.Background()
	page, _ := NewStatic(NewHTTPFetcher(5*time.Second)).Page(ctx)

	if err := page.Navigate(ctx, srv.URL+"/about/structure/"); err != nil {
		t.Fatalf("Navigate() error = %v", err)
	}
	if err := page.Navigate(ctx, srv.URL+"/missing"); err == nil {
		t.Fatal("Navigate() to a 404 page returned nil error")
	}

	res := page.WaitFor(ctx, "table.vs-tabs", time.Second)
	if res.Outcome != NotFound {
		t.Errorf("WaitFor() after failed navigation = %v, want not found", res.Outcome)
	}
	els, err := page.QueryAll(ctx, "a")
	if err != nil || len(els) != 0 {
		t.Errorf("QueryAll() = %d elements, %v, want none", len(els), err)
	}
}

func TestStaticTabs(t *testing.T) {
	t.Parallel()

	srv := newListingServer(t)
	ctx := context.Background()
	b := NewStatic(NewHTTPFetcher(5 * time.Second))
	main, _ := b.Page(ctx)

	tab, err := main.OpenTab(ctx)
	if err != nil {
		t.Fatalf("OpenTab() error = %v", err)
	}
	if tab.URL() != "about:blank" {
		t.Errorf("new tab URL = %q, want about:blank", tab.URL())
	}
	if err := tab.Navigate(ctx, srv.URL+"/about/structure/"); err != nil {
		t.Fatalf("Navigate() error = %v", err)
	}
	if main.URL() == tab.URL() {
		t.Error("navigating a new tab changed the main tab")
	}

	if err := tab.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := tab.Activate(ctx); err == nil {
		t.Error("Activate() on a closed tab returned nil error")
	}
	if err := main.Activate(ctx); err != nil {
		t.Errorf("Activate() on main tab error = %v", err)
	}

	again, _ := b.Page(ctx)
	if again != main {
		t.Error("Page() returned a different main tab")
	}
}

func TestStaticWaitHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	page, _ := NewStatic(NewHTTPFetcher(time.Second)).Page(context.Background())
	res := page.WaitFor(ctx, "body", time.Second)
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("WaitFor() err = %v, want context.Canceled", res.Err)
	}
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		outcome Outcome
		want    string
	}{
		{Found, "found"},
		{NotFound, "not found"},
		{TimedOut, "timed out"},
		{Outcome(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}
