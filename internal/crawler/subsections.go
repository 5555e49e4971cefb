package crawler

import (
	"context"

	"github.com/Olyastel/Site-parsing/internal/browser"
	"github.com/Olyastel/Site-parsing/internal/model"
)

// subsectionRef is a subsection link found in a section's menu.
type subsectionRef struct {
	Name string
	URL  string
	Code *string
}

// subsections reads a section's subsection menu. A section without a menu,
// or whose menu has no subsection links, is returned as a single synthetic
// "main section" pointing at the section page itself.
func (c *Crawler) subsections(ctx context.Context, page browser.Page, section SectionRef) []subsectionRef {
	fallback := []subsectionRef{{Name: model.MainSectionName, URL: section.URL}}

	if err := page.Navigate(ctx, section.URL); err != nil {
		c.logger.Warn("failed to open section page", "section", section.Name, "url", section.URL, "error", err)
		return fallback
	}
	if err := c.settle(ctx, c.delays.Section); err != nil {
		return fallback
	}

	res := page.WaitFor(ctx, c.selectors.SubsectionMenu, c.timeouts.Subsections)
	if res.Err != nil {
		c.logger.Warn("failed to wait for subsection menu", "section", section.Name, "error", res.Err)
		return fallback
	}
	if !res.Found() {
		c.logger.Debug("no subsection menu, using the section itself",
			"section", section.Name, "outcome", res.Outcome.String())
		return fallback
	}

	links, err := res.Element.QueryAll(ctx, c.selectors.SubsectionLinks)
	if err != nil {
		c.logger.Warn("failed to list subsection links", "section", section.Name, "error", err)
		return fallback
	}

	base := page.URL()
	refs := make([]subsectionRef, 0, len(links))
	for _, link := range links {
		ref, ok := c.subsectionRef(ctx, link, base)
		if !ok {
			continue
		}
		refs = append(refs, ref)
	}

	if len(refs) == 0 {
		c.logger.Debug("subsection menu has no links, using the section itself", "section", section.Name)
		return fallback
	}
	return refs
}

func (c *Crawler) subsectionRef(ctx context.Context, link browser.Element, base string) (subsectionRef, bool) {
	href, ok, err := link.Attr(ctx, "href")
	if err != nil || !ok {
		c.logger.Warn("failed to read subsection link", "error", err)
		return subsectionRef{}, false
	}

	code, ok := subsectionCode(href, c.selectors.SubsectionMarker)
	if !ok {
		return subsectionRef{}, false
	}

	text, err := link.Text(ctx)
	if err != nil {
		c.logger.Warn("failed to read subsection name", "href", href, "error", err)
		return subsectionRef{}, false
	}

	return subsectionRef{
		Name: c.text.line(text),
		URL:  resolveURL(base, href),
		Code: &code,
	}, true
}
