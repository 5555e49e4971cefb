package crawler

import (
	"context"

	"github.com/Olyastel/Site-parsing/internal/browser"
)

// SectionRef is a section as found on the listing page, before its
// subsections are known.
type SectionRef struct {
	// Name is the tab caption with line breaks collapsed.
	Name string

	// Code is the value of the section code attribute. Nil when the
	// attribute is missing.
	Code *string

	// URL is the absolute address of the section page.
	URL string
}

// sections reads the section tabs from the listing page. Any failure is
// logged and yields an empty list.
func (c *Crawler) sections(ctx context.Context, page browser.Page) []SectionRef {
	if err := page.Navigate(ctx, c.baseURL); err != nil {
		c.logger.Warn("failed to open listing page", "url", c.baseURL, "error", err)
		return nil
	}
	if err := c.settle(ctx, c.delays.Listing); err != nil {
		return nil
	}

	res := page.WaitFor(ctx, c.selectors.SectionTable, c.timeouts.Sections)
	if !res.Found() {
		c.logger.Warn("section table not found",
			"url", c.baseURL, "outcome", res.Outcome.String(), "error", res.Err)
		return nil
	}

	links, err := res.Element.QueryAll(ctx, c.selectors.SectionLinks)
	if err != nil {
		c.logger.Warn("failed to list section tabs", "url", c.baseURL, "error", err)
		return nil
	}

	base := page.URL()
	refs := make([]SectionRef, 0, len(links))
	for _, link := range links {
		ref, err := c.sectionRef(ctx, link, base)
		if err != nil {
			c.logger.Warn("failed to read section tab", "url", c.baseURL, "error", err)
			return nil
		}
		refs = append(refs, ref)
	}
	return refs
}

func (c *Crawler) sectionRef(ctx context.Context, link browser.Element, base string) (SectionRef, error) {
	text, err := link.Text(ctx)
	if err != nil {
		return SectionRef{}, err
	}

	ref := SectionRef{Name: c.text.line(text)}

	code, ok, err := link.Attr(ctx, c.selectors.SectionCodeAttr)
	if err != nil {
		return SectionRef{}, err
	}
	if ok {
		ref.Code = &code
	}

	href, _, err := link.Attr(ctx, "href")
	if err != nil {
		return SectionRef{}, err
	}
	ref.URL = resolveURL(base, href)

	return ref, nil
}
