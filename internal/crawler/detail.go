package crawler

import (
	"context"
	"errors"
	"fmt"

	"github.com/Olyastel/Site-parsing/internal/browser"
	"github.com/Olyastel/Site-parsing/internal/model"
)

// detail opens a judge's profile in a new tab and merges its fields into
// judge. The profile's name and position replace the card's. Every optional
// field is read independently and keeps its default when absent. Failures
// are logged and the judge is returned with whatever was filled in.
//
// The profile tab is always closed and the main tab activated again.
func (c *Crawler) detail(ctx context.Context, page browser.Page, profileURL string, judge model.Judge) model.Judge {
	tab, err := page.OpenTab(ctx)
	if err != nil {
		c.logger.Warn("failed to open profile tab", "url", profileURL, "error", err)
		return judge
	}
	defer func() {
		if err := tab.Close(); err != nil {
			c.logger.Warn("failed to close profile tab", "url", profileURL, "error", err)
		}
		if err := page.Activate(ctx); err != nil {
			c.logger.Warn("failed to restore main tab", "error", err)
		}
	}()

	if err := tab.Navigate(ctx, profileURL); err != nil {
		c.logger.Warn("failed to open profile", "url", profileURL, "error", err)
		return judge
	}
	if err := c.settle(ctx, c.delays.Detail); err != nil {
		return judge
	}

	res := tab.WaitFor(ctx, c.selectors.DetailName, c.timeouts.Detail)
	if !res.Found() {
		c.logger.Warn("profile name not found", "url", profileURL,
			"outcome", res.Outcome.String(), "error", res.Err)
		return judge
	}

	name, err := res.Element.Text(ctx)
	if err != nil {
		c.logger.Warn("failed to read profile name", "url", profileURL, "error", err)
		return judge
	}
	position, err := c.requiredText(ctx, tab, c.selectors.DetailPosition)
	if err != nil {
		c.logger.Warn("failed to read profile position", "url", profileURL, "error", err)
		return judge
	}
	if name = c.text.line(name); name != "" {
		judge.Name = name
	}
	if position != "" {
		judge.Position = position
	}

	paragraphs := c.paragraphs(ctx, tab)
	judge.Class = c.matchParagraph(paragraphs, c.selectors.ClassMarker)
	judge.Appointment = c.matchParagraph(paragraphs, c.selectors.AppointmentMarker)
	judge.Career = c.career(ctx, tab, profileURL)
	judge.Education = c.optionalBlock(ctx, tab, c.selectors.Education)
	judge.Awards = c.optionalBlock(ctx, tab, c.selectors.Awards)

	return judge
}

func (c *Crawler) requiredText(ctx context.Context, tab browser.Page, selector string) (string, error) {
	el, err := tab.Query(ctx, selector)
	if err != nil {
		return "", err
	}
	text, err := el.Text(ctx)
	if err != nil {
		return "", err
	}
	return c.text.line(text), nil
}

// paragraphs returns the normalized text of every paragraph on the page.
func (c *Crawler) paragraphs(ctx context.Context, tab browser.Page) []string {
	els, err := tab.QueryAll(ctx, c.selectors.Paragraph)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(els))
	for _, el := range els {
		text, err := el.Text(ctx)
		if err != nil {
			continue
		}
		out = append(out, c.text.line(text))
	}
	return out
}

// matchParagraph returns the first paragraph containing marker, or
// model.NotSpecified.
func (c *Crawler) matchParagraph(paragraphs []string, marker string) string {
	for _, p := range paragraphs {
		if c.text.contains(p, marker) {
			return p
		}
	}
	return model.NotSpecified
}

// career returns the career entries as "year: description". Entries missing
// either part are skipped.
func (c *Crawler) career(ctx context.Context, tab browser.Page, profileURL string) []string {
	entries := []string{}

	items, err := tab.QueryAll(ctx, c.selectors.CareerItems)
	if err != nil {
		return entries
	}

	for i, item := range items {
		entry, err := c.careerEntry(ctx, item)
		if err != nil {
			c.logger.Debug("skipping career entry", "url", profileURL, "item", i, "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func (c *Crawler) careerEntry(ctx context.Context, item browser.Element) (string, error) {
	yearEl, err := item.Query(ctx, c.selectors.CareerYear)
	if err != nil {
		return "", fmt.Errorf("year: %w", err)
	}
	year, err := yearEl.Text(ctx)
	if err != nil {
		return "", fmt.Errorf("year: %w", err)
	}

	textEl, err := item.Query(ctx, c.selectors.CareerText)
	if err != nil {
		return "", fmt.Errorf("text: %w", err)
	}
	text, err := textEl.Text(ctx)
	if err != nil {
		return "", fmt.Errorf("text: %w", err)
	}

	year, text = c.text.line(year), c.text.line(text)
	if year == "" || text == "" {
		return "", errEmptyField
	}
	return year + ": " + text, nil
}

// optionalBlock returns the text of selector, or model.NotSpecified when the
// block is missing or empty.
func (c *Crawler) optionalBlock(ctx context.Context, tab browser.Page, selector string) string {
	el, err := tab.Query(ctx, selector)
	if err != nil {
		if !errors.Is(err, browser.ErrNotFound) {
			c.logger.Debug("failed to query profile block", "selector", selector, "error", err)
		}
		return model.NotSpecified
	}
	text, err := el.Text(ctx)
	if err != nil {
		return model.NotSpecified
	}
	if text = c.text.block(text); text == "" {
		return model.NotSpecified
	}
	return text
}
