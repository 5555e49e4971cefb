package crawler

import (
	"context"
	"errors"
	"fmt"

	"github.com/Olyastel/Site-parsing/internal/browser"
	"github.com/Olyastel/Site-parsing/internal/model"
)

// errEmptyField marks a card whose required field is present but blank.
var errEmptyField = errors.New("empty field")

// card is the data read from one judge summary card.
type card struct {
	name       string
	position   string
	photoURL   string
	profileURL string
}

// judges reads the persons list of a subsection page. A page without the
// list yields no judges. Cards missing a required field are logged and
// skipped.
func (c *Crawler) judges(ctx context.Context, page browser.Page, subsectionURL string) []model.Judge {
	judges := []model.Judge{}

	if err := page.Navigate(ctx, subsectionURL); err != nil {
		c.logger.Warn("failed to open subsection page", "url", subsectionURL, "error", err)
		return judges
	}
	if err := c.settle(ctx, c.delays.Subsection); err != nil {
		return judges
	}

	res := page.WaitFor(ctx, c.selectors.PersonsList, c.timeouts.Judges)
	if !res.Found() {
		c.logger.Info("no judges found", "url", subsectionURL,
			"outcome", res.Outcome.String(), "error", res.Err)
		return judges
	}

	cards, err := page.QueryAll(ctx, c.selectors.PersonCards)
	if err != nil {
		c.logger.Warn("failed to list judge cards", "url", subsectionURL, "error", err)
		return judges
	}

	base := page.URL()
	for i, el := range cards {
		if ctx.Err() != nil {
			return judges
		}

		cd, err := c.readCard(ctx, el, base)
		if err != nil {
			c.logger.Warn("skipping judge card", "url", subsectionURL, "card", i, "error", err)
			continue
		}

		judge := model.NewJudge(cd.name, cd.position, cd.photoURL)
		if cd.profileURL != "" {
			judge = c.detail(ctx, page, cd.profileURL, judge)
		}
		judges = append(judges, judge)
	}

	return judges
}

// readCard extracts the required fields of a card. Name, position and photo
// must all be present and non-empty.
func (c *Crawler) readCard(ctx context.Context, el browser.Element, base string) (card, error) {
	nameEl, err := el.Query(ctx, c.selectors.CardName)
	if err != nil {
		return card{}, fmt.Errorf("name: %w", err)
	}
	name, err := nameEl.Text(ctx)
	if err != nil {
		return card{}, fmt.Errorf("name: %w", err)
	}

	posEl, err := el.Query(ctx, c.selectors.CardPosition)
	if err != nil {
		return card{}, fmt.Errorf("position: %w", err)
	}
	position, err := posEl.Text(ctx)
	if err != nil {
		return card{}, fmt.Errorf("position: %w", err)
	}

	photoEl, err := el.Query(ctx, c.selectors.CardPhoto)
	if err != nil {
		return card{}, fmt.Errorf("photo: %w", err)
	}
	src, _, err := photoEl.Attr(ctx, "src")
	if err != nil {
		return card{}, fmt.Errorf("photo: %w", err)
	}

	cd := card{
		name:     c.text.line(name),
		position: c.text.line(position),
		photoURL: resolveURL(base, src),
	}
	switch {
	case cd.name == "":
		return card{}, fmt.Errorf("name: %w", errEmptyField)
	case cd.position == "":
		return card{}, fmt.Errorf("position: %w", errEmptyField)
	case cd.photoURL == "":
		return card{}, fmt.Errorf("photo: %w", errEmptyField)
	}

	href, ok, err := nameEl.Attr(ctx, "href")
	if err == nil && ok {
		cd.profileURL = resolveURL(base, href)
	}

	return cd, nil
}
