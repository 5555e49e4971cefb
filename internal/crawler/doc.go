// Package crawler walks the court's structure pages and builds the judge
// directory.
//
// # Traversal
//
// The Crawler drives a single browser tab through four levels:
//
//  1. the listing page, whose tab table names the sections
//  2. each section page, whose menu names the subsections
//  3. each subsection page, whose persons list holds the judge cards
//  4. each judge's profile, opened in a separate tab
//
// Every level navigates, sleeps for a fixed settle delay and then waits for
// one anchor element with a bound. The wait's tagged result decides between
// extracting and falling back.
//
// # Failures
//
// Failures are handled at the smallest scope that contains them. A missing
// optional profile field keeps its default, a broken card or profile is
// logged and skipped, and a section without a menu becomes a single
// "main section" subsection. Only context cancellation, a panic inside the
// driver or the loss of the main tab abort the run; Run then returns the
// sections collected so far together with an error wrapping ErrCrawlAborted.
//
// # Usage
//
//	c := crawler.New(b, cfg.BaseURL,
//		crawler.WithTimeouts(cfg.Timeouts),
//		crawler.WithLogger(logger),
//	)
//	dir, err := c.Run(ctx)
package crawler
