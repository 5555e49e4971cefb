// Package log provides logging helpers for courtscan, built on top of the
// standard slog package.
//
// Text read from rendered pages is noisy: headings carry line breaks,
// career paragraphs run for hundreds of characters. The CompactHandler
// normalizes such values so that a log line stays a single readable line.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Warn("failed to parse judge card",
//	    "card", cardText, // collapsed and truncated
//	    "error", err,
//	)
package log
