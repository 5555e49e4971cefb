// Package main provides the entry point for the courtscan CLI.
//
// courtscan collects the judge directory of a court website (sections,
// subsections and judge profiles) by driving a browser, and writes it as
// one JSON document.
//
// Usage:
//
//	courtscan crawl
//	courtscan crawl -o judges_data.json --markdown judges.md
//
// See --help for all available options.
package main

// main is the entry point for courtscan.
func main() {
	Execute()
}
