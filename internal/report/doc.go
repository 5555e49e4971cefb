// Package report writes a crawl run in its output formats.
//
//   - JSONWriter: the judge directory document, the program's primary output
//   - MarkdownWriter: a readable rendition of the same directory
//   - SummaryWriter: terminal tables with run statistics
//
// Writers implement the Writer interface, so the pipeline can treat them
// alike. WriteJSONFile and ReadJSONFile wrap the JSON writer for files.
package report
