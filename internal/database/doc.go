// Package database archives crawl runs in SQLite.
//
// Every archived run keeps its timing, counts, partial flag and the complete
// directory document, so a past run can be listed or exported again without
// crawling the site.
//
// The archive uses modernc.org/sqlite, a CGO-free driver, and lives in a
// single file under the data directory.
package database
