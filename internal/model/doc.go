// Package model defines the data structures produced by a courtscan run.
//
// This package contains the following main types:
//   - Directory: The ordered list of sections written to the output file
//   - Section, Subsection, Judge: The nodes of the judge directory tree
//   - Stats: Aggregate counts over a Directory
//   - Run: The state of one crawl, carried through the pipeline
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The crawler builds these types, while the report, database and
// pipeline packages consume them.
//
// The JSON tags on Section, Subsection and Judge define the output file format,
// so renaming a tag changes the file contract.
package model
